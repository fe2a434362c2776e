//go:build smpx_cachelinesize_64

package opt

// CacheLineSize_ forced to 64 bytes via build tag.
const CacheLineSize_ = 64
