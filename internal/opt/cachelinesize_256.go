//go:build smpx_cachelinesize_256

package opt

// CacheLineSize_ forced to 256 bytes via build tag.
const CacheLineSize_ = 256
