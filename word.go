package smpx

import "sync/atomic"

// Word32 is a 32-bit shared memory word accessed exclusively through atomic
// operations. Every operation is sequentially consistent, which subsumes the
// acquire-release ordering the AMO contract asks for: an update is visible
// to all harts before any later access on the issuing hart.
//
// The read-modify-write operations return the previous value, matching the
// amoadd/amoswap/amoor/amoand convention.
//
// It is zero-value usable.
type Word32 struct {
	_ noCopy
	v atomic.Uint32
}

// Add atomically adds delta to the word and returns the previous value.
func (w *Word32) Add(delta uint32) uint32 {
	return w.v.Add(delta) - delta
}

// Swap atomically stores v and returns the previous value.
func (w *Word32) Swap(v uint32) uint32 {
	return w.v.Swap(v)
}

// Or atomically ORs mask into the word and returns the previous value.
func (w *Word32) Or(mask uint32) uint32 {
	return w.v.Or(mask)
}

// And atomically ANDs mask into the word and returns the previous value.
func (w *Word32) And(mask uint32) uint32 {
	return w.v.And(mask)
}

// Load returns the current value with acquire semantics: no access after
// the load on the issuing hart is reordered before it.
func (w *Word32) Load() uint32 {
	return w.v.Load()
}

// Store writes v with release semantics: no access before the store on the
// issuing hart is reordered after it.
func (w *Word32) Store(v uint32) {
	w.v.Store(v)
}

// CompareAndSwap atomically replaces old with new if the word still holds
// old, reporting whether it did. A false result always means a genuine value
// mismatch; unlike a raw LR/SC pair there is no spurious failure to retry,
// the runtime retries reservation loss internally.
func (w *Word32) CompareAndSwap(old, new uint32) bool {
	return w.v.CompareAndSwap(old, new)
}

// Word64 is the 64-bit counterpart of Word32.
//
// It is zero-value usable.
type Word64 struct {
	_ noCopy
	v atomic.Uint64
}

// Add atomically adds delta to the word and returns the previous value.
func (w *Word64) Add(delta uint64) uint64 {
	return w.v.Add(delta) - delta
}

// Swap atomically stores v and returns the previous value.
func (w *Word64) Swap(v uint64) uint64 {
	return w.v.Swap(v)
}

// Or atomically ORs mask into the word and returns the previous value.
func (w *Word64) Or(mask uint64) uint64 {
	return w.v.Or(mask)
}

// And atomically ANDs mask into the word and returns the previous value.
func (w *Word64) And(mask uint64) uint64 {
	return w.v.And(mask)
}

// Load returns the current value with acquire semantics.
func (w *Word64) Load() uint64 {
	return w.v.Load()
}

// Store writes v with release semantics.
func (w *Word64) Store(v uint64) {
	w.v.Store(v)
}

// CompareAndSwap atomically replaces old with new if the word still holds
// old, reporting whether it did.
func (w *Word64) CompareAndSwap(old, new uint64) bool {
	return w.v.CompareAndSwap(old, new)
}
