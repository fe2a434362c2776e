package smpx

import "sync/atomic"

// SpinLock is a binary test-and-set mutex: the state word is 0 when unlocked
// and 1 when locked. Acquisition is a pure busy-wait; there is no queue, no
// fairness and no deadlock detection. A caller that never unlocks hangs all
// other callers forever.
//
// Acquiring carries acquire semantics and unlocking carries release
// semantics, so everything written inside the critical section is visible to
// the next holder.
//
// The lock records no holder identity. As a cheap misuse assertion, Unlock
// panics when the lock is not held at all.
//
// It is zero-value usable.
type SpinLock struct {
	_     noCopy
	state atomic.Uint32
}

// Lock acquires the lock, spinning until it is held by the caller.
func (l *SpinLock) Lock() {
	if l.state.CompareAndSwap(0, 1) {
		return
	}
	l.slowLock()
}

func (l *SpinLock) slowLock() {
	var spins int
	for !l.TryLock() {
		delay(&spins)
	}
}

// TryLock attempts to acquire the lock without blocking.
// On failure the lock state is left unmodified.
func (l *SpinLock) TryLock() bool {
	return l.state.Load() == 0 && l.state.CompareAndSwap(0, 1)
}

// Unlock releases the lock. Every memory write made while holding the lock
// is visible to other harts before the unlocking store.
//
// Unlock of an unlocked SpinLock panics.
func (l *SpinLock) Unlock() {
	if l.state.Swap(0) == 0 {
		panic("smpx: unlock of unlocked SpinLock")
	}
}
