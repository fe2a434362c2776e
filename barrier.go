package smpx

import "sync/atomic"

// Barrier is a reusable rendezvous point for a fixed set of harts. All
// participants block in Wait until the last one arrives, at which point all
// are released together. The barrier re-arms itself: the same instance can
// be waited on any number of consecutive rounds.
//
// Release is signalled exclusively by the generation counter advancing.
// Waiters never re-read the arrival count after their own increment, so a
// fast hart entering the next round cannot wrap the counter under a slow
// hart still observing it.
type Barrier struct {
	_     noCopy
	mu    SpinLock
	count uint32 // arrivals this round, protected by mu
	total uint32

	// gen lives on its own cache line: it is spun on by every waiter while
	// the arrival fields keep being written.
	_   [cacheLineSize]byte
	gen atomic.Uint32
}

// NewBarrier creates a barrier for total participants.
//
// panic if total == 0.
func NewBarrier(total uint32) *Barrier {
	if total == 0 {
		panic("smpx: barrier total must be positive")
	}
	return &Barrier{total: total}
}

// Total returns the configured participant count.
func (b *Barrier) Total() uint32 {
	return b.total
}

// Generation returns the number of completed rounds.
func (b *Barrier) Generation() uint32 {
	return b.gen.Load()
}

// Wait blocks until all participants of the current round have arrived.
//
// The last arriver resets the count and advances the generation; everyone
// else spins on the generation captured under the lock. On return, every
// memory write made by any participant before its Wait call is visible to
// the caller.
func (b *Barrier) Wait() {
	if b.total == 1 {
		return
	}

	b.mu.Lock()
	b.count++
	gen := b.gen.Load()
	if b.count == b.total {
		// Last to arrive: reset, then advance the generation. The atomic
		// bump orders the count reset before the release becomes visible.
		b.count = 0
		b.gen.Add(1)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()

	var spins int
	for b.gen.Load() == gen {
		delay(&spins)
	}
}
