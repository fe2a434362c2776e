// Package smpx is the multi-hart synchronization core of a CPU/platform test
// harness. It coordinates N independent preemption-free execution contexts
// ("harts") over shared memory only: a test-and-set spinlock, a reusable
// generation barrier and a boot-release protocol, all built on busy-waiting
// with no blocking primitives underneath.
//
// One distinguished hart (hart 0) initializes the shared state, releases the
// remaining harts from their boot spin-wait and then drives a fixed sequence
// of barrier-separated test phases that every hart participates in. The
// correctness oracle is deliberately blunt: shared counters must come out
// equal to the hart count and a missing participant hangs the whole run.
package smpx

import (
	"github.com/llxisdsh/pb"

	"github.com/pkp124/smpx/console"
)

// Test phase identifiers, in protocol order. The sequence is a fixed
// contract between the primary driver and every secondary hart: both sides
// pass the shared barrier once per phase and must not reorder them.
const (
	PhaseBootComplete uint32 = iota + 1
	PhaseLockTestStart
	PhaseLockTestEnd
	PhaseAtomicTestStart
	PhaseAtomicTestEnd
	PhaseFinal

	NumPhases = PhaseFinal
)

// Coordinator owns all state shared between harts: the release flag, online
// accounting, the print lock, the test counters and the phase barrier. It is
// written by hart 0 alone during construction and by every hart afterwards,
// always through the lock or the atomic layer, never both for the same
// variable.
type Coordinator struct {
	_     noCopy
	total uint32
	out   *console.Console

	release Word32 // 0 = hold secondaries, 1 = go; written once by hart 0
	halt    Word32 // 0 = run, 1 = leave the terminal idle wait
	online  Word32 // secondary harts checked in, [0, total-1]

	printMu SpinLock

	testMu      SpinLock
	lockCounter uint32 // protected by testMu

	atomicCounter Word32

	bar *Barrier

	// phases records the last completed phase per hart. It only instruments
	// the protocol (phase-ordering checks in the driver and tests); protocol
	// correctness never depends on it.
	phases pb.MapOf[uint32, uint32]
}

// New constructs the coordination context for total harts, hart 0 included.
// This is the smp_init step and must complete on hart 0 before any other
// hart is released; publication of the returned pointer to the secondary
// boot path establishes the needed happens-before edge.
//
// panic if total == 0.
func New(total uint32, out *console.Console) *Coordinator {
	if total == 0 {
		panic("smpx: hart count must be positive")
	}
	return &Coordinator{
		total: total,
		out:   out,
		bar:   NewBarrier(total),
	}
}

// NumHarts returns the configured hart count.
func (c *Coordinator) NumHarts() uint32 {
	return c.total
}

// HartsOnline returns how many secondary harts have checked in.
func (c *Coordinator) HartsOnline() uint32 {
	return c.online.Load()
}

// ReleaseHarts releases the secondary harts from their boot spin-wait.
// Called by hart 0, exactly once, after initialization is complete.
func (c *Coordinator) ReleaseHarts() {
	c.release.Store(1)
}

// WaitRelease spins until hart 0 has called ReleaseHarts. Secondary harts
// call this from their boot path before touching any other shared state.
func (c *Coordinator) WaitRelease() {
	var spins int
	for c.release.Load() == 0 {
		delay(&spins)
	}
}

// WaitAllOnline spins until every secondary hart has checked in. Hart 0
// calls this after ReleaseHarts, before entering the phase sequence.
func (c *Coordinator) WaitAllOnline() {
	var spins int
	for c.online.Load() < c.total-1 {
		delay(&spins)
	}
}

// Print runs f on the shared console under the print lock, so concurrent
// multi-step prints from different harts never interleave.
func (c *Coordinator) Print(f func(*console.Console)) {
	c.printMu.Lock()
	f(c.out)
	c.printMu.Unlock()
}

// Announce emits the hart-online line for hartID.
func (c *Coordinator) Announce(hartID uint32) {
	c.Print(func(con *console.Console) {
		con.Printf("[SMP] Hart %d online\n", hartID)
	})
}

// LockedIncrement bumps the lock-protected test counter.
func (c *Coordinator) LockedIncrement() {
	c.testMu.Lock()
	c.lockCounter++
	c.testMu.Unlock()
}

// LockCounter returns the lock-protected test counter.
func (c *Coordinator) LockCounter() uint32 {
	c.testMu.Lock()
	v := c.lockCounter
	c.testMu.Unlock()
	return v
}

// AtomicIncrement bumps the atomic test counter. No lock: the atomic op is
// self-synchronizing.
func (c *Coordinator) AtomicIncrement() {
	c.atomicCounter.Add(1)
}

// AtomicCounter returns the atomic test counter.
func (c *Coordinator) AtomicCounter() uint32 {
	return c.atomicCounter.Load()
}

// ResetCounters zeroes both test counters. Only meaningful on hart 0 before
// the corresponding test-start barrier.
func (c *Coordinator) ResetCounters() {
	c.testMu.Lock()
	c.lockCounter = 0
	c.testMu.Unlock()
	c.atomicCounter.Store(0)
}

// Rendezvous waits at the shared barrier and records that hartID completed
// the given phase.
func (c *Coordinator) Rendezvous(hartID, phase uint32) {
	c.bar.Wait()
	c.phases.Store(hartID, phase)
}

// PhaseOf returns the last phase hartID completed, or 0 if it has not
// reached the first barrier yet.
func (c *Coordinator) PhaseOf(hartID uint32) uint32 {
	p, _ := c.phases.Load(hartID)
	return p
}

// MinPhase returns the lowest completed phase across all harts that have
// reached at least one barrier, and how many harts that is.
func (c *Coordinator) MinPhase() (min uint32, harts int) {
	c.phases.Range(func(_ uint32, p uint32) bool {
		if harts == 0 || p < min {
			min = p
		}
		harts++
		return true
	})
	return min, harts
}

// Shutdown lets harts parked in the terminal idle wait return. The firmware
// original parks forever in wfi; a joinable harness needs a way out.
func (c *Coordinator) Shutdown() {
	c.halt.Store(1)
}

// SecondaryEntry is the entire life of a secondary hart after release:
// announce, check in, then the six-phase protocol in lockstep with the
// primary driver, then the terminal idle wait. It returns only after
// Shutdown.
func (c *Coordinator) SecondaryEntry(hartID uint32) {
	c.Announce(hartID)
	c.online.Add(1)

	// Phase 1: boot complete.
	c.Rendezvous(hartID, PhaseBootComplete)

	// Phase 2/3: counter test, increment under the dedicated lock.
	c.Rendezvous(hartID, PhaseLockTestStart)
	c.LockedIncrement()
	c.Rendezvous(hartID, PhaseLockTestEnd)

	// Phase 4/5: atomic test, lock-free increment.
	c.Rendezvous(hartID, PhaseAtomicTestStart)
	c.AtomicIncrement()
	c.Rendezvous(hartID, PhaseAtomicTestEnd)

	// Phase 6: final synchronization confirmation.
	c.Rendezvous(hartID, PhaseFinal)

	var spins int
	for c.halt.Load() == 0 {
		delay(&spins)
	}
}
