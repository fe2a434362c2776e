package smpx

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Cluster is the boot path for secondary harts: it maps each of them onto a
// goroutine locked to its own OS thread, the closest Go rendering of "one
// hardware thread per participant". Each hart spins on the coordinator's
// release flag before doing anything else, exactly like a secondary hart
// parked in startup code.
type Cluster struct {
	co *Coordinator
	g  errgroup.Group
}

// StartCluster boots harts 1..total-1 against co. Hart 0 stays with the
// caller, which is expected to run the primary driver sequence. The harts
// hold at the release flag until co.ReleaseHarts.
func StartCluster(co *Coordinator) *Cluster {
	cl := &Cluster{co: co}
	for id := uint32(1); id < co.NumHarts(); id++ {
		cl.g.Go(func() error {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			co.WaitRelease()
			co.SecondaryEntry(id)
			return nil
		})
	}
	return cl
}

// Wait joins all secondary harts. It returns only after every hart has left
// its terminal idle wait, i.e. after co.Shutdown.
func (cl *Cluster) Wait() {
	// SecondaryEntry cannot fail; the error is always nil.
	_ = cl.g.Wait()
}
