// Command rvtest is the test driver of the harness. With one hart it runs
// the single-core checks (console, memory, vector workloads); with more it
// boots a hart cluster and drives the six-phase SMP protocol from hart 0,
// mirroring every step the secondary harts take. Exit status is 0 iff all
// recorded tests pass.
package main

import (
	"flag"
	"os"

	"github.com/pkp124/smpx"
	"github.com/pkp124/smpx/console"
	"github.com/pkp124/smpx/rvv"
)

const platformName = "go-smp-harness"

const rule = "=================================================================\n"

type reporter struct {
	con    *console.Console
	passed int
	total  int
}

func (r *reporter) record(name string, ok bool) {
	r.total++
	verdict := "FAIL"
	if ok {
		r.passed++
		verdict = "PASS"
	}
	r.con.Printf("[TEST] %s: %s\n", name, verdict)
}

func main() {
	harts := flag.Uint("harts", 4, "number of harts, 1 runs the single-core phase")
	flag.Parse()

	con := console.New(console.WriterSink{W: os.Stdout})
	r := &reporter{con: con}

	phase := 4
	if *harts <= 1 {
		phase = 2
	}

	banner(con, phase, *harts)
	con.Puts("Hello RISC-V\n\n")

	if phase == 2 {
		runSingleCore(con, r)
	} else {
		runSMP(con, r, uint32(*harts))
	}

	summary(con, r, phase)
	if r.passed != r.total {
		os.Exit(1)
	}
}

func banner(con *console.Console, phase int, harts uint) {
	con.Puts("\n")
	con.Puts(rule)
	con.Puts("RISC-V Bare-Metal System Explorer\n")
	con.Puts(rule)
	con.Printf("Platform: %s\n", platformName)
	if phase == 4 {
		con.Printf("Phase: 4 - Multi-Core SMP (%d harts)\n", uint64(harts))
	} else {
		con.Puts("Phase: 2 - Single-Core Bare-Metal\n")
	}
	con.Puts(rule)
	con.Puts("\n")
}

func summary(con *console.Console, r *reporter, phase int) {
	con.Puts(rule)
	con.Printf("[RESULT] Phase %d tests: %d/%d", phase, r.passed, r.total)
	if r.passed == r.total {
		con.Puts(" PASS\n")
	} else {
		con.Puts(" FAIL\n")
	}
	con.Puts(rule)
	con.Puts("\n")
	con.Printf("[INFO] Phase %d complete. System halted.\n", phase)
}

// runSMP is the primary-hart driver: the mirror image of
// Coordinator.SecondaryEntry, with prints and verdicts between phases.
func runSMP(con *console.Console, r *reporter, harts uint32) {
	con.Printf("[INFO] Running Phase 4 SMP tests with %d harts...\n\n", harts)

	co := smpx.New(harts, con)
	cl := smpx.StartCluster(co)

	con.Puts("[SMP] Hart 0 online\n")
	con.Puts("[SMP] Releasing secondary harts...\n")
	co.ReleaseHarts()
	co.WaitAllOnline()
	con.Printf("[SMP] All %d harts online\n", harts)
	r.record("SMP boot", co.HartsOnline() == harts-1)
	con.Puts("\n")

	// Barrier 1: boot complete.
	co.ResetCounters()
	co.Rendezvous(0, smpx.PhaseBootComplete)

	// Barriers 2/3: spinlock test.
	co.Rendezvous(0, smpx.PhaseLockTestStart)
	co.LockedIncrement()
	co.Rendezvous(0, smpx.PhaseLockTestEnd)

	lc := co.LockCounter()
	con.Printf("[SMP] Spinlock counter: %d/%d\n", lc, harts)
	r.record("Spinlock", lc == harts)
	con.Puts("\n")

	// Barriers 4/5: atomic test.
	co.Rendezvous(0, smpx.PhaseAtomicTestStart)
	co.AtomicIncrement()
	co.Rendezvous(0, smpx.PhaseAtomicTestEnd)

	ac := co.AtomicCounter()
	con.Printf("[SMP] Atomic counter: %d/%d\n", ac, harts)
	r.record("Atomic operations", ac == harts)
	con.Puts("\n")

	// Barrier 6: if every hart reaches this, the barrier held six rounds.
	co.Rendezvous(0, smpx.PhaseFinal)
	r.record("Barrier synchronization", true)

	co.Shutdown()
	cl.Wait()

	// With all harts joined, every one must have recorded the final phase.
	min, n := co.MinPhase()
	r.record("Phase ordering", n == int(harts) && min == smpx.PhaseFinal)
	con.Puts("\n")
}

func runSingleCore(con *console.Console, r *reporter) {
	con.Puts("[INFO] Running Phase 2 tests...\n\n")

	testConsole(con, r)
	con.Puts("\n")
	testMemory(r)
	con.Puts("\n")
	testVectorWorkloads(r)
	con.Puts("\n")
}

func testConsole(con *console.Console, r *reporter) {
	con.Puts("[UART] Character output: ")
	con.Putc('P')
	con.Putc('A')
	con.Putc('S')
	con.Putc('S')
	con.Puts("\n")
	r.record("UART output", true)
}

func testMemory(r *reporter) {
	var data [8]uint64
	for i := range data {
		data[i] = 0xDEADBEEF00000000 | uint64(i)
	}
	ok := true
	for i := range data {
		if data[i] != 0xDEADBEEF00000000|uint64(i) {
			ok = false
			break
		}
	}
	r.record("Memory operations", ok)
}

func testVectorWorkloads(r *reporter) {
	const n = 257 // odd length, would exercise the strip-mine tail on hardware

	a := make([]int32, n)
	b := make([]int32, n)
	c := make([]int32, n)
	for i := range a {
		a[i] = int32(i)
		b[i] = int32(2 * i)
	}
	rvv.VecAdd(c, a, b)
	ok := true
	for i := range c {
		if c[i] != int32(3*i) {
			ok = false
			break
		}
	}
	r.record("Vector add", ok)

	src := make([]byte, n)
	dst := make([]byte, n)
	for i := range src {
		src[i] = byte(i)
	}
	copied := rvv.Memcpy(dst, src)
	ok = copied == n
	for i := range dst {
		if dst[i] != byte(i) {
			ok = false
			break
		}
	}
	r.record("Vector memcpy", ok)

	x := []float32{1, 2, 3, 4}
	y := []float32{4, 3, 2, 1}
	r.record("Vector dot product", rvv.DotProduct(x, y) == 20)

	ys := []float32{1, 1, 1, 1}
	rvv.Saxpy(2, x, ys)
	r.record("Vector saxpy", ys[0] == 3 && ys[1] == 5 && ys[2] == 7 && ys[3] == 9)

	// A * I == A
	mA := []float32{1, 2, 3, 4, 5, 6} // 2x3
	id := []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}
	mC := make([]float32, 6)
	rvv.Matmul(mC, mA, id, 2, 3, 3)
	ok = true
	for i := range mA {
		if mC[i] != mA[i] {
			ok = false
			break
		}
	}
	r.record("Vector matmul", ok)
}
