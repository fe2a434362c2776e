package smpx

import (
	"sync"
	"testing"
)

func TestBarrier_Simple(t *testing.T) {
	const parties = 4
	b := NewBarrier(parties)
	var before Word32

	var wg sync.WaitGroup
	wg.Add(parties)
	for range parties {
		go func() {
			defer wg.Done()
			before.Add(1)
			b.Wait()
			// Every arrival write must be visible after release.
			if n := before.Load(); n != parties {
				t.Errorf("after barrier: %d arrivals visible, want %d", n, parties)
			}
		}()
	}
	wg.Wait()

	if g := b.Generation(); g != 1 {
		t.Errorf("generation = %d, want 1", g)
	}
}

func TestBarrier_Lockstep(t *testing.T) {
	const parties = 5
	const cycles = 50
	b := NewBarrier(parties)
	var counter Word32

	var wg sync.WaitGroup
	wg.Add(parties)
	for range parties {
		go func() {
			defer wg.Done()
			for range cycles {
				counter.Add(1)
				b.Wait()

				// All increments of this cycle are in; none of the next
				// cycle's can have started until the next Wait.
				if v := counter.Load(); v != parties {
					t.Errorf("between rounds: counter = %d, want %d", v, parties)
				}
				b.Wait()

				counter.Add(^uint32(0)) // -1
				b.Wait()

				if v := counter.Load(); v != 0 {
					t.Errorf("after decrement round: counter = %d, want 0", v)
				}
				b.Wait()
			}
		}()
	}
	wg.Wait()

	if g := b.Generation(); g != 4*cycles {
		t.Errorf("generation = %d, want %d", g, 4*cycles)
	}
}

func TestBarrier_ReuseSixRounds(t *testing.T) {
	// The phase protocol reuses one barrier for six consecutive rounds.
	const parties = 4
	const rounds = 6
	b := NewBarrier(parties)

	perRound := make([]Word32, rounds)

	var wg sync.WaitGroup
	wg.Add(parties)
	for range parties {
		go func() {
			defer wg.Done()
			for r := range rounds {
				perRound[r].Add(1)
				b.Wait()
				if n := perRound[r].Load(); n != parties {
					t.Errorf("round %d: %d arrivals visible, want %d", r, n, parties)
				}
			}
		}()
	}
	wg.Wait()

	if g := b.Generation(); g != rounds {
		t.Errorf("generation = %d, want %d", g, rounds)
	}
}

func TestBarrier_SingleParticipant(t *testing.T) {
	b := NewBarrier(1)
	// Must pass through immediately, any number of times.
	for range 10 {
		b.Wait()
	}
	if g := b.Generation(); g != 0 {
		t.Errorf("generation = %d, want 0 (no-op fast path)", g)
	}
}

func TestBarrier_ZeroTotalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for total == 0")
		}
	}()
	NewBarrier(0)
}

func TestBarrier_Total(t *testing.T) {
	if got := NewBarrier(6).Total(); got != 6 {
		t.Errorf("Total = %d, want 6", got)
	}
}

func BenchmarkBarrier(b *testing.B) {
	const parties = 4
	bar := NewBarrier(parties)

	var wg sync.WaitGroup
	wg.Add(parties - 1)
	for range parties - 1 {
		go func() {
			defer wg.Done()
			for range b.N {
				bar.Wait()
			}
		}()
	}
	for range b.N {
		bar.Wait()
	}
	wg.Wait()
}
