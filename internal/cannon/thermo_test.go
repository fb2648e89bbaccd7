package cannon

import (
	"math"
	"testing"
)

func TestDefaultGas(t *testing.T) {
	g := DefaultGas()
	if g.Cv != 718.0 || g.T0 != 300.0 || g.R != 8314.0 {
		t.Errorf("unexpected reference constants: %+v", g)
	}
}

func TestEntropyChange_ZeroAtOrigin(t *testing.T) {
	g := DefaultGas()
	p := referenceParams()

	if got := g.EntropyChange(p, 0); got != 0 {
		t.Errorf("entropy change at x=0 should be 0, got %v", got)
	}
}

func TestEntropyChange_Monotonic(t *testing.T) {
	g := DefaultGas()
	p := referenceParams()

	prev := math.Inf(-1)
	for x := 0.0; x <= 2.0; x += 0.05 {
		ds := g.EntropyChange(p, x)
		if math.IsNaN(ds) || math.IsInf(ds, 0) {
			t.Fatalf("entropy change undefined at x=%v", x)
		}
		if ds <= prev {
			t.Fatalf("entropy change not increasing at x=%v: %v <= %v", x, ds, prev)
		}
		prev = ds
	}
}

func TestKineticEnergy_RoundTrip(t *testing.T) {
	p := referenceParams()
	traj := sampleTrajectory()

	energy := KineticEnergy(p, traj)
	if len(energy) != len(traj) {
		t.Fatal("energy series must align with trajectory")
	}

	// Exact algebraic round trip against the velocity samples.
	for i, s := range traj {
		if energy[i] != 0.5*p.Mass*s.V*s.V {
			t.Errorf("sample %d: energy %v != m*v^2/2", i, energy[i])
		}
	}
}

func TestEntropySeries_Aligned(t *testing.T) {
	g := DefaultGas()
	p := referenceParams()
	traj := sampleTrajectory()

	entropy := g.EntropySeries(p, traj)
	if len(entropy) != len(traj) {
		t.Fatal("entropy series must align with trajectory")
	}
	for i := 1; i < len(entropy); i++ {
		if entropy[i] <= entropy[i-1] {
			t.Errorf("entropy series not increasing at %d", i)
		}
	}
}
