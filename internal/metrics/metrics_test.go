package metrics

import (
	"math"
	"testing"

	"github.com/eahenle/spudsim/internal/dynamo"
)

func TestMuzzleEnergy(t *testing.T) {
	m := NewMuzzleEnergy(0.1)

	m.Observe(dynamo.State{0.0, 10.0}, 0.01)
	m.Observe(dynamo.State{0.5, 20.0}, 0.02)
	m.Observe(dynamo.State{1.0, 15.0}, 0.03)

	// Peak is 0.5 * 0.1 * 20^2 = 20 J.
	if math.Abs(m.Value()-20.0) > 1e-12 {
		t.Errorf("peak energy = %v, want 20", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestPeakVelocity(t *testing.T) {
	p := NewPeakVelocity()

	p.Observe(dynamo.State{0, 5.0}, 0.01)
	p.Observe(dynamo.State{0, 42.0}, 0.02)
	p.Observe(dynamo.State{0, 30.0}, 0.03)

	if p.Value() != 42.0 {
		t.Errorf("peak velocity = %v, want 42", p.Value())
	}

	p.Reset()
	if p.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestBarrelTime(t *testing.T) {
	b := NewBarrelTime(1.0)

	b.Observe(dynamo.State{0.5, 10}, 0.01)
	if !math.IsNaN(b.Value()) {
		t.Error("exit time should be NaN before crossing")
	}

	b.Observe(dynamo.State{1.2, 20}, 0.02)
	b.Observe(dynamo.State{1.5, 25}, 0.03)

	if b.Value() != 0.02 {
		t.Errorf("exit time = %v, want first crossing at 0.02", b.Value())
	}

	b.Reset()
	if !math.IsNaN(b.Value()) {
		t.Error("expected NaN after reset")
	}
}
