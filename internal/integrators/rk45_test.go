package integrators

import (
	"math"
	"testing"

	"github.com/eahenle/spudsim/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	initialEnergy := dyn.Energy(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	finalEnergy := dyn.Energy(x)
	drift := math.Abs(finalEnergy-initialEnergy) / initialEnergy

	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x, hUsed, hNext, err := integrator.StepAdaptive(dyn, x0, 0, 0.1, 1e-8)

	if err != nil {
		t.Errorf("StepAdaptive returned error: %v", err)
	}

	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}

	if hUsed <= 0 || hUsed > 0.1 {
		t.Errorf("StepAdaptive used invalid step: %f", hUsed)
	}

	if hNext <= 0 {
		t.Errorf("StepAdaptive suggested invalid step: %f", hNext)
	}
}

func TestRK45_AdaptiveMeetsTolerance(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}

	// Integrate a quarter period adaptively and compare with cos/sin.
	x := dynamo.State{1.0, 0.0}
	tNow := 0.0
	h := 0.05
	tEnd := math.Pi / 2

	for tNow < tEnd {
		if tNow+h > tEnd {
			h = tEnd - tNow
		}
		var hUsed float64
		var err error
		x, hUsed, h, err = integrator.StepAdaptive(dyn, x, tNow, h, 1e-10)
		if err != nil {
			t.Fatalf("StepAdaptive failed at t=%f: %v", tNow, err)
		}
		tNow += hUsed
	}

	if math.Abs(x[0]-math.Cos(tEnd)) > 1e-6 {
		t.Errorf("position error too large: got %f, want %f", x[0], math.Cos(tEnd))
	}
	if math.Abs(x[1]-(-math.Sin(tEnd))) > 1e-6 {
		t.Errorf("velocity error too large: got %f, want %f", x[1], -math.Sin(tEnd))
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x4 := x0.Clone()
	x45 := x0.Clone()
	dt := 0.1

	for i := 0; i < 100; i++ {
		x4 = rk4.Step(dyn, x4, float64(i)*dt, dt)
		x45 = rk45.Step(dyn, x45, float64(i)*dt, dt)
	}

	t.Logf("RK4 final: [%.6f, %.6f]", x4[0], x4[1])
	t.Logf("RK45 final: [%.6f, %.6f]", x45[0], x45[1])

	e4 := (&harmonicOscillator{}).Energy(x4)
	e45 := (&harmonicOscillator{}).Energy(x45)

	if math.Abs(e45-1.0) > math.Abs(e4-1.0) {
		t.Log("Warning: RK45 not more accurate than RK4 for this case")
	}
}
