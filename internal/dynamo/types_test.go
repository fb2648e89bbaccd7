package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{3, 4}, 5.0},
		{State{1, 0}, 1.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_Clone(t *testing.T) {
	a := State{1, 2}
	b := a.Clone()
	b[0] = 9

	if a[0] != 1 {
		t.Error("Clone should not share backing array")
	}
}

func TestState_Sub(t *testing.T) {
	a := State{4, 5, 6}
	b := State{1, 2, 3}

	diff := a.Sub(b)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}
}

func TestSimulationError_Unwrap(t *testing.T) {
	err := &SimulationError{Step: 3, Time: 0.01, Wrapped: ErrSingularState}

	if !errors.Is(err, ErrSingularState) {
		t.Error("expected errors.Is to match wrapped sentinel")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Duration != 0.2 {
		t.Errorf("expected default duration 0.2, got %f", cfg.Duration)
	}
	if cfg.Dt <= 0 || cfg.MinDt <= 0 || cfg.MaxDt <= 0 {
		t.Error("default step sizes should be positive")
	}
	if !cfg.Adaptive {
		t.Error("default config should be adaptive")
	}
}
