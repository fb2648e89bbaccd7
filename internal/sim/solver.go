package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/eahenle/spudsim/internal/dynamo"
)

// Solver integrates a System over a fixed time interval, recording state at
// every accepted step. Sample times are monotone increasing but not uniform
// when an adaptive integrator is used.
type Solver struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Solver {
	return &Solver{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Solver) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Solver) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &dynamo.Result{
		States:  make([]dynamo.State, 0, 256),
		Times:   make([]float64, 0, 256),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	h := cfg.Dt

	if err := s.check(x, t, 0, cfg); err != nil {
		return nil, err
	}
	s.record(result, x, t)

	adaptive, _ := s.integrator.(dynamo.AdaptiveIntegrator)
	step := 0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if t+h > cfg.Duration {
			h = cfg.Duration - t
		}

		var newX dynamo.State
		var hUsed float64

		if cfg.Adaptive && adaptive != nil {
			var hNext float64
			var err error
			newX, hUsed, hNext, err = adaptive.StepAdaptive(s.dyn, x, t, h, cfg.Tolerance)
			if err != nil {
				return result, &dynamo.SimulationError{Step: step, Time: t, State: x, Wrapped: err}
			}
			h = math.Min(math.Max(hNext, cfg.MinDt), cfg.MaxDt)
		} else if cfg.Adaptive {
			var err error
			newX, hUsed, h, err = s.doubledStep(x, t, h, cfg)
			if err != nil {
				return result, &dynamo.SimulationError{Step: step, Time: t, State: x, Wrapped: err}
			}
		} else {
			newX = s.integrator.Step(s.dyn, x, t, h)
			hUsed = h
		}

		x = newX
		t += hUsed
		step++
		result.StepsTaken++

		if err := s.check(x, t, step, cfg); err != nil {
			return result, err
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		s.record(result, x, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Solver) record(result *dynamo.Result, x dynamo.State, t float64) {
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)
}

func (s *Solver) check(x dynamo.State, t float64, step int, cfg dynamo.Config) error {
	if cfg.ValidateState && !x.IsValid() {
		return &dynamo.SimulationError{Step: step, Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
	}
	if dom, ok := s.dyn.(dynamo.Domain); ok && !dom.InDomain(x) {
		return &dynamo.SimulationError{Step: step, Time: t, State: x, Wrapped: dynamo.ErrSingularState}
	}
	return nil
}

// doubledStep estimates local error by step doubling for integrators without
// a built-in error estimate.
func (s *Solver) doubledStep(x dynamo.State, t, h float64, cfg dynamo.Config) (dynamo.State, float64, float64, error) {
	for {
		x1 := s.integrator.Step(s.dyn, x, t, h)
		xHalf := s.integrator.Step(s.dyn, x, t, h/2)
		x2 := s.integrator.Step(s.dyn, xHalf, t+h/2, h/2)

		err := x1.Sub(x2).Norm()

		if err <= cfg.Tolerance || h <= cfg.MinDt {
			hNext := h
			if err < cfg.Tolerance/10 {
				hNext = math.Min(h*2, cfg.MaxDt)
			}
			if h <= cfg.MinDt && err > cfg.Tolerance {
				return x2, h, hNext, dynamo.ErrStepTooSmall
			}
			return x2, h, hNext, nil
		}

		h /= 2
	}
}

func (s *Solver) validateConfig(cfg dynamo.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}
