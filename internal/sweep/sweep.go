package sweep

import (
	"context"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/eahenle/spudsim/internal/cannon"
	"github.com/eahenle/spudsim/internal/dynamo"
)

// Point is the outcome of one run at a swept parameter value.
type Point struct {
	Value          float64 `json:"value"`
	MuzzleVelocity float64 `json:"muzzle_velocity"`
	MuzzleEnergy   float64 `json:"muzzle_energy"`
	ExitTime       float64 `json:"exit_time"`
	Exited         bool    `json:"exited"`
}

// Result collects a full sweep plus summary statistics over the muzzle
// velocities.
type Result struct {
	Parameter    string  `json:"parameter"`
	Points       []Point `json:"points"`
	MeanVelocity float64 `json:"mean_velocity"`
	StdVelocity  float64 `json:"std_velocity"`
	Best         Point   `json:"best"`
}

// Sweep re-runs the model across a grid of values for one physical
// parameter, keeping the rest of the scenario fixed.
type Sweep struct {
	base cannon.PhysicalParameters
	opts cannon.Options
}

func New(base cannon.PhysicalParameters, opts cannon.Options) *Sweep {
	return &Sweep{base: base, opts: opts}
}

// apply returns a copy of the base parameters with the named field replaced.
func (s *Sweep) apply(name string, v float64) (cannon.PhysicalParameters, error) {
	p := s.base
	switch name {
	case "mass":
		p.Mass = v
	case "diameter":
		p.BoreDiameter = v
	case "barrel":
		p.BarrelLength = v
	case "tank_volume":
		p.TankVolume = v
	case "tank_pressure":
		p.TankPressure = v
	case "ambient_pressure":
		p.AmbientPressure = v
	default:
		return p, fmt.Errorf("%w: unknown sweep parameter %q", dynamo.ErrInvalidParameter, name)
	}
	return p, nil
}

// Run evaluates the model at n evenly spaced values of the named parameter
// in [lo, hi]. Runs execute concurrently; the first error aborts the sweep.
func (s *Sweep) Run(ctx context.Context, name string, lo, hi float64, n int) (*Result, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 points, got %d", dynamo.ErrInvalidParameter, n)
	}
	if _, err := s.apply(name, lo); err != nil {
		return nil, err
	}

	grid := floats.Span(make([]float64, n), lo, hi)

	points := make([]Point, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i, v := range grid {
		wg.Add(1)
		go func(idx int, val float64) {
			defer wg.Done()

			p, err := s.apply(name, val)
			if err != nil {
				errs[idx] = err
				return
			}

			res, err := cannon.Simulate(ctx, p, s.opts)
			if err != nil {
				errs[idx] = err
				return
			}

			points[idx] = Point{
				Value:          val,
				MuzzleVelocity: res.Summary.MuzzleVelocity,
				MuzzleEnergy:   res.Summary.MuzzleEnergy,
				ExitTime:       res.Summary.ExitTime,
				Exited:         res.Summary.Exited,
			}
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	velocities := make([]float64, n)
	best := points[0]
	for i, pt := range points {
		velocities[i] = pt.MuzzleVelocity
		if pt.MuzzleVelocity > best.MuzzleVelocity {
			best = pt
		}
	}

	return &Result{
		Parameter:    name,
		Points:       points,
		MeanVelocity: stat.Mean(velocities, nil),
		StdVelocity:  stat.StdDev(velocities, nil),
		Best:         best,
	}, nil
}
