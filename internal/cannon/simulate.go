package cannon

import (
	"context"

	"github.com/eahenle/spudsim/internal/dynamo"
	"github.com/eahenle/spudsim/internal/integrators"
	"github.com/eahenle/spudsim/internal/sim"
)

// DefaultTMax bounds the integration window [s].
const DefaultTMax = 0.2

// Options configure a single simulation run.
type Options struct {
	// InfiniteBarrel disables barrel-exit truncation, treating the barrel
	// as infinitely long.
	InfiniteBarrel bool
	// TMax bounds integration; DefaultTMax when zero.
	TMax float64
	// Tolerance for the adaptive solver; dynamo default when zero.
	Tolerance float64
	// Gas overrides the reference propellant constants; DefaultGas when zero.
	Gas Gas
	// Metrics are observed at every accepted solver step.
	Metrics []dynamo.Metric `json:"-" yaml:"-"`
}

// Summary condenses a run into its headline numbers.
type Summary struct {
	MuzzleVelocity  float64 // velocity at the last retained sample [m/s]
	ExitTime        float64 // time of the last retained sample [s]
	MuzzleEnergy    float64 // kinetic energy at the last retained sample [J]
	FinalPressure   float64 // Boyle chamber pressure at barrel end [Pa]
	Exited          bool    // a sample crossed the muzzle within the window
	PressureWarning bool    // final pressure below ambient: projectile stalls
}

// Result is the full output of Simulate. Energy and Entropy are aligned to
// the (possibly truncated) trajectory samples.
type Result struct {
	Params     PhysicalParameters
	Options    Options
	Trajectory Trajectory
	Energy     []float64
	Entropy    []float64
	Summary    Summary
	Metrics    map[string]float64
}

// Simulate validates the parameters, integrates the position ODE from rest
// over [0, TMax], truncates at barrel exit unless InfiniteBarrel is set, and
// derives the kinetic-energy and entropy-change series.
//
// Failures are deterministic: invalid parameters fail before integration, and
// a solver singularity (total gas volume reaching zero) or non-convergence
// fails the run. There are no retry semantics.
func Simulate(ctx context.Context, p PhysicalParameters, opts Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cfg := dynamo.DefaultConfig()
	cfg.Duration = opts.TMax
	if cfg.Duration == 0 {
		cfg.Duration = DefaultTMax
	}
	if opts.Tolerance > 0 {
		cfg.Tolerance = opts.Tolerance
	}

	system := NewCannon(p)
	solver := sim.New(system, integrators.NewRK45())
	for _, m := range opts.Metrics {
		solver.AddMetric(m)
	}

	solved, err := solver.Run(ctx, dynamo.State{0, 0}, cfg)
	if err != nil {
		return nil, err
	}

	traj := trajectoryFromResult(solved)
	exited := false
	if !opts.InfiniteBarrel {
		traj, exited = traj.TruncateAtExit(p.BarrelLength)
	}

	gas := opts.Gas
	if gas == (Gas{}) {
		gas = DefaultGas()
	}

	result := &Result{
		Params:     p,
		Options:    opts,
		Trajectory: traj,
		Energy:     KineticEnergy(p, traj),
		Entropy:    gas.EntropySeries(p, traj),
		Metrics:    solved.Metrics,
	}

	if n := len(traj); n > 0 {
		last := traj[n-1]
		result.Summary = Summary{
			MuzzleVelocity: last.V,
			ExitTime:       last.T,
			MuzzleEnergy:   result.Energy[n-1],
		}
	}
	result.Summary.FinalPressure = p.FinalPressure()
	result.Summary.Exited = exited
	result.Summary.PressureWarning = !p.PressureOK()

	return result, nil
}
