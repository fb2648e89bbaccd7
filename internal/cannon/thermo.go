package cannon

import "math"

// Gas holds the reference propellant constants for the entropy calculation,
// in SI base units.
type Gas struct {
	Cv float64 // specific heat at constant volume [J/(kg*K)]
	T0 float64 // reference temperature [K]
	R  float64 // gas constant [J/(kmol*K)]
}

// DefaultGas returns the frozen air constants
// (Cv = 0.718 kJ/(kg*K), T0 = 300 K, R = 8.314 kJ/(kmol*K)).
func DefaultGas() Gas {
	return Gas{Cv: 718.0, T0: 300.0, R: 8314.0}
}

// EntropyChange evaluates the propellant entropy change at projectile
// position x:
//
//	dS(x) = Cv*ln(P0*A*x/(Cv*T0) + 1) + R*ln(1 + A*x/Vt)
//
// Both logarithm arguments are positive for x >= 0 and Vt > 0, and dS is
// monotonically increasing in x over that regime.
func (g Gas) EntropyChange(p PhysicalParameters, x float64) float64 {
	area := p.BoreArea()
	return g.Cv*math.Log(p.TankPressure*area*x/(g.Cv*g.T0)+1) +
		g.R*math.Log(1+area*x/p.TankVolume)
}

// EntropySeries evaluates EntropyChange pointwise over the trajectory's
// position samples.
func (g Gas) EntropySeries(p PhysicalParameters, tr Trajectory) []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = g.EntropyChange(p, s.X)
	}
	return out
}

// KineticEnergy evaluates U = m*v^2/2 pointwise over the trajectory's
// velocity samples, in joules.
func KineticEnergy(p PhysicalParameters, tr Trajectory) []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = 0.5 * p.Mass * s.V * s.V
	}
	return out
}
