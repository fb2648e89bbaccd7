package cannon

import "github.com/eahenle/spudsim/internal/dynamo"

// State layout: [position, velocity].
const (
	idxPos = 0
	idxVel = 1
)

// Cannon is the dynamical system driven by the reduced coefficients.
type Cannon struct {
	mass  float64
	coeff Coefficients
}

// NewCannon builds the system from validated physical parameters.
func NewCannon(p PhysicalParameters) *Cannon {
	return &Cannon{mass: p.Mass, coeff: p.Coefficients()}
}

func (c *Cannon) StateDim() int { return 2 }

func (c *Cannon) Coefficients() Coefficients { return c.coeff }

func (c *Cannon) Derive(x dynamo.State, t float64) dynamo.State {
	pos, vel := x[idxPos], x[idxVel]
	return dynamo.State{vel, c.coeff.A/(c.coeff.B+pos) - c.coeff.C}
}

// Energy is the projectile kinetic energy, in joules.
func (c *Cannon) Energy(x dynamo.State) float64 {
	v := x[idxVel]
	return 0.5 * c.mass * v * v
}

// InDomain guards the 1/(b+x) singularity at zero total gas volume.
func (c *Cannon) InDomain(x dynamo.State) bool {
	return c.coeff.B+x[idxPos] > 0
}
