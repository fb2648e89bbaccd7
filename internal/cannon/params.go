package cannon

import (
	"fmt"
	"math"

	"github.com/eahenle/spudsim/internal/dynamo"
)

// PhysicalParameters are the free variables of the model, in SI base units.
type PhysicalParameters struct {
	Mass            float64 // projectile mass [kg]
	BoreDiameter    float64 // barrel bore diameter [m]
	BarrelLength    float64 // usable barrel length [m]
	TankVolume      float64 // tank volume [m^3]
	TankPressure    float64 // tank pressure at release [Pa]
	AmbientPressure float64 // ambient pressure [Pa]
}

// Coefficients are the reduced ODE coefficients for x'' = a/(b+x) - c.
type Coefficients struct {
	A float64 // P0*Vt/m [m^3*Pa/kg = m^2/s^2 * m]
	B float64 // Vt/Abore [m]
	C float64 // Abore*Patm/m [m/s^2]
}

func (p PhysicalParameters) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"mass", p.Mass},
		{"bore diameter", p.BoreDiameter},
		{"barrel length", p.BarrelLength},
		{"tank volume", p.TankVolume},
		{"tank pressure", p.TankPressure},
		{"ambient pressure", p.AmbientPressure},
	}
	for _, f := range fields {
		if f.val <= 0 || math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", dynamo.ErrInvalidParameter, f.name, f.val)
		}
	}
	return nil
}

// BoreArea returns the barrel cross-sectional area pi*d^2/4.
func (p PhysicalParameters) BoreArea() float64 {
	return math.Pi * p.BoreDiameter * p.BoreDiameter / 4
}

// Coefficients reduces the physical parameters to the three ODE coefficients.
// Parameters must be validated first; all coefficients are positive for valid
// input.
func (p PhysicalParameters) Coefficients() Coefficients {
	area := p.BoreArea()
	return Coefficients{
		A: p.TankPressure * p.TankVolume / p.Mass,
		B: p.TankVolume / area,
		C: area * p.AmbientPressure / p.Mass,
	}
}

// FinalPressure is the chamber pressure when the projectile reaches the end
// of the barrel, from Boyle's law: P0*Vt = Pf*(Vt + A*L).
func (p PhysicalParameters) FinalPressure() float64 {
	return p.TankPressure * p.TankVolume / (p.TankVolume + p.BoreArea()*p.BarrelLength)
}

// PressureOK reports whether the final chamber pressure stays at or above
// ambient. When false the projectile stalls before the muzzle; this is
// surfaced as a warning, never enforced.
func (p PhysicalParameters) PressureOK() bool {
	return p.FinalPressure() >= p.AmbientPressure
}
