package cannon

import (
	"errors"
	"math"
	"testing"

	"github.com/eahenle/spudsim/internal/dynamo"
)

// referenceParams is the 100 g / 40 mm / 10 L / 2 atm / 1 atm scenario.
func referenceParams() PhysicalParameters {
	return PhysicalParameters{
		Mass:            0.1,
		BoreDiameter:    0.04,
		BarrelLength:    1.0,
		TankVolume:      0.01,
		TankPressure:    2 * 101325,
		AmbientPressure: 101325,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*PhysicalParameters)
		ok   bool
	}{
		{"valid", func(p *PhysicalParameters) {}, true},
		{"zero mass", func(p *PhysicalParameters) { p.Mass = 0 }, false},
		{"negative mass", func(p *PhysicalParameters) { p.Mass = -0.1 }, false},
		{"zero diameter", func(p *PhysicalParameters) { p.BoreDiameter = 0 }, false},
		{"zero barrel", func(p *PhysicalParameters) { p.BarrelLength = 0 }, false},
		{"zero volume", func(p *PhysicalParameters) { p.TankVolume = 0 }, false},
		{"zero tank pressure", func(p *PhysicalParameters) { p.TankPressure = 0 }, false},
		{"zero ambient", func(p *PhysicalParameters) { p.AmbientPressure = 0 }, false},
		{"NaN volume", func(p *PhysicalParameters) { p.TankVolume = math.NaN() }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := referenceParams()
			tt.mut(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, dynamo.ErrInvalidParameter) {
					t.Errorf("expected ErrInvalidParameter, got %v", err)
				}
			}
		})
	}
}

func TestCoefficients_Golden(t *testing.T) {
	// Frozen reference values for the 100 g / 40 mm / 10 L / 2 atm scenario.
	const (
		a0 = 20265.0
		b0 = 7.957747154594767
		c0 = 1273.2875025
	)

	c := referenceParams().Coefficients()

	if relErr(c.A, a0) > 1e-9 {
		t.Errorf("A = %v, want %v", c.A, a0)
	}
	if relErr(c.B, b0) > 1e-9 {
		t.Errorf("B = %v, want %v", c.B, b0)
	}
	if relErr(c.C, c0) > 1e-9 {
		t.Errorf("C = %v, want %v", c.C, c0)
	}
}

func TestCoefficients_Positive(t *testing.T) {
	cases := []PhysicalParameters{
		referenceParams(),
		{Mass: 2.5, BoreDiameter: 0.1, BarrelLength: 3, TankVolume: 0.05, TankPressure: 5e5, AmbientPressure: 9e4},
		{Mass: 1e-3, BoreDiameter: 1e-3, BarrelLength: 0.1, TankVolume: 1e-5, TankPressure: 1.1e5, AmbientPressure: 1e5},
	}

	for _, p := range cases {
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		c := p.Coefficients()
		if c.A <= 0 || c.B <= 0 || c.C <= 0 {
			t.Errorf("coefficients must be positive for valid input, got %+v", c)
		}
	}
}

func TestBoreArea(t *testing.T) {
	p := referenceParams()
	want := math.Pi * 0.04 * 0.04 / 4
	if got := p.BoreArea(); math.Abs(got-want) > 1e-15 {
		t.Errorf("BoreArea = %v, want %v", got, want)
	}
}

func TestFinalPressure(t *testing.T) {
	p := referenceParams()

	// Boyle: Pf = P0*Vt/(Vt + A*L), below P0 and above zero.
	pf := p.FinalPressure()
	if pf <= 0 || pf >= p.TankPressure {
		t.Errorf("final pressure out of range: %v", pf)
	}

	if !p.PressureOK() {
		t.Error("reference scenario should satisfy the pressure precondition")
	}

	// A very long barrel expands the gas below ambient.
	p.BarrelLength = 100
	if p.PressureOK() {
		t.Error("expected pressure warning for a 100 m barrel")
	}
}

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}
