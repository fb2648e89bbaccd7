package metrics

import (
	"math"

	"github.com/eahenle/spudsim/internal/dynamo"
)

// MuzzleEnergy tracks the peak projectile kinetic energy seen during a run.
// State layout: [position, velocity].
type MuzzleEnergy struct {
	name string
	mass float64
	peak float64
}

func NewMuzzleEnergy(mass float64) *MuzzleEnergy {
	return &MuzzleEnergy{name: "muzzle_energy", mass: mass}
}

func (m *MuzzleEnergy) Name() string { return m.name }

func (m *MuzzleEnergy) Observe(x dynamo.State, t float64) {
	if len(x) < 2 {
		return
	}
	v := x[1]
	ke := 0.5 * m.mass * v * v
	m.peak = math.Max(m.peak, ke)
}

func (m *MuzzleEnergy) Value() float64 { return m.peak }

func (m *MuzzleEnergy) Reset() { m.peak = 0 }

// PeakVelocity tracks the maximum projectile velocity.
type PeakVelocity struct {
	name string
	peak float64
}

func NewPeakVelocity() *PeakVelocity {
	return &PeakVelocity{name: "peak_velocity"}
}

func (p *PeakVelocity) Name() string { return p.name }

func (p *PeakVelocity) Observe(x dynamo.State, t float64) {
	if len(x) < 2 {
		return
	}
	p.peak = math.Max(p.peak, x[1])
}

func (p *PeakVelocity) Value() float64 { return p.peak }

func (p *PeakVelocity) Reset() { p.peak = 0 }

// BarrelTime records the first time the projectile passes a given position,
// NaN if it never does.
type BarrelTime struct {
	name   string
	length float64
	exit   float64
}

func NewBarrelTime(length float64) *BarrelTime {
	return &BarrelTime{name: "barrel_time", length: length, exit: math.NaN()}
}

func (b *BarrelTime) Name() string { return b.name }

func (b *BarrelTime) Observe(x dynamo.State, t float64) {
	if len(x) < 1 || !math.IsNaN(b.exit) {
		return
	}
	if x[0] >= b.length {
		b.exit = t
	}
}

func (b *BarrelTime) Value() float64 { return b.exit }

func (b *BarrelTime) Reset() { b.exit = math.NaN() }
