package config

import (
	"os"

	"github.com/eahenle/spudsim/internal/cannon"
	"gopkg.in/yaml.v3"
)

// Engineering-unit conversion factors to SI base units.
const (
	GramsToKg   = 1e-3
	MmToM       = 1e-3
	CmToM       = 1e-2
	LitersToM3  = 1e-3
	AtmToPa     = 101325.0
	DefaultTMax = 0.2
	DefaultTol  = 1e-8
)

// Config is the on-disk run configuration. Physical fields carry convenient
// engineering units (grams, millimeters, centimeters, liters, atmospheres);
// ToPhysical converts to SI.
type Config struct {
	MassGrams      float64 `yaml:"mass_g"`
	BoreDiameterMM float64 `yaml:"diameter_mm"`
	BarrelLengthCM float64 `yaml:"barrel_cm"`
	TankLiters     float64 `yaml:"tank_l"`
	TankAtm        float64 `yaml:"tank_atm"`
	AmbientAtm     float64 `yaml:"ambient_atm"`
	TMax           float64 `yaml:"t_max"`
	Tolerance      float64 `yaml:"tolerance"`
	InfiniteBarrel bool    `yaml:"infinite_barrel"`
}

// DefaultConfig is the reference scenario: 100 g potato, 40 mm bore, 1 m
// barrel, 10 L tank at 2 atm, sea-level ambient.
func DefaultConfig() *Config {
	return &Config{
		MassGrams:      100,
		BoreDiameterMM: 40,
		BarrelLengthCM: 100,
		TankLiters:     10,
		TankAtm:        2,
		AmbientAtm:     1,
		TMax:           DefaultTMax,
		Tolerance:      DefaultTol,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToPhysical converts the engineering-unit fields to SI parameters for the
// model core.
func (c *Config) ToPhysical() cannon.PhysicalParameters {
	return cannon.PhysicalParameters{
		Mass:            c.MassGrams * GramsToKg,
		BoreDiameter:    c.BoreDiameterMM * MmToM,
		BarrelLength:    c.BarrelLengthCM * CmToM,
		TankVolume:      c.TankLiters * LitersToM3,
		TankPressure:    c.TankAtm * AtmToPa,
		AmbientPressure: c.AmbientAtm * AtmToPa,
	}
}

// ToOptions builds the simulation options from the solver fields.
func (c *Config) ToOptions() cannon.Options {
	return cannon.Options{
		InfiniteBarrel: c.InfiniteBarrel,
		TMax:           c.TMax,
		Tolerance:      c.Tolerance,
	}
}
