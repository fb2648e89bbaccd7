package config

import "sort"

var Presets = map[string]*Config{
	"reference": {
		MassGrams: 100, BoreDiameterMM: 40, BarrelLengthCM: 100,
		TankLiters: 10, TankAtm: 2, AmbientAtm: 1,
		TMax: DefaultTMax, Tolerance: DefaultTol,
	},
	"magnum": {
		MassGrams: 150, BoreDiameterMM: 50, BarrelLengthCM: 150,
		TankLiters: 20, TankAtm: 6, AmbientAtm: 1,
		TMax: DefaultTMax, Tolerance: DefaultTol,
	},
	"pistol": {
		MassGrams: 50, BoreDiameterMM: 25, BarrelLengthCM: 40,
		TankLiters: 2, TankAtm: 3, AmbientAtm: 1,
		TMax: DefaultTMax, Tolerance: DefaultTol,
	},
	"stall": {
		// Long barrel and weak charge: final pressure drops below ambient,
		// exercising the precondition warning.
		MassGrams: 200, BoreDiameterMM: 40, BarrelLengthCM: 400,
		TankLiters: 1, TankAtm: 1.2, AmbientAtm: 1,
		TMax: DefaultTMax, Tolerance: DefaultTol,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
