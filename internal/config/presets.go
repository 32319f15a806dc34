package config

var Presets = map[string]*Config{
	"default": {
		GridSize: 128, Dt: 0.016, Viscosity: 1e-6,
		Iterations: 4, PressureIterations: 20, Frames: 300,
		Splat: SplatConfig{Radius: 20, Strength: 1.0, DirY: -1},
	},
	"syrup": {
		GridSize: 128, Dt: 0.016, Viscosity: 5e-4,
		Iterations: 4, PressureIterations: 20, Frames: 300,
		Splat: SplatConfig{Radius: 24, Strength: 1.0, DirY: -1},
	},
	"coarse": {
		GridSize: 64, Dt: 0.016, Viscosity: 1e-6,
		Iterations: 8, PressureIterations: 20, Frames: 300,
		Splat: SplatConfig{Radius: 10, Strength: 1.0, DirY: -1},
	},
	"fine": {
		GridSize: 256, Dt: 0.016, Viscosity: 1e-6,
		Iterations: 2, PressureIterations: 30, Frames: 200,
		Splat: SplatConfig{Radius: 40, Strength: 1.0, DirY: -1},
	},
	"reference": {
		// The regression scenario: tiny timestep, default splat.
		GridSize: 128, Dt: 1.6e-5, Viscosity: 1e-6,
		Iterations: 1, PressureIterations: 20, Frames: 5,
		Splat: SplatConfig{Radius: 20, Strength: 1.0, DirY: -1},
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
	return names
}
