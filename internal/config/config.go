package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Rrrinav/webgl-fluid-sim/internal/solver"
)

const (
	DefaultGridSize           = 128
	DefaultDt                 = 0.016
	DefaultViscosity          = 1e-6
	DefaultIterations         = 4
	DefaultPressureIterations = 20
	DefaultFrames             = 300
	DefaultRadius             = 20.0
	DefaultStrength           = 1.0
)

type Config struct {
	GridSize           int         `yaml:"grid_size"`
	Dt                 float64     `yaml:"dt"`
	Viscosity          float64     `yaml:"viscosity"`
	Iterations         int         `yaml:"iterations"`
	PressureIterations int         `yaml:"pressure_iterations"`
	Frames             int         `yaml:"frames"`
	Splat              SplatConfig `yaml:"splat"`
	Theme              string      `yaml:"theme"`
}

// SplatConfig describes the one-time initial impulse. A zero direction
// falls back to straight up.
type SplatConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
	DirX     float64 `yaml:"dir_x"`
	DirY     float64 `yaml:"dir_y"`
}

func DefaultConfig() *Config {
	return &Config{
		GridSize:           DefaultGridSize,
		Dt:                 DefaultDt,
		Viscosity:          DefaultViscosity,
		Iterations:         DefaultIterations,
		PressureIterations: DefaultPressureIterations,
		Frames:             DefaultFrames,
		Splat: SplatConfig{
			Radius:   DefaultRadius,
			Strength: DefaultStrength,
			DirX:     0,
			DirY:     -1,
		},
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

func (c *Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("grid_size must be positive, got %d", c.GridSize)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	if c.Splat.Radius < 0 {
		return fmt.Errorf("splat radius must be non-negative, got %g", c.Splat.Radius)
	}
	return c.Params().Validate()
}

// Params extracts the solver parameter set.
func (c *Config) Params() solver.Params {
	return solver.Params{
		Dt:                 c.Dt,
		Viscosity:          c.Viscosity,
		Iterations:         c.Iterations,
		PressureIterations: c.PressureIterations,
	}
}

// NewSolver builds a seeded solver from the configuration: allocates the
// grids and writes the center splat.
func (c *Config) NewSolver() (*solver.Solver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s, err := solver.New(c.GridSize, c.Params())
	if err != nil {
		return nil, err
	}
	center := float64(c.GridSize) / 2
	s.Splat(center, center, c.Splat.Radius, c.Splat.Strength, c.Splat.DirX, c.Splat.DirY)
	return s, nil
}
