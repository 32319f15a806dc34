package solver

import (
	"fmt"
	"math"

	"github.com/Rrrinav/webgl-fluid-sim/internal/field"
)

// Params holds the simulation parameters. They are read on every step,
// so they may be adjusted between steps at runtime.
type Params struct {
	Dt                 float64
	Viscosity          float64
	Iterations         int // diffusion+projection cycles per frame
	PressureIterations int // Jacobi sweeps per projection
}

func (p Params) Validate() error {
	if p.Dt < 0 {
		return fmt.Errorf("dt must be non-negative, got %g", p.Dt)
	}
	if p.Viscosity < 0 {
		return fmt.Errorf("viscosity must be non-negative, got %g", p.Viscosity)
	}
	if p.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", p.Iterations)
	}
	if p.PressureIterations < 1 {
		return fmt.Errorf("pressure iterations must be at least 1, got %d", p.PressureIterations)
	}
	return nil
}

// Solver sequences the kernels over double-buffered fields. The velocity
// components carry independent active flags; the divergence grid is
// recomputed from scratch every projection and needs no double buffer.
type Solver struct {
	n          int
	velX       *field.DoubleBuffered
	velY       *field.DoubleBuffered
	pressure   *field.DoubleBuffered
	divergence *field.Grid
	params     Params
}

func New(n int, p Params) (*Solver, error) {
	if n <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %d", n)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	velX, err := field.NewDoubleBuffered(n)
	if err != nil {
		return nil, err
	}
	velY, err := field.NewDoubleBuffered(n)
	if err != nil {
		return nil, err
	}
	pressure, err := field.NewDoubleBuffered(n)
	if err != nil {
		return nil, err
	}
	divergence, err := field.NewGrid(n)
	if err != nil {
		return nil, err
	}

	return &Solver{
		n:          n,
		velX:       velX,
		velY:       velY,
		pressure:   pressure,
		divergence: divergence,
		params:     p,
	}, nil
}

func (s *Solver) Size() int      { return s.n }
func (s *Solver) Config() Params { return s.params }

// Velocity returns read-only views of the two active velocity buffers,
// matched by index. The renderer must not write through them.
func (s *Solver) Velocity() (x, y *field.Grid) {
	return s.velX.Read(), s.velY.Read()
}

// Pressure returns the active pressure buffer.
func (s *Solver) Pressure() *field.Grid { return s.pressure.Read() }

// Splat seeds the velocity field with a single impulse: a disk of the
// given radius around (cx, cy) whose magnitude decays linearly from
// strength at the center to zero at the radius, pointing along
// (dirX, dirY). A zero direction defaults to (0, -1).
func (s *Solver) Splat(cx, cy, radius, strength, dirX, dirY float64) {
	norm := math.Sqrt(dirX*dirX + dirY*dirY)
	if norm == 0 {
		dirX, dirY, norm = 0, -1, 1
	}
	SeedDisk(s.velX.Read(), cx, cy, radius, strength*dirX/norm)
	SeedDisk(s.velY.Read(), cx, cy, radius, strength*dirY/norm)
}

// Reset zeroes every field, including the warm-started pressure.
func (s *Solver) Reset() {
	for _, d := range []*field.DoubleBuffered{s.velX, s.velY, s.pressure} {
		d.Read().Fill(0)
		d.WriteTarget().Fill(0)
	}
	s.divergence.Fill(0)
}

// Step advances the simulation by one diffusion+projection cycle.
func (s *Solver) Step() {
	Diffuse(s.velX.WriteTarget(), s.velX.Read(), s.params.Dt, s.params.Viscosity)
	s.velX.Swap()
	Diffuse(s.velY.WriteTarget(), s.velY.Read(), s.params.Dt, s.params.Viscosity)
	s.velY.Swap()
	s.project()
}

// StepFrame runs Iterations cycles, the per-rendered-frame unit of work.
// The ratio of simulated steps to rendered frames trades physical-time
// accuracy for visible responsiveness.
func (s *Solver) StepFrame() {
	for i := 0; i < s.params.Iterations; i++ {
		s.Step()
	}
}

// project enforces approximate incompressibility. The pressure buffer is
// not reset between calls; the previous solve is the initial guess.
func (s *Solver) project() {
	Divergence(s.divergence, s.velX.Read(), s.velY.Read())
	for i := 0; i < s.params.PressureIterations; i++ {
		PressureSweep(s.pressure.WriteTarget(), s.pressure.Read(), s.divergence)
		s.pressure.Swap()
	}
	SubtractGradient(s.velX.WriteTarget(), s.velX.Read(), s.pressure.Read(), AxisX)
	s.velX.Swap()
	SubtractGradient(s.velY.WriteTarget(), s.velY.Read(), s.pressure.Read(), AxisY)
	s.velY.Swap()
}

// Energy is the total kinetic energy proxy: the sum of squared velocity
// magnitudes over the grid. Diffusion and projection are both
// non-energy-adding, so this decays monotonically in the absence of
// external impulses.
func (s *Solver) Energy() float64 {
	velX, velY := s.Velocity()
	total := 0.0
	for y := 0; y < s.n; y++ {
		for x := 0; x < s.n; x++ {
			vx := float64(velX.At(x, y))
			vy := float64(velY.At(x, y))
			total += vx*vx + vy*vy
		}
	}
	return total
}

func (s *Solver) GetParams() map[string]float64 {
	return map[string]float64{
		"dt":             s.params.Dt,
		"viscosity":      s.params.Viscosity,
		"iterations":     float64(s.params.Iterations),
		"pressure_iters": float64(s.params.PressureIterations),
	}
}

func (s *Solver) SetParam(name string, v float64) error {
	next := s.params
	switch name {
	case "dt":
		next.Dt = v
	case "viscosity":
		next.Viscosity = v
	case "iterations":
		next.Iterations = int(math.Round(v))
	case "pressure_iters":
		next.PressureIterations = int(math.Round(v))
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.params = next
	return nil
}
