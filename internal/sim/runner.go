package sim

import (
	"context"
	"fmt"

	"github.com/Rrrinav/webgl-fluid-sim/internal/field"
	"github.com/Rrrinav/webgl-fluid-sim/internal/solver"
)

// Runner drives a solver for a fixed number of frames, feeding metrics
// and observers after each one. One frame = Params.Iterations
// diffusion+projection cycles.
type Runner struct {
	solver    *solver.Solver
	metrics   []Metric
	observers []Observer
}

func New(s *solver.Solver) *Runner {
	return &Runner{
		solver:    s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, frames int) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", frames)
	}

	result := &Result{
		Times:    make([]float64, 0, frames),
		Energies: make([]float64, 0, frames),
		Metrics:  make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	p := r.solver.Config()
	frameDt := p.Dt * float64(p.Iterations)
	t := 0.0

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.solver.StepFrame()
		t += frameDt

		velX, velY := r.solver.Velocity()
		for _, m := range r.metrics {
			m.Observe(velX, velY, t)
		}
		for _, obs := range r.observers {
			obs.OnFrame(velX, velY, t)
		}

		result.Times = append(result.Times, t)
		result.Energies = append(result.Energies, r.solver.Energy())
		result.FramesTaken++
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback advances frame by frame until the callback returns
// false, frames are exhausted, or the context is cancelled.
func (r *Runner) RunWithCallback(ctx context.Context, frames int, callback func(velX, velY *field.Grid, t float64) bool) error {
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	p := r.solver.Config()
	frameDt := p.Dt * float64(p.Iterations)
	t := 0.0

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.solver.StepFrame()
		t += frameDt

		velX, velY := r.solver.Velocity()
		if !callback(velX, velY, t) {
			return nil
		}
	}

	return nil
}
