package sim

import "github.com/Rrrinav/webgl-fluid-sim/internal/field"

// Metric accumulates a scalar diagnostic over the run. Observe is called
// once per rendered frame with the active velocity views.
type Metric interface {
	Name() string
	Observe(velX, velY *field.Grid, t float64)
	Value() float64
	Reset()
}

// Observer receives the velocity field after every frame, e.g. a
// renderer or a recorder.
type Observer interface {
	OnFrame(velX, velY *field.Grid, t float64)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(velX, velY *field.Grid, t float64)

func (f ObserverFunc) OnFrame(velX, velY *field.Grid, t float64) { f(velX, velY, t) }

type Result struct {
	Times       []float64
	Energies    []float64
	Metrics     map[string]float64
	FramesTaken int
}
