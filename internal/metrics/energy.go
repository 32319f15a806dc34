package metrics

import (
	"math"

	"github.com/Rrrinav/webgl-fluid-sim/internal/field"
)

// KineticEnergy tracks the sum of squared velocity magnitudes over the
// grid, the solver's core regression quantity: it must never increase
// across steps.
type KineticEnergy struct {
	name       string
	current    float64
	initial    float64
	violations int
	samples    int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(velX, velY *field.Grid, t float64) {
	n := velX.Size()
	total := 0.0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			vx := float64(velX.At(x, y))
			vy := float64(velY.At(x, y))
			total += vx*vx + vy*vy
		}
	}
	if k.samples == 0 {
		k.initial = total
	} else if total > k.current {
		k.violations++
	}
	k.current = total
	k.samples++
}

func (k *KineticEnergy) Value() float64 { return k.current }

// Decay is the fraction of the initial energy dissipated so far.
func (k *KineticEnergy) Decay() float64 {
	if k.initial == 0 {
		return 0
	}
	return 1 - k.current/k.initial
}

// Violations counts frames where energy increased over the previous one.
func (k *KineticEnergy) Violations() int { return k.violations }

func (k *KineticEnergy) Reset() {
	k.current = 0
	k.initial = 0
	k.violations = 0
	k.samples = 0
}

// MaxSpeed tracks the largest velocity magnitude seen across the run.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(velX, velY *field.Grid, t float64) {
	n := velX.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			vx := float64(velX.At(x, y))
			vy := float64(velY.At(x, y))
			speed := math.Sqrt(vx*vx + vy*vy)
			if speed > m.max {
				m.max = speed
			}
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }
