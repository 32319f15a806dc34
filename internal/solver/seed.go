package solver

import (
	"math"

	"github.com/Rrrinav/webgl-fluid-sim/internal/field"
)

// SeedDisk writes a radially decaying disk into one component grid:
// strength * (1 - d/radius) for cells at distance d < radius from
// (cx, cy), exactly zero everywhere else. The whole grid is overwritten.
func SeedDisk(g *field.Grid, cx, cy, radius, strength float64) {
	n := g.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			d := math.Sqrt(dx*dx + dy*dy)
			if d < radius {
				g.Set(x, y, float32(strength*(1-d/radius)))
			} else {
				g.Set(x, y, 0)
			}
		}
	}
}
