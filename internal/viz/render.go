package viz

import (
	"math"
	"strings"

	"github.com/Rrrinav/webgl-fluid-sim/internal/field"
)

// shadeRamp orders characters by visual weight; index 0 is empty space.
var shadeRamp = []rune(" .:-░▒▓█")

// RenderMagnitude downsamples the velocity magnitude field into a
// cols x rows character block. Each character covers a rectangle of grid
// cells and shows the peak magnitude inside it, normalized to the
// field-wide maximum of this frame.
func RenderMagnitude(velX, velY *field.Grid, cols, rows int) string {
	n := velX.Size()
	if cols < 1 || rows < 1 || n < 1 {
		return ""
	}

	mags := make([]float64, cols*rows)
	maxMag := 0.0
	for y := 0; y < n; y++ {
		row := y * rows / n
		for x := 0; x < n; x++ {
			col := x * cols / n
			vx := float64(velX.At(x, y))
			vy := float64(velY.At(x, y))
			m := math.Sqrt(vx*vx + vy*vy)
			if m > mags[row*cols+col] {
				mags[row*cols+col] = m
			}
			if m > maxMag {
				maxMag = m
			}
		}
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			b.WriteRune(shade(mags[row*cols+col], maxMag))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func shade(mag, maxMag float64) rune {
	if maxMag <= 0 {
		return shadeRamp[0]
	}
	idx := int(mag / maxMag * float64(len(shadeRamp)-1))
	if idx >= len(shadeRamp) {
		idx = len(shadeRamp) - 1
	}
	return shadeRamp[idx]
}
