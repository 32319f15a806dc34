// Package export renders solver fields to image files for offline
// inspection.
package export

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/Rrrinav/webgl-fluid-sim/internal/field"
)

// WritePNG writes the velocity magnitude field as a PNG heat map, one
// pixel per grid cell. Magnitudes are normalized to the field's own
// maximum, so the brightest pixel is always full scale.
func WritePNG(path string, velX, velY *field.Grid) error {
	n := velX.Size()
	img := image.NewRGBA(image.Rect(0, 0, n, n))

	maxMag := 0.0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if m := magnitude(velX, velY, x, y); m > maxMag {
				maxMag = m
			}
		}
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := 0.0
			if maxMag > 0 {
				v = magnitude(velX, velY, x, y) / maxMag
			}
			img.Set(x, y, heatColor(v))
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

func magnitude(velX, velY *field.Grid, x, y int) float64 {
	vx := float64(velX.At(x, y))
	vy := float64(velY.At(x, y))
	return math.Sqrt(vx*vx + vy*vy)
}

// heatColor maps a normalized magnitude to a dark-blue -> cyan -> white
// ramp.
func heatColor(v float64) color.RGBA {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	switch {
	case v < 0.5:
		t := v * 2
		return color.RGBA{0, uint8(200 * t), uint8(60 + 195*t), 255}
	default:
		t := (v - 0.5) * 2
		return color.RGBA{uint8(255 * t), uint8(200 + 55*t), 255, 255}
	}
}
