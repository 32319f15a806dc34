package solver

import (
	"github.com/Rrrinav/webgl-fluid-sim/internal/compute"
	"github.com/Rrrinav/webgl-fluid-sim/internal/field"
)

// Axis selects the neighbor pair used by SubtractGradient: (x-1, x+1)
// for AxisX, (y-1, y+1) for AxisY.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Diffuse advances one scalar field by a single Jacobi relaxation sweep
// of the implicit-Euler diffusion equation:
//
//	a = dt * visc * N * N
//	next = (prev + a * (left + right + up + down)) / (1 + 4a)
//
// One sweep per step is not a converged implicit solve; it is kept that
// way deliberately, since running more sweeps changes the visible
// dissipation rate.
func Diffuse(dst, src *field.Grid, dt, visc float64) {
	n := src.Size()
	a := float32(dt * visc * float64(n) * float64(n))
	denom := 1 + 4*a
	compute.GetBackend().Sweep(n, func(y int) {
		for x := 0; x < n; x++ {
			sum := src.At(x-1, y) + src.At(x+1, y) + src.At(x, y-1) + src.At(x, y+1)
			dst.Set(x, y, (src.At(x, y)+a*sum)/denom)
		}
	})
}

// Divergence computes the central-difference divergence of the velocity
// field from its two component grids:
//
//	div = -0.5 * ((vx[x+1,y] - vx[x-1,y]) + (vy[x,y+1] - vy[x,y-1])) / N
func Divergence(dst, velX, velY *field.Grid) {
	n := dst.Size()
	scale := -0.5 / float32(n)
	compute.GetBackend().Sweep(n, func(y int) {
		for x := 0; x < n; x++ {
			dx := velX.At(x+1, y) - velX.At(x-1, y)
			dy := velY.At(x, y+1) - velY.At(x, y-1)
			dst.Set(x, y, scale*(dx+dy))
		}
	})
}

// PressureSweep performs one Jacobi sweep of the discrete Poisson
// equation against the divergence field:
//
//	next = (div + left + right + up + down) / 4
func PressureSweep(dst, src, div *field.Grid) {
	n := dst.Size()
	compute.GetBackend().Sweep(n, func(y int) {
		for x := 0; x < n; x++ {
			sum := src.At(x-1, y) + src.At(x+1, y) + src.At(x, y-1) + src.At(x, y+1)
			dst.Set(x, y, (div.At(x, y)+sum)/4)
		}
	})
}

// SubtractGradient removes the pressure gradient along one axis from a
// velocity component:
//
//	corrected = vel - 0.5 * N * (p[neighbor+] - p[neighbor-])
func SubtractGradient(dst, vel, p *field.Grid, axis Axis) {
	n := dst.Size()
	halfN := 0.5 * float32(n)
	compute.GetBackend().Sweep(n, func(y int) {
		for x := 0; x < n; x++ {
			var grad float32
			if axis == AxisX {
				grad = p.At(x+1, y) - p.At(x-1, y)
			} else {
				grad = p.At(x, y+1) - p.At(x, y-1)
			}
			dst.Set(x, y, vel.At(x, y)-halfN*grad)
		}
	})
}
