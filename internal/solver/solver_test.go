package solver_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Rrrinav/webgl-fluid-sim/internal/field"
	"github.com/Rrrinav/webgl-fluid-sim/internal/solver"
)

func newGrid(n int) *field.Grid {
	g, err := field.NewGrid(n)
	Expect(err).NotTo(HaveOccurred())
	return g
}

func defaultParams() solver.Params {
	return solver.Params{
		Dt:                 0.016,
		Viscosity:          1e-6,
		Iterations:         1,
		PressureIterations: 20,
	}
}

var _ = Describe("Seeding", func() {
	It("writes the linear decay profile inside the radius and zero outside", func() {
		const n = 32
		const radius, strength = 8.0, 1.0
		cx, cy := float64(n)/2, float64(n)/2

		s, err := solver.New(n, defaultParams())
		Expect(err).NotTo(HaveOccurred())
		s.Splat(cx, cy, radius, strength, 0, -1)

		velX, velY := s.Velocity()
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				dx := float64(x) - cx
				dy := float64(y) - cy
				d := math.Sqrt(dx*dx + dy*dy)
				mag := math.Hypot(float64(velX.At(x, y)), float64(velY.At(x, y)))
				if d < radius {
					Expect(mag).To(BeNumerically("~", strength*(1-d/radius), 1e-5),
						"cell (%d,%d)", x, y)
				} else {
					Expect(mag).To(BeZero(), "cell (%d,%d)", x, y)
				}
			}
		}
	})

	It("tolerates a splat at the grid corner", func() {
		const n = 16
		s, err := solver.New(n, defaultParams())
		Expect(err).NotTo(HaveOccurred())

		s.Splat(0, 0, 10, 1.0, 1, 1)
		s.Step()

		velX, velY := s.Velocity()
		Expect(velX.IsValid()).To(BeTrue())
		Expect(velY.IsValid()).To(BeTrue())
	})
})

var _ = Describe("Diffuse", func() {
	It("leaves a spatially uniform field unchanged", func() {
		const n, c = 16, float32(3.7)
		src, dst := newGrid(n), newGrid(n)
		src.Fill(c)

		solver.Diffuse(dst, src, 0.1, 0.5)

		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				Expect(dst.At(x, y)).To(BeNumerically("~", c, 1e-5))
			}
		}
	})

	It("pulls a hot cell toward its neighbors", func() {
		const n = 16
		src, dst := newGrid(n), newGrid(n)
		src.Set(8, 8, 10)

		solver.Diffuse(dst, src, 0.1, 0.5)

		Expect(dst.At(8, 8)).To(BeNumerically("<", 10))
		Expect(dst.At(7, 8)).To(BeNumerically(">", 0))
	})
})

var _ = Describe("Divergence", func() {
	It("matches the closed form for linear component fields", func() {
		const n = 16
		const a, b = 0.5, 1.0
		const c, d = -0.25, 2.0
		velX, velY, div := newGrid(n), newGrid(n), newGrid(n)

		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				velX.Set(x, y, float32(a*float64(x)+b))
				velY.Set(x, y, float32(c*float64(y)+d))
			}
		}

		solver.Divergence(div, velX, velY)

		expected := -(a + c) / float64(n)
		for y := 1; y < n-1; y++ {
			for x := 1; x < n-1; x++ {
				Expect(float64(div.At(x, y))).To(BeNumerically("~", expected, 1e-4),
					"cell (%d,%d)", x, y)
			}
		}
	})

	It("is zero for a uniform field", func() {
		const n = 8
		velX, velY, div := newGrid(n), newGrid(n), newGrid(n)
		velX.Fill(2)
		velY.Fill(-3)

		solver.Divergence(div, velX, velY)

		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				Expect(div.At(x, y)).To(BeZero())
			}
		}
	})
})

var _ = Describe("PressureSweep", func() {
	It("keeps an all-zero state at the fixed point", func() {
		const n = 8
		src, dst, div := newGrid(n), newGrid(n), newGrid(n)

		solver.PressureSweep(dst, src, div)

		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				Expect(dst.At(x, y)).To(BeZero())
			}
		}
	})
})

var _ = Describe("SubtractGradient", func() {
	It("leaves velocity untouched under constant pressure", func() {
		const n = 8
		vel, dst, p := newGrid(n), newGrid(n), newGrid(n)
		vel.Fill(1.5)
		p.Fill(42)

		solver.SubtractGradient(dst, vel, p, solver.AxisX)

		for y := 1; y < n-1; y++ {
			for x := 1; x < n-1; x++ {
				Expect(dst.At(x, y)).To(BeNumerically("~", 1.5, 1e-6))
			}
		}
	})

	It("subtracts along the requested axis only", func() {
		const n = 8
		vel, dst, p := newGrid(n), newGrid(n), newGrid(n)
		// pressure varies along x only
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				p.Set(x, y, float32(x))
			}
		}

		solver.SubtractGradient(dst, vel, p, solver.AxisY)
		for y := 1; y < n-1; y++ {
			for x := 1; x < n-1; x++ {
				Expect(dst.At(x, y)).To(BeZero())
			}
		}

		solver.SubtractGradient(dst, vel, p, solver.AxisX)
		// interior gradient is (x+1)-(x-1) = 2, scaled by 0.5*n
		for y := 1; y < n-1; y++ {
			for x := 1; x < n-1; x++ {
				Expect(dst.At(x, y)).To(BeNumerically("~", -float32(n), 1e-5))
			}
		}
	})
})

var _ = Describe("Solver", func() {
	It("rejects invalid construction parameters", func() {
		p := defaultParams()

		_, err := solver.New(0, p)
		Expect(err).To(HaveOccurred())

		p.Iterations = 0
		_, err = solver.New(16, p)
		Expect(err).To(HaveOccurred())

		p = defaultParams()
		p.PressureIterations = -1
		_, err = solver.New(16, p)
		Expect(err).To(HaveOccurred())

		p = defaultParams()
		p.Dt = -0.1
		_, err = solver.New(16, p)
		Expect(err).To(HaveOccurred())

		p = defaultParams()
		p.Viscosity = -1
		_, err = solver.New(16, p)
		Expect(err).To(HaveOccurred())
	})

	It("never changes grid dimensions across steps", func() {
		const n = 48
		s, err := solver.New(n, defaultParams())
		Expect(err).NotTo(HaveOccurred())
		s.Splat(24, 24, 10, 1.0, 0, -1)

		for i := 0; i < 3; i++ {
			s.Step()
			velX, velY := s.Velocity()
			Expect(velX.Size()).To(Equal(n))
			Expect(velY.Size()).To(Equal(n))
			Expect(s.Pressure().Size()).To(Equal(n))
		}
	})

	It("reduces divergence through projection", func() {
		const n = 64
		s, err := solver.New(n, defaultParams())
		Expect(err).NotTo(HaveOccurred())
		s.Splat(32, 32, 12, 1.0, 0, -1)

		velX, velY := s.Velocity()
		before := meanAbsDivergence(velX, velY)

		s.Step()

		velX, velY = s.Velocity()
		after := meanAbsDivergence(velX, velY)
		Expect(after).To(BeNumerically("<", before))
	})

	It("warm-starts the pressure solve from the previous step", func() {
		const n = 32
		s, err := solver.New(n, defaultParams())
		Expect(err).NotTo(HaveOccurred())
		s.Splat(16, 16, 8, 1.0, 0, -1)

		s.Step()

		p := s.Pressure()
		nonzero := false
		for y := 0; y < n && !nonzero; y++ {
			for x := 0; x < n; x++ {
				if p.At(x, y) != 0 {
					nonzero = true
					break
				}
			}
		}
		Expect(nonzero).To(BeTrue(), "pressure should carry over between steps")
	})

	It("exposes and validates runtime parameters", func() {
		s, err := solver.New(16, defaultParams())
		Expect(err).NotTo(HaveOccurred())

		params := s.GetParams()
		Expect(params).To(HaveKeyWithValue("dt", 0.016))
		Expect(params).To(HaveKeyWithValue("pressure_iters", 20.0))

		Expect(s.SetParam("viscosity", 1e-4)).To(Succeed())
		Expect(s.GetParams()["viscosity"]).To(Equal(1e-4))

		Expect(s.SetParam("viscosity", -1)).NotTo(Succeed())
		Expect(s.SetParam("unknown", 1)).NotTo(Succeed())
		Expect(s.GetParams()["viscosity"]).To(Equal(1e-4))
	})
})

var _ = Describe("End-to-end energy decay", func() {
	It("never gains energy across the reference scenario", func() {
		const n = 128
		p := solver.Params{
			Dt:                 1.6e-5,
			Viscosity:          1e-6,
			Iterations:         1,
			PressureIterations: 20,
		}
		s, err := solver.New(n, p)
		Expect(err).NotTo(HaveOccurred())
		s.Splat(64, 64, 20, 1.0, 0, -1)

		prev := s.Energy()
		Expect(prev).To(BeNumerically(">", 0))

		for i := 0; i < 5; i++ {
			s.Step()
			energy := s.Energy()
			Expect(energy).To(BeNumerically("<=", prev), "step %d", i)
			prev = energy
		}
	})
})

func meanAbsDivergence(velX, velY *field.Grid) float64 {
	n := velX.Size()
	div := newGrid(n)
	solver.Divergence(div, velX, velY)
	total := 0.0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			total += math.Abs(float64(div.At(x, y)))
		}
	}
	return total / float64(n*n)
}
