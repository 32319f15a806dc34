// Package field provides the fixed-size scalar grids the solver kernels
// operate on, plus the double-buffered (ping-pong) pairing that lets a
// kernel read the previous state while writing the next one.
package field

import (
	"fmt"
	"math"
)

// Grid is an N x N array of float32 cells. Dimensions are fixed at
// construction; reads past an edge are clamped to the nearest edge cell.
type Grid struct {
	n     int
	cells []float32
}

func NewGrid(n int) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %d", n)
	}
	return &Grid{n: n, cells: make([]float32, n*n)}, nil
}

func (g *Grid) Size() int { return g.n }

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// At reads the cell at (x, y) with clamp-to-edge addressing.
func (g *Grid) At(x, y int) float32 {
	return g.cells[clamp(y, g.n)*g.n+clamp(x, g.n)]
}

// Set writes the cell at (x, y). Out-of-range coordinates are ignored;
// kernels only ever write in-range cells.
func (g *Grid) Set(x, y int, v float32) {
	if x < 0 || x >= g.n || y < 0 || y >= g.n {
		return
	}
	g.cells[y*g.n+x] = v
}

func (g *Grid) Fill(v float32) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

func (g *Grid) Clone() *Grid {
	c := &Grid{n: g.n, cells: make([]float32, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// CopyFrom overwrites g with the contents of src. Grids must be the
// same size.
func (g *Grid) CopyFrom(src *Grid) error {
	if src.n != g.n {
		return fmt.Errorf("grid size mismatch: %d vs %d", g.n, src.n)
	}
	copy(g.cells, src.cells)
	return nil
}

func (g *Grid) IsValid() bool {
	for _, v := range g.cells {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// DoubleBuffered pairs two same-shaped grids with an active index.
// Read returns the buffer holding the current state, WriteTarget the
// scratch buffer for the next state. The driver calls Swap after a
// kernel's full-grid write completes; kernels never swap mid-write.
type DoubleBuffered struct {
	bufs   [2]*Grid
	active int
}

func NewDoubleBuffered(n int) (*DoubleBuffered, error) {
	a, err := NewGrid(n)
	if err != nil {
		return nil, err
	}
	b, err := NewGrid(n)
	if err != nil {
		return nil, err
	}
	return &DoubleBuffered{bufs: [2]*Grid{a, b}}, nil
}

func (d *DoubleBuffered) Read() *Grid        { return d.bufs[d.active] }
func (d *DoubleBuffered) WriteTarget() *Grid { return d.bufs[1-d.active] }
func (d *DoubleBuffered) Swap()              { d.active = 1 - d.active }
func (d *DoubleBuffered) Size() int          { return d.bufs[0].n }
