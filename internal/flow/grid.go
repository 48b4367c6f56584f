package flow

import (
	"fmt"
	"math"
)

// DefaultNoiseStep is the noise-space distance between neighbouring cells.
const DefaultNoiseStep = 0.1

// Grid discretizes the canvas into cells of resolution×resolution pixels, each
// holding a unit vector. Cells are stored column-major: field[i*rows+j].
type Grid struct {
	resolution float64
	noiseStep  float64
	cols, rows int
	field      []Vec2
	sampler    Sampler
	zoff       float64
}

// NewGrid sizes the lattice with ceiling division so partial cells at the
// right and bottom edges still cover the canvas. The grid starts built at
// time offset zero.
func NewGrid(width, height, resolution float64, sampler Sampler) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidCanvas, width, height)
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidResolution, resolution)
	}
	cols := int(math.Ceil(width / resolution))
	rows := int(math.Ceil(height / resolution))
	g := &Grid{
		resolution: resolution,
		noiseStep:  DefaultNoiseStep,
		cols:       cols,
		rows:       rows,
		field:      make([]Vec2, cols*rows),
		sampler:    sampler,
	}
	g.Rebuild(0)
	return g, nil
}

// SetNoiseStep changes the sampling distance used by subsequent rebuilds.
func (g *Grid) SetNoiseStep(step float64) {
	if step > 0 {
		g.noiseStep = step
	}
}

func (g *Grid) Cols() int           { return g.cols }
func (g *Grid) Rows() int           { return g.rows }
func (g *Grid) Resolution() float64 { return g.resolution }
func (g *Grid) TimeOffset() float64 { return g.zoff }

// Rebuild recomputes every cell from scratch at the given time offset.
func (g *Grid) Rebuild(timeOffset float64) {
	g.zoff = timeOffset
	for i := 0; i < g.cols; i++ {
		xoff := float64(i) * g.noiseStep
		for j := 0; j < g.rows; j++ {
			yoff := float64(j) * g.noiseStep
			n := g.sampler.Sample(xoff, yoff, timeOffset)
			g.field[i*g.rows+j] = FromAngle(n * 2 * math.Pi)
		}
	}
}

// Lookup returns the vector of the cell containing (x, y), or false when the
// point lies outside the lattice.
func (g *Grid) Lookup(x, y float64) (Vec2, bool) {
	i, j, ok := g.cell(x, y)
	if !ok {
		return Vec2{}, false
	}
	return g.field[i*g.rows+j], true
}

// Angle returns the direction of cell (i, j) in [0, 2π).
func (g *Grid) Angle(i, j int) float64 {
	if i < 0 || i >= g.cols || j < 0 || j >= g.rows {
		return 0
	}
	v := g.field[i*g.rows+j]
	a := math.Atan2(v.Y, v.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func (g *Grid) cell(x, y float64) (int, int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0, false
	}
	fi := math.Floor(x / g.resolution)
	fj := math.Floor(y / g.resolution)
	if fi < 0 || fi >= float64(g.cols) || fj < 0 || fj >= float64(g.rows) {
		return 0, 0, false
	}
	return int(fi), int(fj), true
}
