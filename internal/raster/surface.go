// Package raster draws frames into an in-memory RGBA image. It backs the
// headless render command and the exported PNG and GIF files.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/newsflow/internal/flow"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// SplineSamples is the number of polyline points per Catmull-Rom span.
const SplineSamples = 8

type Surface struct {
	img    *image.RGBA
	z      *vector.Rasterizer
	stroke color.NRGBA
	weight float64
}

func New(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Resize reallocates a transparent canvas of the given size.
func (s *Surface) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.z = vector.NewRasterizer(width, height)
}

func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Image exposes the live canvas. It changes on every draw call.
func (s *Surface) Image() *image.RGBA { return s.img }

// Snapshot copies the current canvas.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

func (s *Surface) Fill(c color.NRGBA) {
	op := draw.Over
	if c.A == 255 {
		op = draw.Src
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, op)
}

func (s *Surface) SetStroke(c color.NRGBA, weight float64) {
	s.stroke, s.weight = c, weight
}

// Curve strokes the flattened spline as one path of quads, one per segment,
// so overlapping joints do not double the coverage.
func (s *Surface) Curve(points []flow.Vec2) {
	line := flow.CatmullRom(points, SplineSamples)
	if len(line) < 2 || s.stroke.A == 0 || s.weight <= 0 {
		return
	}

	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())
	half := s.weight / 2
	drawn := false
	for i := 1; i < len(line); i++ {
		p0, p1 := line[i-1], line[i]
		d := p1.Sub(p0)
		l := d.Len()
		if l == 0 || math.IsNaN(l) {
			continue
		}
		n := flow.Vec2{X: -d.Y / l * half, Y: d.X / l * half}
		a, bb, c, dd := p0.Add(n), p1.Add(n), p1.Sub(n), p0.Sub(n)
		s.z.MoveTo(float32(a.X), float32(a.Y))
		s.z.LineTo(float32(bb.X), float32(bb.Y))
		s.z.LineTo(float32(c.X), float32(c.Y))
		s.z.LineTo(float32(dd.X), float32(dd.Y))
		s.z.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}
	s.z.DrawOp = draw.Over
	s.z.Draw(s.img, b, image.NewUniform(s.stroke), image.Point{})
}
