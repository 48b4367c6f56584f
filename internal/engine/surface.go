package engine

import (
	"image/color"

	"github.com/san-kum/newsflow/internal/flow"
)

// Surface is the 2D drawing target of the render loop.
type Surface interface {
	// Fill composites c over the whole surface using c.A as opacity.
	Fill(c color.NRGBA)
	// SetStroke sets the color, opacity and width of subsequent curves.
	SetStroke(c color.NRGBA, weight float64)
	// Curve draws a smooth open curve through Catmull-Rom control points.
	Curve(points []flow.Vec2)
}

type tee []Surface

// Tee returns a surface that forwards every call to all of ss in order.
func Tee(ss ...Surface) Surface { return tee(ss) }

func (t tee) Fill(c color.NRGBA) {
	for _, s := range t {
		s.Fill(c)
	}
}

func (t tee) SetStroke(c color.NRGBA, weight float64) {
	for _, s := range t {
		s.SetStroke(c, weight)
	}
}

func (t tee) Curve(points []flow.Vec2) {
	for _, s := range t {
		s.Curve(points)
	}
}

// CurveCall is one recorded Curve invocation with the stroke active at the time.
type CurveCall struct {
	Color  color.NRGBA
	Weight float64
	Points []flow.Vec2
}

// Recorder is a Surface that keeps every draw call in memory.
type Recorder struct {
	fills  []color.NRGBA
	curves []CurveCall
	stroke color.NRGBA
	weight float64
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Fill(c color.NRGBA) { r.fills = append(r.fills, c) }

func (r *Recorder) SetStroke(c color.NRGBA, weight float64) {
	r.stroke, r.weight = c, weight
}

func (r *Recorder) Curve(points []flow.Vec2) {
	pts := make([]flow.Vec2, len(points))
	copy(pts, points)
	r.curves = append(r.curves, CurveCall{Color: r.stroke, Weight: r.weight, Points: pts})
}

func (r *Recorder) Fills() []color.NRGBA { return r.fills }
func (r *Recorder) Curves() []CurveCall  { return r.curves }

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.fills = r.fills[:0]
	r.curves = r.curves[:0]
}
