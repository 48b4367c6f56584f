package flow

import (
	"math"
	"time"
)

// Vec2 is a point or direction on the canvas, in pixels.
type Vec2 struct {
	X, Y float64
}

func FromAngle(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{X: c, Y: s}
}

func (v Vec2) Add(o Vec2) Vec2             { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2             { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2        { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64                { return math.Hypot(v.X, v.Y) }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Scale(t)) }

// Record is the read-only view of a headline the simulation needs.
type Record struct {
	Category  string
	Sentiment float64
	Published time.Time
}

// Sampler produces a scalar in [0, 1) for a 3D coordinate.
type Sampler interface {
	Sample(x, y, z float64) float64
}

// Field answers the flow direction at a canvas position.
type Field interface {
	Lookup(x, y float64) (Vec2, bool)
}
