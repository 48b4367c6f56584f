// Package style maps headline records to stroke color, opacity and weight.
package style

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/newsflow/internal/flow"
)

// Sentiment band edges and output ranges. Opacity is on a 0-255 scale.
const (
	NeutralBand = 0.05

	NeutralAlphaMin, NeutralAlphaMax   = 1.0, 10.0
	NeutralWeightMin, NeutralWeightMax = 0.1, 0.5

	NegativeAlphaMin, NegativeAlphaMax   = 80.0, 200.0
	NegativeWeightMin, NegativeWeightMax = 0.8, 1.2

	PositiveAlphaMin, PositiveAlphaMax   = 150.0, 255.0
	PositiveWeightMin, PositiveWeightMax = 1.0, 1.8

	AlphaFloor, AlphaCeil   = 1.0, 255.0
	WeightFloor, WeightCeil = 0.1, 5.0
)

// Style is the stroke applied to one curve.
type Style struct {
	Color  colorful.Color
	Alpha  float64
	Weight float64
}

// RGBA returns the stroke as a non-premultiplied color.
func (s Style) RGBA() color.NRGBA {
	r, g, b := s.Color.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(s.Alpha))}
}

// Hex returns the stroke color without opacity.
func (s Style) Hex() string { return s.Color.Clamped().Hex() }

// Mapper turns records into styles. Neutral records get a fresh random
// opacity and weight on every call, which makes them flicker from frame to
// frame; everything else is a pure function of the record.
type Mapper struct {
	palette *Palette
	rng     *rand.Rand
}

func NewMapper(p *Palette, rng *rand.Rand) *Mapper {
	if p == nil {
		p = DefaultPalette()
	}
	return &Mapper{palette: p, rng: rng}
}

func (m *Mapper) Palette() *Palette { return m.palette }

func (m *Mapper) Style(r flow.Record) Style {
	c, _ := m.palette.Color(r.Category)
	s := r.Sentiment

	var alpha, weight float64
	switch {
	case math.Abs(s) < NeutralBand:
		alpha = NeutralAlphaMin + m.rng.Float64()*(NeutralAlphaMax-NeutralAlphaMin)
		weight = NeutralWeightMin + m.rng.Float64()*(NeutralWeightMax-NeutralWeightMin)
	case s < 0:
		alpha = remap(s, -1, -NeutralBand, NegativeAlphaMin, NegativeAlphaMax)
		weight = remap(s, -1, -NeutralBand, NegativeWeightMin, NegativeWeightMax)
	default:
		alpha = remap(s, NeutralBand, 1, PositiveAlphaMin, PositiveAlphaMax)
		weight = remap(s, NeutralBand, 1, PositiveWeightMin, PositiveWeightMax)
	}

	return Style{
		Color:  c,
		Alpha:  clamp(alpha, AlphaFloor, AlphaCeil),
		Weight: clamp(weight, WeightFloor, WeightCeil),
	}
}

// remap linearly maps v from [a0,a1] to [b0,b1] without clamping.
func remap(v, a0, a1, b0, b1 float64) float64 {
	return b0 + (v-a0)*(b1-b0)/(a1-a0)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
