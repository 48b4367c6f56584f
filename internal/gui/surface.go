package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/newsflow/internal/flow"
)

const splineSamples = 6

// surface draws into whatever render target is active. The app binds it to a
// persistent RenderTexture2D so translucent fills accumulate across frames.
type surface struct {
	width, height int32
	stroke        rl.Color
	weight        float32
}

func (s *surface) Fill(c color.NRGBA) {
	rl.DrawRectangle(0, 0, s.width, s.height, toColor(c))
}

func (s *surface) SetStroke(c color.NRGBA, weight float64) {
	s.stroke = toColor(c)
	s.weight = float32(weight)
}

func (s *surface) Curve(points []flow.Vec2) {
	line := flow.CatmullRom(points, splineSamples)
	if len(line) < 2 || s.stroke.A == 0 {
		return
	}
	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		rl.DrawLineEx(
			rl.NewVector2(float32(a.X), float32(a.Y)),
			rl.NewVector2(float32(b.X), float32(b.Y)),
			s.weight, s.stroke)
	}
}

func toColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
