package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/san-kum/newsflow/internal/flow"
)

func line(y float64) []flow.Vec2 {
	return []flow.Vec2{{X: 10, Y: y}, {X: 10, Y: y}, {X: 30, Y: y}, {X: 50, Y: y}, {X: 70, Y: y}, {X: 70, Y: y}}
}

func TestFillOpaque(t *testing.T) {
	s := New(8, 4)
	s.Fill(color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	got := s.Image().RGBAAt(3, 2)
	if got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("expected opaque fill, got %v", got)
	}
}

func TestFillTranslucentFades(t *testing.T) {
	s := New(4, 4)
	s.Fill(color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	prev := s.Image().RGBAAt(1, 1).R
	for i := 0; i < 5; i++ {
		s.Fill(color.NRGBA{A: 40})
		cur := s.Image().RGBAAt(1, 1).R
		if cur >= prev {
			t.Fatalf("step %d: expected fade below %d, got %d", i, prev, cur)
		}
		prev = cur
	}
}

func TestCurveDrawsAlongPath(t *testing.T) {
	s := New(80, 40)
	s.Fill(color.NRGBA{A: 255})
	s.SetStroke(color.NRGBA{R: 255, A: 255}, 3)
	s.Curve(line(20))

	if got := s.Image().RGBAAt(40, 20); got.R < 200 {
		t.Errorf("expected red on the path, got %v", got)
	}
	if got := s.Image().RGBAAt(40, 5); got.R != 0 {
		t.Errorf("expected background away from the path, got %v", got)
	}
	if got := s.Image().RGBAAt(5, 20); got.R != 0 {
		t.Errorf("expected nothing before the first visible point, got %v", got)
	}
}

func TestCurveSkips(t *testing.T) {
	tests := []struct {
		name   string
		stroke color.NRGBA
		weight float64
		points []flow.Vec2
	}{
		{"too few points", color.NRGBA{R: 255, A: 255}, 2, []flow.Vec2{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 5, Y: 1}}},
		{"transparent", color.NRGBA{R: 255}, 2, line(10)},
		{"zero weight", color.NRGBA{R: 255, A: 255}, 0, line(10)},
		{"degenerate", color.NRGBA{R: 255, A: 255}, 2, []flow.Vec2{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(80, 20)
			s.SetStroke(tt.stroke, tt.weight)
			s.Curve(tt.points)
			for _, v := range s.Image().Pix {
				if v != 0 {
					t.Fatal("expected untouched canvas")
				}
			}
		})
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := New(4, 4)
	s.Fill(color.NRGBA{G: 255, A: 255})
	snap := s.Snapshot()
	s.Fill(color.NRGBA{R: 255, A: 255})

	if snap.RGBAAt(0, 0).G != 255 {
		t.Error("snapshot changed with the canvas")
	}
}

func TestResize(t *testing.T) {
	s := New(4, 4)
	s.Resize(16, 9)
	if s.Bounds() != image.Rect(0, 0, 16, 9) {
		t.Errorf("expected 16x9, got %v", s.Bounds())
	}
	s.Resize(0, -3)
	if s.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Errorf("expected 1x1 minimum, got %v", s.Bounds())
	}
}
