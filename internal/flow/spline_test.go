package flow

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCubicsTooShort(t *testing.T) {
	for n := 0; n < 4; n++ {
		pts := make([]Vec2, n)
		if spans := Cubics(pts); spans != nil {
			t.Errorf("n=%d: expected no spans, got %d", n, len(spans))
		}
		if out := CatmullRom(pts, 8); out != nil {
			t.Errorf("n=%d: expected no polyline, got %d points", n, len(out))
		}
	}
}

func TestCatmullRomInterpolatesInnerPoints(t *testing.T) {
	pts := []Vec2{{0, 0}, {0, 0}, {10, 5}, {20, 0}, {30, 10}, {30, 10}}
	out := CatmullRom(pts, 4)

	if want := 3*4 + 1; len(out) != want {
		t.Fatalf("expected %d points, got %d", want, len(out))
	}
	if diff := cmp.Diff(pts[1], out[0], approx); diff != "" {
		t.Errorf("start mismatch (-want +got):\n%s", diff)
	}
	for k, p := range []Vec2{pts[2], pts[3], pts[4]} {
		got := out[(k+1)*4]
		if diff := cmp.Diff(p, got, approx); diff != "" {
			t.Errorf("knot %d mismatch (-want +got):\n%s", k+2, diff)
		}
	}
}

func TestCatmullRomStraightLineStaysStraight(t *testing.T) {
	pts := []Vec2{{0, 0}, {0, 0}, {10, 0}, {20, 0}, {20, 0}}
	for _, p := range CatmullRom(pts, 10) {
		if math.Abs(p.Y) > 1e-12 {
			t.Fatalf("point %+v left the line", p)
		}
		if p.X < -1e-12 || p.X > 20+1e-12 {
			t.Fatalf("point %+v overshot the segment", p)
		}
	}
}

func TestCatmullRomMinimumSamples(t *testing.T) {
	pts := []Vec2{{0, 0}, {0, 0}, {10, 0}, {10, 0}}
	out := CatmullRom(pts, 0)
	if len(out) != 2 {
		t.Errorf("expected 2 points with clamped sampling, got %d", len(out))
	}
}

func TestVec2(t *testing.T) {
	v := FromAngle(math.Pi / 2)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-1) > 1e-12 {
		t.Errorf("FromAngle(pi/2) = %+v", v)
	}
	if got := (Vec2{3, 4}).Len(); got != 5 {
		t.Errorf("expected length 5, got %v", got)
	}
	if got := (Vec2{0, 0}).Lerp(Vec2{10, 20}, 0.5); got != (Vec2{5, 10}) {
		t.Errorf("Lerp midpoint = %+v", got)
	}
}
