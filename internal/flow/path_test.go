package flow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestTracePathStraight(t *testing.T) {
	g, _ := NewGrid(1000, 100, 10, constSampler(0))
	a := Agent{Origin: Vec2{5, 5}}

	got := TracePath(a, 3, 10, 10, g)
	want := []Vec2{{5, 5}, {5, 5}, {15, 5}, {25, 5}, {35, 5}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestTracePathFullDuplicatesEnd(t *testing.T) {
	g, _ := NewGrid(1000, 100, 10, constSampler(0))
	a := Agent{Origin: Vec2{5, 5}}

	got := TracePath(a, 3, 3, 10, g)
	want := []Vec2{{5, 5}, {5, 5}, {15, 5}, {25, 5}, {25, 5}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestTracePathStopsOffGrid(t *testing.T) {
	g, _ := NewGrid(30, 10, 10, constSampler(0))
	a := Agent{Origin: Vec2{5, 5}}

	got := TracePath(a, 10, 200, 10, g)
	want := []Vec2{{5, 5}, {5, 5}, {15, 5}, {25, 5}, {35, 5}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestTracePathOriginOffGrid(t *testing.T) {
	g, _ := NewGrid(30, 10, 10, constSampler(0))
	got := TracePath(Agent{Origin: Vec2{-1, -1}}, 5, 200, 10, g)
	if len(got) != 2 {
		t.Errorf("expected only the doubled origin, got %d points", len(got))
	}
}

func TestTracePathBounds(t *testing.T) {
	g, _ := NewGrid(400, 300, 15, constSampler(0.3))
	a := Agent{Origin: Vec2{200, 150}}
	const maxSteps = 50
	for steps := 0; steps <= maxSteps; steps++ {
		pts := TracePath(a, steps, maxSteps, 2, g)
		if len(pts) < 2 {
			t.Fatalf("steps=%d: expected at least 2 points, got %d", steps, len(pts))
		}
		if limit := steps + 2; len(pts) > limit {
			t.Fatalf("steps=%d: expected at most %d points, got %d", steps, limit, len(pts))
		}
		if pts[0] != a.Origin || pts[1] != a.Origin {
			t.Fatalf("steps=%d: path must start with the doubled origin", steps)
		}
	}
}

func TestTracePathVisibleEndContinuous(t *testing.T) {
	g, _ := NewGrid(1000, 100, 10, constSampler(0))
	a := Agent{Origin: Vec2{5, 5}}

	// before completion the last point only steers the spline
	open := TracePath(a, 4, 4+1, 10, g)
	closed := TracePath(a, 4, 4, 10, g)
	visibleOpen := open[len(open)-2]
	visibleClosed := closed[len(closed)-1]
	if diff := cmp.Diff(visibleOpen, visibleClosed, approx); diff != "" {
		t.Errorf("visible end moved on completion (-open +closed):\n%s", diff)
	}
}

func TestTracePathZeroSteps(t *testing.T) {
	g, _ := NewGrid(100, 100, 10, constSampler(0))
	a := Agent{Origin: Vec2{50, 50}}
	for _, maxSteps := range []int{0, 200} {
		got := TracePath(a, 0, maxSteps, 10, g)
		if diff := cmp.Diff([]Vec2{{50, 50}, {50, 50}}, got); diff != "" {
			t.Errorf("maxSteps=%d: path mismatch (-want +got):\n%s", maxSteps, diff)
		}
	}
}

func TestSeedAgents(t *testing.T) {
	records := []Record{{Category: "Sports"}, {Category: "Crime"}, {Category: "Economy"}}
	agents := SeedAgents(records, 640, 480, newRand(1))
	if len(agents) != len(records) {
		t.Fatalf("expected %d agents, got %d", len(records), len(agents))
	}
	for i, a := range agents {
		if a.Record.Category != records[i].Category {
			t.Errorf("agent %d bound to %q, want %q", i, a.Record.Category, records[i].Category)
		}
		if a.Origin.X < 0 || a.Origin.X >= 640 || a.Origin.Y < 0 || a.Origin.Y >= 480 {
			t.Errorf("agent %d origin %+v outside canvas", i, a.Origin)
		}
	}
}

func TestSeedAgentsEmpty(t *testing.T) {
	if agents := SeedAgents(nil, 100, 100, newRand(1)); len(agents) != 0 {
		t.Errorf("expected no agents, got %d", len(agents))
	}
}

func TestTracePathFullCurveLength(t *testing.T) {
	g, _ := NewGrid(1000, 100, 10, constSampler(0))
	a := Agent{Origin: Vec2{0, 5}}

	pts := TracePath(a, 200, 200, 1, g)
	if len(pts) != 202 {
		t.Fatalf("expected 202 points, got %d", len(pts))
	}
	end := pts[len(pts)-1]
	if diff := cmp.Diff(Vec2{199, 5}, end, approx); diff != "" {
		t.Errorf("fully drawn curve should end one step short (-want +got):\n%s", diff)
	}
	if pts[len(pts)-2] != end {
		t.Error("expected the end point repeated")
	}
}
