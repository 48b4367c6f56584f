package flow

import "math/rand"

// Agent is a curve origin bound to the record it visualizes. Agents never move;
// each frame the whole path is traced again from Origin.
type Agent struct {
	Origin Vec2
	Record Record
}

// SeedAgents creates one agent per record at a uniformly random canvas
// position. Record order is preserved so later records draw on top.
func SeedAgents(records []Record, width, height float64, rng *rand.Rand) []Agent {
	agents := make([]Agent, len(records))
	for i, r := range records {
		agents[i] = Agent{
			Origin: Vec2{X: rng.Float64() * width, Y: rng.Float64() * height},
			Record: r,
		}
	}
	return agents
}

// TracePath walks from the agent's origin along f for at most steps segments
// of stepSize pixels and returns the control points of the curve.
//
// The origin is emitted twice so a Catmull-Rom renderer starts the visible
// line at the origin. Once steps reaches maxSteps the walk stops one segment
// short and its final point is emitted twice, so the visible line ends where
// it ended while the final point was still only a control point. Leaving the
// field ends the walk early. The result never exceeds steps+2 points, so a
// fully drawn curve of maxSteps segments ends one step short of maxSteps
// moves. Callers passing ceil(progress) close the curve as soon as progress
// passes maxSteps-1; the visible line is the same either side of that point.
func TracePath(a Agent, steps, maxSteps int, stepSize float64, f Field) []Vec2 {
	if steps < 0 {
		steps = 0
	}
	closed := steps > 0 && steps >= maxSteps
	moves := steps
	if closed {
		moves--
	}
	pts := make([]Vec2, 0, steps+2)
	pos := a.Origin
	pts = append(pts, pos, pos)
	for i := 0; i < moves; i++ {
		v, ok := f.Lookup(pos.X, pos.Y)
		if !ok {
			break
		}
		pos = pos.Add(v.Scale(stepSize))
		pts = append(pts, pos)
	}
	if closed {
		pts = append(pts, pos)
	}
	return pts
}
