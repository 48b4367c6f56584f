package flow

// Cubic is one Bézier span of a Catmull-Rom chain.
type Cubic struct {
	From, C1, C2, To Vec2
}

// Cubics converts a Catmull-Rom control sequence into Bézier spans. The first
// and last points only shape the tangents; the visible chain runs from
// points[1] to points[len-2]. Fewer than four points produce no spans.
func Cubics(points []Vec2) []Cubic {
	if len(points) < 4 {
		return nil
	}
	spans := make([]Cubic, 0, len(points)-3)
	for i := 1; i+2 < len(points); i++ {
		p0, p1, p2, p3 := points[i-1], points[i], points[i+1], points[i+2]
		spans = append(spans, Cubic{
			From: p1,
			C1:   p1.Add(p2.Sub(p0).Scale(1.0 / 6)),
			C2:   p2.Sub(p3.Sub(p1).Scale(1.0 / 6)),
			To:   p2,
		})
	}
	return spans
}

func (c Cubic) At(t float64) Vec2 {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Vec2{
		X: a*c.From.X + b*c.C1.X + d*c.C2.X + e*c.To.X,
		Y: a*c.From.Y + b*c.C1.Y + d*c.C2.Y + e*c.To.Y,
	}
}

// CatmullRom flattens a control sequence into a polyline with samples points
// per span (plus the starting point).
func CatmullRom(points []Vec2, samples int) []Vec2 {
	spans := Cubics(points)
	if len(spans) == 0 {
		return nil
	}
	if samples < 1 {
		samples = 1
	}
	out := make([]Vec2, 0, len(spans)*samples+1)
	out = append(out, spans[0].From)
	for _, sp := range spans {
		for k := 1; k <= samples; k++ {
			out = append(out, sp.At(float64(k)/float64(samples)))
		}
	}
	return out
}
