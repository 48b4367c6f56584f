package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/newsflow/internal/flow"
)

// SVG is a drawing surface that records a frame as vector markup. Fills become
// full-canvas rects and curves become cubic Bézier paths.
type SVG struct {
	width, height float64
	body          strings.Builder
	stroke        color.NRGBA
	weight        float64
	curves        int
}

func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height}
}

func (s *SVG) Fill(c color.NRGBA) {
	fmt.Fprintf(&s.body, `<rect width="100%%" height="100%%" fill="%s"%s/>`+"\n", hex(c), opacity("fill-opacity", c.A))
}

func (s *SVG) SetStroke(c color.NRGBA, weight float64) {
	s.stroke, s.weight = c, weight
}

func (s *SVG) Curve(points []flow.Vec2) {
	spans := flow.Cubics(points)
	if len(spans) == 0 || s.stroke.A == 0 {
		return
	}
	var d strings.Builder
	fmt.Fprintf(&d, "M%.2f,%.2f", spans[0].From.X, spans[0].From.Y)
	for _, sp := range spans {
		fmt.Fprintf(&d, " C%.2f,%.2f %.2f,%.2f %.2f,%.2f",
			sp.C1.X, sp.C1.Y, sp.C2.X, sp.C2.Y, sp.To.X, sp.To.Y)
	}
	fmt.Fprintf(&s.body, `<path fill="none" stroke="%s"%s stroke-width="%.2f" stroke-linecap="round" d="%s"/>`+"\n",
		hex(s.stroke), opacity("stroke-opacity", s.stroke.A), s.weight, d.String())
	s.curves++
}

// Curves reports how many paths were emitted.
func (s *SVG) Curves() int { return s.curves }

// Reset drops everything drawn so far.
func (s *SVG) Reset() {
	s.body.Reset()
	s.curves = 0
}

func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, s.width, s.height, s.width, s.height)
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(attr string, a uint8) string {
	if a == 255 {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, attr, float64(a)/255)
}
