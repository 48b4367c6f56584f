package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/newsflow/internal/flow"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase = 0x2800
	// DotThreshold is the intensity below which a dot is shown as off.
	DotThreshold = 0.06
	splineSteps  = 4
)

// Canvas is a Braille surface. Each dot keeps an intensity in [0,1] that
// translucent fills decay, and each cell keeps the color of the strokes that
// crossed it. Drawing coordinates are divided by Scale to get dot positions.
type Canvas struct {
	Width, Height int
	Scale         float64

	dots   []float64
	colors []colorful.Color
	bg     colorful.Color
	stroke colorful.Color
	alpha  float64
	weight float64
}

func NewCanvas(w, h int, scale float64) *Canvas {
	c := &Canvas{}
	c.Resize(w, h, scale)
	return c
}

// Resize reallocates the canvas to w x h cells.
func (c *Canvas) Resize(w, h int, scale float64) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if scale <= 0 {
		scale = 1
	}
	c.Width, c.Height, c.Scale = w, h, scale
	c.dots = make([]float64, w*2*h*4)
	c.colors = make([]colorful.Color, w*h)
}

// DotSize is the canvas size in dots.
func (c *Canvas) DotSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Extent is the drawing area covered by the canvas in surface units.
func (c *Canvas) Extent() (float64, float64) {
	dw, dh := c.DotSize()
	return float64(dw) * c.Scale, float64(dh) * c.Scale
}

// Clear turns every dot off.
func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = 0
	}
	for i := range c.colors {
		c.colors[i] = colorful.Color{}
	}
}

func (c *Canvas) Fill(col color.NRGBA) {
	c.bg = toColorful(col)
	if col.A == 255 {
		c.Clear()
		return
	}
	keep := 1 - float64(col.A)/255
	for i := range c.dots {
		c.dots[i] *= keep
	}
}

func (c *Canvas) SetStroke(col color.NRGBA, weight float64) {
	c.stroke = toColorful(col)
	c.alpha = float64(col.A) / 255
	c.weight = weight
}

// Curve flattens the spline and plots it dot by dot. Heavier strokes deposit
// more intensity so sentiment weight stays visible at terminal resolution.
func (c *Canvas) Curve(points []flow.Vec2) {
	line := flow.CatmullRom(points, splineSteps)
	if len(line) < 2 || c.alpha == 0 {
		return
	}
	amount := math.Min(1, c.alpha*math.Max(c.weight, 0.25)*2)
	prev := c.toDot(line[0])
	for _, p := range line[1:] {
		cur := c.toDot(p)
		c.DrawLine(prev[0], prev[1], cur[0], cur[1], amount)
		prev = cur
	}
}

func (c *Canvas) toDot(p flow.Vec2) [2]int {
	return [2]int{int(math.Floor(p.X / c.Scale)), int(math.Floor(p.Y / c.Scale))}
}

// Set deposits intensity at dot (x, y) and tints the cell.
func (c *Canvas) Set(x, y int, amount float64) {
	dw, dh := c.DotSize()
	if x < 0 || y < 0 || x >= dw || y >= dh {
		return
	}
	i := y*dw + x
	cell := (y/4)*c.Width + x/2
	c.colors[cell] = c.colors[cell].BlendRgb(c.stroke, math.Max(amount, 1-c.dots[i]))
	c.dots[i] += amount * (1 - c.dots[i])
}

// At returns the intensity of dot (x, y), or 0 outside the canvas.
func (c *Canvas) At(x, y int) float64 {
	dw, dh := c.DotSize()
	if x < 0 || y < 0 || x >= dw || y >= dh {
		return 0
	}
	return c.dots[y*dw+x]
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, amount float64) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, amount)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// cell returns the braille rune and peak intensity of a character cell.
func (c *Canvas) cell(col, row int) (rune, float64) {
	r := rune(brailleBase)
	peak := 0.0
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			v := c.At(col*2+dx, row*4+dy)
			if v >= DotThreshold {
				r |= pixelMap[dy][dx]
			}
			peak = math.Max(peak, v)
		}
	}
	return r, peak
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _ := c.cell(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws every lit cell in its stroke color faded toward the background
// by the cell's peak intensity.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, peak := c.cell(col, row)
			if r == brailleBase {
				b.WriteRune(r)
				continue
			}
			fg := c.bg.BlendRgb(c.colors[row*c.Width+col], math.Min(1, 0.35+peak))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(fg.Clamped().Hex())).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
