package export

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// FadeLevels is the number of shades between the background and each palette
// color, so trails keep their hue as they fade.
const FadeLevels = 24

// BuildPalette returns a GIF palette of at most 256 entries made of ramps from
// bg to each of colors.
func BuildPalette(bg colorful.Color, colors []colorful.Color) color.Palette {
	seen := make(map[color.RGBA]bool)
	var pal color.Palette
	add := func(c colorful.Color) {
		r, g, b := c.Clamped().RGB255()
		rgba := color.RGBA{R: r, G: g, B: b, A: 255}
		if seen[rgba] || len(pal) >= 256 {
			return
		}
		seen[rgba] = true
		pal = append(pal, rgba)
	}

	add(bg)
	levels := FadeLevels
	if n := len(colors); n > 0 && n*levels > 255 {
		levels = 255 / n
	}
	for _, c := range colors {
		for i := 1; i <= levels; i++ {
			add(bg.BlendRgb(c, float64(i)/float64(levels)))
		}
	}
	return pal
}

// Animation collects frames scaled to a fixed size and dithered into one
// palette.
type Animation struct {
	bounds  image.Rectangle
	palette color.Palette
	delay   int
	anim    gif.GIF
}

// NewAnimation records frames at width x height with delay in 100ths of a
// second between them.
func NewAnimation(width, height, delay int, pal color.Palette) *Animation {
	return &Animation{
		bounds:  image.Rect(0, 0, width, height),
		palette: pal,
		delay:   delay,
		anim:    gif.GIF{LoopCount: 0},
	}
}

func (a *Animation) Add(frame image.Image) {
	var src image.Image = frame
	if frame.Bounds().Size() != a.bounds.Size() {
		scaled := image.NewRGBA(a.bounds)
		draw.ApproxBiLinear.Scale(scaled, a.bounds, frame, frame.Bounds(), draw.Src, nil)
		src = scaled
	}
	img := image.NewPaletted(a.bounds, a.palette)
	draw.FloydSteinberg.Draw(img, a.bounds, src, src.Bounds().Min)
	a.anim.Image = append(a.anim.Image, img)
	a.anim.Delay = append(a.anim.Delay, a.delay)
}

func (a *Animation) Len() int { return len(a.anim.Image) }

func (a *Animation) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &a.anim)
}
