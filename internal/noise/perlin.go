package noise

import (
	"math"
	"math/rand"
)

const (
	DefaultOctaves = 4
	DefaultFalloff = 0.5
)

// below1 is the largest float64 strictly less than one.
var below1 = math.Nextafter(1, 0)

type Field struct {
	perm    [512]int
	octaves int
	falloff float64
}

type Option func(*Field)

// WithOctaves sets the number of summed layers and the amplitude ratio between
// consecutive layers. Non-positive octaves and falloffs outside (0,1] are
// ignored.
func WithOctaves(octaves int, falloff float64) Option {
	return func(f *Field) {
		if octaves > 0 {
			f.octaves = octaves
		}
		if falloff > 0 && falloff <= 1 {
			f.falloff = falloff
		}
	}
}

func New(seed int64, opts ...Option) *Field {
	f := &Field{
		octaves: DefaultOctaves,
		falloff: DefaultFalloff,
	}
	p := rand.New(rand.NewSource(seed)).Perm(256)
	for i := 0; i < 256; i++ {
		f.perm[i] = p[i]
		f.perm[i+256] = p[i]
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Field) Octaves() int     { return f.octaves }
func (f *Field) Falloff() float64 { return f.falloff }

// Sample returns the noise value at (x, y, z) in [0, 1).
func (f *Field) Sample(x, y, z float64) float64 {
	sum, norm := 0.0, 0.0
	amp, freq := 1.0, 1.0
	for o := 0; o < f.octaves; o++ {
		n := f.perlin(x*freq, y*freq, z*freq)
		sum += amp * (n + 1) / 2
		norm += amp
		amp *= f.falloff
		freq *= 2
	}
	v := sum / norm
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return below1
	}
	return v
}

// perlin is Ken Perlin's improved noise; output lies roughly in [-1, 1].
func (f *Field) perlin(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi, yi, zi := int(fx)&255, int(fy)&255, int(fz)&255
	x, y, z = x-fx, y-fy, z-fz

	u, v, w := fade(x), fade(y), fade(z)
	p := &f.perm

	a := p[xi] + yi
	aa := p[a] + zi
	ab := p[a+1] + zi
	b := p[xi+1] + yi
	ba := p[b] + zi
	bb := p[b+1] + zi

	return lerp(w,
		lerp(v,
			lerp(u, grad(p[aa], x, y, z), grad(p[ba], x-1, y, z)),
			lerp(u, grad(p[ab], x, y-1, z), grad(p[bb], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(p[aa+1], x, y, z-1), grad(p[ba+1], x-1, y, z-1)),
			lerp(u, grad(p[ab+1], x, y-1, z-1), grad(p[bb+1], x-1, y-1, z-1))))
}

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func lerp(t, a, b float64) float64 { return a + t*(b-a) }

func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
