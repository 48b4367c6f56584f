package style

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultFallback is used for categories missing from the palette.
const DefaultFallback = "#AAAAAA"

// DefaultCategories is the stock category table.
var DefaultCategories = map[string]string{
	"Entertainment":  "#008585",
	"Education":      "#39515b",
	"Politics":       "#476068",
	"Technology":     "#706e59",
	"Socio-Cultural": "#fdb913",
	"Economy":        "#c8dbd4",
	"Sports":         "#d4c8b3",
	"Crime":          "#e641b6",
}

// Palette maps categories to stroke colors.
type Palette struct {
	colors   map[string]colorful.Color
	fallback colorful.Color
}

// NewPalette parses a category→hex table. Any unparsable entry fails the whole
// palette so misconfigured colors surface at startup rather than mid-render.
func NewPalette(categories map[string]string, fallback string) (*Palette, error) {
	fb, err := colorful.Hex(fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: fallback %q", ErrBadColor, fallback)
	}
	p := &Palette{
		colors:   make(map[string]colorful.Color, len(categories)),
		fallback: fb,
	}
	for name, hex := range categories {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: category %q = %q", ErrBadColor, name, hex)
		}
		p.colors[name] = c
	}
	return p, nil
}

// DefaultPalette returns the stock palette.
func DefaultPalette() *Palette {
	p, err := NewPalette(DefaultCategories, DefaultFallback)
	if err != nil {
		panic(err)
	}
	return p
}

// Color returns the category color and whether the category was known.
func (p *Palette) Color(category string) (colorful.Color, bool) {
	if c, ok := p.colors[category]; ok {
		return c, true
	}
	return p.fallback, false
}

func (p *Palette) Fallback() colorful.Color { return p.fallback }

// Categories lists the known categories in name order.
func (p *Palette) Categories() []string {
	names := make([]string, 0, len(p.colors))
	for name := range p.colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
