// Package colormap maps normalized scalars in [0, 1] to colors.
package colormap

import (
	"fmt"
	"strings"
)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Stop is one color of a piecewise-linear map, components in [0, 1].
// Stops are spread evenly over [0, 1].
type Stop struct {
	R, G, B float64
}

// Map maps a normalized value to a color.
type Map interface {
	At(v float64) RGB
}

// Linear interpolates R, G and B independently between evenly spaced stops.
type Linear struct {
	name  string
	stops []Stop
}

// Fire runs black → dark purple → deep red → orange → yellow → white,
// with stops at 0, 0.2, 0.4, 0.6, 0.8 and 1.
var Fire = Linear{
	name: "fire",
	stops: []Stop{
		{0.0, 0.0, 0.0}, // black
		{0.3, 0.0, 0.6}, // dark purple
		{0.8, 0.0, 0.0}, // deep red
		{1.0, 0.5, 0.0}, // orange
		{1.0, 1.0, 0.0}, // yellow
		{1.0, 1.0, 1.0}, // white
	},
}

// Gray is a plain black-to-white ramp.
var Gray = Linear{
	name: "gray",
	stops: []Stop{
		{0, 0, 0},
		{1, 1, 1},
	},
}

// Name returns the palette name.
func (c Linear) Name() string {
	return c.name
}

// Stops returns a copy of the stop table.
func (c Linear) Stops() []Stop {
	out := make([]Stop, len(c.stops))
	copy(out, c.stops)
	return out
}

// Float returns the interpolated color with components in [0, 1].
// v is clamped to [0, 1] first.
func (c Linear) Float(v float64) (r, g, b float64) {
	if v < 0 || v != v {
		v = 0
	} else if v > 1 {
		v = 1
	}

	scaled := v * float64(len(c.stops)-1)
	i := int(scaled)
	if i > len(c.stops)-2 {
		i = len(c.stops) - 2
	}
	t := scaled - float64(i)

	lo, hi := c.stops[i], c.stops[i+1]
	r = lo.R + t*(hi.R-lo.R)
	g = lo.G + t*(hi.G-lo.G)
	b = lo.B + t*(hi.B-lo.B)
	return r, g, b
}

// At returns the interpolated color, each channel truncated from c·255.
func (c Linear) At(v float64) RGB {
	r, g, b := c.Float(v)
	return RGB{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255)}
}

// DensityToColor maps an intensity through the Fire palette.
func DensityToColor(v float64) RGB {
	return Fire.At(v)
}

// Palette selects one of the built-in maps. Unlike a Map value it is
// comparable, so it can live inside render cache keys.
type Palette int

const (
	PaletteFire Palette = iota
	PaletteGray
)

// Palettes lists the built-in palettes in cycling order.
var Palettes = []Palette{PaletteFire, PaletteGray}

// Map returns the color map for p. Unknown values fall back to Fire.
func (p Palette) Map() Map {
	switch p {
	case PaletteGray:
		return Gray
	default:
		return Fire
	}
}

// Next returns the palette after p in cycling order.
func (p Palette) Next() Palette {
	for i, q := range Palettes {
		if q == p {
			return Palettes[(i+1)%len(Palettes)]
		}
	}
	return PaletteFire
}

func (p Palette) String() string {
	switch p {
	case PaletteFire:
		return Fire.name
	case PaletteGray:
		return Gray.name
	default:
		return fmt.Sprintf("Palette(%d)", int(p))
	}
}

// ParsePalette parses a palette name as used on the command line.
func ParsePalette(s string) (Palette, error) {
	switch strings.ToLower(s) {
	case "", "fire":
		return PaletteFire, nil
	case "gray", "grey":
		return PaletteGray, nil
	default:
		return PaletteFire, fmt.Errorf("unknown palette %q (want fire or gray)", s)
	}
}
