// Package palette provides the categorical palettes and continuous
// color ramps the color scales draw from, and loads user palettes
// from YAML.
package palette

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/plot/plotutil"
)

// A Ramp maps [0, 1] to colors. Ramps may be sequential or diverging;
// inputs outside [0, 1] clamp to the ends.
type Ramp interface {
	Map(x float64) color.Color
}

// Gradient is a Ramp that interpolates between a sequence of anchor
// colors. Stops may be nil for evenly spaced anchors; otherwise it
// must be ascending and the same length as Colors.
type Gradient struct {
	Colors []color.RGBA
	Stops  []float64
}

func (g Gradient) Map(x float64) color.Color {
	if len(g.Colors) == 0 {
		return color.RGBA{A: 255}
	}
	if x <= 0 || len(g.Colors) == 1 {
		return g.Colors[0]
	}
	if x >= 1 {
		return g.Colors[len(g.Colors)-1]
	}
	if g.Stops == nil {
		n := x * float64(len(g.Colors)-1)
		ip, fr := math.Modf(n)
		i := int(ip)
		if i >= len(g.Colors)-1 {
			return g.Colors[len(g.Colors)-1]
		}
		return Blend(g.Colors[i], g.Colors[i+1], fr)
	}
	i := sort.SearchFloat64s(g.Stops, x)
	if i == 0 {
		return g.Colors[0]
	}
	if i >= len(g.Colors) {
		return g.Colors[len(g.Colors)-1]
	}
	fr := (x - g.Stops[i-1]) / (g.Stops[i] - g.Stops[i-1])
	return Blend(g.Colors[i-1], g.Colors[i], fr)
}

// Blend interpolates between two sRGB colors component-wise. x is the
// weight of b.
func Blend(a, b color.Color, x float64) color.Color {
	ar, ag, ab, aa := rgba8(a)
	br, bg, bb, ba := rgba8(b)
	lerp := func(p, q uint8) uint8 {
		c := float64(p)*(1-x) + float64(q)*x
		if c <= 0 {
			return 0
		}
		if c >= 255 {
			return 255
		}
		return uint8(c + 0.5)
	}
	return color.RGBA{lerp(ar, br), lerp(ag, bg), lerp(ab, bb), lerp(aa, ba)}
}

func rgba8(c color.Color) (r, g, b, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}

// A Palette is an ordered list of categorical colors. Lookups past
// the end cycle.
type Palette struct {
	Name   string
	Colors []color.Color
}

// Color returns the i-th palette color, cycling when i exceeds the
// palette length.
func (p *Palette) Color(i int) color.Color {
	if len(p.Colors) == 0 {
		return color.RGBA{A: 255}
	}
	if i < 0 {
		i = -i
	}
	return p.Colors[i%len(p.Colors)]
}

// Len returns the number of colors before cycling.
func (p *Palette) Len() int { return len(p.Colors) }

// Default is the categorical palette layers use when no palette is
// configured. The colors come from gonum's plotutil so charts match
// the wider plot ecosystem.
var Default = &Palette{Name: "default", Colors: plotutil.DarkColors}

// Soft is a lighter categorical palette for filled areas.
var Soft = &Palette{Name: "soft", Colors: plotutil.SoftColors}

func hexRGBA(h uint32) color.RGBA {
	return color.RGBA{uint8(h >> 16), uint8(h >> 8), uint8(h), 255}
}

func gradient(hs ...uint32) Gradient {
	cs := make([]color.RGBA, len(hs))
	for i, h := range hs {
		cs[i] = hexRGBA(h)
	}
	return Gradient{Colors: cs}
}

// The viridis family, anchored on the published discretizations and
// interpolated in between.
var (
	Viridis = gradient(0x440154, 0x46327e, 0x365c8d, 0x277f8e,
		0x1fa187, 0x4ac16d, 0xa0da39, 0xfde725)
	Magma   = gradient(0x000004, 0x51127c, 0xb63679, 0xfb8861, 0xfcfdbf)
	Plasma  = gradient(0x0d0887, 0x7e03a8, 0xcc4778, 0xf89441, 0xf0f921)
	Inferno = gradient(0x000004, 0x56106e, 0xbb3754, 0xf98c0a, 0xfcffa4)
	Cividis = gradient(0x00204d, 0x414d6b, 0x7c7b78, 0xbcaf6f, 0xffea46)

	// Grays runs from near-black to near-white.
	Grays = gradient(0x1a1a1a, 0xe5e5e5)
)

var ramps = map[string]Ramp{
	"viridis": Viridis,
	"magma":   Magma,
	"plasma":  Plasma,
	"inferno": Inferno,
	"cividis": Cividis,
	"grays":   Grays,

	// Single-letter option tokens as used by viridis scales.
	"a": Magma,
	"b": Inferno,
	"c": Plasma,
	"d": Viridis,
	"e": Cividis,
}

// RampByName looks up a built-in ramp by name ("viridis", "magma",
// "plasma", "inferno", "cividis", "grays") or by its single-letter
// option token.
func RampByName(name string) (Ramp, bool) {
	r, ok := ramps[strings.ToLower(name)]
	return r, ok
}
