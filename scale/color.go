package scale

import (
	"fmt"
	"image/color"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/palette"
)

// Color is the contract between the renderers and the color and fill
// scales. Transform reports false for values the scale cannot map;
// the renderers then fall back to layer parameters or defaults.
type Color interface {
	Train(vs ...gg.Value)
	Transform(v gg.Value) (color.Color, bool)
}

// ContinuousColor maps a numeric domain onto a window of a color
// ramp.
type ContinuousColor struct {
	// Data is the trained domain, Domain optionally fixes it.
	Data   Interval
	Domain Interval

	// Ramp supplies the colors.
	Ramp palette.Ramp

	// Begin and End restrict the ramp window, 0 to 1.
	Begin, End float64

	// Direction -1 traverses the ramp backwards.
	Direction int
}

// NewContinuousColor returns a continuous color scale over the full
// ramp. A nil ramp means viridis.
func NewContinuousColor(r palette.Ramp) *ContinuousColor {
	if r == nil {
		r = palette.Viridis
	}
	return &ContinuousColor{
		Data:      unsetInterval(),
		Domain:    unsetInterval(),
		Ramp:      r,
		Begin:     0,
		End:       1,
		Direction: 1,
	}
}

func (s *ContinuousColor) Train(vs ...gg.Value) {
	for _, v := range vs {
		if f, ok := v.Num(); ok {
			s.Data.Update(f)
		}
	}
}

func (s *ContinuousColor) Transform(v gg.Value) (color.Color, bool) {
	x, ok := v.Num()
	if !ok {
		return nil, false
	}
	d := s.Data
	if have(s.Domain.Min) {
		d.Min = s.Domain.Min
	}
	if have(s.Domain.Max) {
		d.Max = s.Domain.Max
	}
	if !have(d.Min) || !have(d.Max) {
		return nil, false
	}
	t := 0.5
	if d.Min != d.Max {
		t = (x - d.Min) / (d.Max - d.Min)
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if s.Direction < 0 {
		t = 1 - t
	}
	return s.Ramp.Map(s.Begin + (s.End-s.Begin)*t), true
}

// DiscreteColor assigns palette colors to levels in training order.
type DiscreteColor struct {
	Pal *palette.Palette

	levels []string
	index  map[string]int
}

// NewDiscreteColor returns a discrete color scale over pal, or the
// default palette when pal is nil.
func NewDiscreteColor(pal *palette.Palette) *DiscreteColor {
	if pal == nil {
		pal = palette.Default
	}
	return &DiscreteColor{Pal: pal, index: map[string]int{}}
}

// Levels returns the trained levels in assignment order.
func (s *DiscreteColor) Levels() []string { return s.levels }

func (s *DiscreteColor) Train(vs ...gg.Value) {
	for _, v := range vs {
		l, ok := v.Level()
		if !ok {
			continue
		}
		if _, dup := s.index[l]; dup {
			continue
		}
		s.index[l] = len(s.levels)
		s.levels = append(s.levels, l)
	}
}

func (s *DiscreteColor) Transform(v gg.Value) (color.Color, bool) {
	l, ok := v.Level()
	if !ok {
		return nil, false
	}
	i, ok := s.index[l]
	if !ok {
		return nil, false
	}
	return s.Pal.Color(i), true
}

// IdentityColor interprets level values as color strings.
type IdentityColor struct{}

func (IdentityColor) Train(vs ...gg.Value) {}

func (IdentityColor) Transform(v gg.Value) (color.Color, bool) {
	if v.IsNum() {
		return nil, false
	}
	l, ok := v.Level()
	if !ok {
		return nil, false
	}
	return palette.Parse(l)
}

// NewColor builds a color scale from a kind token and parameters,
// validated eagerly. Recognized kinds are "discrete" (also ""),
// "continuous", "viridis", "gradient" and "identity".
//
// Parameters: "palette" (palette name), "values" (explicit color
// list for discrete scales), "option"/"ramp" (ramp name), "begin",
// "end", "direction", "low"/"high" (gradient end colors), "limits".
// Names resolve against lib, which may be nil for built-ins only.
func NewColor(kind string, p gg.Params, lib *palette.Library) (Color, error) {
	switch kind {
	case "", "discrete":
		if vals := p["values"]; vals != nil {
			pal, err := manualPalette(vals)
			if err != nil {
				return nil, err
			}
			return NewDiscreteColor(pal), nil
		}
		name := p.Str("palette", "")
		pal, ok := lib.Palette(name)
		if !ok {
			return nil, &ConfigError{Field: "palette", Reason: fmt.Sprintf("unknown palette %q", name)}
		}
		return NewDiscreteColor(pal), nil

	case "continuous", "viridis":
		name := p.Str("option", p.Str("ramp", "viridis"))
		ramp, ok := lib.Ramp(name)
		if !ok {
			return nil, &ConfigError{Field: "ramp", Reason: fmt.Sprintf("unknown ramp %q", name)}
		}
		return continuousColor(ramp, p)

	case "gradient":
		low, okLow := palette.Parse(p.Str("low", "#132b43"))
		high, okHigh := palette.Parse(p.Str("high", "#56b1f7"))
		if !okLow || !okHigh {
			return nil, &ConfigError{Field: "gradient", Reason: "bad low/high color"}
		}
		lr, lg, lb, la := rgba8of(low)
		hr, hg, hb, ha := rgba8of(high)
		ramp := palette.Gradient{Colors: []color.RGBA{
			{lr, lg, lb, la},
			{hr, hg, hb, ha},
		}}
		return continuousColor(ramp, p)

	case "identity":
		return IdentityColor{}, nil
	}
	return nil, &ConfigError{Field: "kind", Reason: fmt.Sprintf("unknown color scale kind %q", kind)}
}

func continuousColor(ramp palette.Ramp, p gg.Params) (Color, error) {
	s := NewContinuousColor(ramp)
	s.Begin = p.Float("begin", 0)
	s.End = p.Float("end", 1)
	if s.Begin < 0 || s.End > 1 || s.Begin > s.End {
		return nil, &ConfigError{Field: "begin/end", Reason: "need 0 <= begin <= end <= 1"}
	}
	switch dir := p.Int("direction", 1); dir {
	case 1, -1:
		s.Direction = dir
	default:
		return nil, &ConfigError{Field: "direction", Reason: "must be 1 or -1"}
	}
	if lim := p.Floats("limits"); lim != nil {
		if len(lim) != 2 || lim[0] > lim[1] {
			return nil, &ConfigError{Field: "limits", Reason: "need [min, max]"}
		}
		s.Domain = Interval{lim[0], lim[1]}
	}
	return s, nil
}

func manualPalette(vals any) (*palette.Palette, error) {
	var specs []string
	switch v := vals.(type) {
	case []string:
		specs = v
	case []any:
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, &ConfigError{Field: "values", Reason: "need color strings"}
			}
			specs = append(specs, s)
		}
	default:
		return nil, &ConfigError{Field: "values", Reason: "need color strings"}
	}
	cs := make([]color.Color, len(specs))
	for i, spec := range specs {
		c, ok := palette.Parse(spec)
		if !ok {
			return nil, &ConfigError{Field: "values", Reason: fmt.Sprintf("bad color %q", spec)}
		}
		cs[i] = c
	}
	return &palette.Palette{Name: "manual", Colors: cs}, nil
}

func rgba8of(c color.Color) (r, g, b, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}
