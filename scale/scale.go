// Package scale maps data values onto panel coordinates, sizes and
// colors. A chart has two positional scales per panel (x and y) and
// may carry further scales for the color, fill, size and alpha
// aesthetics.
//
// Positional scales transform with a comma-ok result: values a scale
// cannot place (gaps, levels unknown to a discrete scale, nonpositive
// values on a log scale) report false and the renderers skip the
// element instead of failing the chart.
package scale

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"

	gg "github.com/Alipsa/matrix-gg"
)

// A ConfigError reports an invalid scale configuration, detected when
// the scale is built rather than during rendering.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scale: bad %s: %s", e.Field, e.Reason)
}

// A Tick is one axis tick. Value is in data space; discrete scales
// emit one tick per level with Value holding the level code.
type Tick struct {
	Value float64
	Label string
	Minor bool
}

// Positional is the contract between the renderers and the x and y
// scales of a panel.
type Positional interface {
	// Train expands the scale's domain to cover the given values.
	Train(vs ...gg.Value)

	// TrainFloats expands the domain to cover already numeric
	// values, as produced by the stat and position stages.
	TrainFloats(xs ...float64)

	// Transform maps a data value into the output range.
	Transform(v gg.Value) (float64, bool)

	// TransformFloat maps a numeric data value into the output
	// range.
	TransformFloat(x float64) (float64, bool)

	// Inverse maps an output coordinate back into data space.
	// Discrete scales report false.
	Inverse(y float64) (float64, bool)

	// SetRange sets the output interval in panel coordinates.
	SetRange(lo, hi float64)

	// Range returns the output interval.
	Range() (lo, hi float64)

	// IsDiscrete reports whether the scale places levels on band
	// centers.
	IsDiscrete() bool

	// Bandwidth returns the width of one band of a discrete scale,
	// and 0 for continuous scales.
	Bandwidth() float64

	// Ticks returns at most about max major ticks inside the
	// domain.
	Ticks(max int) []Tick
}

// ----------------------------------------------------------------------------
// Interval

// Interval represents a (potentially degenerate) real interval. Both
// edges may be NaN indicating that the edge is not set.
type Interval struct {
	Min, Max float64
}

func unsetInterval() Interval {
	return Interval{math.NaN(), math.NaN()}
}

// Update expands i to include x.
func (i *Interval) Update(x ...float64) {
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if !(i.Min < v) {
			i.Min = v
		}
		if !(i.Max > v) {
			i.Max = v
		}
	}
}

func (i *Interval) Equal(j Interval) bool {
	if math.IsNaN(i.Min) {
		return math.IsNaN(j.Min)
	}
	if math.IsNaN(i.Max) {
		return math.IsNaN(j.Max)
	}
	return i.Min == j.Min && i.Max == j.Max
}

func have(x float64) bool {
	return !math.IsNaN(x)
}

// ----------------------------------------------------------------------------
// Continuous

// Continuous places numeric values by interval mapping. The same type
// serves linear, logarithmic and square-root scales through its
// Transformation, and doubles as the size and alpha scale with a
// non-pixel output range.
type Continuous struct {
	// Data is the range covered by trained data.
	Data Interval

	// Domain fixes one or both domain edges. NaN edges autoscale
	// to the trained data.
	Domain Interval

	// Trans is the interval mapping, LinearTrans by default.
	Trans Transformation

	// Reversed flips the output direction.
	Reversed bool

	// Expand widens the autoscaled domain edges by
	// Rel*(max-min) + Abs. Fixed Domain edges are not expanded.
	Expand struct {
		Rel, Abs float64
	}

	// Ticker overrides the nice-number breaks when set, e.g. with
	// plot.LogTicks for logarithmic axes.
	Ticker plot.Ticker

	rng Interval
}

// NewContinuous returns a linear scale that autoscales to its trained
// data and maps onto [0, 1] until a range is set.
func NewContinuous() *Continuous {
	return &Continuous{
		Data:   unsetInterval(),
		Domain: unsetInterval(),
		Trans:  LinearTrans,
		rng:    Interval{0, 1},
	}
}

// NewLog10 returns a base-10 logarithmic scale. Nonpositive values
// are outside its domain and report unplaceable.
func NewLog10() *Continuous {
	s := NewContinuous()
	s.Trans = Log10Trans
	s.Ticker = plot.LogTicks{}
	return s
}

// NewSize returns the scale mapping the size aesthetic onto point
// radii between r0 and r1, linear in point area.
func NewSize(r0, r1 float64) *Continuous {
	s := NewContinuous()
	s.Trans = SqrtTransFix0
	s.rng = Interval{r0, r1}
	return s
}

// NewAlpha returns the scale mapping the alpha aesthetic onto
// opacities between a0 and a1.
func NewAlpha(a0, a1 float64) *Continuous {
	s := NewContinuous()
	s.rng = Interval{a0, a1}
	return s
}

func (s *Continuous) Train(vs ...gg.Value) {
	for _, v := range vs {
		if f, ok := v.Num(); ok {
			s.TrainFloats(f)
		}
	}
}

func (s *Continuous) TrainFloats(xs ...float64) {
	for _, x := range xs {
		if math.IsInf(x, 0) {
			continue
		}
		if s.Trans.Valid != nil && !s.Trans.Valid(x) {
			continue
		}
		s.Data.Update(x)
	}
}

func (s *Continuous) SetRange(lo, hi float64) { s.rng = Interval{lo, hi} }

func (s *Continuous) Range() (lo, hi float64) { return s.rng.Min, s.rng.Max }

func (s *Continuous) IsDiscrete() bool { return false }

func (s *Continuous) Bandwidth() float64 { return 0 }

// domain resolves fixed edges, trained data and expansion into the
// effective domain.
func (s *Continuous) domain() Interval {
	d := Interval{s.Data.Min, s.Data.Max}
	ext := 0.0
	if have(d.Min) && have(d.Max) {
		ext = s.Expand.Rel*(d.Max-d.Min) + s.Expand.Abs
	}
	if have(s.Domain.Min) {
		d.Min = s.Domain.Min
	} else if have(d.Min) {
		d.Min -= ext
		if s.Trans.Valid != nil && !s.Trans.Valid(d.Min) {
			d.Min = s.Data.Min
		}
	}
	if have(s.Domain.Max) {
		d.Max = s.Domain.Max
	} else if have(d.Max) {
		d.Max += ext
	}
	return d
}

func (s *Continuous) Transform(v gg.Value) (float64, bool) {
	f, ok := v.Num()
	if !ok {
		return 0, false
	}
	return s.TransformFloat(f)
}

func (s *Continuous) TransformFloat(x float64) (float64, bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	if s.Trans.Valid != nil && !s.Trans.Valid(x) {
		return 0, false
	}
	d := s.domain()
	if !have(d.Min) || !have(d.Max) {
		return 0, false
	}
	if d.Min == d.Max {
		// Degenerate domain: everything sits mid-range.
		return (s.rng.Min + s.rng.Max) / 2, true
	}
	to := s.rng
	if s.Reversed {
		to.Min, to.Max = to.Max, to.Min
	}
	return s.Trans.Trans(d, to, x), true
}

func (s *Continuous) Inverse(y float64) (float64, bool) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}
	d := s.domain()
	if !have(d.Min) || !have(d.Max) {
		return 0, false
	}
	if d.Min == d.Max {
		return d.Min, true
	}
	from := s.rng
	if s.Reversed {
		from.Min, from.Max = from.Max, from.Min
	}
	return s.Trans.Inverse(from, d, y), true
}

func (s *Continuous) Ticks(max int) []Tick {
	d := s.domain()
	if !have(d.Min) || !have(d.Max) {
		return nil
	}
	if s.Ticker != nil {
		var ts []Tick
		for _, t := range s.Ticker.Ticks(d.Min, d.Max) {
			ts = append(ts, Tick{Value: t.Value, Label: t.Label, Minor: t.Label == ""})
		}
		return ts
	}
	if d.Min == d.Max {
		return []Tick{{Value: d.Min, Label: FormatTick(d.Min, 0)}}
	}
	bs := Breaks(d.Min, d.Max, max)
	step := 0.0
	if len(bs) >= 2 {
		step = bs[1] - bs[0]
	}
	var ts []Tick
	for _, b := range bs {
		if b < d.Min || b > d.Max {
			continue
		}
		ts = append(ts, Tick{Value: b, Label: FormatTick(b, step)})
	}
	return ts
}

func (s *Continuous) String() string {
	if s == nil {
		return "<nil>"
	}
	d := s.domain()
	return fmt.Sprintf("%s domain=[%.3g:%.3g] data=[%.3g:%.3g] range=[%.3g:%.3g]",
		s.Trans.Name, d.Min, d.Max, s.Data.Min, s.Data.Max, s.rng.Min, s.rng.Max)
}

// ----------------------------------------------------------------------------
// Discrete

// Discrete places levels on the centers of n equal bands of the
// output range. Level codes are their training order; fractional
// codes, as produced by dodging, place linearly between centers.
type Discrete struct {
	// Reversed flips the band order.
	Reversed bool

	levels []string
	index  map[string]int
	rng    Interval
}

// NewDiscrete returns a discrete scale pre-trained with the given
// levels.
func NewDiscrete(levels ...string) *Discrete {
	s := &Discrete{index: map[string]int{}, rng: Interval{0, 1}}
	for _, l := range levels {
		s.add(l)
	}
	return s
}

func (s *Discrete) add(level string) {
	if _, ok := s.index[level]; ok {
		return
	}
	s.index[level] = len(s.levels)
	s.levels = append(s.levels, level)
}

// Levels returns the trained levels in code order.
func (s *Discrete) Levels() []string { return s.levels }

// Code returns the band code of a level.
func (s *Discrete) Code(level string) (int, bool) {
	i, ok := s.index[level]
	return i, ok
}

func (s *Discrete) Train(vs ...gg.Value) {
	for _, v := range vs {
		if l, ok := v.Level(); ok {
			s.add(l)
		}
	}
}

// TrainFloats is a no-op: numeric values cannot introduce new levels.
func (s *Discrete) TrainFloats(xs ...float64) {}

func (s *Discrete) SetRange(lo, hi float64) { s.rng = Interval{lo, hi} }

func (s *Discrete) Range() (lo, hi float64) { return s.rng.Min, s.rng.Max }

func (s *Discrete) IsDiscrete() bool { return true }

func (s *Discrete) Bandwidth() float64 {
	if len(s.levels) == 0 {
		return 0
	}
	return math.Abs(s.rng.Max-s.rng.Min) / float64(len(s.levels))
}

func (s *Discrete) place(c float64) (float64, bool) {
	n := len(s.levels)
	if n == 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, false
	}
	if s.Reversed {
		c = float64(n-1) - c
	}
	bw := (s.rng.Max - s.rng.Min) / float64(n)
	return s.rng.Min + (c+0.5)*bw, true
}

func (s *Discrete) Transform(v gg.Value) (float64, bool) {
	if l, ok := v.Level(); ok {
		if i, ok := s.index[l]; ok {
			return s.place(float64(i))
		}
	}
	if f, ok := v.Num(); ok {
		return s.place(f)
	}
	return 0, false
}

func (s *Discrete) TransformFloat(x float64) (float64, bool) {
	return s.place(x)
}

// Inverse is not defined for discrete scales.
func (s *Discrete) Inverse(y float64) (float64, bool) { return 0, false }

func (s *Discrete) Ticks(max int) []Tick {
	ts := make([]Tick, len(s.levels))
	for i, l := range s.levels {
		ts[i] = Tick{Value: float64(i), Label: l}
	}
	return ts
}

func (s *Discrete) String() string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("discrete levels=%v range=[%.3g:%.3g]",
		s.levels, s.rng.Min, s.rng.Max)
}

// ----------------------------------------------------------------------------
// Identity

// Identity passes values through untransformed, for layers whose data
// already is in panel coordinates.
type Identity struct {
	Data Interval
}

// NewIdentity returns an identity scale.
func NewIdentity() *Identity {
	return &Identity{Data: unsetInterval()}
}

func (s *Identity) Train(vs ...gg.Value) {
	for _, v := range vs {
		if f, ok := v.Num(); ok {
			s.Data.Update(f)
		}
	}
}

func (s *Identity) TrainFloats(xs ...float64) { s.Data.Update(xs...) }

func (s *Identity) Transform(v gg.Value) (float64, bool) {
	f, ok := v.Num()
	if !ok {
		return 0, false
	}
	return s.TransformFloat(f)
}

func (s *Identity) TransformFloat(x float64) (float64, bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

func (s *Identity) Inverse(y float64) (float64, bool) { return y, true }

func (s *Identity) SetRange(lo, hi float64) {}

func (s *Identity) Range() (lo, hi float64) { return s.Data.Min, s.Data.Max }

func (s *Identity) IsDiscrete() bool { return false }

func (s *Identity) Bandwidth() float64 { return 0 }

func (s *Identity) Ticks(max int) []Tick {
	if !have(s.Data.Min) || !have(s.Data.Max) || s.Data.Min == s.Data.Max {
		return nil
	}
	var ts []Tick
	for _, b := range Breaks(s.Data.Min, s.Data.Max, max) {
		if b < s.Data.Min || b > s.Data.Max {
			continue
		}
		ts = append(ts, Tick{Value: b, Label: FormatTick(b, 0)})
	}
	return ts
}

// ----------------------------------------------------------------------------
// Construction from parameters

// NewPositional builds a positional scale from a kind token and
// parameters, validating the configuration eagerly. Recognized kinds
// are "linear" (also ""), "log10", "sqrt", "discrete" and "identity".
// Parameters: "limits" ([min, max]), "reverse" (bool) and "expand"
// ([rel, abs]). Discrete scales take their levels from training, not
// from parameters.
func NewPositional(kind string, p gg.Params) (Positional, error) {
	switch kind {
	case "", "linear", "log10", "sqrt":
		var s *Continuous
		switch kind {
		case "log10":
			s = NewLog10()
		case "sqrt":
			s = NewContinuous()
			s.Trans = SqrtTrans
		default:
			s = NewContinuous()
		}
		s.Reversed = p.Bool("reverse", false)
		if lim := p.Floats("limits"); lim != nil {
			if len(lim) != 2 {
				return nil, &ConfigError{Field: "limits", Reason: "need [min, max]"}
			}
			if lim[0] > lim[1] {
				return nil, &ConfigError{Field: "limits", Reason: "min exceeds max"}
			}
			if s.Trans.Valid != nil && (!s.Trans.Valid(lim[0]) || !s.Trans.Valid(lim[1])) {
				return nil, &ConfigError{
					Field:  "limits",
					Reason: fmt.Sprintf("outside %s domain", s.Trans.Name),
				}
			}
			s.Domain = Interval{lim[0], lim[1]}
		}
		if exp := p.Floats("expand"); exp != nil {
			if len(exp) != 2 || exp[0] < 0 || exp[1] < 0 {
				return nil, &ConfigError{Field: "expand", Reason: "need nonnegative [rel, abs]"}
			}
			s.Expand.Rel, s.Expand.Abs = exp[0], exp[1]
		}
		return s, nil

	case "discrete":
		s := NewDiscrete()
		s.Reversed = p.Bool("reverse", false)
		return s, nil

	case "identity":
		return NewIdentity(), nil
	}
	return nil, &ConfigError{Field: "kind", Reason: fmt.Sprintf("unknown scale kind %q", kind)}
}

// ----------------------------------------------------------------------------
// Breaks

// NiceNum returns a number close to x whose mantissa is 1, 2, 5 or
// 10. With round set the nearest such number is chosen, otherwise the
// smallest one not below x. The sign of x is preserved.
func NiceNum(x float64, round bool) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	neg := x < 0
	if neg {
		x = -x
	}
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	n := nf * math.Pow(10, exp)
	if neg {
		n = -n
	}
	return n
}

// Breaks returns about n nicely rounded positions covering [min,
// max]. The first and last break may lie outside the interval;
// callers clip as needed.
func Breaks(min, max float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	if min > max {
		min, max = max, min
	}
	if min == max {
		return []float64{min}
	}
	span := NiceNum(max-min, false)
	step := NiceNum(span/float64(n-1), true)
	lo := math.Floor(min/step) * step
	hi := math.Ceil(max/step) * step
	var bs []float64
	for i := 0; ; i++ {
		v := lo + float64(i)*step
		if v > hi+0.5*step {
			break
		}
		bs = append(bs, v)
	}
	return bs
}

// FormatTick formats a tick value given the break step. A zero step
// falls back to shortest-form formatting.
func FormatTick(v, step float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	if step <= 0 || av >= 1e6 || av < 1e-4 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	dec := 0
	if d := -int(math.Floor(math.Log10(step) + 1e-9)); d > 0 {
		dec = d
	}
	return strconv.FormatFloat(v, 'f', dec, 64)
}
