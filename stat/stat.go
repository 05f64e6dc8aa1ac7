// Package stat computes the statistical transforms of a chart layer.
//
// A Stat consumes a data table through an aesthetic mapping and emits
// the rows a geometry draws: raw observations, counts, bins, five
// number summaries, density estimates or fitted curves. Identity
// passes rows through untouched. Stats that summarise per series
// split their input on the group aesthetic; when no group is mapped
// the series key is implied by the discrete aesthetics, which is how
// the layers split visually anyway.
//
// Stats never modify the table and hold no state across calls, so one
// value may serve any number of layers concurrently.
package stat

import (
	"fmt"
	"math"
	"sort"
	"strings"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

// Stat derives the rows a layer draws from the table it was given.
type Stat interface {
	Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error)
}

// ConfigError reports a stat parameter that cannot work.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("stat: bad %s: %s", e.Field, e.Reason)
}

// New builds the stat for kind, configured from p. Parameters are
// validated here so a bad layer fails before any data is touched.
func New(kind gg.StatKind, p gg.Params) (Stat, error) {
	switch kind {
	case gg.StatIdentity:
		return Identity{}, nil

	case gg.StatCount:
		return Count{}, nil

	case gg.StatSum:
		return Sum{}, nil

	case gg.StatSummary:
		s := Summary{
			Fun:    p.Str("fun", "mean"),
			FunMin: p.Str("fun.min", ""),
			FunMax: p.Str("fun.max", ""),
		}
		for _, f := range []string{s.Fun, s.FunMin, s.FunMax} {
			if f != "" && !knownSummary(f) {
				return nil, &ConfigError{Field: "fun", Reason: fmt.Sprintf("unknown summary %q", f)}
			}
		}
		return s, nil

	case gg.StatBin:
		b := Bin{
			Bins:     p.Int("bins", 30),
			Width:    p.Float("binwidth", gg.Unset()),
			Boundary: p.Float("boundary", gg.Unset()),
		}
		if b.Bins < 1 {
			return nil, &ConfigError{Field: "bins", Reason: "need at least one bin"}
		}
		if gg.Has(b.Width) && b.Width <= 0 {
			return nil, &ConfigError{Field: "binwidth", Reason: "must be positive"}
		}
		return b, nil

	case gg.StatBin2D:
		b := Bin2D{Bins: p.Int("bins", 30), XWidth: gg.Unset(), YWidth: gg.Unset()}
		if b.Bins < 1 {
			return nil, &ConfigError{Field: "bins", Reason: "need at least one bin"}
		}
		if ws := p.Floats("binwidth"); len(ws) > 0 {
			if len(ws) != 2 {
				return nil, &ConfigError{Field: "binwidth", Reason: "need one width per axis"}
			}
			if ws[0] <= 0 || ws[1] <= 0 {
				return nil, &ConfigError{Field: "binwidth", Reason: "must be positive"}
			}
			b.XWidth, b.YWidth = ws[0], ws[1]
		}
		return b, nil

	case gg.StatBoxplot:
		b := Boxplot{Coef: p.Float("coef", 1.5)}
		if b.Coef <= 0 {
			return nil, &ConfigError{Field: "coef", Reason: "must be positive"}
		}
		return b, nil

	case gg.StatDensity:
		d := Density{
			Bandwidth: p.Float("bw", gg.Unset()),
			Adjust:    p.Float("adjust", 1),
			N:         p.Int("n", 200),
		}
		if err := checkDensity(d.Bandwidth, d.Adjust, d.N); err != nil {
			return nil, err
		}
		return d, nil

	case gg.StatYDensity:
		d := YDensity{
			Bandwidth: p.Float("bw", gg.Unset()),
			Adjust:    p.Float("adjust", 1),
			N:         p.Int("n", 200),
			Scale:     p.Str("scale", "area"),
		}
		if err := checkDensity(d.Bandwidth, d.Adjust, d.N); err != nil {
			return nil, err
		}
		switch d.Scale {
		case "area", "count", "width":
		default:
			return nil, &ConfigError{Field: "scale", Reason: fmt.Sprintf("unknown mode %q", d.Scale)}
		}
		return d, nil

	case gg.StatECDF:
		return ECDF{}, nil

	case gg.StatQQ:
		if dist := p.Str("distribution", "norm"); dist != "norm" {
			return nil, &ConfigError{Field: "distribution", Reason: fmt.Sprintf("unsupported %q", dist)}
		}
		return QQ{}, nil

	case gg.StatSmooth:
		s := Smooth{
			Method: p.Str("method", "loess"),
			Span:   p.Float("span", 0.5),
			Degree: p.Int("degree", 0),
			N:      p.Int("n", 200),
		}
		switch s.Method {
		case "loess", "lm":
		default:
			return nil, &ConfigError{Field: "method", Reason: fmt.Sprintf("unknown method %q", s.Method)}
		}
		if s.Degree == 0 {
			if s.Method == "loess" {
				s.Degree = 2
			} else {
				s.Degree = 1
			}
		}
		if s.Degree < 1 {
			return nil, &ConfigError{Field: "degree", Reason: "must be positive"}
		}
		if s.Span <= 0 || s.Span > 1 {
			return nil, &ConfigError{Field: "span", Reason: "must be in (0, 1]"}
		}
		if s.N < 2 {
			return nil, &ConfigError{Field: "n", Reason: "need at least two points"}
		}
		return s, nil

	case gg.StatQuantile:
		q := Quantile{
			Quantiles: p.Floats("quantiles"),
			Degree:    p.Int("degree", 1),
			N:         p.Int("n", 200),
		}
		if len(q.Quantiles) == 0 {
			q.Quantiles = []float64{0.25, 0.5, 0.75}
		}
		for _, tau := range q.Quantiles {
			if !(tau > 0 && tau < 1) {
				return nil, &ConfigError{Field: "quantiles", Reason: "must be in (0, 1)"}
			}
		}
		if q.Degree < 1 {
			return nil, &ConfigError{Field: "degree", Reason: "must be positive"}
		}
		if q.N < 2 {
			return nil, &ConfigError{Field: "n", Reason: "need at least two points"}
		}
		return q, nil

	case gg.StatContour:
		c := Contour{Levels: p.Floats("levels"), Bins: p.Int("bins", 10)}
		if c.Bins < 1 {
			return nil, &ConfigError{Field: "bins", Reason: "need at least one level"}
		}
		for _, l := range c.Levels {
			if !gg.Has(l) || math.IsInf(l, 0) {
				return nil, &ConfigError{Field: "levels", Reason: "must be finite"}
			}
		}
		return c, nil

	case gg.StatDensity2D:
		d := Density2D{N: p.Int("n", 100), Bins: p.Int("bins", 10)}
		if d.N < 2 {
			return nil, &ConfigError{Field: "n", Reason: "need at least two grid points"}
		}
		if d.Bins < 1 {
			return nil, &ConfigError{Field: "bins", Reason: "need at least one level"}
		}
		return d, nil

	case gg.StatUnique:
		return Unique{}, nil

	case gg.StatSample:
		s := Sample{N: p.Int("n", 1000), Seed: int64(p.Int("seed", 1))}
		if s.N < 1 {
			return nil, &ConfigError{Field: "n", Reason: "must be positive"}
		}
		return s, nil

	case gg.StatFunction:
		f := Function{N: p.Int("n", 101), XMin: gg.Unset(), XMax: gg.Unset()}
		fun, ok := p.Func("fun")
		if !ok {
			return nil, &ConfigError{Field: "fun", Reason: "required"}
		}
		f.Fun = fun
		if f.N < 2 {
			return nil, &ConfigError{Field: "n", Reason: "need at least two points"}
		}
		if lim := p.Floats("xlim"); len(lim) > 0 {
			if len(lim) != 2 || lim[0] > lim[1] {
				return nil, &ConfigError{Field: "xlim", Reason: "need min and max"}
			}
			f.XMin, f.XMax = lim[0], lim[1]
		}
		return f, nil

	case gg.StatSF:
		s := SF{GeomType: p.Str("geom_type", "polygon")}
		switch s.GeomType {
		case "point", "line", "polygon":
		default:
			return nil, &ConfigError{Field: "geom_type", Reason: fmt.Sprintf("unknown type %q", s.GeomType)}
		}
		return s, nil

	case gg.StatAlign:
		a := Align{N: p.Int("n", 200)}
		if a.N < 2 {
			return nil, &ConfigError{Field: "n", Reason: "need at least two points"}
		}
		return a, nil
	}
	return nil, &ConfigError{Field: "kind", Reason: fmt.Sprintf("unknown stat %q", kind)}
}

func checkDensity(bw, adjust float64, n int) error {
	if gg.Has(bw) && bw <= 0 {
		return &ConfigError{Field: "bw", Reason: "must be positive"}
	}
	if adjust <= 0 {
		return &ConfigError{Field: "adjust", Reason: "must be positive"}
	}
	if n < 2 {
		return &ConfigError{Field: "n", Reason: "need at least two grid points"}
	}
	return nil
}

// Identity emits one row per table row with the mapped aesthetics
// copied as they are.
type Identity struct{}

func (Identity) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	return Rows(t, m), nil
}

// Rows converts the mapped columns of t into one layer row per table
// row. Positional aesthetics become numbers, discrete ones level
// strings, and color and fill keep their raw values so the scales can
// decide. When no group column is mapped the group key is derived
// from the discrete aesthetics of the row.
func Rows(t data.Table, m gg.Mapping) []gg.LayerData {
	out := make([]gg.LayerData, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		d := gg.NewLayerData()
		d.Row = i

		num := func(a gg.Aes, dst *float64) {
			if col, ok := m[a]; ok && t.Has(col) {
				if x, ok := t.Value(col, i).Num(); ok {
					*dst = x
				}
			}
		}
		num(gg.AesX, &d.X)
		num(gg.AesY, &d.Y)
		num(gg.AesXMin, &d.XMin)
		num(gg.AesXMax, &d.XMax)
		num(gg.AesYMin, &d.YMin)
		num(gg.AesYMax, &d.YMax)
		num(gg.AesXEnd, &d.XEnd)
		num(gg.AesYEnd, &d.YEnd)
		num(gg.AesAngle, &d.Angle)
		num(gg.AesRadius, &d.Radius)
		num(gg.AesSize, &d.Size)
		num(gg.AesAlpha, &d.Alpha)

		str := func(a gg.Aes, dst *string) {
			if col, ok := m[a]; ok && t.Has(col) {
				if s, ok := t.Value(col, i).Level(); ok {
					*dst = s
				}
			}
		}
		str(gg.AesLinetype, &d.Linetype)
		str(gg.AesShape, &d.Shape)
		str(gg.AesLabel, &d.Label)

		if col, ok := m[gg.AesColor]; ok && t.Has(col) {
			d.Color = t.Value(col, i)
		}
		if col, ok := m[gg.AesFill]; ok && t.Has(col) {
			d.Fill = t.Value(col, i)
		}

		if col, ok := m[gg.AesGroup]; ok && t.Has(col) {
			if s, ok := t.Value(col, i).Level(); ok {
				d.Group = s
			}
		} else {
			d.Group = impliedGroup(&d)
		}

		out = append(out, d)
	}
	return out
}

// impliedGroup joins the discrete aesthetics of a row into its series
// key. Numeric color or fill values map onto continuous scales and do
// not split series.
func impliedGroup(d *gg.LayerData) string {
	var parts []string
	if s, ok := d.Color.Level(); ok && !d.Color.IsNum() {
		parts = append(parts, s)
	}
	if s, ok := d.Fill.Level(); ok && !d.Fill.IsNum() {
		parts = append(parts, s)
	}
	if d.Linetype != "" {
		parts = append(parts, d.Linetype)
	}
	if d.Shape != "" {
		parts = append(parts, d.Shape)
	}
	return strings.Join(parts, ":")
}

// A group is one series of rows sharing a group key, in input order.
type group struct {
	key  string
	rows []gg.LayerData
}

// split partitions rows by group key, keeping first-seen order.
func split(rows []gg.LayerData) []group {
	var gs []group
	index := map[string]int{}
	for _, d := range rows {
		i, ok := index[d.Group]
		if !ok {
			i = len(gs)
			index[d.Group] = i
			gs = append(gs, group{key: d.Group})
		}
		gs[i].rows = append(gs[i].rows, d)
	}
	return gs
}

// proto seeds an output row with the series aesthetics of g so
// derived rows keep their color, fill and group.
func (g group) proto() gg.LayerData {
	d := gg.NewLayerData()
	if len(g.rows) == 0 {
		return d
	}
	first := g.rows[0]
	d.Color, d.Fill = first.Color, first.Fill
	d.Linetype, d.Shape = first.Linetype, first.Shape
	d.Group = first.Group
	return d
}

// weightOf returns the mapped weight of a row, 1 when none is mapped.
func weightOf(t data.Table, m gg.Mapping, d gg.LayerData) float64 {
	col, ok := m[gg.AesWeight]
	if !ok || d.Row < 0 || !t.Has(col) {
		return 1
	}
	if w, ok := t.Value(col, d.Row).Num(); ok {
		return w
	}
	return 1
}

// finiteXs collects the finite x values of rows.
func finiteXs(rows []gg.LayerData) []float64 {
	var xs []float64
	for _, d := range rows {
		if gg.Has(d.X) {
			xs = append(xs, d.X)
		}
	}
	return xs
}

// finiteYs collects the finite y values of rows.
func finiteYs(rows []gg.LayerData) []float64 {
	var ys []float64
	for _, d := range rows {
		if gg.Has(d.Y) {
			ys = append(ys, d.Y)
		}
	}
	return ys
}

// pairsXY collects the rows with both x and y finite. The returned
// index maps each pair back to its row in rows.
func pairsXY(rows []gg.LayerData) (xs, ys []float64, idx []int) {
	for i, d := range rows {
		if gg.Has(d.X) && gg.Has(d.Y) {
			xs = append(xs, d.X)
			ys = append(ys, d.Y)
			idx = append(idx, i)
		}
	}
	return xs, ys, idx
}

func minmax(xs []float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}

func sortedCopy(xs []float64) []float64 {
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	return s
}
