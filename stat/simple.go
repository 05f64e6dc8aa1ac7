package stat

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/vec"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

// Unique drops duplicate rows, keeping the first of each repeated
// combination of aesthetics.
type Unique struct{}

func (Unique) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	seen := map[string]bool{}
	var out []gg.LayerData
	for _, d := range rows {
		k := rowKey(&d)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, d)
	}
	return out, nil
}

func rowKey(d *gg.LayerData) string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	return strings.Join([]string{
		f(d.X), f(d.Y), f(d.XMin), f(d.XMax), f(d.YMin), f(d.YMax),
		f(d.XEnd), f(d.YEnd), f(d.Size), f(d.Alpha),
		d.Color.String(), d.Fill.String(),
		d.Group, d.Label, d.Shape, d.Linetype,
	}, "\x1f")
}

// Sample keeps at most N randomly chosen rows, preserving their
// original order. A fixed seed thins a large layer the same way every
// run.
type Sample struct {
	N    int
	Seed int64
}

func (s Sample) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	if len(rows) <= s.N {
		return rows, nil
	}
	rng := rand.New(rand.NewSource(s.Seed))
	keep := rng.Perm(len(rows))[:s.N]
	sort.Ints(keep)
	out := make([]gg.LayerData, 0, s.N)
	for _, i := range keep {
		out = append(out, rows[i])
	}
	return out, nil
}

// Function samples a user supplied function of x on N points. The
// range comes from XMin and XMax when set, otherwise from the mapped
// x values.
type Function struct {
	Fun        func(float64) float64
	N          int
	XMin, XMax float64
}

func (f Function) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	lo, hi := f.XMin, f.XMax
	if !gg.Has(lo) || !gg.Has(hi) {
		xs := finiteXs(Rows(t, m))
		if len(xs) == 0 {
			return nil, fmt.Errorf("stat: function needs xlim or mapped x values")
		}
		lo, hi = minmax(xs)
	}
	var out []gg.LayerData
	for _, x := range vec.Linspace(lo, hi, f.N) {
		d := gg.NewLayerData()
		d.X = x
		d.Y = f.Fun(x)
		out = append(out, d)
	}
	return out, nil
}

// SF passes simple feature vertices through and tags each row with
// its geometry type, so the sf geom knows whether to scatter points,
// join lines or close rings. Multi-part features need one group per
// part.
type SF struct {
	GeomType string
}

func (s SF) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	for i := range rows {
		rows[i].Meta = gg.SFMeta{GeomType: s.GeomType}
	}
	return rows, nil
}

// Align interpolates every series onto one shared x grid of N points
// so areas stack cleanly and series compare point by point. Series
// extend flat beyond their own range.
type Align struct {
	N int
}

func (a Align) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	type series struct {
		g      group
		xs, ys []float64
	}

	rows := Rows(t, m)
	var ss []series
	var ends []float64
	for _, g := range split(rows) {
		xs, ys, _ := pairsXY(g.rows)
		if len(xs) == 0 {
			continue
		}
		ord := make([]int, len(xs))
		for i := range ord {
			ord[i] = i
		}
		sort.Slice(ord, func(i, j int) bool { return xs[ord[i]] < xs[ord[j]] })
		s := series{g: g, xs: make([]float64, len(xs)), ys: make([]float64, len(xs))}
		for i, o := range ord {
			s.xs[i], s.ys[i] = xs[o], ys[o]
		}
		lo, hi := minmax(xs)
		ends = append(ends, lo, hi)
		ss = append(ss, s)
	}
	if len(ss) == 0 {
		return nil, nil
	}

	lo, hi := minmax(ends)
	var out []gg.LayerData
	for _, s := range ss {
		for _, x := range vec.Linspace(lo, hi, a.N) {
			d := s.g.proto()
			d.X = x
			d.Y = interp(s.xs, s.ys, x)
			out = append(out, d)
		}
	}
	return out, nil
}

// interp linearly interpolates ys over the ascending xs at x,
// clamping beyond the ends.
func interp(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return ys[i]
	}
	t := (x - xs[i-1]) / (xs[i] - xs[i-1])
	return ys[i-1] + t*(ys[i]-ys[i-1])
}
