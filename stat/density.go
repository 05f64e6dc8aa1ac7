package stat

import (
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

// Density estimates the distribution of x with a gaussian kernel,
// one smooth curve per series.
//
// The default bandwidth is Scott's rule and the curve is sampled on N
// evenly spaced points covering the data widened by three bandwidths
// on both sides, so the tails run out instead of being clipped.
type Density struct {
	Bandwidth float64 // unset for Scott's rule
	Adjust    float64 // bandwidth multiplier
	N         int     // grid points
}

func (e Density) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	var out []gg.LayerData
	for _, g := range split(rows) {
		xs, ws := weightedXs(t, m, g.rows)
		grid, dens, ok := kde1d(xs, ws, e.Bandwidth, e.Adjust, e.N, 3)
		if !ok {
			continue
		}
		maxd := 0.0
		for _, d := range dens {
			if d > maxd {
				maxd = d
			}
		}
		for i := range grid {
			d := g.proto()
			d.X = grid[i]
			d.Y = dens[i]
			d.YMin, d.YMax = 0, dens[i]
			scaled := 0.0
			if maxd > 0 {
				scaled = dens[i] / maxd
			}
			d.Meta = gg.DensityMeta{Density: dens[i], Scaled: scaled, N: len(xs)}
			out = append(out, d)
		}
	}
	return out, nil
}

// YDensity estimates the distribution of y at each x, the stat behind
// violins. The curve is trimmed to the observed range.
//
// Scale picks how violins compare: "area" scales against the densest
// violin of the layer, "count" additionally shrinks small samples,
// "width" lets every violin reach full width.
type YDensity struct {
	Bandwidth float64
	Adjust    float64
	N         int
	Scale     string
}

func (e YDensity) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	type violin struct {
		proto      gg.LayerData
		x          float64
		grid, dens []float64
		max        float64
		n          int
	}

	rows := Rows(t, m)
	var vs []violin
	globalMax, maxN := 0.0, 0
	for _, g := range split(rows) {
		at := map[float64][]int{}
		for i, d := range g.rows {
			if !gg.Has(d.X) || !gg.Has(d.Y) {
				continue
			}
			at[d.X] = append(at[d.X], i)
		}
		order := make([]float64, 0, len(at))
		for x := range at {
			order = append(order, x)
		}
		sort.Float64s(order)
		for _, x := range order {
			idx := at[x]
			var ys, ws []float64
			allOne := true
			for _, i := range idx {
				ys = append(ys, g.rows[i].Y)
				w := weightOf(t, m, g.rows[i])
				ws = append(ws, w)
				allOne = allOne && w == 1
			}
			if allOne {
				ws = nil
			}
			grid, dens, ok := kde1d(ys, ws, e.Bandwidth, e.Adjust, e.N, 0)
			if !ok {
				continue
			}
			v := violin{proto: g.proto(), x: x, grid: grid, dens: dens, n: len(ys)}
			for _, d := range dens {
				if d > v.max {
					v.max = d
				}
			}
			if v.max > globalMax {
				globalMax = v.max
			}
			if v.n > maxN {
				maxN = v.n
			}
			vs = append(vs, v)
		}
	}

	var out []gg.LayerData
	for _, v := range vs {
		for i := range v.grid {
			d := v.proto
			d.X = v.x
			d.Y = v.grid[i]
			scaled := 0.0
			switch {
			case e.Scale == "width" && v.max > 0:
				scaled = v.dens[i] / v.max
			case e.Scale == "count" && globalMax > 0 && maxN > 0:
				scaled = v.dens[i] / globalMax * float64(v.n) / float64(maxN)
			case globalMax > 0:
				scaled = v.dens[i] / globalMax
			}
			d.Meta = gg.DensityMeta{Density: v.dens[i], Scaled: scaled, N: v.n}
			out = append(out, d)
		}
	}
	return out, nil
}

// weightedXs collects the finite x values of rows with their mapped
// weights. The weights come back nil when nothing is mapped.
func weightedXs(t data.Table, m gg.Mapping, rows []gg.LayerData) (xs, ws []float64) {
	allOne := true
	for _, d := range rows {
		if !gg.Has(d.X) {
			continue
		}
		w := weightOf(t, m, d)
		xs = append(xs, d.X)
		ws = append(ws, w)
		allOne = allOne && w == 1
	}
	if allOne {
		ws = nil
	}
	return xs, ws
}

// kde1d runs a gaussian kernel density estimate over vs, sampled on n
// points spanning the data widened by widen bandwidths per side. It
// reports false when vs cannot support an estimate.
func kde1d(vs, ws []float64, bandwidth, adjust float64, n int, widen float64) (grid, dens []float64, ok bool) {
	if len(vs) < 2 {
		return nil, nil, false
	}
	sample := stats.Sample{Xs: vs, Weights: ws}
	bw := bandwidth
	if !gg.Has(bw) {
		bw = stats.BandwidthScott(sample)
	}
	bw *= adjust
	if !(bw > 0) {
		return nil, nil, false
	}
	kde := stats.KDE{Sample: sample, Bandwidth: bw}
	min, max := minmax(vs)
	grid = vec.Linspace(min-widen*bw, max+widen*bw, n)
	return grid, vec.Map(kde.PDF, grid), true
}
