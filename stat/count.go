package stat

import (
	"sort"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

// Count tallies rows per distinct x value, one output row per value
// and series. A mapped weight column sums weights instead of counting
// rows. Bars default to this stat.
type Count struct{}

func (Count) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	var out []gg.LayerData
	for _, g := range split(rows) {
		sums := map[float64]float64{}
		ns := map[float64]int{}
		total := 0.0
		for _, d := range g.rows {
			if !gg.Has(d.X) {
				continue
			}
			w := weightOf(t, m, d)
			sums[d.X] += w
			ns[d.X]++
			total += w
		}
		for _, x := range sortedKeys(sums) {
			d := g.proto()
			d.X = x
			d.Y = sums[x]
			d.YMin, d.YMax = 0, sums[x]
			prop := 0.0
			if total > 0 {
				prop = sums[x] / total
			}
			d.Meta = gg.CountMeta{N: ns[x], Prop: prop}
			out = append(out, d)
		}
	}
	return out, nil
}

// Sum tallies rows per distinct x, y location, for showing how much
// overplotting a scatter hides. The tally rides on the size
// aesthetic.
type Sum struct{}

func (Sum) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	var out []gg.LayerData
	for _, g := range split(rows) {
		type xy struct{ x, y float64 }
		sums := map[xy]float64{}
		ns := map[xy]int{}
		var order []xy
		for _, d := range g.rows {
			if !gg.Has(d.X) || !gg.Has(d.Y) {
				continue
			}
			at := xy{d.X, d.Y}
			if _, seen := sums[at]; !seen {
				order = append(order, at)
			}
			sums[at] += weightOf(t, m, d)
			ns[at]++
		}
		for _, at := range order {
			d := g.proto()
			d.X, d.Y = at.x, at.y
			d.Size = sums[at]
			d.Meta = gg.SummaryMeta{N: ns[at], Fun: "sum"}
			out = append(out, d)
		}
	}
	return out, nil
}

// Summary reduces the y values at each x with a summary function.
// FunMin and FunMax, when set, fill the ymin and ymax aesthetics for
// range geoms like pointrange and errorbar.
type Summary struct {
	Fun    string
	FunMin string
	FunMax string
}

func (s Summary) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	var out []gg.LayerData
	for _, g := range split(rows) {
		at := map[float64][]float64{}
		for _, d := range g.rows {
			if !gg.Has(d.X) || !gg.Has(d.Y) {
				continue
			}
			at[d.X] = append(at[d.X], d.Y)
		}
		for _, x := range sortedGroupKeys(at) {
			ys := at[x]
			d := g.proto()
			d.X = x
			d.Y = summarize(s.Fun, ys)
			if s.FunMin != "" {
				d.YMin = summarize(s.FunMin, ys)
			}
			if s.FunMax != "" {
				d.YMax = summarize(s.FunMax, ys)
			}
			d.Meta = gg.SummaryMeta{N: len(ys), Fun: s.Fun}
			out = append(out, d)
		}
	}
	return out, nil
}

func knownSummary(fun string) bool {
	switch fun {
	case "mean", "median", "min", "max", "sum":
		return true
	}
	return false
}

func summarize(fun string, ys []float64) float64 {
	if len(ys) == 0 {
		return gg.Unset()
	}
	switch fun {
	case "mean":
		sum := 0.0
		for _, y := range ys {
			sum += y
		}
		return sum / float64(len(ys))
	case "median":
		return quantile(sortedCopy(ys), 0.5)
	case "min":
		min, _ := minmax(ys)
		return min
	case "max":
		_, max := minmax(ys)
		return max
	case "sum":
		sum := 0.0
		for _, y := range ys {
			sum += y
		}
		return sum
	}
	return gg.Unset()
}

func sortedKeys(m map[float64]float64) []float64 {
	ks := make([]float64, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Float64s(ks)
	return ks
}

func sortedGroupKeys(m map[float64][]float64) []float64 {
	ks := make([]float64, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Float64s(ks)
	return ks
}
