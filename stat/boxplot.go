package stat

import (
	"math"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

// Boxplot computes the five number summary of y per x group: the
// quartile box, whiskers and outliers.
//
// Whiskers end at the most extreme observations still inside
// Coef interquartile ranges of the box, not at the fences themselves.
// Everything beyond becomes an outlier. Each output row also carries
// sqrt(n) relative to the widest group so boxes can be drawn with
// width proportional to their sample size.
type Boxplot struct {
	Coef float64
}

func (b Boxplot) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	var out []gg.LayerData
	maxN := 0
	for _, g := range split(rows) {
		at := map[float64][]float64{}
		for _, d := range g.rows {
			if !gg.Has(d.X) || !gg.Has(d.Y) {
				continue
			}
			at[d.X] = append(at[d.X], d.Y)
		}
		for _, x := range sortedGroupKeys(at) {
			ys := sortedCopy(at[x])
			q1 := quantile(ys, 0.25)
			med := quantile(ys, 0.5)
			q3 := quantile(ys, 0.75)
			iqr := q3 - q1
			loFence := q1 - b.Coef*iqr
			hiFence := q3 + b.Coef*iqr

			lo, hi := math.NaN(), math.NaN()
			var outliers []float64
			for _, y := range ys {
				if y < loFence || y > hiFence {
					outliers = append(outliers, y)
					continue
				}
				if !gg.Has(lo) {
					lo = y
				}
				hi = y
			}
			if !gg.Has(lo) {
				lo, hi = med, med
			}

			d := g.proto()
			d.X = x
			d.Y = med
			d.YMin, d.YMax = lo, hi
			d.Meta = gg.BoxplotMeta{
				Q1:        q1,
				Median:    med,
				Q3:        q3,
				WhiskerLo: lo,
				WhiskerHi: hi,
				Outliers:  outliers,
				N:         len(ys),
			}
			if len(ys) > maxN {
				maxN = len(ys)
			}
			out = append(out, d)
		}
	}
	for i := range out {
		meta := out[i].Meta.(gg.BoxplotMeta)
		meta.RelVarWidth = math.Sqrt(float64(meta.N) / float64(maxN))
		out[i].Meta = meta
	}
	return out, nil
}

// quantile returns the pth sample quantile of the sorted xs,
// interpolating linearly between order statistics. This matches the
// default of most statistics environments (type 7).
func quantile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return gg.Unset()
	}
	if n == 1 {
		return xs[0]
	}
	h := (float64(n)-1)*p + 1
	j := math.Floor(h)
	switch {
	case j < 1:
		return xs[0]
	case j >= float64(n):
		return xs[n-1]
	}
	i := int(j)
	return xs[i-1] + (h-j)*(xs[i]-xs[i-1])
}
