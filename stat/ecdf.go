package stat

import (
	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

// ECDF computes the empirical cumulative distribution of x per
// series: one step per distinct value rising to the fraction of
// observations at or below it. Duplicates collapse into a single
// step.
type ECDF struct{}

func (ECDF) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	var out []gg.LayerData
	for _, g := range split(rows) {
		xs := sortedCopy(finiteXs(g.rows))
		n := len(xs)
		if n == 0 {
			continue
		}
		for i := 0; i < n; {
			j := i + 1
			for j < n && xs[j] == xs[i] {
				j++
			}
			d := g.proto()
			d.X = xs[i]
			d.Y = float64(j) / float64(n)
			d.Meta = gg.ECDFMeta{N: n}
			out = append(out, d)
			i = j
		}
	}
	return out, nil
}
