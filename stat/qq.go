package stat

import (
	"fmt"
	"math"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

// QQ pairs the sorted sample values with the quantiles of the
// standard normal distribution. The ith order statistic lands at the
// theoretical quantile of probability (i - 0.5) / n.
type QQ struct{}

func (QQ) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	if !m.Has(gg.AesSample) {
		return nil, fmt.Errorf("stat: qq needs a sample mapping")
	}
	col := m.Col(gg.AesSample)
	rows := Rows(t, m)
	for i := range rows {
		if v, ok := t.Value(col, rows[i].Row).Num(); ok {
			rows[i].Y = v
		} else {
			rows[i].Y = gg.Unset()
		}
	}

	var out []gg.LayerData
	for _, g := range split(rows) {
		xs := sortedCopy(finiteYs(g.rows))
		n := len(xs)
		if n == 0 {
			continue
		}
		for i, x := range xs {
			theo := normInvCDF((float64(i) + 0.5) / float64(n))
			d := g.proto()
			d.X = theo
			d.Y = x
			d.Meta = gg.QQMeta{Theoretical: theo}
			out = append(out, d)
		}
	}
	return out, nil
}

// normInvCDF is Acklam's rational approximation of the standard
// normal quantile function, good to about 1e-9 over (0, 1).
func normInvCDF(p float64) float64 {
	const (
		a1 = -3.969683028665376e+01
		a2 = 2.209460984245205e+02
		a3 = -2.759285104469687e+02
		a4 = 1.383577518672690e+02
		a5 = -3.066479806614716e+01
		a6 = 2.506628277459239e+00

		b1 = -5.447609879822406e+01
		b2 = 1.615858368580409e+02
		b3 = -1.556989798598866e+02
		b4 = 6.680131188771972e+01
		b5 = -1.328068155288572e+01

		c1 = -7.784894002430293e-03
		c2 = -3.223964580411365e-01
		c3 = -2.400758277161838e+00
		c4 = -2.549732539343734e+00
		c5 = 4.374664141464968e+00
		c6 = 2.938163982698783e+00

		d1 = 7.784695709041462e-03
		d2 = 3.224671290700398e-01
		d3 = 2.445134137142996e+00
		d4 = 3.754408661907416e+00

		pLow  = 0.02425
		pHigh = 1 - pLow
	)
	switch {
	case p <= 0:
		return math.Inf(-1)
	case p >= 1:
		return math.Inf(1)
	case p < pLow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c1*q+c2)*q+c3)*q+c4)*q+c5)*q + c6) /
			((((d1*q+d2)*q+d3)*q+d4)*q + 1)
	case p > pHigh:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c1*q+c2)*q+c3)*q+c4)*q+c5)*q + c6) /
			((((d1*q+d2)*q+d3)*q+d4)*q + 1)
	}
	q := p - 0.5
	r := q * q
	return (((((a1*r+a2)*r+a3)*r+a4)*r+a5)*r + a6) * q /
		(((((b1*r+b2)*r+b3)*r+b4)*r+b5)*r + 1)
}
