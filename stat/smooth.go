package stat

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/vec"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

// Smooth fits a trend through the x, y values of each series and
// samples it on N points across the x range. Method "loess" fits
// locally weighted polynomials, "lm" a single least squares
// polynomial of the given degree. Weights are honored by "lm".
type Smooth struct {
	Method string
	Span   float64
	Degree int
	N      int
}

func (s Smooth) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	var out []gg.LayerData
	for _, g := range split(rows) {
		xs, ys, idx := pairsXY(g.rows)
		need := s.Degree + 2
		if s.Method == "loess" && need < 4 {
			need = 4
		}
		if len(xs) < need {
			continue
		}

		var f func(float64) float64
		if s.Method == "lm" {
			ws := make([]float64, len(idx))
			allOne := true
			for k, i := range idx {
				ws[k] = weightOf(t, m, g.rows[i])
				allOne = allOne && ws[k] == 1
			}
			if allOne {
				ws = nil
			}
			f = fit.PolynomialRegression(xs, ys, ws, s.Degree).F
		} else {
			f = fit.LOESS(xs, ys, s.Degree, s.Span)
		}

		min, max := minmax(xs)
		for _, x := range vec.Linspace(min, max, s.N) {
			d := g.proto()
			d.X = x
			d.Y = f(x)
			d.Meta = gg.SmoothMeta{Method: s.Method}
			out = append(out, d)
		}
	}
	return out, nil
}

// Quantile fits regression lines through chosen quantiles of y given
// x, by iteratively reweighted least squares. Each series and
// quantile yields one sampled curve in its own group.
type Quantile struct {
	Quantiles []float64
	Degree    int
	N         int
}

func (q Quantile) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	var out []gg.LayerData
	for _, g := range split(rows) {
		xs, ys, _ := pairsXY(g.rows)
		if len(xs) < q.Degree+2 {
			continue
		}
		min, max := minmax(xs)
		grid := vec.Linspace(min, max, q.N)
		for _, tau := range q.Quantiles {
			f := quantReg(xs, ys, tau, q.Degree)
			key := strconv.FormatFloat(tau, 'g', -1, 64)
			if g.key != "" {
				key = g.key + ":" + key
			}
			for _, x := range grid {
				d := g.proto()
				d.X = x
				d.Y = f(x)
				d.Group = key
				d.Meta = gg.QuantileMeta{Tau: tau}
				out = append(out, d)
			}
		}
	}
	return out, nil
}

// quantReg estimates the tau quantile regression polynomial. Weighted
// least squares with weights tau/|r| above the fit and (1-tau)/|r|
// below converges on the quantile loss; residuals are floored so the
// weights stay finite.
func quantReg(xs, ys []float64, tau float64, degree int) func(float64) float64 {
	min, max := minmax(ys)
	eps := 1e-6 * (max - min)
	if !(eps > 0) {
		eps = 1e-6
	}
	ws := make([]float64, len(xs))
	for i := range ws {
		ws[i] = 1
	}
	var f func(float64) float64
	for iter := 0; iter < 25; iter++ {
		f = fit.PolynomialRegression(xs, ys, ws, degree).F
		for i := range xs {
			r := ys[i] - f(xs[i])
			a := math.Abs(r)
			if a < eps {
				a = eps
			}
			if r >= 0 {
				ws[i] = tau / a
			} else {
				ws[i] = (1 - tau) / a
			}
		}
	}
	return f
}
