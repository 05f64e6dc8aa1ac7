package stat

import (
	"math"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

// An axis is an equal width binning of one dimension.
type axis struct {
	origin, width float64
	n             int
}

// binAxis fits bins over vs. An unset width derives one from the bin
// count, an unset boundary aligns the first edge on the minimum. A
// degenerate range gets a single unit bin centered on it.
func binAxis(vs []float64, bins int, width, boundary float64) axis {
	min, max := minmax(vs)
	if !gg.Has(width) {
		width = (max - min) / float64(bins)
	}
	origin := min
	if width <= 0 {
		width, origin = 1, min-0.5
	} else if gg.Has(boundary) {
		origin = boundary + width*math.Floor((min-boundary)/width)
	}
	n := int(math.Ceil((max - origin) / width))
	if n < 1 {
		n = 1
	}
	return axis{origin, width, n}
}

// cell returns the bin of v. The last bin is closed on the right so
// the maximum does not fall off the end.
func (a axis) cell(v float64) int {
	i := int((v - a.origin) / a.width)
	if i < 0 {
		i = 0
	}
	if i >= a.n {
		i = a.n - 1
	}
	return i
}

func (a axis) lo(i int) float64 { return a.origin + float64(i)*a.width }

// Bin groups x values into equal width intervals. Histograms and
// frequency polygons default to this stat.
//
// Edges are fitted once over the whole layer so every series lands in
// the same bins and stacked histograms line up. Each series emits all
// bins, empty ones included.
type Bin struct {
	Bins     int     // number of bins when Width is unset
	Width    float64 // bin width, unset to derive one from Bins
	Boundary float64 // a bin edge to align on, unset for the minimum
}

func (b Bin) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	all := finiteXs(rows)
	if len(all) == 0 {
		return nil, nil
	}
	a := binAxis(all, b.Bins, b.Width, b.Boundary)

	var out []gg.LayerData
	for _, g := range split(rows) {
		sums := make([]float64, a.n)
		ns := make([]int, a.n)
		total := 0.0
		seen := false
		for _, d := range g.rows {
			if !gg.Has(d.X) {
				continue
			}
			w := weightOf(t, m, d)
			sums[a.cell(d.X)] += w
			ns[a.cell(d.X)]++
			total += w
			seen = true
		}
		if !seen {
			continue
		}
		for i := 0; i < a.n; i++ {
			d := g.proto()
			d.XMin, d.XMax = a.lo(i), a.lo(i+1)
			d.X = (d.XMin + d.XMax) / 2
			d.Y = sums[i]
			d.YMin, d.YMax = 0, sums[i]
			density := 0.0
			if total > 0 {
				density = sums[i] / (total * a.width)
			}
			d.Meta = gg.BinMeta{Start: d.XMin, End: d.XMax, Count: ns[i], Density: density}
			out = append(out, d)
		}
	}
	return out, nil
}

// Bin2D counts rows on a two dimensional grid. The count rides on the
// fill aesthetic; empty cells are not emitted.
type Bin2D struct {
	Bins           int     // bins per axis when the widths are unset
	XWidth, YWidth float64 // cell size, unset to derive from Bins
}

func (b Bin2D) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	xs, ys, idx := pairsXY(rows)
	if len(xs) == 0 {
		return nil, nil
	}
	xa := binAxis(xs, b.Bins, b.XWidth, gg.Unset())
	ya := binAxis(ys, b.Bins, b.YWidth, gg.Unset())

	sums := make([]float64, xa.n*ya.n)
	ns := make([]int, xa.n*ya.n)
	total := 0.0
	for k := range xs {
		c := ya.cell(ys[k])*xa.n + xa.cell(xs[k])
		w := weightOf(t, m, rows[idx[k]])
		sums[c] += w
		ns[c]++
		total += w
	}

	var out []gg.LayerData
	for iy := 0; iy < ya.n; iy++ {
		for ix := 0; ix < xa.n; ix++ {
			c := iy*xa.n + ix
			if ns[c] == 0 {
				continue
			}
			d := gg.NewLayerData()
			d.XMin, d.XMax = xa.lo(ix), xa.lo(ix+1)
			d.YMin, d.YMax = ya.lo(iy), ya.lo(iy+1)
			d.X, d.Y = (d.XMin+d.XMax)/2, (d.YMin+d.YMax)/2
			d.Fill = gg.Num(sums[c])
			prop := 0.0
			if total > 0 {
				prop = sums[c] / total
			}
			d.Meta = gg.CountMeta{N: ns[c], Prop: prop}
			out = append(out, d)
		}
	}
	return out, nil
}
