package stat

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
	"github.com/Alipsa/matrix-gg/scale"
)

// Contour traces iso-lines of z over a grid of x, y, z triples. Rows
// sharing a group key form one polyline in emission order. Unless a
// color column is mapped, each row carries its level as a numeric
// color so a continuous color scale can paint the lines.
//
// Levels picks the iso-values directly; when empty, about Bins nice
// levels strictly inside the z range are used.
type Contour struct {
	Levels []float64
	Bins   int
}

func (c Contour) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	xs, ys, z, err := gridFrom(t, m)
	if err != nil {
		return nil, err
	}
	levels := c.Levels
	if len(levels) == 0 {
		levels = insideBreaks(z, c.Bins)
	}
	return traceLevels(xs, ys, z, levels, !m.Has(gg.AesColor)), nil
}

// Density2D estimates the joint density of x and y with a gaussian
// product kernel and traces its contours. Bandwidths follow Scott's
// rule per axis and the grid is N by N points covering the data
// widened by three bandwidths.
type Density2D struct {
	N    int
	Bins int
}

func (e Density2D) Apply(t data.Table, m gg.Mapping) ([]gg.LayerData, error) {
	rows := Rows(t, m)
	xs, ys, _ := pairsXY(rows)
	if len(xs) < 2 {
		return nil, nil
	}
	bwx := stats.BandwidthScott(stats.Sample{Xs: xs})
	bwy := stats.BandwidthScott(stats.Sample{Xs: ys})
	if !(bwx > 0) || !(bwy > 0) {
		return nil, nil
	}

	minx, maxx := minmax(xs)
	miny, maxy := minmax(ys)
	gx := vec.Linspace(minx-3*bwx, maxx+3*bwx, e.N)
	gy := vec.Linspace(miny-3*bwy, maxy+3*bwy, e.N)

	norm := 1 / (float64(len(xs)) * bwx * bwy * 2 * math.Pi)
	z := make([][]float64, len(gy))
	for iy, y := range gy {
		z[iy] = make([]float64, len(gx))
		for ix, x := range gx {
			sum := 0.0
			for k := range xs {
				ux := (x - xs[k]) / bwx
				uy := (y - ys[k]) / bwy
				sum += math.Exp(-0.5 * (ux*ux + uy*uy))
			}
			z[iy][ix] = sum * norm
		}
	}
	return traceLevels(gx, gy, z, insideBreaks(z, e.Bins), !m.Has(gg.AesColor)), nil
}

// traceLevels runs marching squares for every level and flattens the
// chained pieces into polyline rows.
func traceLevels(xs, ys []float64, z [][]float64, levels []float64, colorByLevel bool) []gg.LayerData {
	var out []gg.LayerData
	piece := 0
	for _, level := range levels {
		for _, pc := range gridContours(xs, ys, z, level) {
			for _, p := range pc {
				d := gg.NewLayerData()
				d.X, d.Y = p.x, p.y
				d.Group = fmt.Sprintf("%g:%d", level, piece)
				if colorByLevel {
					d.Color = gg.Num(level)
				}
				d.Meta = gg.ContourMeta{Level: level, Piece: piece}
				out = append(out, d)
			}
			piece++
		}
	}
	return out
}

// gridFrom reshapes the mapped x, y, z triples into a dense grid.
// Grid cells the table does not cover stay unset and are skipped when
// contouring.
func gridFrom(t data.Table, m gg.Mapping) (xs, ys []float64, z [][]float64, err error) {
	if !m.Has(gg.AesX) || !m.Has(gg.AesY) || !m.Has(gg.AesZ) {
		return nil, nil, nil, fmt.Errorf("stat: contour needs x, y and z mappings")
	}
	rows := Rows(t, m)
	zcol := m.Col(gg.AesZ)

	seenX := map[float64]bool{}
	seenY := map[float64]bool{}
	for _, d := range rows {
		if gg.Has(d.X) && gg.Has(d.Y) {
			seenX[d.X] = true
			seenY[d.Y] = true
		}
	}
	xs = sortedBoolKeys(seenX)
	ys = sortedBoolKeys(seenY)

	xi := make(map[float64]int, len(xs))
	for i, x := range xs {
		xi[x] = i
	}
	yi := make(map[float64]int, len(ys))
	for i, y := range ys {
		yi[y] = i
	}

	z = make([][]float64, len(ys))
	for iy := range z {
		z[iy] = make([]float64, len(xs))
		for ix := range z[iy] {
			z[iy][ix] = gg.Unset()
		}
	}
	for _, d := range rows {
		if !gg.Has(d.X) || !gg.Has(d.Y) {
			continue
		}
		if v, ok := t.Value(zcol, d.Row).Num(); ok {
			z[yi[d.Y]][xi[d.X]] = v
		}
	}
	return xs, ys, z, nil
}

// insideBreaks picks about bins nice levels strictly between the z
// extremes, where a level actually produces lines.
func insideBreaks(z [][]float64, bins int) []float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for _, row := range z {
		for _, v := range row {
			if !gg.Has(v) {
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if !(min < max) {
		return nil
	}
	var levels []float64
	for _, b := range scale.Breaks(min, max, bins) {
		if b > min && b < max {
			levels = append(levels, b)
		}
	}
	return levels
}

type pt struct{ x, y float64 }

// gridContours runs marching squares over the grid for one level and
// chains the cell segments into polylines. Saddle cells disambiguate
// on the cell center.
func gridContours(xs, ys []float64, z [][]float64, level float64) [][]pt {
	var segs [][2]pt
	add := func(a, b pt) { segs = append(segs, [2]pt{a, b}) }

	for iy := 0; iy+1 < len(ys); iy++ {
		for ix := 0; ix+1 < len(xs); ix++ {
			z00, z10 := z[iy][ix], z[iy][ix+1]
			z01, z11 := z[iy+1][ix], z[iy+1][ix+1]
			if !gg.Has(z00) || !gg.Has(z10) || !gg.Has(z01) || !gg.Has(z11) {
				continue
			}
			x0, x1 := xs[ix], xs[ix+1]
			y0, y1 := ys[iy], ys[iy+1]

			cross := func(ax, ay, az, bx, by, bz float64) pt {
				t := (level - az) / (bz - az)
				return pt{ax + t*(bx-ax), ay + t*(by-ay)}
			}
			bottom := func() pt { return cross(x0, y0, z00, x1, y0, z10) }
			top := func() pt { return cross(x0, y1, z01, x1, y1, z11) }
			left := func() pt { return cross(x0, y0, z00, x0, y1, z01) }
			right := func() pt { return cross(x1, y0, z10, x1, y1, z11) }

			code := 0
			if z00 >= level {
				code |= 1
			}
			if z10 >= level {
				code |= 2
			}
			if z11 >= level {
				code |= 4
			}
			if z01 >= level {
				code |= 8
			}

			switch code {
			case 1, 14:
				add(left(), bottom())
			case 2, 13:
				add(bottom(), right())
			case 3, 12:
				add(left(), right())
			case 4, 11:
				add(top(), right())
			case 6, 9:
				add(bottom(), top())
			case 7, 8:
				add(left(), top())
			case 5:
				if (z00+z10+z01+z11)/4 >= level {
					add(left(), top())
					add(bottom(), right())
				} else {
					add(left(), bottom())
					add(top(), right())
				}
			case 10:
				if (z00+z10+z01+z11)/4 >= level {
					add(left(), bottom())
					add(top(), right())
				} else {
					add(bottom(), right())
					add(left(), top())
				}
			}
		}
	}
	return chain(segs)
}

// chain joins segments that share endpoints into polylines. Endpoints
// on a shared cell edge are computed from the same corner values, so
// they match exactly.
func chain(segs [][2]pt) [][]pt {
	adj := map[pt][]int{}
	for i, s := range segs {
		adj[s[0]] = append(adj[s[0]], i)
		adj[s[1]] = append(adj[s[1]], i)
	}
	used := make([]bool, len(segs))
	takeAt := func(p pt) int {
		for _, j := range adj[p] {
			if !used[j] {
				used[j] = true
				return j
			}
		}
		return -1
	}
	other := func(j int, p pt) pt {
		if segs[j][0] == p {
			return segs[j][1]
		}
		return segs[j][0]
	}

	var pieces [][]pt
	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		piece := []pt{segs[i][0], segs[i][1]}
		for {
			j := takeAt(piece[len(piece)-1])
			if j < 0 {
				break
			}
			piece = append(piece, other(j, piece[len(piece)-1]))
		}
		for {
			j := takeAt(piece[0])
			if j < 0 {
				break
			}
			piece = append([]pt{other(j, piece[0])}, piece...)
		}
		pieces = append(pieces, piece)
	}
	return pieces
}

// sortedBoolKeys returns the keys of m in ascending order.
func sortedBoolKeys(m map[float64]bool) []float64 {
	ks := make([]float64, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Float64s(ks)
	return ks
}
