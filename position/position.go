// Package position implements the position adjustments that run
// between the statistical transform and the renderer: identity,
// stack, fill, dodge and jitter.
//
// Adjusters are pure: Adjust returns fresh rows and leaves its input
// untouched, so a layer can be re-rendered without accumulating
// offsets.
package position

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	gg "github.com/Alipsa/matrix-gg"
)

// An Adjuster rewrites the coordinates of overlapping rows.
type Adjuster interface {
	Adjust(rows []gg.LayerData) []gg.LayerData
}

// A ConfigError reports invalid adjustment parameters, detected at
// construction.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("position: bad %s: %s", e.Field, e.Reason)
}

// New builds the adjuster for kind with its parameters validated
// eagerly. Parameters: "reverse" (stack, fill), "width" (dodge,
// jitter), "height" and "seed" (jitter).
func New(kind gg.PositionKind, p gg.Params) (Adjuster, error) {
	switch kind {
	case gg.PositionIdentity:
		return Identity{}, nil
	case gg.PositionStack:
		return Stack{Reverse: p.Bool("reverse", false)}, nil
	case gg.PositionFill:
		return Fill{Reverse: p.Bool("reverse", false)}, nil
	case gg.PositionDodge:
		w := p.Float("width", 0)
		if w < 0 {
			return nil, &ConfigError{Field: "width", Reason: "must not be negative"}
		}
		return Dodge{Width: w}, nil
	case gg.PositionJitter:
		w := p.Float("width", math.NaN())
		h := p.Float("height", math.NaN())
		if w < 0 || h < 0 {
			return nil, &ConfigError{Field: "width/height", Reason: "must not be negative"}
		}
		return Jitter{Width: w, Height: h, Seed: int64(p.Int("seed", 1))}, nil
	}
	return nil, &ConfigError{Field: "kind", Reason: fmt.Sprintf("unknown position %q", kind)}
}

func clone(rows []gg.LayerData) []gg.LayerData {
	out := make([]gg.LayerData, len(rows))
	copy(out, rows)
	return out
}

// Identity leaves every row where the stat put it.
type Identity struct{}

func (Identity) Adjust(rows []gg.LayerData) []gg.LayerData { return clone(rows) }

// Stack piles the rows sharing an x position on top of each other.
// Sub-series stack in row order, positive values upward from zero and
// negative values downward. Reverse flips the stacking order.
type Stack struct {
	Reverse bool
}

func (s Stack) Adjust(rows []gg.LayerData) []gg.LayerData {
	out := clone(rows)
	stack(out, s.Reverse)
	return out
}

// stack rewrites YMin/YMax/Y in place on the already copied rows.
func stack(rows []gg.LayerData, reverse bool) {
	for _, idx := range xGroups(rows) {
		if reverse {
			for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
				idx[i], idx[j] = idx[j], idx[i]
			}
		}
		var pos, neg float64
		for _, i := range idx {
			d := &rows[i]
			v := height(d)
			if v >= 0 {
				d.YMin, d.YMax = pos, pos+v
				pos += v
				d.Y = d.YMax
			} else {
				d.YMax, d.YMin = neg, neg+v
				neg += v
				d.Y = d.YMin
			}
		}
	}
}

// Fill stacks and then normalizes every x group to [0, 1] by dividing
// through the group's largest ymax. Groups whose maximum is not
// positive stay unnormalized.
type Fill struct {
	Reverse bool
}

func (f Fill) Adjust(rows []gg.LayerData) []gg.LayerData {
	out := clone(rows)
	stack(out, f.Reverse)
	for _, idx := range xGroups(out) {
		max := math.Inf(-1)
		for _, i := range idx {
			if gg.Has(out[i].YMax) && out[i].YMax > max {
				max = out[i].YMax
			}
		}
		if max <= 0 || math.IsInf(max, -1) {
			continue
		}
		for _, i := range idx {
			d := &out[i]
			d.YMin /= max
			d.YMax /= max
			d.Y = (d.YMin + d.YMax) / 2
		}
	}
	return out
}

// Dodge places the sub-series sharing an x position side by side. The
// total width defaults to 90% of the x resolution and is split evenly
// among all series of the layer, so a series keeps its slot across
// x positions.
type Dodge struct {
	// Width is the total width in x units shared by the series.
	// Zero means 0.9 times the x resolution.
	Width float64
}

func (d Dodge) Adjust(rows []gg.LayerData) []gg.LayerData {
	out := clone(rows)

	slot := map[string]int{}
	var nSlots int
	for i := range out {
		g := out[i].Group
		if _, ok := slot[g]; !ok {
			slot[g] = nSlots
			nSlots++
		}
	}
	if nSlots <= 1 {
		return out
	}

	w := d.Width
	if w == 0 {
		w = 0.9 * resolution(xs(out))
	}
	m := float64(nSlots)
	for i := range out {
		r := &out[i]
		if !gg.Has(r.X) {
			continue
		}
		g := float64(slot[r.Group])
		nx := r.X - w/2 + w*(2*g+1)/(2*m)
		if gg.Has(r.XMin) && gg.Has(r.XMax) {
			half := (r.XMax - r.XMin) / (2 * m)
			r.XMin, r.XMax = nx-half, nx+half
		}
		if gg.Has(r.XEnd) {
			r.XEnd += nx - r.X
		}
		r.X = nx
	}
	return out
}

// Jitter displaces points by uniform noise. The amplitudes default to
// 40% of the data resolution per axis; the noise source is seeded so
// charts re-render identically.
type Jitter struct {
	// Width and Height are the maximum absolute displacements in
	// data units. NaN means the 40% resolution default, 0 disables
	// the axis.
	Width, Height float64

	Seed int64
}

func (j Jitter) Adjust(rows []gg.LayerData) []gg.LayerData {
	out := clone(rows)
	rng := rand.New(rand.NewSource(j.Seed))

	w := j.Width
	if math.IsNaN(w) {
		w = 0.4 * resolution(xs(out)) / 2
	}
	h := j.Height
	if math.IsNaN(h) {
		h = 0.4 * resolution(ys(out)) / 2
	}
	for i := range out {
		r := &out[i]
		if w > 0 && gg.Has(r.X) {
			r.X += (2*rng.Float64() - 1) * w
		}
		if h > 0 && gg.Has(r.Y) {
			r.Y += (2*rng.Float64() - 1) * h
		}
	}
	return out
}

// xGroups partitions the row indices by x position, groups ordered by
// first appearance. Rows without x form no group.
func xGroups(rows []gg.LayerData) [][]int {
	var order []float64
	byX := map[float64][]int{}
	for i := range rows {
		x := rows[i].X
		if !gg.Has(x) {
			if gg.Has(rows[i].XMin) && gg.Has(rows[i].XMax) {
				x = (rows[i].XMin + rows[i].XMax) / 2
			} else {
				continue
			}
		}
		if _, ok := byX[x]; !ok {
			order = append(order, x)
		}
		byX[x] = append(byX[x], i)
	}
	groups := make([][]int, len(order))
	for i, x := range order {
		groups[i] = byX[x]
	}
	return groups
}

// height is the stackable extent of a row.
func height(d *gg.LayerData) float64 {
	if gg.Has(d.YMin) && gg.Has(d.YMax) {
		return d.YMax - d.YMin
	}
	if gg.Has(d.Y) {
		return d.Y
	}
	return 0
}

// resolution returns the smallest distance between distinct values,
// or 1 when there are fewer than two.
func resolution(vs []float64) float64 {
	var fin []float64
	for _, v := range vs {
		if gg.Has(v) && !math.IsInf(v, 0) {
			fin = append(fin, v)
		}
	}
	if len(fin) < 2 {
		return 1
	}
	sort.Float64s(fin)
	res := math.Inf(1)
	for i := 1; i < len(fin); i++ {
		if d := fin[i] - fin[i-1]; d > 0 && d < res {
			res = d
		}
	}
	if math.IsInf(res, 1) {
		return 1
	}
	return res
}

func xs(rows []gg.LayerData) []float64 {
	vs := make([]float64, len(rows))
	for i := range rows {
		vs[i] = rows[i].X
	}
	return vs
}

func ys(rows []gg.LayerData) []float64 {
	vs := make([]float64, len(rows))
	for i := range rows {
		vs[i] = rows[i].Y
	}
	return vs
}
