package chart

import (
	"image/color"
	"math"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/scale"
	"github.com/Alipsa/matrix-gg/svg"
)

// A legendEntry is one discrete key: its swatch color and its label.
type legendEntry struct {
	label string
	col   color.Color
}

// A legendBlock is one drawn legend: a title plus either discrete
// keys or a continuous colorbar.
type legendBlock struct {
	title   string
	entries []legendEntry
	bar     *scale.ContinuousColor
}

// legends collects the color and fill legends. Identical blocks, as
// when color and fill map the same column, collapse into one.
func (c *Chart) legends(g *grid) []legendBlock {
	if c.Theme.Legend.Position == "none" {
		return nil
	}
	var blocks []legendBlock
	add := func(title string, s scale.Color) {
		switch sc := s.(type) {
		case *scale.DiscreteColor:
			var es []legendEntry
			for _, l := range sc.Levels() {
				col, ok := sc.Transform(gg.Level(l))
				if !ok {
					continue
				}
				es = append(es, legendEntry{label: l, col: col})
			}
			if len(es) == 0 {
				return
			}
			blocks = append(blocks, legendBlock{title: title, entries: es})
		case *scale.ContinuousColor:
			lo, hi := barDomain(sc)
			if math.IsNaN(lo) || math.IsNaN(hi) {
				return
			}
			blocks = append(blocks, legendBlock{title: title, bar: sc})
		}
	}
	add(g.colorTitle, g.color)
	add(g.fillTitle, g.fill)
	if len(blocks) == 2 && sameBlock(blocks[0], blocks[1]) {
		blocks = blocks[:1]
	}
	return blocks
}

func sameBlock(a, b legendBlock) bool {
	if a.title != b.title || len(a.entries) != len(b.entries) {
		return false
	}
	if (a.bar == nil) != (b.bar == nil) {
		return false
	}
	for i := range a.entries {
		if a.entries[i].label != b.entries[i].label {
			return false
		}
	}
	return true
}

// barDomain is the effective domain of a continuous color scale.
func barDomain(s *scale.ContinuousColor) (lo, hi float64) {
	lo, hi = s.Data.Min, s.Data.Max
	if !math.IsNaN(s.Domain.Min) {
		lo = s.Domain.Min
	}
	if !math.IsNaN(s.Domain.Max) {
		hi = s.Domain.Max
	}
	return lo, hi
}

// legendWidth is the horizontal space the legends claim at the right
// edge, zero when nothing is drawn.
func legendWidth(th *Theme, blocks []legendBlock) float64 {
	if len(blocks) == 0 {
		return 0
	}
	w := 0.0
	for _, b := range blocks {
		bw := textWidth(b.title, th.Legend.Title.Size)
		if b.bar != nil {
			lo, hi := barDomain(b.bar)
			lw := math.Max(
				textWidth(scale.FormatTick(lo, 0), th.Legend.Label.Size),
				textWidth(scale.FormatTick(hi, 0), th.Legend.Label.Size))
			bw = math.Max(bw, th.Legend.BarSize+th.Legend.Pad+lw)
		} else {
			for _, e := range b.entries {
				ew := th.Legend.KeySize + th.Legend.Pad + textWidth(e.label, th.Legend.Label.Size)
				bw = math.Max(bw, ew)
			}
		}
		w = math.Max(w, bw)
	}
	return w + 2*th.Legend.Pad
}

// drawLegends draws the blocks top down, left aligned at x.
func drawLegends(sf svg.Surface, th *Theme, blocks []legendBlock, x, y float64) {
	leg := &th.Legend
	for _, b := range blocks {
		if b.title != "" {
			text(sf, x, y+leg.Title.Size, b.title, leg.Title, "", "gg-legend-title")
			y += leg.Title.Size + leg.Pad
		}
		if b.bar != nil {
			y = drawColorbar(sf, th, b.bar, x, y)
			continue
		}
		for _, e := range b.entries {
			sf.Rect(x, y, leg.KeySize, leg.KeySize).Fill(e.col).Class("gg-legend-key")
			text(sf, x+leg.KeySize+leg.Pad, y+leg.KeySize/2+0.35*leg.Label.Size,
				e.label, leg.Label, "", "gg-legend-label")
			y += leg.KeySize + leg.Pad
		}
		y += 2 * leg.Pad
	}
}

// drawColorbar draws a continuous color scale as a sampled vertical
// bar, high values on top, the domain ends labelled. It returns the y
// below the drawn block.
func drawColorbar(sf svg.Surface, th *Theme, s *scale.ContinuousColor, x, y float64) float64 {
	leg := &th.Legend
	lo, hi := barDomain(s)
	const steps = 32
	seg := leg.BarLength / steps
	for i := 0; i < steps; i++ {
		t := (float64(i) + 0.5) / steps
		col, ok := s.Transform(gg.Num(hi - t*(hi-lo)))
		if !ok {
			continue
		}
		sf.Rect(x, y+float64(i)*seg, leg.BarSize, seg).Fill(col).Class("gg-legend-colorbar")
	}
	lx := x + leg.BarSize + leg.Pad
	text(sf, lx, y+leg.Label.Size, scale.FormatTick(hi, 0), leg.Label, "", "gg-legend-label")
	text(sf, lx, y+leg.BarLength, scale.FormatTick(lo, 0), leg.Label, "", "gg-legend-label")
	return y + leg.BarLength + 2*leg.Pad
}
