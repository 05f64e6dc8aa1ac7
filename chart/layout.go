package chart

import (
	"fmt"
	"strconv"

	"github.com/Alipsa/matrix-gg/geom"
	"github.com/Alipsa/matrix-gg/scale"
	"github.com/Alipsa/matrix-gg/svg"
)

// tickGutter is the band between the panels and the axis titles that
// holds tick marks and their labels.
const tickGutter = 20.0

// maxTicks is the tick count suggestion handed to the scales.
const maxTicks = 5

// draw lays out the facet grid inside the w by h document and paints
// furniture, data and legends in that order.
func (c *Chart) draw(g *grid, sf svg.Surface, w, h float64) error {
	th := &c.Theme

	if th.Background != nil {
		sf.Rect(0, 0, w, h).Fill(th.Background)
	}

	top := 0.0
	if c.Title != "" {
		text(sf, w/2, th.TitleHeight/2+0.35*th.Title.Size, c.Title, th.Title, "middle", "")
		top += th.TitleHeight
	}

	// The bands around the panel area.
	stripTop := 0.0
	if c.Facet.Col != "" {
		stripTop = th.HStrip.Height
	}
	left := tickGutter
	if g.ylab != "" {
		left += th.YAxis.TitleWidth
	}
	right := 0.0
	if c.Facet.Row != "" {
		right += th.VStrip.Width
	}
	blocks := c.legends(g)
	legendW := legendWidth(th, blocks)
	right += legendW
	bottom := tickGutter
	if g.xlab != "" {
		bottom += th.XAxis.TitleHeight
	}

	nr, nc := len(g.rowLevels), len(g.colLevels)
	paw := w - left - right
	pah := h - top - stripTop - bottom
	pw := (paw - th.Panel.PadX*float64(nc-1)) / float64(nc)
	ph := (pah - th.Panel.PadY*float64(nr-1)) / float64(nr)
	if pw <= 0 || ph <= 0 {
		return fmt.Errorf("chart: %gx%g leaves no room for panels", w, h)
	}
	panelTop := top + stripTop

	// Axis titles center on the panel area.
	if g.xlab != "" {
		text(sf, left+paw/2, h-th.XAxis.TitleHeight/2+0.35*th.XAxis.Title.Size,
			g.xlab, th.XAxis.Title, "middle", "")
	}
	if g.ylab != "" {
		x := th.YAxis.TitleWidth/2 + 0.35*th.YAxis.Title.Size
		y := panelTop + pah/2
		text(sf, x, y, g.ylab, th.YAxis.Title, "middle", "").
			Attr("transform", rotateAttr(x, y))
	}

	// The scale output ranges are the panel box; y flips so larger
	// values draw higher.
	for _, s := range g.xScales {
		s.SetRange(0, pw)
	}
	for _, s := range g.yScales {
		s.SetRange(ph, 0)
	}
	xticks := make([][]scale.Tick, nc)
	for ci, s := range g.xScales {
		xticks[ci] = s.Ticks(maxTicks)
	}
	yticks := make([][]scale.Tick, nr)
	for r, s := range g.yScales {
		yticks[r] = s.Ticks(maxTicks)
	}

	// Panel backgrounds, grids and facet strips.
	for r, row := range g.panels {
		for ci, p := range row {
			p.px = left + float64(ci)*(pw+th.Panel.PadX)
			p.py = panelTop + float64(r)*(ph+th.Panel.PadY)

			if th.Panel.Background != nil {
				sf.Rect(p.px, p.py, pw, ph).Fill(th.Panel.Background)
			}
			for _, t := range xticks[ci] {
				u, ok := p.x.TransformFloat(t.Value)
				if !ok {
					continue
				}
				st, class := th.Grid.Major, "gg-grid-major"
				if t.Minor {
					st, class = th.Grid.Minor, "gg-grid-minor"
				}
				if st.Color == nil || st.Width <= 0 {
					continue
				}
				sf.Line(p.px+u, p.py, p.px+u, p.py+ph).
					Stroke(st.Color, st.Width).Class(class)
			}
			for _, t := range yticks[r] {
				v, ok := p.y.TransformFloat(t.Value)
				if !ok {
					continue
				}
				st, class := th.Grid.Major, "gg-grid-major"
				if t.Minor {
					st, class = th.Grid.Minor, "gg-grid-minor"
				}
				if st.Color == nil || st.Width <= 0 {
					continue
				}
				sf.Line(p.px, p.py+v, p.px+pw, p.py+v).
					Stroke(st.Color, st.Width).Class(class)
			}

			if r == 0 && c.Facet.Col != "" {
				sf.Rect(p.px, top, pw, th.HStrip.Height).Fill(th.HStrip.Background)
				text(sf, p.px+pw/2, top+th.HStrip.Height/2+0.35*th.HStrip.Size,
					g.colLevels[ci], th.HStrip.TextStyle, "middle", "")
			}
			if ci == nc-1 && c.Facet.Row != "" {
				sx := left + paw
				sf.Rect(sx, p.py, th.VStrip.Width, ph).Fill(th.VStrip.Background)
				tx := sx + th.VStrip.Width/2 + 0.35*th.VStrip.Size
				ty := p.py + ph/2
				text(sf, tx, ty, g.rowLevels[r], th.VStrip.TextStyle, "middle", "").
					Attr("transform", rotateAttr(tx, ty))
			}
		}
	}

	// The data itself.
	for _, row := range g.panels {
		for _, p := range row {
			ps := panelSurface{sf: sf, dx: p.px, dy: p.py}
			for li, run := range g.runs {
				ctx := &geom.Context{
					Surface:  ps,
					W:        pw,
					H:        ph,
					X:        p.x,
					Y:        p.y,
					Color:    g.color,
					Fill:     g.fill,
					Size:     g.size,
					Alpha:    g.alpha,
					CSS:      c.CSS,
					Layer:    li,
					PanelRow: p.row,
					PanelCol: p.col,
					Faceted:  g.faceted,
				}
				if err := geom.Render(ctx, run.spec, p.layers[li]); err != nil {
					return fmt.Errorf("chart: layer %d: %w", li, err)
				}
			}
		}
	}

	// Axis lines, tick marks and labels go on the outer panel edges,
	// over the data.
	for ci, ticks := range xticks {
		p := g.panels[nr-1][ci]
		ay := p.py + ph
		if th.XAxis.Line.Color != nil && th.XAxis.Line.Width > 0 {
			sf.Line(p.px, ay, p.px+pw, ay).
				Stroke(th.XAxis.Line.Color, th.XAxis.Line.Width).Class("gg-axis-line")
		}
		for _, t := range ticks {
			u, ok := p.x.TransformFloat(t.Value)
			if !ok {
				continue
			}
			length := th.XAxis.Tick.Length
			if t.Minor {
				length /= 2
			}
			if th.XAxis.Tick.Color != nil && th.XAxis.Tick.Width > 0 && length > 0 {
				sf.Line(p.px+u, ay, p.px+u, ay+length).
					Stroke(th.XAxis.Tick.Color, th.XAxis.Tick.Width).Class("gg-axis-tick")
			}
			if t.Minor || t.Label == "" {
				continue
			}
			text(sf, p.px+u, ay+length+th.XAxis.Tick.Label.Size, t.Label,
				th.XAxis.Tick.Label, "middle", "gg-axis-label")
		}
	}
	for r, ticks := range yticks {
		p := g.panels[r][0]
		if th.YAxis.Line.Color != nil && th.YAxis.Line.Width > 0 {
			sf.Line(p.px, p.py, p.px, p.py+ph).
				Stroke(th.YAxis.Line.Color, th.YAxis.Line.Width).Class("gg-axis-line")
		}
		for _, t := range ticks {
			v, ok := p.y.TransformFloat(t.Value)
			if !ok {
				continue
			}
			length := th.YAxis.Tick.Length
			if t.Minor {
				length /= 2
			}
			if th.YAxis.Tick.Color != nil && th.YAxis.Tick.Width > 0 && length > 0 {
				sf.Line(p.px-length, p.py+v, p.px, p.py+v).
					Stroke(th.YAxis.Tick.Color, th.YAxis.Tick.Width).Class("gg-axis-tick")
			}
			if t.Minor || t.Label == "" {
				continue
			}
			text(sf, p.px-length, p.py+v+0.35*th.YAxis.Tick.Label.Size, t.Label,
				th.YAxis.Tick.Label, "end", "gg-axis-label")
		}
	}

	if len(blocks) > 0 {
		drawLegends(sf, th, blocks, w-legendW+th.Legend.Pad, panelTop)
	}
	return nil
}

// ----------------------------------------------------------------------------
// Drawing helpers

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// textWidth estimates the rendered extent of s; the surfaces do not
// measure text.
func textWidth(s string, size float64) float64 {
	return 0.6 * size * float64(len([]rune(s)))
}

func text(sf svg.Surface, x, y float64, s string, st TextStyle, anchor, class string) svg.Node {
	n := sf.Text(x, y, s)
	if st.Color != nil {
		n.Fill(st.Color)
	}
	if st.Size > 0 {
		n.Attr("font-size", ftoa(st.Size))
	}
	if anchor != "" {
		n.Attr("text-anchor", anchor)
	}
	if class != "" {
		n.Class(class)
	}
	return n
}

func rotateAttr(x, y float64) string {
	return fmt.Sprintf("rotate(-90 %s %s)", ftoa(x), ftoa(y))
}

// ----------------------------------------------------------------------------
// Panel surface

// A panelSurface shifts primitives to the panel's document position;
// the renderers draw panel local.
type panelSurface struct {
	sf     svg.Surface
	dx, dy float64
}

func (p panelSurface) Rect(x, y, w, h float64) svg.Node {
	return p.sf.Rect(x+p.dx, y+p.dy, w, h)
}

func (p panelSurface) Line(x1, y1, x2, y2 float64) svg.Node {
	return p.sf.Line(x1+p.dx, y1+p.dy, x2+p.dx, y2+p.dy)
}

func (p panelSurface) Circle(cx, cy, r float64) svg.Node {
	return p.sf.Circle(cx+p.dx, cy+p.dy, r)
}

func (p panelSurface) Text(x, y float64, s string) svg.Node {
	return p.sf.Text(x+p.dx, y+p.dy, s)
}

func (p panelSurface) Path(d svg.PathData) svg.Node {
	var out svg.PathData
	for _, cmd := range d.Commands() {
		a := cmd.Args
		switch cmd.Op {
		case svg.OpMove:
			out.MoveTo(a[0]+p.dx, a[1]+p.dy)
		case svg.OpLine:
			out.LineTo(a[0]+p.dx, a[1]+p.dy)
		case svg.OpCurve:
			out.CurveTo(a[0]+p.dx, a[1]+p.dy, a[2]+p.dx, a[3]+p.dy, a[4]+p.dx, a[5]+p.dy)
		case svg.OpArc:
			out.ArcTo(a[0], a[1], a[2], a[3] != 0, a[4] != 0, a[5]+p.dx, a[6]+p.dy)
		case svg.OpClose:
			out.Close()
		}
	}
	return p.sf.Path(out)
}

func (p panelSurface) Group(id, class string) svg.Surface {
	return panelSurface{sf: p.sf.Group(id, class), dx: p.dx, dy: p.dy}
}
