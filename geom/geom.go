// Package geom draws positioned layer rows onto a drawing surface.
//
// A geometry is a pure drawing strategy: it receives the rows the
// statistical transform and position adjustment produced, maps them
// through the panel's scales and emits surface primitives. Geometries
// never reject data. A row the scales cannot place, or that lacks a
// field the geometry needs, is skipped and the rest of the layer
// still draws.
//
// Several geometry kinds are aliases that share one strategy and
// differ only in their default stat or position, which the chart
// resolves before rendering ever starts.
package geom

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/palette"
	"github.com/Alipsa/matrix-gg/svg"
)

// A renderer draws one layer's rows. Implementations skip what they
// cannot place; the only render error is asking for a geometry nobody
// implements.
type renderer interface {
	render(p *pen, rows []gg.LayerData)
}

// renderers maps every geometry kind to its strategy.
var renderers = map[gg.GeomKind]renderer{
	gg.GeomBlank:      blank{},
	gg.GeomPoint:      point{},
	gg.GeomJitter:     point{},
	gg.GeomCount:      point{},
	gg.GeomLine:       line{sorted: true},
	gg.GeomPath:       line{},
	gg.GeomStep:       step{},
	gg.GeomSegment:    segment{},
	gg.GeomCurve:      curve{},
	gg.GeomSpoke:      segment{mode: segSpoke},
	gg.GeomHLine:      segment{mode: segHorizontal},
	gg.GeomVLine:      segment{mode: segVertical},
	gg.GeomABLine:     segment{mode: segSlope},
	gg.GeomArea:       area{},
	gg.GeomRibbon:     ribbon{},
	gg.GeomDensity:    line{sorted: true},
	gg.GeomFreqPoly:   line{sorted: true},
	gg.GeomFunction:   line{sorted: true},
	gg.GeomBar:        bar{},
	gg.GeomCol:        bar{},
	gg.GeomHistogram:  bar{},
	gg.GeomBoxplot:    boxplot{},
	gg.GeomViolin:     violin{},
	gg.GeomCrossbar:   crossbar{},
	gg.GeomErrorbar:   errorbar{},
	gg.GeomErrorbarH:  errorbar{horizontal: true},
	gg.GeomLinerange:  lineRange{},
	gg.GeomPointrange: lineRange{point: true},
	gg.GeomDotplot:    point{},
	gg.GeomTile:       tile{},
	gg.GeomRect:       tile{},
	gg.GeomRaster:     tile{},
	gg.GeomBin2D:      tile{},
	gg.GeomContour:    contour{},
	gg.GeomDensity2D:  contour{},
	gg.GeomPolygon:    polygon{},
	gg.GeomMap:        polygon{},
	gg.GeomSF:         sf{},
	gg.GeomSmooth:     smooth{},
	gg.GeomQuantile:   line{sorted: true},
	gg.GeomQQ:         point{},
	gg.GeomQQLine:     line{sorted: true},
	gg.GeomText:       text{},
	gg.GeomLabel:      text{boxed: true},
	gg.GeomRug:        rug{},
	gg.GeomPie:        pie{},
	gg.GeomMag:        point{},
}

func init() {
	for _, k := range gg.GeomKinds() {
		if _, ok := renderers[k]; !ok {
			panic(fmt.Sprintf("geom: no renderer for %q", k))
		}
	}
}

// An UnsupportedGeomError reports a layer asking for a geometry kind
// this package cannot draw.
type UnsupportedGeomError struct {
	Kind gg.GeomKind
}

func (e *UnsupportedGeomError) Error() string {
	return fmt.Sprintf("geom: unsupported geometry %q", e.Kind)
}

// Render draws one layer's positioned rows onto ctx. Rows the panel
// scales cannot place are skipped, so a single bad datum never takes
// the whole chart down.
func Render(ctx *Context, spec *gg.LayerSpec, rows []gg.LayerData) error {
	r, ok := renderers[spec.Geom]
	if !ok {
		return &UnsupportedGeomError{Kind: spec.Geom}
	}
	r.render(ctx.pen(spec), rows)
	return nil
}

// ----------------------------------------------------------------------------
// Blank

// blank draws nothing. It exists so a layer can train scales without
// leaving visible marks.
type blank struct{}

func (blank) render(*pen, []gg.LayerData) {}

// ----------------------------------------------------------------------------
// Point

// point draws one marker per row. Jitter, count, dotplot, qq and mag
// layers share it; their stats and positions differ, the drawing does
// not.
type point struct{}

func (point) render(p *pen, rows []gg.LayerData) {
	for i := range rows {
		d := &rows[i]
		x, y, ok := p.xy(d.X, d.Y)
		if !ok {
			continue
		}
		r, ok := p.radius(d)
		if !ok {
			continue
		}
		col, ok := p.strokeColor(d)
		if !ok {
			continue
		}
		drawMarker(p, x, y, r, markerShape(p, d), col, d)
	}
}

func markerShape(p *pen, d *gg.LayerData) string {
	if d.Shape != "" {
		return d.Shape
	}
	return p.spec.Params.Str("shape", "circle")
}

const sin60 = 0.8660254037844386

func drawMarker(p *pen, x, y, r float64, shape string, col color.Color, d *gg.LayerData) {
	style := func(n svg.Node) {
		if a := p.alphaOf(d); a < 1 {
			n.Opacity(a)
		}
		p.tag(n, d)
	}
	switch shape {
	case "square":
		style(p.Surface.Rect(x-r, y-r, 2*r, 2*r).Fill(col))
	case "diamond":
		var pd svg.PathData
		pd.MoveTo(x, y-r).LineTo(x+r, y).LineTo(x, y+r).LineTo(x-r, y).Close()
		style(p.Surface.Path(pd).Fill(col))
	case "triangle":
		var pd svg.PathData
		pd.MoveTo(x, y-r).LineTo(x+r*sin60, y+r/2).LineTo(x-r*sin60, y+r/2).Close()
		style(p.Surface.Path(pd).Fill(col))
	case "plus":
		var pd svg.PathData
		pd.MoveTo(x-r, y).LineTo(x+r, y).MoveTo(x, y-r).LineTo(x, y+r)
		style(p.Surface.Path(pd).Fill(nil).Stroke(col, p.lineWidth(d)))
	case "cross":
		q := r * math.Sqrt2 / 2
		var pd svg.PathData
		pd.MoveTo(x-q, y-q).LineTo(x+q, y+q).MoveTo(x-q, y+q).LineTo(x+q, y-q)
		style(p.Surface.Path(pd).Fill(nil).Stroke(col, p.lineWidth(d)))
	default:
		style(p.Surface.Circle(x, y, r).Fill(col))
	}
}

// ----------------------------------------------------------------------------
// Line, path and step

// line connects each group's rows with straight segments. sorted
// orders the vertices by x first, which is what function shaped geoms
// want; paths keep row order so trajectories stay trajectories.
type line struct {
	sorted bool
}

func (l line) render(p *pen, rows []gg.LayerData) {
	for _, g := range groups(rows) {
		pts := p.mapPoints(g)
		if l.sorted {
			sortByX(pts)
		}
		p.strokePath(pts, &g[0])
	}
}

// step connects each group with axis parallel segments. The
// "direction" parameter picks the corner order, "hv" by default.
type step struct{}

func (step) render(p *pen, rows []gg.LayerData) {
	vh := p.spec.Params.Str("direction", "hv") == "vh"
	for _, g := range groups(rows) {
		pts := p.mapPoints(g)
		sortByX(pts)
		if len(pts) < 2 {
			continue
		}
		sp := make([]vertex, 0, 2*len(pts)-1)
		sp = append(sp, pts[0])
		for i := 1; i < len(pts); i++ {
			prev, cur := pts[i-1], pts[i]
			if vh {
				sp = append(sp, vertex{prev.x, cur.y})
			} else {
				sp = append(sp, vertex{cur.x, prev.y})
			}
			sp = append(sp, cur)
		}
		p.strokePath(sp, &g[0])
	}
}

// ----------------------------------------------------------------------------
// Segments and reference lines

type segmentMode int

const (
	segPlain segmentMode = iota
	segHorizontal
	segVertical
	segSlope
	segSpoke
)

// segment draws straight strokes: x/y to xend/yend pieces, panel
// spanning reference lines and polar spokes.
type segment struct {
	mode segmentMode
}

func (s segment) render(p *pen, rows []gg.LayerData) {
	switch s.mode {
	case segHorizontal:
		s.horizontal(p, rows)
	case segVertical:
		s.vertical(p, rows)
	case segSlope:
		s.slope(p, rows)
	case segSpoke:
		s.spokes(p, rows)
	default:
		for i := range rows {
			d := &rows[i]
			x1, y1, ok := p.xy(d.X, d.Y)
			if !ok {
				continue
			}
			x2, y2, ok := p.xy(d.XEnd, d.YEnd)
			if !ok {
				continue
			}
			p.strokeSegment(x1, y1, x2, y2, d)
		}
	}
}

// horizontal spans the panel at each mapped y, falling back to the
// "yintercept" parameter when the layer maps none.
func (segment) horizontal(p *pen, rows []gg.LayerData) {
	xlo, xhi := p.X.Range()
	mapped := false
	for i := range rows {
		d := &rows[i]
		if !gg.Has(d.Y) {
			continue
		}
		mapped = true
		if y, ok := p.Y.TransformFloat(d.Y); ok {
			p.strokeSegment(xlo, y, xhi, y, d)
		}
	}
	if mapped || len(rows) == 0 {
		return
	}
	for _, v := range p.spec.Params.Floats("yintercept") {
		if y, ok := p.Y.TransformFloat(v); ok {
			p.strokeSegment(xlo, y, xhi, y, &rows[0])
		}
	}
}

func (segment) vertical(p *pen, rows []gg.LayerData) {
	ylo, yhi := p.Y.Range()
	mapped := false
	for i := range rows {
		d := &rows[i]
		if !gg.Has(d.X) {
			continue
		}
		mapped = true
		if x, ok := p.X.TransformFloat(d.X); ok {
			p.strokeSegment(x, ylo, x, yhi, d)
		}
	}
	if mapped || len(rows) == 0 {
		return
	}
	for _, v := range p.spec.Params.Floats("xintercept") {
		if x, ok := p.X.TransformFloat(v); ok {
			p.strokeSegment(x, ylo, x, yhi, &rows[0])
		}
	}
}

// slope draws y = intercept + slope*x across the panel. Discrete x
// scales cannot invert panel coordinates, so ablines on them skip.
func (segment) slope(p *pen, rows []gg.LayerData) {
	if len(rows) == 0 {
		return
	}
	xlo, xhi := p.X.Range()
	x0, ok0 := p.X.Inverse(xlo)
	x1, ok1 := p.X.Inverse(xhi)
	if !ok0 || !ok1 {
		return
	}
	a := p.spec.Params.Float("intercept", 0)
	b := p.spec.Params.Float("slope", 1)
	px0, py0, ok := p.xy(x0, a+b*x0)
	if !ok {
		return
	}
	px1, py1, ok := p.xy(x1, a+b*x1)
	if !ok {
		return
	}
	p.strokeSegment(px0, py0, px1, py1, &rows[0])
}

// spokes draws a stroke from each point along its angle for its
// radius, both in data units.
func (segment) spokes(p *pen, rows []gg.LayerData) {
	for i := range rows {
		d := &rows[i]
		r := d.Radius
		if !gg.Has(r) {
			r = p.spec.Params.Float("radius", 1)
		}
		ang := d.Angle
		if !gg.Has(ang) {
			ang = p.spec.Params.Float("angle", 0)
		}
		x1, y1, ok := p.xy(d.X, d.Y)
		if !ok {
			continue
		}
		x2, y2, ok := p.xy(d.X+r*math.Cos(ang), d.Y+r*math.Sin(ang))
		if !ok {
			continue
		}
		p.strokeSegment(x1, y1, x2, y2, d)
	}
}

// ----------------------------------------------------------------------------
// Curve

// curve bends each segment to one side with a cubic Bezier. The
// control points sit two thirds of the way from the endpoints toward
// a point offset perpendicular from the chord midpoint; "curvature"
// scales the offset and flips the side when negative.
type curve struct{}

func (curve) render(p *pen, rows []gg.LayerData) {
	curv := p.spec.Params.Float("curvature", 0.5)
	for i := range rows {
		d := &rows[i]
		x1, y1, ok := p.xy(d.X, d.Y)
		if !ok {
			continue
		}
		x2, y2, ok := p.xy(d.XEnd, d.YEnd)
		if !ok {
			continue
		}
		dx, dy := x2-x1, y2-y1
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			continue
		}
		col, ok := p.strokeColor(d)
		if !ok {
			continue
		}
		mx, my := (x1+x2)/2, (y1+y2)/2
		off := dist * curv * 0.5
		qx := mx - dy/dist*off
		qy := my + dx/dist*off
		const f = 0.67
		var pd svg.PathData
		pd.MoveTo(x1, y1)
		pd.CurveTo(x1+f*(qx-x1), y1+f*(qy-y1), x2+f*(qx-x2), y2+f*(qy-y2), x2, y2)
		node := p.Surface.Path(pd).Fill(nil).Stroke(col, p.lineWidth(d))
		if ds := p.dashes(d); ds != nil {
			node.Dash(ds)
		}
		if a := p.alphaOf(d); a < 1 {
			node.Opacity(a)
		}
		p.tag(node, d)
	}
}

// ----------------------------------------------------------------------------
// Bars

// bar draws one rectangle per row, spanning the stack extent the
// position stage left in ymin/ymax, or growing from the zero
// baseline. Cols and histograms share it.
type bar struct{}

func (bar) render(p *pen, rows []gg.LayerData) {
	for i := range rows {
		d := &rows[i]
		xlo, xhi, ok := p.xspan(d)
		if !ok {
			continue
		}
		var ylo, yhi float64
		if gg.Has(d.YMin) && gg.Has(d.YMax) {
			a, ok1 := p.Y.TransformFloat(d.YMin)
			b, ok2 := p.Y.TransformFloat(d.YMax)
			if !ok1 || !ok2 {
				continue
			}
			ylo, yhi = a, b
		} else {
			py, ok := p.Y.TransformFloat(d.Y)
			if !ok {
				continue
			}
			ylo, yhi = p.baseline(), py
		}
		if ylo > yhi {
			ylo, yhi = yhi, ylo
		}
		p.fillRect(xlo, ylo, xhi-xlo, yhi-ylo, d)
	}
}

// ----------------------------------------------------------------------------
// Boxplot

// boxplot draws the five number summary its stat computed: the
// quartile box, the median line, whiskers with end caps and the
// observations beyond the fences.
type boxplot struct{}

func (boxplot) render(p *pen, rows []gg.LayerData) {
	for i := range rows {
		d := &rows[i]
		m, ok := d.Meta.(gg.BoxplotMeta)
		if !ok {
			continue
		}
		xlo, xhi, ok := p.xspan(d)
		if !ok {
			continue
		}
		if p.spec.Params.Bool("varwidth", false) && m.RelVarWidth > 0 {
			c, hw := (xlo+xhi)/2, (xhi-xlo)/2*m.RelVarWidth
			xlo, xhi = c-hw, c+hw
		}
		cx := (xlo + xhi) / 2

		q1, ok1 := p.Y.TransformFloat(m.Q1)
		q3, ok2 := p.Y.TransformFloat(m.Q3)
		med, ok3 := p.Y.TransformFloat(m.Median)
		wlo, ok4 := p.Y.TransformFloat(m.WhiskerLo)
		whi, ok5 := p.Y.TransformFloat(m.WhiskerHi)
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
			continue
		}

		p.strokeSegment(cx, q3, cx, whi, d, "whisker")
		p.strokeSegment(cx, q1, cx, wlo, d, "whisker")
		cap := (xhi - xlo) / 4
		p.strokeSegment(cx-cap, whi, cx+cap, whi, d, "whisker")
		p.strokeSegment(cx-cap, wlo, cx+cap, wlo, d, "whisker")

		p.boxRect(xlo, math.Min(q1, q3), xhi-xlo, math.Abs(q3-q1), d)
		p.strokeSegment(xlo, med, xhi, med, d, "median")

		or := p.spec.Params.Float("outlier.size", 2)
		col, colOK := p.strokeColor(d)
		for _, v := range m.Outliers {
			py, ok := p.Y.TransformFloat(v)
			if !ok || !colOK {
				continue
			}
			node := p.Surface.Circle(cx, py, or).Fill(col)
			if a := p.alphaOf(d); a < 1 {
				node.Opacity(a)
			}
			p.tag(node, d, "outlier")
		}
	}
}

// ----------------------------------------------------------------------------
// Violin

// violin mirrors each group's scaled density profile around its x
// position as one closed outline.
type violin struct{}

func (violin) render(p *pen, rows []gg.LayerData) {
	for _, g := range groups(rows) {
		cx, ok := p.X.TransformFloat(g[0].X)
		if !ok {
			continue
		}
		hw := p.halfWidth()
		type rib struct {
			y, off float64
		}
		ribs := make([]rib, 0, len(g))
		for i := range g {
			m, ok := g[i].Meta.(gg.DensityMeta)
			if !ok {
				continue
			}
			py, ok := p.Y.TransformFloat(g[i].Y)
			if !ok {
				continue
			}
			ribs = append(ribs, rib{py, m.Scaled * hw})
		}
		if len(ribs) < 2 {
			continue
		}
		sort.Slice(ribs, func(i, j int) bool { return ribs[i].y < ribs[j].y })
		pts := make([]vertex, 0, 2*len(ribs))
		for _, r := range ribs {
			pts = append(pts, vertex{cx + r.off, r.y})
		}
		for i := len(ribs) - 1; i >= 0; i-- {
			pts = append(pts, vertex{cx - ribs[i].off, ribs[i].y})
		}
		p.fillPolygon(pts, &g[0])
	}
}

// ----------------------------------------------------------------------------
// Area, ribbon and smooth

// area fills between each group's upper outline and its lower one,
// which is the stack extent when the position stage set it and the
// zero baseline otherwise.
type area struct{}

func (area) render(p *pen, rows []gg.LayerData) {
	base := p.baseline()
	for _, g := range groups(rows) {
		sort.SliceStable(g, func(i, j int) bool { return g[i].X < g[j].X })
		type edge struct {
			x, top, bot float64
		}
		es := make([]edge, 0, len(g))
		for i := range g {
			d := &g[i]
			top, bot := d.Y, math.NaN()
			if gg.Has(d.YMin) && gg.Has(d.YMax) {
				top, bot = d.YMax, d.YMin
			}
			px, ok := p.X.TransformFloat(d.X)
			if !ok {
				continue
			}
			pt, ok := p.Y.TransformFloat(top)
			if !ok {
				continue
			}
			pb := base
			if gg.Has(bot) {
				if v, ok := p.Y.TransformFloat(bot); ok {
					pb = v
				}
			}
			es = append(es, edge{px, pt, pb})
		}
		if len(es) < 2 {
			continue
		}
		pts := make([]vertex, 0, 2*len(es))
		for _, e := range es {
			pts = append(pts, vertex{e.x, e.top})
		}
		for i := len(es) - 1; i >= 0; i-- {
			pts = append(pts, vertex{es[i].x, es[i].bot})
		}
		p.fillPolygon(pts, &g[0])
	}
}

// ribbon fills between each group's ymin and ymax outlines.
type ribbon struct{}

func (ribbon) render(p *pen, rows []gg.LayerData) {
	for _, g := range groups(rows) {
		p.fillPolygon(p.bandRing(g), &g[0])
	}
}

// bandRing assembles the closed ymin to ymax outline of one series in
// x order. Rows missing an edge, or that the scales cannot place,
// drop out.
func (p *pen) bandRing(g []gg.LayerData) []vertex {
	type edge struct {
		x, lo, hi float64
	}
	es := make([]edge, 0, len(g))
	for i := range g {
		d := &g[i]
		if !gg.Has(d.YMin) || !gg.Has(d.YMax) {
			continue
		}
		px, ok := p.X.TransformFloat(d.X)
		if !ok {
			continue
		}
		lo, ok1 := p.Y.TransformFloat(d.YMin)
		hi, ok2 := p.Y.TransformFloat(d.YMax)
		if !ok1 || !ok2 {
			continue
		}
		es = append(es, edge{px, lo, hi})
	}
	if len(es) < 2 {
		return nil
	}
	sort.SliceStable(es, func(i, j int) bool { return es[i].x < es[j].x })
	pts := make([]vertex, 0, 2*len(es))
	for _, e := range es {
		pts = append(pts, vertex{e.x, e.hi})
	}
	for i := len(es) - 1; i >= 0; i-- {
		pts = append(pts, vertex{es[i].x, es[i].lo})
	}
	return pts
}

var smoothBand = color.Gray{Y: 0x99}

// smooth draws each group's fitted line over its confidence band when
// the rows carry one.
type smooth struct{}

func (smooth) render(p *pen, rows []gg.LayerData) {
	for _, g := range groups(rows) {
		d := &g[0]
		if ring := p.bandRing(g); len(ring) >= 3 {
			if fill, ok := p.paint(d.Fill, p.Context.Fill, fillKeys, smoothBand); ok {
				node := p.Surface.Path(ringPath(ring)).Fill(fill)
				node.Opacity(0.4 * p.alphaOf(d))
				p.tag(node, d, "band")
			}
		}
		pts := p.mapPoints(g)
		sortByX(pts)
		p.strokePath(pts, d)
	}
}

// ----------------------------------------------------------------------------
// Tiles

// tile draws one axis aligned rectangle per row, sized by the
// xmin/xmax and ymin/ymax extents when present and by the width and
// height parameters otherwise. Rects, rasters and binned heat maps
// all land here.
type tile struct{}

func (tile) render(p *pen, rows []gg.LayerData) {
	for i := range rows {
		d := &rows[i]
		xlo, xhi, ok := p.xspan(d)
		if !ok {
			continue
		}
		ylo, yhi, ok := p.yspan(d)
		if !ok {
			continue
		}
		p.fillRect(xlo, ylo, xhi-xlo, yhi-ylo, d)
	}
}

// ----------------------------------------------------------------------------
// Contours

// contour strokes each level piece as one polyline in the vertex
// order the marching stat produced.
type contour struct{}

func (contour) render(p *pen, rows []gg.LayerData) {
	for _, g := range groups(rows) {
		p.strokePath(p.mapPoints(g), &g[0])
	}
}

// ----------------------------------------------------------------------------
// Polygons and features

// polygon closes each group's vertices into a filled ring.
type polygon struct{}

func (polygon) render(p *pen, rows []gg.LayerData) {
	for _, g := range groups(rows) {
		p.fillPolygon(p.mapPoints(g), &g[0])
	}
}

// sf draws simple features, dispatching per group on the geometry
// type its stat recorded.
type sf struct{}

func (sf) render(p *pen, rows []gg.LayerData) {
	for _, g := range groups(rows) {
		m, _ := g[0].Meta.(gg.SFMeta)
		switch m.GeomType {
		case "line":
			p.strokePath(p.mapPoints(g), &g[0])
		case "polygon":
			p.fillPolygon(p.mapPoints(g), &g[0])
		default:
			point{}.render(p, g)
		}
	}
}

// ----------------------------------------------------------------------------
// Interval geoms

// errorbar draws the ymin to ymax interval of each row with end caps;
// horizontal flips it onto the x axis.
type errorbar struct {
	horizontal bool
}

func (e errorbar) render(p *pen, rows []gg.LayerData) {
	for i := range rows {
		d := &rows[i]
		if e.horizontal {
			if !gg.Has(d.XMin) || !gg.Has(d.XMax) {
				continue
			}
			cy, ok := p.Y.TransformFloat(d.Y)
			if !ok {
				continue
			}
			xlo, ok1 := p.X.TransformFloat(d.XMin)
			xhi, ok2 := p.X.TransformFloat(d.XMax)
			if !ok1 || !ok2 {
				continue
			}
			cap := p.halfHeight()
			p.strokeSegment(xlo, cy, xhi, cy, d)
			p.strokeSegment(xlo, cy-cap, xlo, cy+cap, d, "cap")
			p.strokeSegment(xhi, cy-cap, xhi, cy+cap, d, "cap")
			continue
		}
		if !gg.Has(d.YMin) || !gg.Has(d.YMax) {
			continue
		}
		cx, ok := p.X.TransformFloat(d.X)
		if !ok {
			continue
		}
		ylo, ok1 := p.Y.TransformFloat(d.YMin)
		yhi, ok2 := p.Y.TransformFloat(d.YMax)
		if !ok1 || !ok2 {
			continue
		}
		cap := p.halfWidth()
		p.strokeSegment(cx, ylo, cx, yhi, d)
		p.strokeSegment(cx-cap, ylo, cx+cap, ylo, d, "cap")
		p.strokeSegment(cx-cap, yhi, cx+cap, yhi, d, "cap")
	}
}

// crossbar draws the interval as a bordered box with a line at y.
type crossbar struct{}

func (crossbar) render(p *pen, rows []gg.LayerData) {
	for i := range rows {
		d := &rows[i]
		if !gg.Has(d.YMin) || !gg.Has(d.YMax) {
			continue
		}
		xlo, xhi, ok := p.xspan(d)
		if !ok {
			continue
		}
		ylo, ok1 := p.Y.TransformFloat(d.YMin)
		yhi, ok2 := p.Y.TransformFloat(d.YMax)
		if !ok1 || !ok2 {
			continue
		}
		if ylo > yhi {
			ylo, yhi = yhi, ylo
		}
		p.boxRect(xlo, ylo, xhi-xlo, yhi-ylo, d)
		if my, ok := p.Y.TransformFloat(d.Y); ok {
			p.strokeSegment(xlo, my, xhi, my, d, "middle")
		}
	}
}

// lineRange draws a vertical ymin to ymax stroke, plus the y point
// for pointranges.
type lineRange struct {
	point bool
}

func (l lineRange) render(p *pen, rows []gg.LayerData) {
	for i := range rows {
		d := &rows[i]
		if !gg.Has(d.YMin) || !gg.Has(d.YMax) {
			continue
		}
		cx, ok := p.X.TransformFloat(d.X)
		if !ok {
			continue
		}
		ylo, ok1 := p.Y.TransformFloat(d.YMin)
		yhi, ok2 := p.Y.TransformFloat(d.YMax)
		if !ok1 || !ok2 {
			continue
		}
		p.strokeSegment(cx, ylo, cx, yhi, d)
		if !l.point {
			continue
		}
		cy, ok := p.Y.TransformFloat(d.Y)
		if !ok {
			continue
		}
		r, ok := p.radius(d)
		if !ok {
			continue
		}
		col, ok := p.strokeColor(d)
		if !ok {
			continue
		}
		node := p.Surface.Circle(cx, cy, r).Fill(col)
		if a := p.alphaOf(d); a < 1 {
			node.Opacity(a)
		}
		p.tag(node, d, "point")
	}
}

// ----------------------------------------------------------------------------
// Text

// text places each row's label at its position; boxed backs it with
// a label box first.
type text struct {
	boxed bool
}

func (t text) render(p *pen, rows []gg.LayerData) {
	for i := range rows {
		d := &rows[i]
		s := d.Label
		if s == "" {
			s = p.spec.Params.Str("label", "")
		}
		if s == "" {
			continue
		}
		x, y, ok := p.xy(d.X, d.Y)
		if !ok {
			continue
		}
		col, ok := p.strokeColor(d)
		if !ok {
			continue
		}
		size := p.fontSize(d)
		a := p.alphaOf(d)
		if t.boxed {
			pad := 0.4 * size
			w := approxTextWidth(s, size) + 2*pad
			h := size + 2*pad
			if fill, ok := p.paint(d.Fill, p.Context.Fill, fillKeys, color.White); ok {
				box := p.Surface.Rect(x-w/2, y-h/2, w, h).Fill(fill).Stroke(col, p.lineWidth(d))
				if a < 1 {
					box.Opacity(a)
				}
				p.tag(box, d, "box")
			}
		}
		node := p.Surface.Text(x, y+0.35*size, s).Fill(col).
			Attr("text-anchor", "middle").
			Attr("font-size", ftoa(size))
		if a < 1 {
			node.Opacity(a)
		}
		p.tag(node, d)
	}
}

// approxTextWidth estimates the rendered width of s from its glyph
// count. The surface abstraction exposes no font metrics.
func approxTextWidth(s string, size float64) float64 {
	return 0.6 * size * float64(len([]rune(s)))
}

// ----------------------------------------------------------------------------
// Rug

// rug draws marginal ticks along the panel edges named by the "sides"
// parameter, 3% of the panel deep.
type rug struct{}

func (rug) render(p *pen, rows []gg.LayerData) {
	sides := p.spec.Params.Str("sides", "bl")
	xlo, xhi := p.X.Range()
	ylo, yhi := p.Y.Range()
	tx := 0.03 * (xhi - xlo)
	ty := 0.03 * (yhi - ylo)
	for i := range rows {
		d := &rows[i]
		if strings.ContainsAny(sides, "bt") {
			if x, ok := p.X.TransformFloat(d.X); ok {
				if strings.Contains(sides, "b") {
					p.strokeSegment(x, ylo, x, ylo+ty, d)
				}
				if strings.Contains(sides, "t") {
					p.strokeSegment(x, yhi, x, yhi-ty, d)
				}
			}
		}
		if strings.ContainsAny(sides, "lr") {
			if y, ok := p.Y.TransformFloat(d.Y); ok {
				if strings.Contains(sides, "l") {
					p.strokeSegment(xlo, y, xlo+tx, y, d)
				}
				if strings.Contains(sides, "r") {
					p.strokeSegment(xhi, y, xhi-tx, y, d)
				}
			}
		}
	}
}

// ----------------------------------------------------------------------------
// Pie

// pie turns the rows into one disc of slices, clockwise from twelve
// o'clock, each sized by its share of the y total. It ignores the
// positional scales; the disc is centered on the panel.
type pie struct{}

func (pie) render(p *pen, rows []gg.LayerData) {
	var total float64
	for i := range rows {
		if v := rows[i].Y; gg.Has(v) && v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return
	}
	cx, cy := p.W/2, p.H/2
	r := p.spec.Params.Float("radius", 0.4*math.Min(p.W, p.H))
	a := -math.Pi / 2
	slice := 0
	for i := range rows {
		d := &rows[i]
		v := d.Y
		if !gg.Has(v) || v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total
		a1 := a + sweep
		fill, ok := p.paint(d.Fill, p.Context.Fill, fillKeys, palette.Default.Color(slice))
		slice++
		if !ok {
			a = a1
			continue
		}
		var node svg.Node
		if sweep >= 2*math.Pi-1e-9 {
			node = p.Surface.Circle(cx, cy, r).Fill(fill)
		} else {
			var pd svg.PathData
			pd.MoveTo(cx, cy)
			pd.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
			pd.ArcTo(r, r, 0, sweep > math.Pi, true, cx+r*math.Cos(a1), cy+r*math.Sin(a1))
			pd.Close()
			node = p.Surface.Path(pd).Fill(fill)
		}
		if bc, ok := p.borderColor(d); ok {
			node.Stroke(bc, p.lineWidth(d))
		}
		if al := p.alphaOf(d); al < 1 {
			node.Opacity(al)
		}
		p.tag(node, d)
		if d.Label != "" {
			am := (a + a1) / 2
			size := p.fontSize(d)
			tn := p.Surface.Text(cx+0.7*r*math.Cos(am), cy+0.7*r*math.Sin(am)+0.35*size, d.Label).
				Fill(p.def.Color).
				Attr("text-anchor", "middle").
				Attr("font-size", ftoa(size))
			p.tag(tn, d, "label")
		}
		a = a1
	}
}
