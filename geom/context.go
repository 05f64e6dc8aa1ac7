package geom

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/palette"
	"github.com/Alipsa/matrix-gg/scale"
	"github.com/Alipsa/matrix-gg/svg"
)

// A Context carries everything the renderers need to place one layer
// on one panel: the drawing surface, the panel extent, the panel's
// positional scales, the chart wide aesthetic scales and the styling
// hook configuration. The chart builds one Context per panel and
// layer; renderers only read it.
//
// Faceting with free scales needs no special handling here: each
// panel's Context simply carries that panel's scale instances.
type Context struct {
	Surface svg.Surface

	// W and H are the panel extent in surface coordinates. The
	// positional scale ranges are expected to map into it.
	W, H float64

	X, Y scale.Positional

	// Color and Fill map mapped data values to paint. Nil scales
	// make mapped levels resolve as literal color names.
	Color, Fill scale.Color

	// Size and Alpha are the trained size and alpha scales, nil when
	// the aesthetic is unscaled and values pass through.
	Size, Alpha scale.Positional

	CSS gg.CSSConfig

	Layer              int
	PanelRow, PanelCol int
	Faceted            bool

	// Defaults overrides the built-in fallbacks at the end of the
	// aesthetic precedence chain. Zero fields keep the built-ins.
	Defaults Defaults
}

// Defaults are the hard coded endpoints of the aesthetic precedence
// chain: used when a datum maps nothing and the layer sets no literal.
type Defaults struct {
	Color       color.Color
	Fill        color.Color
	LineWidth   float64
	PointRadius float64
	FontSize    float64
}

func (d Defaults) filled() Defaults {
	if d.Color == nil {
		d.Color = color.Black
	}
	if d.Fill == nil {
		d.Fill = palette.MustParse("steelblue")
	}
	if d.LineWidth <= 0 {
		d.LineWidth = 1
	}
	if d.PointRadius <= 0 {
		d.PointRadius = 3
	}
	if d.FontSize <= 0 {
		d.FontSize = 11
	}
	return d
}

// A pen is the per render state handed to a renderer: the context,
// the layer being drawn and the element counter feeding the stable
// ids.
type pen struct {
	*Context
	spec *gg.LayerSpec
	def  Defaults
	n    int
}

func (ctx *Context) pen(spec *gg.LayerSpec) *pen {
	return &pen{Context: ctx, spec: spec, def: ctx.Defaults.filled()}
}

// tag attaches the configured styling hooks to one emitted element
// and advances the element counter. parts adds suffixed classes for
// the pieces of compound geoms, e.g. "gg-boxplot-whisker".
func (p *pen) tag(node svg.Node, d *gg.LayerData, parts ...string) svg.Node {
	n := p.n
	p.n++
	if p.CSS.Classes {
		cls := gg.Class(p.spec.Geom)
		node.Class(cls)
		for _, part := range parts {
			node.Class(cls + "-" + part)
		}
	}
	if p.CSS.IDs {
		node.ID(p.CSS.ElementID(p.PanelRow, p.PanelCol, p.Layer, p.spec.Geom, n, p.Faceted))
	}
	if p.CSS.DataAttributes && d != nil {
		if gg.Has(d.X) {
			node.Attr("data-x", ftoa(d.X))
		}
		if gg.Has(d.Y) {
			node.Attr("data-y", ftoa(d.Y))
		}
		if d.Group != "" {
			node.Attr("data-group", d.Group)
		}
		if d.Row >= 0 {
			node.Attr("data-row", strconv.Itoa(d.Row))
		}
		node.Attr("data-layer", strconv.Itoa(p.Layer))
		if p.Faceted {
			node.Attr("data-panel", fmt.Sprintf("%d-%d", p.PanelRow, p.PanelCol))
		}
	}
	return node
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// ----------------------------------------------------------------------------
// Coordinate mapping

// xy maps one data point through the panel scales.
func (p *pen) xy(x, y float64) (px, py float64, ok bool) {
	px, okx := p.X.TransformFloat(x)
	py, oky := p.Y.TransformFloat(y)
	return px, py, okx && oky
}

// baseline is the panel coordinate bars and areas grow from: the
// transform of 0, or the low edge of the y range when the scale
// cannot represent 0.
func (p *pen) baseline() float64 {
	if b, ok := p.Y.TransformFloat(0); ok {
		return b
	}
	lo, _ := p.Y.Range()
	return lo
}

// halfWidth is half the panel space width a box shaped geom occupies
// around its x. On a discrete x scale the width parameter is a
// bandwidth fraction, 0.9 by default; on a continuous one it is a
// width in panel units, 15 by default.
func (p *pen) halfWidth() float64 {
	if p.X.IsDiscrete() {
		return p.X.Bandwidth() * p.spec.Params.Float("width", 0.9) / 2
	}
	return p.spec.Params.Float("width", 15) / 2
}

func (p *pen) halfHeight() float64 {
	if p.Y.IsDiscrete() {
		return p.Y.Bandwidth() * p.spec.Params.Float("height", 0.9) / 2
	}
	return p.spec.Params.Float("height", 15) / 2
}

// xspan maps the horizontal extent of d: the xmin/xmax edges when a
// stat or position stage set them, otherwise halfWidth around x. The
// result is ordered.
func (p *pen) xspan(d *gg.LayerData) (lo, hi float64, ok bool) {
	if gg.Has(d.XMin) && gg.Has(d.XMax) {
		l, ok1 := p.X.TransformFloat(d.XMin)
		h, ok2 := p.X.TransformFloat(d.XMax)
		if !ok1 || !ok2 {
			return 0, 0, false
		}
		if l > h {
			l, h = h, l
		}
		return l, h, true
	}
	cx, ok := p.X.TransformFloat(d.X)
	if !ok {
		return 0, 0, false
	}
	hw := p.halfWidth()
	return cx - hw, cx + hw, true
}

// yspan is the vertical counterpart of xspan.
func (p *pen) yspan(d *gg.LayerData) (lo, hi float64, ok bool) {
	if gg.Has(d.YMin) && gg.Has(d.YMax) {
		l, ok1 := p.Y.TransformFloat(d.YMin)
		h, ok2 := p.Y.TransformFloat(d.YMax)
		if !ok1 || !ok2 {
			return 0, 0, false
		}
		if l > h {
			l, h = h, l
		}
		return l, h, true
	}
	cy, ok := p.Y.TransformFloat(d.Y)
	if !ok {
		return 0, 0, false
	}
	hh := p.halfHeight()
	return cy - hh, cy + hh, true
}

// ----------------------------------------------------------------------------
// Aesthetic resolution

var (
	strokeKeys = []string{"color", "colour"}
	fillKeys   = []string{"fill"}
)

// paint resolves one color channel following the shared precedence:
// the mapped value through its scale, then a layer parameter literal,
// then the default. A mapped value the scale cannot place reports
// false and the element is skipped; a mapped level without a scale is
// read as a literal color name.
func (p *pen) paint(v gg.Value, sc scale.Color, keys []string, def color.Color) (color.Color, bool) {
	if !v.IsAbsent() {
		if sc != nil {
			return sc.Transform(v)
		}
		if l, ok := v.Level(); ok {
			if c, ok := palette.Parse(l); ok {
				return c, true
			}
		}
	}
	for _, k := range keys {
		if s := p.spec.Params.Str(k, ""); s != "" {
			if c, ok := palette.Parse(s); ok {
				return c, true
			}
		}
	}
	return def, true
}

// strokeColor resolves the line and point color of d.
func (p *pen) strokeColor(d *gg.LayerData) (color.Color, bool) {
	return p.paint(d.Color, p.Context.Color, strokeKeys, p.def.Color)
}

// fillColor resolves the interior color of d.
func (p *pen) fillColor(d *gg.LayerData) (color.Color, bool) {
	return p.paint(d.Fill, p.Context.Fill, fillKeys, p.def.Fill)
}

// borderColor resolves the outline of a filled shape. There is no
// default border: shapes without a mapped or configured color stay
// outline free.
func (p *pen) borderColor(d *gg.LayerData) (color.Color, bool) {
	if d.Color.IsAbsent() && !p.hasParam(strokeKeys) {
		return nil, false
	}
	return p.strokeColor(d)
}

func (p *pen) hasParam(keys []string) bool {
	for _, k := range keys {
		if p.spec.Params.Str(k, "") != "" {
			return true
		}
	}
	return false
}

// alphaOf resolves the opacity of d, 1 for fully opaque. Unscaled
// mapped alphas pass through clamped to [0, 1].
func (p *pen) alphaOf(d *gg.LayerData) float64 {
	if gg.Has(d.Alpha) {
		if p.Alpha != nil {
			if a, ok := p.Alpha.TransformFloat(d.Alpha); ok {
				return clamp01(a)
			}
		} else {
			return clamp01(d.Alpha)
		}
	}
	return clamp01(p.spec.Params.Float("alpha", 1))
}

// radius resolves the point radius of d. A mapped size the scale
// cannot place, or that comes out empty, reports false.
func (p *pen) radius(d *gg.LayerData) (float64, bool) {
	if gg.Has(d.Size) {
		if p.Size == nil {
			return d.Size, d.Size > 0
		}
		r, ok := p.Size.TransformFloat(d.Size)
		return r, ok && r > 0
	}
	if r := p.spec.Params.Float("size", 0); r > 0 {
		return r, true
	}
	return p.def.PointRadius, true
}

// lineWidth resolves the stroke width of d. The linewidth parameter
// wins over size, matching how line geoms are usually configured.
func (p *pen) lineWidth(d *gg.LayerData) float64 {
	if gg.Has(d.Size) {
		if p.Size == nil {
			return d.Size
		}
		if w, ok := p.Size.TransformFloat(d.Size); ok {
			return w
		}
	}
	if p.spec.Params.Has("linewidth") {
		return p.spec.Params.Float("linewidth", p.def.LineWidth)
	}
	return p.spec.Params.Float("size", p.def.LineWidth)
}

// dashPatterns are the stroke dash arrays of the named line types.
// Solid and unknown names stroke solid.
var dashPatterns = map[string][]float64{
	"dashed":   {6, 3},
	"dotted":   {1.5, 3},
	"dotdash":  {1.5, 3, 6, 3},
	"longdash": {12, 3},
	"twodash":  {4, 2, 8, 2},
}

func (p *pen) dashes(d *gg.LayerData) []float64 {
	lt := d.Linetype
	if lt == "" {
		lt = p.spec.Params.Str("linetype", "")
	}
	return dashPatterns[lt]
}

// fontSize resolves the text size of d through the size aesthetic.
func (p *pen) fontSize(d *gg.LayerData) float64 {
	if gg.Has(d.Size) && d.Size > 0 {
		if p.Size == nil {
			return d.Size
		}
		if s, ok := p.Size.TransformFloat(d.Size); ok && s > 0 {
			return s
		}
	}
	if s := p.spec.Params.Float("size", 0); s > 0 {
		return s
	}
	return p.def.FontSize
}

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

// ----------------------------------------------------------------------------
// Series helpers

// groups partitions rows by group key, keeping first seen order, so
// every sub-series draws as its own polyline, area or ring.
func groups(rows []gg.LayerData) [][]gg.LayerData {
	var gs [][]gg.LayerData
	index := map[string]int{}
	for _, d := range rows {
		i, ok := index[d.Group]
		if !ok {
			i = len(gs)
			index[d.Group] = i
			gs = append(gs, nil)
		}
		gs[i] = append(gs[i], d)
	}
	return gs
}

type vertex struct {
	x, y float64
}

// mapPoints pushes one series through the panel scales, dropping the
// rows the scales cannot place.
func (p *pen) mapPoints(g []gg.LayerData) []vertex {
	pts := make([]vertex, 0, len(g))
	for i := range g {
		if x, y, ok := p.xy(g[i].X, g[i].Y); ok {
			pts = append(pts, vertex{x, y})
		}
	}
	return pts
}

func sortByX(pts []vertex) {
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })
}

// strokePath joins pts with straight segments and strokes them with
// the series aesthetics of d. Fewer than two points draw nothing.
func (p *pen) strokePath(pts []vertex, d *gg.LayerData, parts ...string) {
	if len(pts) < 2 {
		return
	}
	col, ok := p.strokeColor(d)
	if !ok {
		return
	}
	var pd svg.PathData
	pd.MoveTo(pts[0].x, pts[0].y)
	for _, v := range pts[1:] {
		pd.LineTo(v.x, v.y)
	}
	node := p.Surface.Path(pd).Fill(nil).Stroke(col, p.lineWidth(d))
	if ds := p.dashes(d); ds != nil {
		node.Dash(ds)
	}
	if a := p.alphaOf(d); a < 1 {
		node.Opacity(a)
	}
	p.tag(node, d, parts...)
}

// strokeSegment draws one straight segment, skipping degenerate ones.
func (p *pen) strokeSegment(x1, y1, x2, y2 float64, d *gg.LayerData, parts ...string) {
	if x1 == x2 && y1 == y2 {
		return
	}
	col, ok := p.strokeColor(d)
	if !ok {
		return
	}
	node := p.Surface.Line(x1, y1, x2, y2).Stroke(col, p.lineWidth(d))
	if ds := p.dashes(d); ds != nil {
		node.Dash(ds)
	}
	if a := p.alphaOf(d); a < 1 {
		node.Opacity(a)
	}
	p.tag(node, d, parts...)
}

// fillRect emits one styled rectangle. Zero area is degenerate and
// draws nothing.
func (p *pen) fillRect(x, y, w, h float64, d *gg.LayerData, parts ...string) {
	if w <= 0 || h <= 0 {
		return
	}
	fill, ok := p.fillColor(d)
	if !ok {
		return
	}
	node := p.Surface.Rect(x, y, w, h).Fill(fill)
	if bc, ok := p.borderColor(d); ok {
		node.Stroke(bc, p.lineWidth(d))
	}
	if a := p.alphaOf(d); a < 1 {
		node.Opacity(a)
	}
	p.tag(node, d, parts...)
}

// fillPolygon closes pts into a ring and fills it. Fewer than three
// points draw nothing.
func (p *pen) fillPolygon(pts []vertex, d *gg.LayerData, parts ...string) {
	if len(pts) < 3 {
		return
	}
	fill, ok := p.fillColor(d)
	if !ok {
		return
	}
	node := p.Surface.Path(ringPath(pts)).Fill(fill)
	if bc, ok := p.borderColor(d); ok {
		node.Stroke(bc, p.lineWidth(d))
	}
	if a := p.alphaOf(d); a < 1 {
		node.Opacity(a)
	}
	p.tag(node, d, parts...)
}

// boxRect draws a box that always carries a border, so quartile and
// interval boxes stay visible on light fills.
func (p *pen) boxRect(x, y, w, h float64, d *gg.LayerData, parts ...string) {
	if w <= 0 || h <= 0 {
		return
	}
	fill, ok := p.fillColor(d)
	if !ok {
		return
	}
	col, ok := p.strokeColor(d)
	if !ok {
		return
	}
	node := p.Surface.Rect(x, y, w, h).Fill(fill).Stroke(col, p.lineWidth(d))
	if a := p.alphaOf(d); a < 1 {
		node.Opacity(a)
	}
	p.tag(node, d, parts...)
}

// ringPath joins pts into one closed subpath.
func ringPath(pts []vertex) svg.PathData {
	var pd svg.PathData
	pd.MoveTo(pts[0].x, pts[0].y)
	for _, v := range pts[1:] {
		pd.LineTo(v.x, v.y)
	}
	pd.Close()
	return pd
}
