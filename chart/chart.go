// Package chart assembles layers into complete figures. A Chart runs
// each layer's statistical transform and position adjustment, trains
// the shared or per facet scales, draws the panel, grid, axis and
// strip furniture and hands every panel to the geometry renderers.
//
// A Chart holds no render state: it can be drawn repeatedly, onto the
// SVG writer or onto any other svg.Surface implementation.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
	"github.com/Alipsa/matrix-gg/palette"
	"github.com/Alipsa/matrix-gg/position"
	"github.com/Alipsa/matrix-gg/scale"
	"github.com/Alipsa/matrix-gg/stat"
	"github.com/Alipsa/matrix-gg/svg"
)

// debug dumps the trained scales of every render to stdout.
var debug = false

// A Facet splits the chart into a grid of panels keyed by the levels
// of one or two table columns. Free scales give every facet column its
// own x scale and every facet row its own y scale; otherwise a single
// scale instance spans the grid.
type Facet struct {
	Row, Col     string
	FreeX, FreeY bool
}

// A ScaleSpec selects a positional scale. An empty Kind picks discrete
// for level columns and linear otherwise; Params follow
// scale.NewPositional.
type ScaleSpec struct {
	Kind   string
	Params gg.Params
}

// A ColorSpec selects a color scale. An empty Kind picks discrete for
// level columns and continuous for numeric ones; Params follow
// scale.NewColor.
type ColorSpec struct {
	Kind   string
	Params gg.Params
}

// A Chart is one complete figure: layers over a shared table, an
// optional facet grid, the scale and legend configuration and the
// furniture theme.
type Chart struct {
	Title string

	// XLab and YLab title the axes. Empty labels fall back to the
	// mapped column names.
	XLab, YLab string

	// Mapping is the chart wide aesthetic mapping, merged under each
	// layer's own.
	Mapping gg.Mapping

	Layers []*gg.LayerSpec

	Facet Facet

	X, Y        ScaleSpec
	Color, Fill ColorSpec

	// CSS configures the styling hooks on the data elements. The
	// furniture classes are always emitted.
	CSS gg.CSSConfig

	Theme Theme

	// Palettes resolves palette and ramp names, nil for the built-ins.
	Palettes *palette.Library
}

// New returns an empty chart with the default theme.
func New() *Chart {
	return &Chart{Mapping: gg.Mapping{}, Theme: DefaultTheme(12)}
}

// Add appends a layer and returns the chart for chaining.
func (c *Chart) Add(l *gg.LayerSpec) *Chart {
	c.Layers = append(c.Layers, l)
	return c
}

// Render draws the chart onto a w by h region of sf. The table is
// read only and the chart is not modified, so the same chart may be
// rendered repeatedly.
func (c *Chart) Render(tbl data.Table, sf svg.Surface, w, h float64) error {
	if math.IsNaN(w) || math.IsNaN(h) || w <= 0 || h <= 0 {
		return fmt.Errorf("chart: bad size %gx%g", w, h)
	}
	g, err := c.assemble(tbl)
	if err != nil {
		return err
	}
	return c.draw(g, sf, w, h)
}

// WriteSVG renders the chart as a standalone SVG document.
func (c *Chart) WriteSVG(tbl data.Table, out io.Writer, w, h float64) error {
	sw := svg.NewWriter(out, w, h)
	if err := c.Render(tbl, sw, w, h); err != nil {
		sw.Close()
		return err
	}
	return sw.Close()
}

// ----------------------------------------------------------------------------
// Assembly

// A layerRun is one layer with its merged mapping and its components
// built and validated.
type layerRun struct {
	spec    *gg.LayerSpec
	mapping gg.Mapping
	st      stat.Stat
	adj     position.Adjuster
}

// A panel is one cell of the facet grid: its scale instances, its
// computed rows per layer, and its document position once laid out.
type panel struct {
	row, col int
	x, y     scale.Positional
	layers   [][]gg.LayerData

	px, py float64
}

// A grid is everything assemble trains before draw places it.
type grid struct {
	runs []layerRun

	rowLevels, colLevels []string
	faceted              bool

	xScales, yScales []scale.Positional
	panels           [][]*panel

	color, fill scale.Color
	size, alpha scale.Positional

	colorTitle, fillTitle string
	xlab, ylab            string
}

func (c *Chart) assemble(tbl data.Table) (*grid, error) {
	if tbl == nil {
		return nil, errors.New("chart: nil table")
	}
	if len(c.Layers) == 0 {
		return nil, errors.New("chart: no layers")
	}

	g := &grid{}

	// Layer configuration fails before any data is touched.
	for i, spec := range c.Layers {
		m := c.Mapping.Clone()
		for a, col := range spec.Mapping {
			m[a] = col
		}
		st, err := stat.New(spec.Stat, spec.Params)
		if err != nil {
			return nil, fmt.Errorf("chart: layer %d: %w", i, err)
		}
		adj, err := position.New(spec.Position, spec.Params)
		if err != nil {
			return nil, fmt.Errorf("chart: layer %d: %w", i, err)
		}
		g.runs = append(g.runs, layerRun{spec: spec, mapping: m, st: st, adj: adj})
	}

	// Facet levels define the panel grid.
	g.rowLevels, g.colLevels = []string{""}, []string{""}
	if c.Facet.Row != "" {
		g.rowLevels = data.Levels(tbl, c.Facet.Row)
		if len(g.rowLevels) == 0 {
			return nil, fmt.Errorf("chart: facet row %q has no levels", c.Facet.Row)
		}
	}
	if c.Facet.Col != "" {
		g.colLevels = data.Levels(tbl, c.Facet.Col)
		if len(g.colLevels) == 0 {
			return nil, fmt.Errorf("chart: facet column %q has no levels", c.Facet.Col)
		}
	}
	g.faceted = c.Facet.Row != "" || c.Facet.Col != ""
	nr, nc := len(g.rowLevels), len(g.colLevels)

	// Positional scales: a single shared instance, or one per facet
	// column and row when free.
	xCols := mappedCols(g.runs, tbl, gg.AesX, gg.AesXMin, gg.AesXMax, gg.AesXEnd)
	yCols := mappedCols(g.runs, tbl, gg.AesY, gg.AesYMin, gg.AesYMax, gg.AesYEnd)
	xKind, yKind := c.X.Kind, c.Y.Kind
	if xKind == "" && anyLevelCol(tbl, xCols) {
		xKind = "discrete"
	}
	if yKind == "" && anyLevelCol(tbl, yCols) {
		yKind = "discrete"
	}
	g.xScales = make([]scale.Positional, nc)
	g.yScales = make([]scale.Positional, nr)
	if err := fillScales(g.xScales, c.Facet.FreeX, xKind, c.X.Params); err != nil {
		return nil, fmt.Errorf("chart: x scale: %w", err)
	}
	if err := fillScales(g.yScales, c.Facet.FreeY, yKind, c.Y.Params); err != nil {
		return nil, fmt.Errorf("chart: y scale: %w", err)
	}

	// Discrete scales learn their levels from the raw columns before
	// the stats see codes. Free scales learn only their own facet
	// slice, shared ones the whole table once.
	for ci, s := range g.xScales {
		sub := tbl
		if c.Facet.FreeX && c.Facet.Col != "" {
			sub = data.Filter(tbl, c.Facet.Col, g.colLevels[ci])
		}
		trainLevels(s, sub, xCols)
		if !c.Facet.FreeX {
			break
		}
	}
	for r, s := range g.yScales {
		sub := tbl
		if c.Facet.FreeY && c.Facet.Row != "" {
			sub = data.Filter(tbl, c.Facet.Row, g.rowLevels[r])
		}
		trainLevels(s, sub, yCols)
		if !c.Facet.FreeY {
			break
		}
	}

	// Aesthetic scales exist once an aesthetic is mapped on any layer.
	if cols := mappedCols(g.runs, tbl, gg.AesColor); len(cols) > 0 {
		s, err := newColorScale(c.Color, tbl, cols, c.Palettes)
		if err != nil {
			return nil, fmt.Errorf("chart: color scale: %w", err)
		}
		g.color, g.colorTitle = s, cols[0]
	}
	if cols := mappedCols(g.runs, tbl, gg.AesFill); len(cols) > 0 {
		s, err := newColorScale(c.Fill, tbl, cols, c.Palettes)
		if err != nil {
			return nil, fmt.Errorf("chart: fill scale: %w", err)
		}
		g.fill, g.fillTitle = s, cols[0]
	}
	if len(mappedCols(g.runs, tbl, gg.AesSize)) > 0 {
		g.size = scale.NewSize(1, 6)
	}
	if len(mappedCols(g.runs, tbl, gg.AesAlpha)) > 0 {
		g.alpha = scale.NewAlpha(0.1, 1)
	}

	// Stats and position adjustments run per panel on the facet
	// slices; every scale then trains on the adjusted output.
	g.panels = make([][]*panel, nr)
	for r := range g.rowLevels {
		g.panels[r] = make([]*panel, nc)
		rt := tbl
		if c.Facet.Row != "" {
			rt = data.Filter(tbl, c.Facet.Row, g.rowLevels[r])
		}
		for ci := range g.colLevels {
			pt := rt
			if c.Facet.Col != "" {
				pt = data.Filter(rt, c.Facet.Col, g.colLevels[ci])
			}
			p := &panel{
				row: r, col: ci,
				x: g.xScales[ci], y: g.yScales[r],
				layers: make([][]gg.LayerData, len(g.runs)),
			}
			enc := encoded(pt, p.x, xCols, p.y, yCols)
			for li, run := range g.runs {
				rows, err := run.st.Apply(enc, run.mapping)
				if err != nil {
					return nil, fmt.Errorf("chart: layer %d: %w", li, err)
				}
				rows = run.adj.Adjust(rows)
				for i := range rows {
					d := &rows[i]
					p.x.TrainFloats(d.X, d.XMin, d.XMax, d.XEnd)
					p.y.TrainFloats(d.Y, d.YMin, d.YMax, d.YEnd)
					if g.color != nil {
						g.color.Train(d.Color)
					}
					if g.fill != nil {
						g.fill.Train(d.Fill)
					}
					if g.size != nil {
						g.size.TrainFloats(d.Size)
					}
					if g.alpha != nil {
						g.alpha.TrainFloats(d.Alpha)
					}
				}
				if baselineGeom(run.spec.Geom) {
					p.y.TrainFloats(0)
				}
				p.layers[li] = rows
			}
			g.panels[r][ci] = p
		}
	}

	deDegenerate(g.xScales)
	deDegenerate(g.yScales)
	g.debugScales("chart: trained scales")

	g.xlab, g.ylab = c.XLab, c.YLab
	if g.xlab == "" {
		if cols := mappedCols(g.runs, tbl, gg.AesX); len(cols) > 0 {
			g.xlab = cols[0]
		}
	}
	if g.ylab == "" {
		if cols := mappedCols(g.runs, tbl, gg.AesY); len(cols) > 0 {
			g.ylab = cols[0]
		}
	}

	return g, nil
}

// ----------------------------------------------------------------------------
// Scale plumbing

// mappedCols returns the table columns the layers bind to the given
// aesthetics, in first appearance order.
func mappedCols(runs []layerRun, tbl data.Table, aes ...gg.Aes) []string {
	var cols []string
	seen := map[string]bool{}
	for _, run := range runs {
		for _, a := range aes {
			col := run.mapping.Col(a)
			if col == "" || seen[col] || !tbl.Has(col) {
				continue
			}
			seen[col] = true
			cols = append(cols, col)
		}
	}
	return cols
}

// anyLevelCol reports whether one of the columns holds level values.
// Numeric columns do not count even though their values format as
// levels; they belong on continuous scales.
func anyLevelCol(tbl data.Table, cols []string) bool {
	for _, col := range cols {
		for i := 0; i < tbl.Len(); i++ {
			if v := tbl.Value(col, i); !v.IsAbsent() && !v.IsNum() {
				return true
			}
		}
	}
	return false
}

func fillScales(dst []scale.Positional, free bool, kind string, p gg.Params) error {
	mk := func() (scale.Positional, error) {
		s, err := scale.NewPositional(kind, p)
		if err != nil {
			return nil, err
		}
		// Positional scales breathe a little by default so marks do
		// not sit on the panel edge.
		if cs, ok := s.(*scale.Continuous); ok && !p.Has("expand") {
			cs.Expand.Rel = 0.05
		}
		return s, nil
	}
	if !free {
		s, err := mk()
		if err != nil {
			return err
		}
		for i := range dst {
			dst[i] = s
		}
		return nil
	}
	for i := range dst {
		s, err := mk()
		if err != nil {
			return err
		}
		dst[i] = s
	}
	return nil
}

// trainLevels feeds raw column values to a discrete scale so level
// codes are assigned before the stats run. Continuous scales train on
// the stat output instead.
func trainLevels(s scale.Positional, t data.Table, cols []string) {
	d, ok := s.(*scale.Discrete)
	if !ok {
		return
	}
	for _, col := range cols {
		for i := 0; i < t.Len(); i++ {
			d.Train(t.Value(col, i))
		}
	}
}

func newColorScale(spec ColorSpec, tbl data.Table, cols []string, lib *palette.Library) (scale.Color, error) {
	kind := spec.Kind
	if kind == "" && !anyLevelCol(tbl, cols) {
		kind = "continuous"
	}
	return scale.NewColor(kind, spec.Params, lib)
}

// baselineGeom reports whether a geometry grows from a zero baseline,
// which therefore belongs in the y domain.
func baselineGeom(k gg.GeomKind) bool {
	switch k {
	case gg.GeomBar, gg.GeomCol, gg.GeomHistogram, gg.GeomArea:
		return true
	}
	return false
}

// deDegenerate pins untrained continuous domains to [-1, 1] so empty
// panels still draw a frame.
func deDegenerate(scales []scale.Positional) {
	for _, s := range scales {
		cs, ok := s.(*scale.Continuous)
		if !ok {
			continue
		}
		if math.IsNaN(cs.Data.Min) && math.IsNaN(cs.Domain.Min) {
			cs.Domain.Min = -1
		}
		if math.IsNaN(cs.Data.Max) && math.IsNaN(cs.Domain.Max) {
			cs.Domain.Max = 1
		}
	}
}

func (g *grid) debugScales(info string) {
	if !debug {
		return
	}
	fmt.Println(info)
	fmt.Println("    X scales:")
	for _, s := range g.xScales {
		fmt.Println("       ", s)
	}
	fmt.Println("    Y scales:")
	for _, s := range g.yScales {
		fmt.Println("       ", s)
	}
}

// ----------------------------------------------------------------------------
// Level encoding

// A codedTable substitutes level codes for the level values of the
// discrete positional columns, so the stats and geometries see
// numbers. Levels the scale does not know read as absent.
type codedTable struct {
	data.Table
	codes map[string]*scale.Discrete
}

func (t codedTable) Value(col string, i int) gg.Value {
	s := t.codes[col]
	if s == nil {
		return t.Table.Value(col, i)
	}
	v := t.Table.Value(col, i)
	if l, ok := v.Level(); ok {
		if code, ok := s.Code(l); ok {
			return gg.Num(float64(code))
		}
		return gg.Absent()
	}
	return v
}

// encoded wraps t when a positional scale is discrete.
func encoded(t data.Table, x scale.Positional, xCols []string, y scale.Positional, yCols []string) data.Table {
	codes := map[string]*scale.Discrete{}
	if d, ok := x.(*scale.Discrete); ok {
		for _, col := range xCols {
			codes[col] = d
		}
	}
	if d, ok := y.(*scale.Discrete); ok {
		for _, col := range yCols {
			codes[col] = d
		}
	}
	if len(codes) == 0 {
		return t
	}
	return codedTable{Table: t, codes: codes}
}
