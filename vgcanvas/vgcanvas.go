// Package vgcanvas renders a chart surface onto a gonum/plot drawing
// canvas, so charts target the raster and vector backends vg provides
// (PNG through vgimg, PDF, EPS) next to the native SVG writer.
//
// The document coordinate system is y down with the origin in the top
// left corner; vg grows y upward, so every point flips on the way
// through. Class, ID and Attr hooks are accepted and dropped, except
// the text attributes: vg has no DOM to hang them on.
package vgcanvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Alipsa/matrix-gg/svg"
)

// fontName is the face all text renders with. vg ships it, so no font
// files need to be present at run time.
const fontName = "Helvetica"

// A Canvas is a Surface drawing onto a vg canvas. Elements are
// retained until Close so their attributes can still change after
// being placed, mirroring the SVG writer; Close replays them in paint
// order.
type Canvas struct {
	dc     draw.Canvas
	nodes  []*node
	closed bool
}

// New returns a Surface drawing onto dc. The caller keeps ownership of
// dc and saves it after Close.
func New(dc draw.Canvas) *Canvas {
	return &Canvas{dc: dc}
}

// Close replays the retained elements onto the canvas. The Canvas must
// not be used afterwards.
func (c *Canvas) Close() error {
	if c.closed {
		return fmt.Errorf("vgcanvas: canvas already closed")
	}
	c.closed = true
	for _, n := range c.nodes {
		n.flush(c)
	}
	return nil
}

func (c *Canvas) Rect(x, y, w, h float64) svg.Node {
	return c.add(rectNode, !finite(x, y, w, h), x, y, w, h)
}

func (c *Canvas) Line(x1, y1, x2, y2 float64) svg.Node {
	return c.add(lineNode, !finite(x1, y1, x2, y2), x1, y1, x2, y2)
}

func (c *Canvas) Circle(cx, cy, r float64) svg.Node {
	return c.add(circleNode, !finite(cx, cy, r), cx, cy, r)
}

func (c *Canvas) Path(d svg.PathData) svg.Node {
	n := c.add(pathNode, d.Empty())
	n.cmds = d.Commands()
	return n
}

func (c *Canvas) Text(x, y float64, s string) svg.Node {
	n := c.add(textNode, !finite(x, y) || s == "", x, y)
	n.text = s
	return n
}

// Group returns the canvas itself. vg has no element tree, so grouping
// only affects paint order, which the flat node list already keeps.
func (c *Canvas) Group(id, class string) svg.Surface { return c }

func (c *Canvas) add(kind nodeKind, dropped bool, coords ...float64) *node {
	n := &node{kind: kind, dropped: dropped, opacity: 1}
	copy(n.coords[:], coords)
	c.nodes = append(c.nodes, n)
	return n
}

// x and y map document coordinates into the canvas rectangle.
func (c *Canvas) x(x float64) vg.Length { return c.dc.Min.X + vg.Length(x) }
func (c *Canvas) y(y float64) vg.Length { return c.dc.Max.Y - vg.Length(y) }

func (c *Canvas) pt(x, y float64) vg.Point {
	return vg.Point{X: c.x(x), Y: c.y(y)}
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// ----------------------------------------------------------------------------
// Nodes

type nodeKind int

const (
	rectNode nodeKind = iota
	lineNode
	circleNode
	pathNode
	textNode
)

type node struct {
	kind    nodeKind
	coords  [4]float64
	cmds    []svg.PathCmd
	text    string
	dropped bool

	fill      color.Color
	hasFill   bool
	stroke    color.Color
	strokeW   float64
	hasStroke bool
	opacity   float64
	dash      []float64
	anchor    string
	fontSize  float64
}

func (n *node) Fill(c color.Color) svg.Node {
	n.fill, n.hasFill = c, true
	return n
}

func (n *node) Stroke(c color.Color, width float64) svg.Node {
	n.stroke, n.strokeW, n.hasStroke = c, width, true
	return n
}

func (n *node) Opacity(o float64) svg.Node {
	n.opacity = o
	return n
}

func (n *node) Dash(pattern []float64) svg.Node {
	n.dash = pattern
	return n
}

func (n *node) Class(names ...string) svg.Node { return n }

func (n *node) ID(id string) svg.Node { return n }

// Attr keeps the attributes that change how text renders and drops the
// rest.
func (n *node) Attr(key, value string) svg.Node {
	switch key {
	case "text-anchor":
		n.anchor = value
	case "font-size":
		if s, err := strconv.ParseFloat(value, 64); err == nil && s > 0 {
			n.fontSize = s
		}
	}
	return n
}

// ----------------------------------------------------------------------------
// Replay

func (n *node) flush(c *Canvas) {
	if n.dropped {
		return
	}
	switch n.kind {
	case rectNode:
		x, y, w, h := n.coords[0], n.coords[1], n.coords[2], n.coords[3]
		r := vg.Rectangle{Min: c.pt(x, y+h), Max: c.pt(x+w, y)}
		n.paint(c, r.Path())
	case lineNode:
		if col, ok := n.strokePaint(); ok {
			c.dc.StrokeLine2(n.lineStyle(col),
				c.x(n.coords[0]), c.y(n.coords[1]),
				c.x(n.coords[2]), c.y(n.coords[3]))
		}
	case circleNode:
		cx, cy, r := n.coords[0], n.coords[1], n.coords[2]
		var p vg.Path
		p.Move(vg.Point{X: c.x(cx) + vg.Length(r), Y: c.y(cy)})
		p.Arc(c.pt(cx, cy), vg.Length(r), 0, 2*math.Pi)
		p.Close()
		n.paint(c, p)
	case pathNode:
		n.paint(c, c.vgPath(n.cmds))
	case textNode:
		n.fillText(c)
	}
}

// paint fills and strokes one path with the node's styles. An element
// that never received a fill or stroke draws nothing, so a forgotten
// style is visible in the output instead of defaulting to black.
func (n *node) paint(c *Canvas, p vg.Path) {
	if n.hasFill && n.fill != nil {
		c.dc.SetColor(withAlpha(n.fill, n.opacity))
		c.dc.Fill(p)
	}
	if col, ok := n.strokePaint(); ok {
		c.dc.SetColor(col)
		c.dc.SetLineWidth(vg.Length(n.strokeW))
		c.dc.SetLineDash(lengths(n.dash), 0)
		c.dc.Stroke(p)
	}
}

func (n *node) strokePaint() (color.Color, bool) {
	if !n.hasStroke || n.stroke == nil || n.strokeW <= 0 {
		return nil, false
	}
	return withAlpha(n.stroke, n.opacity), true
}

func (n *node) lineStyle(col color.Color) draw.LineStyle {
	return draw.LineStyle{
		Color:  col,
		Width:  vg.Length(n.strokeW),
		Dashes: lengths(n.dash),
	}
}

func (n *node) fillText(c *Canvas) {
	size := n.fontSize
	if size <= 0 {
		size = 11
	}
	font, err := vg.MakeFont(fontName, vg.Length(size))
	if err != nil {
		return
	}
	col := n.fill
	if !n.hasFill || col == nil {
		col = color.Black
	}
	sty := draw.TextStyle{Color: withAlpha(col, n.opacity), Font: font}
	switch n.anchor {
	case "middle":
		sty.XAlign = draw.XCenter
	case "end":
		sty.XAlign = draw.XRight
	}
	c.dc.FillText(sty, c.pt(n.coords[0], n.coords[1]), n.text)
}

// ----------------------------------------------------------------------------
// Path replay

// curveSteps is the number of line segments approximating one cubic
// segment. vg paths carry no cubics, so curves flatten on replay.
const curveSteps = 24

// vgPath rebuilds the recorded commands as a vg path, flipping into
// canvas coordinates.
func (c *Canvas) vgPath(cmds []svg.PathCmd) vg.Path {
	var p vg.Path
	var curX, curY, startX, startY float64
	for _, cmd := range cmds {
		switch cmd.Op {
		case svg.OpMove:
			curX, curY = cmd.Args[0], cmd.Args[1]
			startX, startY = curX, curY
			p.Move(c.pt(curX, curY))
		case svg.OpLine:
			curX, curY = cmd.Args[0], cmd.Args[1]
			p.Line(c.pt(curX, curY))
		case svg.OpCurve:
			c.flattenCurve(&p, curX, curY, cmd)
			curX, curY = cmd.Args[4], cmd.Args[5]
		case svg.OpArc:
			c.arc(&p, curX, curY, cmd)
			curX, curY = cmd.Args[5], cmd.Args[6]
		case svg.OpClose:
			p.Close()
			curX, curY = startX, startY
		}
	}
	return p
}

func (c *Canvas) flattenCurve(p *vg.Path, x0, y0 float64, cmd svg.PathCmd) {
	cx1, cy1 := cmd.Args[0], cmd.Args[1]
	cx2, cy2 := cmd.Args[2], cmd.Args[3]
	x1, y1 := cmd.Args[4], cmd.Args[5]
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		x := u*u*u*x0 + 3*u*u*t*cx1 + 3*u*t*t*cx2 + t*t*t*x1
		y := u*u*u*y0 + 3*u*u*t*cy1 + 3*u*t*t*cy2 + t*t*t*y1
		p.Line(c.pt(x, y))
	}
}

// arc converts one endpoint parametrized arc to vg's center
// parametrization. The radii collapse to circular using rx, which is
// all the chart emits. Document angles flip sign on the way into vg's
// y up space.
func (c *Canvas) arc(p *vg.Path, x1, y1 float64, cmd svg.PathCmd) {
	rx := cmd.Args[0]
	large := cmd.Args[3] != 0
	sweep := cmd.Args[4] != 0
	x2, y2 := cmd.Args[5], cmd.Args[6]

	dx, dy := (x1-x2)/2, (y1-y2)/2
	dd := dx*dx + dy*dy
	if dd == 0 {
		return
	}
	r := math.Max(rx, math.Sqrt(dd))
	k := math.Sqrt(math.Max(0, r*r/dd-1))
	if large == sweep {
		k = -k
	}
	cx := (x1+x2)/2 + k*dy
	cy := (y1+y2)/2 - k*dx

	th1 := math.Atan2(y1-cy, x1-cx)
	th2 := math.Atan2(y2-cy, x2-cx)
	dth := th2 - th1
	if sweep && dth < 0 {
		dth += 2 * math.Pi
	}
	if !sweep && dth > 0 {
		dth -= 2 * math.Pi
	}
	p.Arc(c.pt(cx, cy), vg.Length(r), -th1, -dth)
}

// ----------------------------------------------------------------------------
// Style conversion

func withAlpha(col color.Color, a float64) color.Color {
	if col == nil || a >= 1 {
		return col
	}
	if a < 0 {
		a = 0
	}
	n := color.NRGBA64Model.Convert(col).(color.NRGBA64)
	n.A = uint16(float64(n.A) * a)
	return n
}

func lengths(ds []float64) []vg.Length {
	if len(ds) == 0 {
		return nil
	}
	ls := make([]vg.Length, len(ds))
	for i, d := range ds {
		ls[i] = vg.Length(d)
	}
	return ls
}
