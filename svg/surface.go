// Package svg defines the drawing surface the chart renderers paint
// on, and implements it as an SVG document writer.
//
// A Surface hands out Nodes in paint order. A Node is a handle on the
// emitted element; its attributes can be set until the document is
// closed, so renderers may decorate an element after placing it.
package svg

import (
	"fmt"
	"image/color"
	"strings"
)

// A Node is one emitted element. All methods return the node so
// attribute setting chains.
type Node interface {
	// Fill sets the fill color. nil means no fill ("none").
	Fill(c color.Color) Node

	// Stroke sets the stroke color and width. A nil color removes
	// the stroke.
	Stroke(c color.Color, width float64) Node

	// Opacity sets the element opacity between 0 and 1.
	Opacity(o float64) Node

	// Dash sets the stroke dash pattern. Empty means solid.
	Dash(pattern []float64) Node

	// Class appends CSS class names.
	Class(names ...string) Node

	// ID sets the element id. Empty ids are ignored.
	ID(id string) Node

	// Attr sets a raw attribute.
	Attr(key, value string) Node
}

// A Surface receives drawing primitives in paint order. Coordinates
// are in document space with y growing downward. Primitives with
// non-finite coordinates are dropped silently.
type Surface interface {
	Rect(x, y, w, h float64) Node
	Line(x1, y1, x2, y2 float64) Node
	Circle(cx, cy, r float64) Node
	Path(d PathData) Node
	Text(x, y float64, s string) Node

	// Group opens a nested container. id and class may be empty.
	Group(id, class string) Surface
}

// A PathOp is the kind of one path command.
type PathOp uint8

const (
	OpMove PathOp = iota
	OpLine
	OpCurve
	OpArc
	OpClose
)

// A PathCmd is one command of a PathData. Args usage by op: OpMove and
// OpLine take x, y; OpCurve takes cx1, cy1, cx2, cy2, x, y; OpArc
// takes rx, ry, rot, large, sweep, x, y with the flags as 0 or 1;
// OpClose takes none.
type PathCmd struct {
	Op   PathOp
	Args [7]float64
}

// PathData assembles a path as a command sequence. The zero value is
// an empty path. Surfaces either serialize it (String yields the SVG
// "d" attribute form) or replay the commands.
type PathData struct {
	cmds []PathCmd
}

// MoveTo starts a new subpath at (x, y).
func (p *PathData) MoveTo(x, y float64) *PathData {
	p.cmds = append(p.cmds, PathCmd{Op: OpMove, Args: [7]float64{x, y}})
	return p
}

// LineTo draws a line to (x, y).
func (p *PathData) LineTo(x, y float64) *PathData {
	p.cmds = append(p.cmds, PathCmd{Op: OpLine, Args: [7]float64{x, y}})
	return p
}

// CurveTo draws a cubic Bezier curve to (x, y) with control points
// (cx1, cy1) and (cx2, cy2).
func (p *PathData) CurveTo(cx1, cy1, cx2, cy2, x, y float64) *PathData {
	p.cmds = append(p.cmds, PathCmd{Op: OpCurve, Args: [7]float64{cx1, cy1, cx2, cy2, x, y}})
	return p
}

// ArcTo draws an elliptical arc to (x, y) with radii rx and ry.
// large and sweep select among the four candidate arcs.
func (p *PathData) ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64) *PathData {
	p.cmds = append(p.cmds, PathCmd{
		Op:   OpArc,
		Args: [7]float64{rx, ry, rot, b2f(large), b2f(sweep), x, y},
	})
	return p
}

// Close closes the current subpath.
func (p *PathData) Close() *PathData {
	p.cmds = append(p.cmds, PathCmd{Op: OpClose})
	return p
}

// Empty reports whether no commands have been added.
func (p *PathData) Empty() bool { return len(p.cmds) == 0 }

// Commands returns the recorded commands for surfaces that replay
// paths instead of serializing them.
func (p *PathData) Commands() []PathCmd { return p.cmds }

// String returns the path in SVG "d" attribute form.
func (p *PathData) String() string {
	var b strings.Builder
	for _, c := range p.cmds {
		a := c.Args
		switch c.Op {
		case OpMove:
			fmt.Fprintf(&b, "M%.6g %.6g", a[0], a[1])
		case OpLine:
			fmt.Fprintf(&b, "L%.6g %.6g", a[0], a[1])
		case OpCurve:
			fmt.Fprintf(&b, "C%.6g %.6g %.6g %.6g %.6g %.6g", a[0], a[1], a[2], a[3], a[4], a[5])
		case OpArc:
			fmt.Fprintf(&b, "A%.6g %.6g %.6g %d %d %.6g %.6g",
				a[0], a[1], a[2], int(a[3]), int(a[4]), a[5], a[6])
		case OpClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
