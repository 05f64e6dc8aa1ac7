package svg

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo/float"
)

// A Writer is a Surface that serializes to an SVG document. Elements
// are retained until Close so their attributes can still change after
// being placed; Close writes the document in paint order.
type Writer struct {
	out    io.Writer
	width  float64
	height float64
	root   element
	closed bool
}

// NewWriter returns a Surface writing an SVG document of the given
// pixel size to out.
func NewWriter(out io.Writer, width, height float64) *Writer {
	return &Writer{out: out, width: width, height: height,
		root: element{kind: elemGroup}}
}

// Close serializes the document. The Writer must not be used
// afterwards.
func (w *Writer) Close() error {
	if w.closed {
		return fmt.Errorf("svg: writer already closed")
	}
	w.closed = true
	cw := &countingWriter{w: w.out}
	canvas := svgo.New(cw)
	canvas.Start(w.width, w.height)
	for _, el := range w.root.children {
		el.flush(canvas)
	}
	canvas.End()
	return cw.err
}

func (w *Writer) Rect(x, y, wd, h float64) Node { return w.root.rect(x, y, wd, h) }

func (w *Writer) Line(x1, y1, x2, y2 float64) Node { return w.root.line(x1, y1, x2, y2) }

func (w *Writer) Circle(cx, cy, r float64) Node { return w.root.circle(cx, cy, r) }

func (w *Writer) Path(d PathData) Node { return w.root.path(d) }

func (w *Writer) Text(x, y float64, s string) Node { return w.root.text(x, y, s) }

func (w *Writer) Group(id, class string) Surface { return w.root.group(id, class) }

// countingWriter keeps the first write error; svgo does not report
// them.
type countingWriter struct {
	w   io.Writer
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return len(p), nil
	}
	n, err := c.w.Write(p)
	if err != nil {
		c.err = err
	}
	return n, nil
}

type elemKind int

const (
	elemGroup elemKind = iota
	elemRect
	elemLine
	elemCircle
	elemPath
	elemText
)

type element struct {
	kind    elemKind
	coords  [4]float64
	str     string // path data or text content
	dropped bool

	fill      color.Color
	hasFill   bool
	stroke    color.Color
	strokeW   float64
	hasStroke bool
	opacity   float64
	hasOpac   bool
	dash      []float64
	id        string
	class     []string
	extra     []string

	children []*element
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (e *element) add(child *element) *element {
	e.children = append(e.children, child)
	return child
}

func (e *element) rect(x, y, w, h float64) Node {
	return e.add(&element{kind: elemRect, coords: [4]float64{x, y, w, h},
		dropped: !finite(x, y, w, h)})
}

func (e *element) line(x1, y1, x2, y2 float64) Node {
	return e.add(&element{kind: elemLine, coords: [4]float64{x1, y1, x2, y2},
		dropped: !finite(x1, y1, x2, y2)})
}

func (e *element) circle(cx, cy, r float64) Node {
	return e.add(&element{kind: elemCircle, coords: [4]float64{cx, cy, r},
		dropped: !finite(cx, cy, r)})
}

func (e *element) path(d PathData) Node {
	return e.add(&element{kind: elemPath, str: d.String(), dropped: d.Empty()})
}

func (e *element) text(x, y float64, s string) Node {
	return e.add(&element{kind: elemText, coords: [4]float64{x, y},
		str: s, dropped: !finite(x, y) || s == ""})
}

func (e *element) group(id, class string) Surface {
	g := &element{kind: elemGroup, id: id}
	if class != "" {
		g.class = []string{class}
	}
	e.add(g)
	return g
}

func (e *element) Fill(c color.Color) Node {
	e.fill, e.hasFill = c, true
	return e
}

func (e *element) Stroke(c color.Color, width float64) Node {
	e.stroke, e.strokeW, e.hasStroke = c, width, true
	return e
}

func (e *element) Opacity(o float64) Node {
	e.opacity, e.hasOpac = o, true
	return e
}

func (e *element) Dash(pattern []float64) Node {
	e.dash = pattern
	return e
}

func (e *element) Class(names ...string) Node {
	for _, n := range names {
		if n != "" {
			e.class = append(e.class, n)
		}
	}
	return e
}

func (e *element) ID(id string) Node {
	if id != "" {
		e.id = id
	}
	return e
}

func (e *element) Attr(key, value string) Node {
	e.extra = append(e.extra, fmt.Sprintf("%s=%q", key, value))
	return e
}

func (e *element) Rect(x, y, w, h float64) Node     { return e.rect(x, y, w, h) }
func (e *element) Line(x1, y1, x2, y2 float64) Node { return e.line(x1, y1, x2, y2) }
func (e *element) Circle(cx, cy, r float64) Node    { return e.circle(cx, cy, r) }
func (e *element) Path(d PathData) Node             { return e.path(d) }
func (e *element) Text(x, y float64, s string) Node { return e.text(x, y, s) }
func (e *element) Group(id, class string) Surface   { return e.group(id, class) }

// attrs renders the collected attributes as raw `key="value"` strings
// in the order id, class, paint, extras.
func (e *element) attrs() []string {
	var as []string
	if e.id != "" {
		as = append(as, fmt.Sprintf("id=%q", e.id))
	}
	if len(e.class) > 0 {
		as = append(as, fmt.Sprintf("class=%q", strings.Join(e.class, " ")))
	}
	if e.hasFill {
		if e.fill == nil {
			as = append(as, `fill="none"`)
		} else {
			hex, op := colorAttr(e.fill)
			as = append(as, fmt.Sprintf("fill=%q", hex))
			if op != "" {
				as = append(as, fmt.Sprintf("fill-opacity=%q", op))
			}
		}
	}
	if e.hasStroke {
		if e.stroke == nil {
			as = append(as, `stroke="none"`)
		} else {
			hex, op := colorAttr(e.stroke)
			as = append(as, fmt.Sprintf("stroke=%q", hex))
			as = append(as, fmt.Sprintf("stroke-width=%q", ftoa(e.strokeW)))
			if op != "" {
				as = append(as, fmt.Sprintf("stroke-opacity=%q", op))
			}
		}
	}
	if e.hasOpac {
		as = append(as, fmt.Sprintf("opacity=%q", ftoa(e.opacity)))
	}
	if len(e.dash) > 0 {
		ds := make([]string, len(e.dash))
		for i, d := range e.dash {
			ds[i] = ftoa(d)
		}
		as = append(as, fmt.Sprintf("stroke-dasharray=%q", strings.Join(ds, ",")))
	}
	return append(as, e.extra...)
}

func (e *element) flush(canvas *svgo.SVG) {
	if e.dropped {
		return
	}
	switch e.kind {
	case elemGroup:
		canvas.Group(e.attrs()...)
		for _, c := range e.children {
			c.flush(canvas)
		}
		canvas.Gend()
	case elemRect:
		canvas.Rect(e.coords[0], e.coords[1], e.coords[2], e.coords[3], e.attrs()...)
	case elemLine:
		canvas.Line(e.coords[0], e.coords[1], e.coords[2], e.coords[3], e.attrs()...)
	case elemCircle:
		canvas.Circle(e.coords[0], e.coords[1], e.coords[2], e.attrs()...)
	case elemPath:
		canvas.Path(e.str, e.attrs()...)
	case elemText:
		canvas.Text(e.coords[0], e.coords[1], e.str, e.attrs()...)
	}
}

func colorAttr(c color.Color) (hex, opacity string) {
	r, g, b, a := c.RGBA()
	hex = fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
	if a8 := uint8(a >> 8); a8 != 0xff {
		opacity = ftoa(float64(a8) / 255)
	}
	return hex, opacity
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}
