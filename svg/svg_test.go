package svg

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"
)

func render(t *testing.T, draw func(Surface)) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf, 600, 400)
	draw(w)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.String()
}

func TestWriterBasics(t *testing.T) {
	out := render(t, func(s Surface) {
		s.Rect(10, 20, 100, 50).
			Fill(color.RGBA{0x46, 0x82, 0xb4, 0xff}).
			Class("gg-bar").
			ID("demo-layer-0-bar-0")
		s.Circle(50, 50, 3).Fill(color.Black)
		s.Line(0, 0, 10, 10).Stroke(color.Black, 1.5)
	})

	for _, want := range []string{
		"<svg", "</svg>",
		"<rect", "<circle", "<line",
		`fill="#4682b4"`,
		`class="gg-bar"`,
		`id="demo-layer-0-bar-0"`,
		`stroke-width="1.5"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriterGroupNesting(t *testing.T) {
	out := render(t, func(s Surface) {
		g := s.Group("panel-0-0", "gg-panel")
		g.Rect(0, 0, 10, 10).Fill(nil)
	})
	if !strings.Contains(out, `id="panel-0-0"`) {
		t.Errorf("group id missing:\n%s", out)
	}
	if !strings.Contains(out, `class="gg-panel"`) {
		t.Errorf("group class missing:\n%s", out)
	}
	if strings.Count(out, "<g") != 1 || strings.Count(out, "</g>") != 1 {
		t.Errorf("group not balanced:\n%s", out)
	}
	if !strings.Contains(out, `fill="none"`) {
		t.Errorf("nil fill not none:\n%s", out)
	}
}

func TestWriterLateAttributes(t *testing.T) {
	out := render(t, func(s Surface) {
		n := s.Circle(1, 2, 3)
		s.Circle(4, 5, 6)
		// Attributes set after later elements were added must still
		// land on the first circle.
		n.Class("gg-point").Opacity(0.25)
	})
	first := strings.Index(out, "<circle")
	if first < 0 {
		t.Fatalf("no circle:\n%s", out)
	}
	second := strings.Index(out[first+1:], "<circle")
	if second < 0 {
		t.Fatalf("only one circle:\n%s", out)
	}
	firstTag := out[first : first+1+second]
	if !strings.Contains(firstTag, `class="gg-point"`) {
		t.Errorf("late class missing from first circle: %s", firstTag)
	}
	if !strings.Contains(firstTag, `opacity="0.25"`) {
		t.Errorf("late opacity missing from first circle: %s", firstTag)
	}
}

func TestWriterDropsNonFinite(t *testing.T) {
	out := render(t, func(s Surface) {
		s.Circle(math.NaN(), 0, 3)
		s.Line(0, 0, math.Inf(1), 10)
		s.Rect(0, 0, math.NaN(), 5)
		s.Text(math.NaN(), 0, "x")
	})
	for _, bad := range []string{"<circle", "<line", "<rect", "<text", "NaN", "Inf"} {
		if strings.Contains(out, bad) {
			t.Errorf("output contains %q:\n%s", bad, out)
		}
	}
}

func TestWriterDash(t *testing.T) {
	out := render(t, func(s Surface) {
		s.Line(0, 0, 10, 0).Stroke(color.Black, 1).Dash([]float64{4, 2})
	})
	if !strings.Contains(out, `stroke-dasharray="4,2"`) {
		t.Errorf("dash missing:\n%s", out)
	}
}

func TestWriterText(t *testing.T) {
	out := render(t, func(s Surface) {
		s.Text(5, 10, "hello").Attr("text-anchor", "middle")
	})
	if !strings.Contains(out, ">hello</text>") {
		t.Errorf("text content missing:\n%s", out)
	}
	if !strings.Contains(out, `text-anchor="middle"`) {
		t.Errorf("text attr missing:\n%s", out)
	}
}

func TestWriterCloseTwice(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 10, 10)
	if err := w.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := w.Close(); err == nil {
		t.Fatal("second Close did not fail")
	}
}

func TestPathData(t *testing.T) {
	var p PathData
	p.MoveTo(0, 0).LineTo(10, 5).CurveTo(12, 6, 14, 8, 16, 10).Close()
	got := p.String()
	want := "M0 0L10 5C12 6 14 8 16 10Z"
	if got != want {
		t.Errorf("PathData = %q, want %q", got, want)
	}

	var arc PathData
	arc.MoveTo(0, 0).ArcTo(3, 3, 0, false, true, 6, 0)
	if got, want := arc.String(), "M0 0A3 3 0 0 1 6 0"; got != want {
		t.Errorf("arc = %q, want %q", got, want)
	}
	if n := len(arc.Commands()); n != 2 {
		t.Errorf("arc records %d commands, want 2", n)
	}

	var empty PathData
	if !empty.Empty() {
		t.Error("empty path not Empty")
	}
}
