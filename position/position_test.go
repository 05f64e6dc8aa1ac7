package position

import (
	"math"
	"testing"

	gg "github.com/Alipsa/matrix-gg"
)

func row(x, y float64, group string) gg.LayerData {
	d := gg.NewLayerData()
	d.X, d.Y, d.Group = x, y, group
	return d
}

func snapshot(rows []gg.LayerData) []gg.LayerData {
	c := make([]gg.LayerData, len(rows))
	copy(c, rows)
	return c
}

func sameRows(a, b []gg.LayerData) bool {
	if len(a) != len(b) {
		return false
	}
	eq := func(x, y float64) bool {
		if math.IsNaN(x) || math.IsNaN(y) {
			return math.IsNaN(x) && math.IsNaN(y)
		}
		return x == y
	}
	for i := range a {
		if !eq(a[i].X, b[i].X) || !eq(a[i].Y, b[i].Y) ||
			!eq(a[i].YMin, b[i].YMin) || !eq(a[i].YMax, b[i].YMax) {
			return false
		}
	}
	return true
}

func TestStack(t *testing.T) {
	in := []gg.LayerData{
		row(1, 3, "a"),
		row(1, 2, "b"),
		row(1, 5, "c"),
		row(2, 4, "a"),
	}
	before := snapshot(in)

	out := Stack{}.Adjust(in)

	if !sameRows(in, before) {
		t.Fatal("Adjust mutated its input")
	}
	wants := []struct{ ymin, ymax float64 }{
		{0, 3}, {3, 5}, {5, 10}, {0, 4},
	}
	for i, w := range wants {
		if out[i].YMin != w.ymin || out[i].YMax != w.ymax {
			t.Errorf("row %d = [%v, %v], want [%v, %v]",
				i, out[i].YMin, out[i].YMax, w.ymin, w.ymax)
		}
	}
	if out[2].YMax != 3+2+5 {
		t.Errorf("top of stack = %v, want sum 10", out[2].YMax)
	}
}

func TestStackReverse(t *testing.T) {
	in := []gg.LayerData{
		row(1, 3, "a"),
		row(1, 2, "b"),
	}
	out := Stack{Reverse: true}.Adjust(in)
	// b stacks first, a on top.
	if out[1].YMin != 0 || out[1].YMax != 2 {
		t.Errorf("b = [%v, %v], want [0, 2]", out[1].YMin, out[1].YMax)
	}
	if out[0].YMin != 2 || out[0].YMax != 5 {
		t.Errorf("a = [%v, %v], want [2, 5]", out[0].YMin, out[0].YMax)
	}
}

func TestStackNegative(t *testing.T) {
	in := []gg.LayerData{
		row(1, 3, "a"),
		row(1, -2, "b"),
		row(1, -1, "c"),
	}
	out := Stack{}.Adjust(in)
	if out[0].YMin != 0 || out[0].YMax != 3 {
		t.Errorf("a = [%v, %v], want [0, 3]", out[0].YMin, out[0].YMax)
	}
	if out[1].YMax != 0 || out[1].YMin != -2 {
		t.Errorf("b = [%v, %v], want [-2, 0]", out[1].YMin, out[1].YMax)
	}
	if out[2].YMax != -2 || out[2].YMin != -3 {
		t.Errorf("c = [%v, %v], want [-3, -2]", out[2].YMin, out[2].YMax)
	}
}

func TestFill(t *testing.T) {
	in := []gg.LayerData{
		row(1, 3, "a"),
		row(1, 2, "b"),
		row(1, 5, "c"),
	}
	out := Fill{}.Adjust(in)

	if out[2].YMax != 1 {
		t.Errorf("top = %v, want 1", out[2].YMax)
	}
	if got := out[0].YMax; math.Abs(got-0.3) > 1e-9 {
		t.Errorf("a ymax = %v, want 0.3", got)
	}
	if got := out[1].Y; math.Abs(got-0.4) > 1e-9 {
		t.Errorf("b midpoint = %v, want 0.4", got)
	}
	for i := range out {
		if out[i].YMin < 0 || out[i].YMax > 1 {
			t.Errorf("row %d = [%v, %v] outside [0, 1]",
				i, out[i].YMin, out[i].YMax)
		}
	}
}

func TestFillAllNonPositive(t *testing.T) {
	in := []gg.LayerData{
		row(1, -3, "a"),
		row(1, -2, "b"),
	}
	out := Fill{}.Adjust(in)
	// Nothing positive to normalize by: stacked values remain.
	if out[0].YMin != -3 || out[1].YMin != -5 {
		t.Errorf("got [%v, %v], want stacked [-3, -5]", out[0].YMin, out[1].YMin)
	}
}

func TestDodge(t *testing.T) {
	in := []gg.LayerData{
		row(1, 3, "a"),
		row(1, 2, "b"),
		row(2, 4, "a"),
		row(2, 6, "b"),
	}
	before := snapshot(in)
	out := Dodge{Width: 0.8}.Adjust(in)

	if !sameRows(in, before) {
		t.Fatal("Adjust mutated its input")
	}
	const eps = 1e-9
	if math.Abs(out[0].X-0.8) > eps || math.Abs(out[1].X-1.2) > eps {
		t.Errorf("x=1 dodged to %v, %v, want 0.8, 1.2", out[0].X, out[1].X)
	}
	// Series keep their slots at the next x position.
	if math.Abs(out[2].X-1.8) > eps || math.Abs(out[3].X-2.2) > eps {
		t.Errorf("x=2 dodged to %v, %v, want 1.8, 2.2", out[2].X, out[3].X)
	}
	// Offset is symmetric around the original position.
	if math.Abs((out[0].X+out[1].X)/2-1) > eps {
		t.Errorf("dodge not centered: %v, %v", out[0].X, out[1].X)
	}
}

func TestDodgeSingleGroup(t *testing.T) {
	in := []gg.LayerData{row(1, 3, "a"), row(2, 4, "a")}
	out := Dodge{}.Adjust(in)
	if out[0].X != 1 || out[1].X != 2 {
		t.Errorf("single series moved: %v, %v", out[0].X, out[1].X)
	}
}

func TestJitterBoundedAndSeeded(t *testing.T) {
	var in []gg.LayerData
	for i := 0; i < 50; i++ {
		in = append(in, row(float64(i%5), float64(i%7), ""))
	}
	before := snapshot(in)

	j := Jitter{Width: 0.3, Height: 0, Seed: 7}
	out := j.Adjust(in)

	if !sameRows(in, before) {
		t.Fatal("Adjust mutated its input")
	}
	for i := range out {
		if d := math.Abs(out[i].X - in[i].X); d > 0.3 {
			t.Fatalf("row %d moved by %v, amplitude 0.3", i, d)
		}
		if out[i].Y != in[i].Y {
			t.Fatalf("row %d y moved with zero height", i)
		}
	}

	again := j.Adjust(in)
	if !sameRows(out, again) {
		t.Error("same seed produced different jitter")
	}
	other := Jitter{Width: 0.3, Height: 0, Seed: 8}.Adjust(in)
	if sameRows(out, other) {
		t.Error("different seeds produced identical jitter")
	}
}

func TestJitterDefaultAmplitude(t *testing.T) {
	in := []gg.LayerData{row(0, 0, ""), row(1, 10, ""), row(2, 20, "")}
	out := Jitter{Width: math.NaN(), Height: math.NaN(), Seed: 1}.Adjust(in)
	// Resolution is 1 in x and 10 in y, amplitudes 0.2 and 2.
	for i := range out {
		if d := math.Abs(out[i].X - in[i].X); d > 0.2 {
			t.Errorf("row %d x moved by %v, want <= 0.2", i, d)
		}
		if d := math.Abs(out[i].Y - in[i].Y); d > 2 {
			t.Errorf("row %d y moved by %v, want <= 2", i, d)
		}
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(gg.PositionDodge, gg.Params{"width": -1}); err == nil {
		t.Error("negative dodge width accepted")
	}
	if _, err := New(gg.PositionJitter, gg.Params{"height": -0.1}); err == nil {
		t.Error("negative jitter height accepted")
	}
	if _, err := New(gg.PositionKind(99), nil); err == nil {
		t.Error("unknown kind accepted")
	}
	for _, k := range []gg.PositionKind{
		gg.PositionIdentity, gg.PositionStack, gg.PositionFill,
		gg.PositionDodge, gg.PositionJitter,
	} {
		if _, err := New(k, nil); err != nil {
			t.Errorf("New(%v) = %v", k, err)
		}
	}
}
