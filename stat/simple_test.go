package stat

import (
	"math"
	"testing"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

func TestUnique(t *testing.T) {
	tbl := data.New().
		Nums("x", 1, 1, 2, 1).
		Nums("y", 5, 5, 5, 6)
	rows, err := Unique{}.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesY: "y"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 distinct", len(rows))
	}
	if rows[0].X != 1 || rows[1].X != 2 || rows[2].Y != 6 {
		t.Errorf("kept %v", rows)
	}
}

func TestUniqueKeepsDistinctSeries(t *testing.T) {
	tbl := data.New().
		Nums("x", 1, 1).
		Levels("kind", "a", "b")
	rows, err := Unique{}.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesColor: "kind"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, same x in different series must survive", len(rows))
	}
}

func TestSample(t *testing.T) {
	var xs []float64
	for i := 0; i < 100; i++ {
		xs = append(xs, float64(i))
	}
	tbl := data.New().Nums("x", xs...)
	s := Sample{N: 10, Seed: 3}
	rows, err := s.Apply(tbl, gg.Mapping{gg.AesX: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].X <= rows[i-1].X {
			t.Fatal("sample not in original order")
		}
	}
	again, _ := s.Apply(tbl, gg.Mapping{gg.AesX: "x"})
	for i := range rows {
		if rows[i].X != again[i].X {
			t.Fatal("same seed drew a different sample")
		}
	}
	other, _ := Sample{N: 10, Seed: 4}.Apply(tbl, gg.Mapping{gg.AesX: "x"})
	same := true
	for i := range rows {
		same = same && rows[i].X == other[i].X
	}
	if same {
		t.Error("different seeds drew the same sample")
	}
}

func TestSampleSmallInputUntouched(t *testing.T) {
	tbl := data.New().Nums("x", 1, 2, 3)
	rows, err := Sample{N: 10, Seed: 1}.Apply(tbl, gg.Mapping{gg.AesX: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want all 3", len(rows))
	}
}

func TestFunction(t *testing.T) {
	f := Function{
		Fun:  func(x float64) float64 { return x * x },
		N:    11,
		XMin: 0,
		XMax: 10,
	}
	rows, err := f.Apply(data.New(), gg.Mapping{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 11 {
		t.Fatalf("got %d rows, want 11", len(rows))
	}
	if rows[0].X != 0 || rows[10].X != 10 {
		t.Errorf("grid spans [%v, %v]", rows[0].X, rows[10].X)
	}
	if rows[3].Y != 9 {
		t.Errorf("f(3) = %v, want 9", rows[3].Y)
	}
}

func TestFunctionRangeFromData(t *testing.T) {
	tbl := data.New().Nums("x", 2, 6)
	f := Function{
		Fun:  func(x float64) float64 { return x },
		N:    5,
		XMin: gg.Unset(),
		XMax: gg.Unset(),
	}
	rows, err := f.Apply(tbl, gg.Mapping{gg.AesX: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].X != 2 || rows[4].X != 6 {
		t.Errorf("grid spans [%v, %v], want [2, 6]", rows[0].X, rows[4].X)
	}
}

func TestFunctionWithoutRange(t *testing.T) {
	f := Function{Fun: math.Sqrt, N: 5, XMin: gg.Unset(), XMax: gg.Unset()}
	if _, err := f.Apply(data.New(), gg.Mapping{}); err == nil {
		t.Error("function stat without any x range accepted")
	}
}

func TestSF(t *testing.T) {
	tbl := data.New().
		Nums("x", 0, 1, 1, 0).
		Nums("y", 0, 0, 1, 1).
		Levels("feature", "f1", "f1", "f1", "f1")
	s := SF{GeomType: "polygon"}
	rows, err := s.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesY: "y", gg.AesGroup: "feature"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	for _, r := range rows {
		if r.Meta.(gg.SFMeta).GeomType != "polygon" {
			t.Fatalf("meta = %+v", r.Meta)
		}
		if r.Group != "f1" {
			t.Errorf("group = %q", r.Group)
		}
	}
}

func TestAlign(t *testing.T) {
	tbl := data.New().
		Nums("x", 0, 10, 5, 15).
		Nums("y", 0, 10, 0, 10).
		Levels("kind", "a", "a", "b", "b")
	a := Align{N: 4}
	rows, err := a.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesY: "y", gg.AesColor: "kind"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 8 {
		t.Fatalf("got %d rows, want 4 per series", len(rows))
	}
	// Both series sample the union grid 0, 5, 10, 15.
	for i := 0; i < 4; i++ {
		if rows[i].X != rows[i+4].X {
			t.Fatalf("grids differ: %v vs %v", rows[i].X, rows[i+4].X)
		}
	}
	if rows[1].X != 5 || rows[1].Y != 5 {
		t.Errorf("series a at x=5 interpolates to %v, want 5", rows[1].Y)
	}
	// Series a extends flat past its own range.
	if rows[3].Y != 10 {
		t.Errorf("series a at x=15 = %v, want clamped 10", rows[3].Y)
	}
	// Series b starts flat before its range.
	if rows[4].Y != 0 {
		t.Errorf("series b at x=0 = %v, want clamped 0", rows[4].Y)
	}
}

func TestInterp(t *testing.T) {
	xs := []float64{0, 1, 3}
	ys := []float64{0, 10, 30}
	cases := []struct{ x, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 5}, {1, 10}, {2, 20}, {3, 30}, {9, 30},
	}
	for _, tc := range cases {
		if got := interp(xs, ys, tc.x); got != tc.want {
			t.Errorf("interp(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}
