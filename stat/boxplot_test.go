package stat

import (
	"strconv"
	"testing"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

var quantileTests = []struct {
	xs   []float64
	p    float64
	want float64
}{
	{[]float64{1, 2, 3, 4, 5}, 0.25, 2},
	{[]float64{1, 2, 3, 4, 5}, 0.5, 3},
	{[]float64{1, 2, 3, 4, 5}, 0.75, 4},
	{[]float64{1, 2, 3, 4}, 0.5, 2.5},
	{[]float64{1, 2, 3, 4, 5, 100}, 0.25, 2.25},
	{[]float64{1, 2, 3, 4, 5, 100}, 0.5, 3.5},
	{[]float64{1, 2, 3, 4, 5, 100}, 0.75, 4.75},
	{[]float64{7}, 0.9, 7},
	{[]float64{1, 2}, 0, 1},
	{[]float64{1, 2}, 1, 2},
}

func TestQuantile(t *testing.T) {
	for i, tc := range quantileTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if got := quantile(tc.xs, tc.p); !equal64(got, tc.want) {
				t.Errorf("quantile(%v, %v) = %v, want %v", tc.xs, tc.p, got, tc.want)
			}
		})
	}
}

func TestBoxplot(t *testing.T) {
	tbl := data.New().
		Nums("x", 1, 1, 1, 1, 1, 1).
		Nums("y", 1, 2, 3, 4, 5, 100)
	rows, err := Boxplot{Coef: 1.5}.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesY: "y"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	d := rows[0]
	meta := d.Meta.(gg.BoxplotMeta)
	if !equal64(meta.Q1, 2.25) || !equal64(meta.Median, 3.5) || !equal64(meta.Q3, 4.75) {
		t.Errorf("box = %v / %v / %v, want 2.25 / 3.5 / 4.75", meta.Q1, meta.Median, meta.Q3)
	}
	// Fences at -1.5 and 8.5: whiskers stop at the data inside them.
	if meta.WhiskerLo != 1 || meta.WhiskerHi != 5 {
		t.Errorf("whiskers = [%v, %v], want [1, 5]", meta.WhiskerLo, meta.WhiskerHi)
	}
	if len(meta.Outliers) != 1 || meta.Outliers[0] != 100 {
		t.Errorf("outliers = %v, want [100]", meta.Outliers)
	}
	if d.YMin != 1 || d.YMax != 5 || !equal64(d.Y, 3.5) {
		t.Errorf("row extent = %v [%v, %v]", d.Y, d.YMin, d.YMax)
	}
	if meta.N != 6 || meta.RelVarWidth != 1 {
		t.Errorf("n = %d, relvarwidth = %v", meta.N, meta.RelVarWidth)
	}
}

func TestBoxplotRelVarWidth(t *testing.T) {
	tbl := data.New().
		Nums("x", 1, 1, 1, 1, 2).
		Nums("y", 1, 2, 3, 4, 10)
	rows, err := Boxplot{Coef: 1.5}.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesY: "y"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	wide := rows[0].Meta.(gg.BoxplotMeta)
	thin := rows[1].Meta.(gg.BoxplotMeta)
	if wide.RelVarWidth != 1 {
		t.Errorf("largest group relvarwidth = %v, want 1", wide.RelVarWidth)
	}
	if !equal64(thin.RelVarWidth, 0.5) {
		t.Errorf("n=1 group relvarwidth = %v, want 0.5", thin.RelVarWidth)
	}
}

func TestBoxplotSingleton(t *testing.T) {
	tbl := data.New().Nums("x", 1).Nums("y", 42)
	rows, err := Boxplot{Coef: 1.5}.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesY: "y"})
	if err != nil {
		t.Fatal(err)
	}
	meta := rows[0].Meta.(gg.BoxplotMeta)
	if meta.Q1 != 42 || meta.Median != 42 || meta.Q3 != 42 {
		t.Errorf("degenerate box = %+v", meta)
	}
	if meta.WhiskerLo != 42 || meta.WhiskerHi != 42 || len(meta.Outliers) != 0 {
		t.Errorf("degenerate whiskers = %+v", meta)
	}
}
