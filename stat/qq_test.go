package stat

import (
	"math"
	"strconv"
	"testing"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

var normInvCDFTests = []struct {
	p    float64
	want float64
}{
	{0.5, 0},
	{0.975, 1.959964},
	{0.025, -1.959964},
	{0.8413447461, 1},
	{0.1586552539, -1},
	{0.99, 2.326348},
	{0.01, -2.326348},
	{0.001, -3.090232},
}

func TestNormInvCDF(t *testing.T) {
	for i, tc := range normInvCDFTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if got := normInvCDF(tc.p); math.Abs(got-tc.want) > 1e-5 {
				t.Errorf("normInvCDF(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestNormInvCDFSymmetry(t *testing.T) {
	for p := 0.01; p < 0.5; p += 0.04 {
		a, b := normInvCDF(p), normInvCDF(1-p)
		if math.Abs(a+b) > 1e-8 {
			t.Errorf("normInvCDF(%v) = %v not mirrored by %v", p, a, b)
		}
	}
}

func TestQQ(t *testing.T) {
	tbl := data.New().Nums("s", 30, 10, 20)
	rows, err := QQ{}.Apply(tbl, gg.Mapping{gg.AesSample: "s"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// Sorted sample against the quantiles of (i-0.5)/n.
	if rows[0].Y != 10 || rows[1].Y != 20 || rows[2].Y != 30 {
		t.Errorf("sample order = %v, %v, %v", rows[0].Y, rows[1].Y, rows[2].Y)
	}
	if rows[1].X != 0 {
		t.Errorf("middle quantile = %v, want 0", rows[1].X)
	}
	if !equal64(rows[2].X, -rows[0].X) {
		t.Errorf("quantiles not symmetric: %v, %v", rows[0].X, rows[2].X)
	}
	if rows[0].Meta.(gg.QQMeta).Theoretical != rows[0].X {
		t.Error("meta theoretical differs from x")
	}
}

func TestQQNeedsSample(t *testing.T) {
	tbl := data.New().Nums("x", 1, 2)
	if _, err := (QQ{}).Apply(tbl, gg.Mapping{gg.AesX: "x"}); err == nil {
		t.Error("missing sample mapping accepted")
	}
}
