package stat

import (
	"math"
	"testing"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

func TestDensity(t *testing.T) {
	xs := []float64{-2, -1, -1, 0, 0, 0, 1, 1, 2}
	tbl := data.New().Nums("x", xs...)
	d := Density{Bandwidth: gg.Unset(), Adjust: 1, N: 200}
	rows, err := d.Apply(tbl, gg.Mapping{gg.AesX: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 200 {
		t.Fatalf("got %d grid points, want 200", len(rows))
	}

	// The curve should cover the data plus tails and integrate to
	// about one.
	if rows[0].X >= -2 || rows[len(rows)-1].X <= 2 {
		t.Errorf("grid [%v, %v] does not clear the data", rows[0].X, rows[len(rows)-1].X)
	}
	integral := 0.0
	for i := 1; i < len(rows); i++ {
		dx := rows[i].X - rows[i-1].X
		integral += dx * (rows[i].Y + rows[i-1].Y) / 2
	}
	if math.Abs(integral-1) > 0.05 {
		t.Errorf("density integrates to %v", integral)
	}

	// Symmetric sample: the peak sits near zero.
	peak, at := 0.0, 0.0
	for _, r := range rows {
		if r.Y > peak {
			peak, at = r.Y, r.X
		}
	}
	if math.Abs(at) > 0.5 {
		t.Errorf("peak at %v, want near 0", at)
	}
	meta := rows[0].Meta.(gg.DensityMeta)
	if meta.N != len(xs) {
		t.Errorf("meta n = %d, want %d", meta.N, len(xs))
	}
}

func TestDensityScaledPeaksAtOne(t *testing.T) {
	tbl := data.New().Nums("x", 1, 2, 2, 3, 5, 8)
	rows, err := Density{Bandwidth: gg.Unset(), Adjust: 1, N: 100}.
		Apply(tbl, gg.Mapping{gg.AesX: "x"})
	if err != nil {
		t.Fatal(err)
	}
	max := 0.0
	for _, r := range rows {
		if s := r.Meta.(gg.DensityMeta).Scaled; s > max {
			max = s
		}
	}
	if !equal64(max, 1) {
		t.Errorf("max scaled density = %v, want 1", max)
	}
}

func TestDensitySkipsDegenerateSeries(t *testing.T) {
	tbl := data.New().Nums("x", 4, 4, 4, 4)
	rows, err := Density{Bandwidth: gg.Unset(), Adjust: 1, N: 50}.
		Apply(tbl, gg.Mapping{gg.AesX: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("constant series produced %d rows", len(rows))
	}
}

func TestYDensity(t *testing.T) {
	tbl := data.New().
		Nums("x", 1, 1, 1, 1, 2, 2, 2, 2).
		Nums("y", 0, 1, 1, 2, 10, 20, 20, 30)
	d := YDensity{Bandwidth: gg.Unset(), Adjust: 1, N: 64, Scale: "width"}
	rows, err := d.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesY: "y"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 128 {
		t.Fatalf("got %d rows, want 64 per violin", len(rows))
	}
	// Trimmed to the observed range.
	first, last := rows[0], rows[63]
	if first.X != 1 || first.Y != 0 || last.Y != 2 {
		t.Errorf("violin 1 spans (%v) %v..%v, want (1) 0..2", first.X, first.Y, last.Y)
	}
	// Width mode: every violin reaches a scaled width of one.
	for _, half := range [][]gg.LayerData{rows[:64], rows[64:]} {
		max := 0.0
		for _, r := range half {
			if s := r.Meta.(gg.DensityMeta).Scaled; s > max {
				max = s
			}
		}
		if !equal64(max, 1) {
			t.Errorf("violin max scaled = %v, want 1", max)
		}
	}
}

func TestYDensityAreaScaleComparesViolins(t *testing.T) {
	// Second violin is much more spread out, so its absolute density
	// peak is lower and area scaling must keep it below the first.
	tbl := data.New().
		Nums("x", 1, 1, 1, 1, 2, 2, 2, 2).
		Nums("y", 0, 0.1, 0.1, 0.2, 0, 10, 20, 30)
	d := YDensity{Bandwidth: gg.Unset(), Adjust: 1, N: 64, Scale: "area"}
	rows, err := d.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesY: "y"})
	if err != nil {
		t.Fatal(err)
	}
	max1, max2 := 0.0, 0.0
	for _, r := range rows {
		s := r.Meta.(gg.DensityMeta).Scaled
		if r.X == 1 && s > max1 {
			max1 = s
		}
		if r.X == 2 && s > max2 {
			max2 = s
		}
	}
	if !equal64(max1, 1) {
		t.Errorf("dense violin scaled peak = %v, want 1", max1)
	}
	if max2 >= max1 {
		t.Errorf("spread violin peak %v not below dense peak %v", max2, max1)
	}
}
