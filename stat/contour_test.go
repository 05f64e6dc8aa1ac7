package stat

import (
	"math"
	"testing"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/data"
)

// gridTable builds the x, y, z columns of a dense grid.
func gridTable(xs, ys []float64, f func(x, y float64) float64) data.Table {
	var xc, yc, zc []float64
	for _, y := range ys {
		for _, x := range xs {
			xc = append(xc, x)
			yc = append(yc, y)
			zc = append(zc, f(x, y))
		}
	}
	return data.New().Nums("x", xc...).Nums("y", yc...).Nums("z", zc...)
}

var gridXY = gg.Mapping{gg.AesX: "x", gg.AesY: "y", gg.AesZ: "z"}

func TestContourPlane(t *testing.T) {
	// z = x: the 0.5 contour is the vertical line x = 0.5.
	tbl := gridTable(
		[]float64{0, 1, 2},
		[]float64{0, 1, 2},
		func(x, y float64) float64 { return x },
	)
	c := Contour{Levels: []float64{0.5}, Bins: 10}
	rows, err := c.Apply(tbl, gridXY)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) == 0 {
		t.Fatal("no contour rows")
	}
	for _, r := range rows {
		if !equal64(r.X, 0.5) {
			t.Errorf("contour point at x=%v, want 0.5", r.X)
		}
	}
	// One continuous piece from bottom to top.
	piece := rows[0].Meta.(gg.ContourMeta).Piece
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		if r.Meta.(gg.ContourMeta).Piece != piece {
			t.Fatal("plane contour split into pieces")
		}
		ymin = math.Min(ymin, r.Y)
		ymax = math.Max(ymax, r.Y)
	}
	if ymin != 0 || ymax != 2 {
		t.Errorf("contour spans y [%v, %v], want [0, 2]", ymin, ymax)
	}
	if rows[0].Meta.(gg.ContourMeta).Level != 0.5 {
		t.Errorf("level = %v", rows[0].Meta.(gg.ContourMeta).Level)
	}
}

func TestContourClosedRing(t *testing.T) {
	// A cone peaked at (2, 2): the -1.2 contour of its negated
	// distance is a closed ring around the center.
	xs := []float64{0, 1, 2, 3, 4}
	tbl := gridTable(xs, xs, func(x, y float64) float64 {
		return -math.Hypot(x-2, y-2)
	})
	c := Contour{Levels: []float64{-1.2}, Bins: 10}
	rows, err := c.Apply(tbl, gridXY)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) < 4 {
		t.Fatalf("got %d ring points", len(rows))
	}
	for _, r := range rows {
		if r.Meta.(gg.ContourMeta).Piece != rows[0].Meta.(gg.ContourMeta).Piece {
			t.Fatal("ring split into pieces")
		}
	}
	first, last := rows[0], rows[len(rows)-1]
	if first.X != last.X || first.Y != last.Y {
		t.Errorf("ring not closed: (%v, %v) vs (%v, %v)",
			first.X, first.Y, last.X, last.Y)
	}
}

func TestContourLevelColor(t *testing.T) {
	tbl := gridTable(
		[]float64{0, 1},
		[]float64{0, 1},
		func(x, y float64) float64 { return x + y },
	)
	rows, err := Contour{Levels: []float64{1}, Bins: 10}.Apply(tbl, gridXY)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) == 0 {
		t.Fatal("no rows")
	}
	if v, ok := rows[0].Color.Num(); !ok || v != 1 {
		t.Errorf("contour color = %v, want numeric level 1", rows[0].Color)
	}
}

func TestContourNeedsZ(t *testing.T) {
	tbl := data.New().Nums("x", 1).Nums("y", 1)
	_, err := Contour{Bins: 10}.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesY: "y"})
	if err == nil {
		t.Error("missing z mapping accepted")
	}
}

func TestContourDefaultLevelsInsideRange(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	tbl := gridTable(xs, xs, func(x, y float64) float64 { return x * y })
	rows, err := Contour{Bins: 5}.Apply(tbl, gridXY)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) == 0 {
		t.Fatal("no rows")
	}
	for _, r := range rows {
		l := r.Meta.(gg.ContourMeta).Level
		if l <= 0 || l >= 9 {
			t.Errorf("level %v outside the open z range", l)
		}
	}
}

func TestDensity2D(t *testing.T) {
	// Two well separated clusters give two rings at a low level.
	var xc, yc []float64
	for i := 0; i < 20; i++ {
		d := float64(i%5) * 0.05
		xc = append(xc, 0+d, 10+d)
		yc = append(yc, 0+d, 10+d)
	}
	tbl := data.New().Nums("x", xc...).Nums("y", yc...)
	rows, err := Density2D{N: 40, Bins: 8}.Apply(tbl, gg.Mapping{gg.AesX: "x", gg.AesY: "y"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) == 0 {
		t.Fatal("no density contours")
	}
	pieces := map[int]bool{}
	near, far := false, false
	for _, r := range rows {
		pieces[r.Meta.(gg.ContourMeta).Piece] = true
		if math.Hypot(r.X, r.Y) < 5 {
			near = true
		}
		if math.Hypot(r.X-10, r.Y-10) < 5 {
			far = true
		}
	}
	if len(pieces) < 2 {
		t.Errorf("got %d pieces, want contours around both clusters", len(pieces))
	}
	if !near || !far {
		t.Error("contours do not surround both clusters")
	}
}
