//go:build ignore
// +build ignore

package main

import (
	"os"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/chart"
	"github.com/Alipsa/matrix-gg/data"
)

// Counted bars in the three positions, one SVG per variant.
func main() {
	var class, drv []string
	add := func(cl, d string, n int) {
		for i := 0; i < n; i++ {
			class = append(class, cl)
			drv = append(drv, d)
		}
	}
	add("compact", "front", 12)
	add("compact", "all", 3)
	add("midsize", "front", 10)
	add("midsize", "all", 4)
	add("suv", "all", 16)
	add("suv", "rear", 5)
	add("pickup", "rear", 9)
	add("pickup", "all", 7)
	tbl := data.New().Levels("class", class...).Levels("drv", drv...)

	for _, pos := range []struct {
		name string
		kind gg.PositionKind
	}{
		{"stack", gg.PositionStack},
		{"fill", gg.PositionFill},
		{"dodge", gg.PositionDodge},
	} {
		l := gg.NewLayer(gg.GeomBar).Map(gg.AesX, "class").Map(gg.AesFill, "drv")
		l.Position = pos.kind

		c := chart.New().Add(l)
		c.Title = "Vehicles by class, position " + pos.name

		w, err := os.Create("testdata/bar-" + pos.name + ".svg")
		if err != nil {
			panic(err)
		}
		if err := c.WriteSVG(tbl, w, 600, 400); err != nil {
			panic(err)
		}
		if err := w.Close(); err != nil {
			panic(err)
		}
	}
}
