//go:build ignore
// +build ignore

package main

import (
	"math"
	"os"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/chart"
	"github.com/Alipsa/matrix-gg/data"
)

// Legend guides and styling hooks: a discrete key legend, a viridis
// colorbar, and the same chart again with CSS classes, ids and data
// attributes switched on for downstream styling.
func main() {
	var xs, ys, mag []float64
	var kind []string
	names := []string{"alpha", "beta", "gamma"}
	for i := 0; i < 30; i++ {
		t := float64(i) / 5
		xs = append(xs, t)
		ys = append(ys, math.Sin(t)+float64(i%3))
		mag = append(mag, math.Abs(math.Sin(t))*10)
		kind = append(kind, names[i%3])
	}
	tbl := data.New().
		Nums("t", xs...).
		Nums("v", ys...).
		Nums("mag", mag...).
		Levels("kind", kind...)

	keys := chart.New().
		Add(gg.NewLayer(gg.GeomPoint).
			Map(gg.AesX, "t").Map(gg.AesY, "v").Map(gg.AesColor, "kind"))
	keys.Title = "Discrete keys"
	write(keys, tbl, "testdata/guide-keys.svg")

	bar := chart.New().
		Add(gg.NewLayer(gg.GeomPoint).
			Map(gg.AesX, "t").Map(gg.AesY, "v").Map(gg.AesColor, "mag"))
	bar.Title = "Colorbar"
	write(bar, tbl, "testdata/guide-colorbar.svg")

	hooked := chart.New().
		Add(gg.NewLayer(gg.GeomPoint).
			Map(gg.AesX, "t").Map(gg.AesY, "v").Map(gg.AesColor, "kind"))
	hooked.Title = "Styling hooks"
	hooked.CSS = gg.CSSAttributes("guide")
	write(hooked, tbl, "testdata/guide-hooks.svg")
}

func write(c *chart.Chart, tbl data.Table, name string) {
	f, err := os.Create(name)
	if err != nil {
		panic(err)
	}
	if err := c.WriteSVG(tbl, f, 600, 400); err != nil {
		panic(err)
	}
	if err := f.Close(); err != nil {
		panic(err)
	}
}
