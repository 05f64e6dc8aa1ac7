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

// A 2x2 facet grid of damped oscillations: damping by row, drive
// frequency by column, shared scales across the grid.
func main() {
	var ts, ys []float64
	var damp, freq []string
	for _, d := range []struct {
		name string
		k    float64
	}{
		{"light damping", 0.15},
		{"heavy damping", 0.6},
	} {
		for _, f := range []struct {
			name string
			w    float64
		}{
			{"slow drive", 2},
			{"fast drive", 6},
		} {
			for i := 0; i <= 120; i++ {
				t := float64(i) / 20
				ts = append(ts, t)
				ys = append(ys, math.Exp(-d.k*t)*math.Sin(f.w*t))
				damp = append(damp, d.name)
				freq = append(freq, f.name)
			}
		}
	}
	tbl := data.New().
		Nums("t", ts...).
		Nums("y", ys...).
		Levels("damping", damp...).
		Levels("drive", freq...)

	c := chart.New().
		Add(gg.NewLayer(gg.GeomLine).Map(gg.AesX, "t").Map(gg.AesY, "y")).
		Add(gg.NewLayer(gg.GeomHLine).Set("yintercept", 0).Set("linetype", "dotted"))
	c.Title = "Damped oscillation"
	c.XLab = "time"
	c.YLab = "amplitude"
	c.Facet = chart.Facet{Row: "damping", Col: "drive"}

	w, err := os.Create("testdata/facet.svg")
	if err != nil {
		panic(err)
	}
	if err := c.WriteSVG(tbl, w, 800, 600); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
}
