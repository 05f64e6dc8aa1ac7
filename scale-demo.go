//go:build ignore
// +build ignore

package main

import (
	"math"
	"math/rand"
	"os"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/chart"
	"github.com/Alipsa/matrix-gg/data"
)

// Positional and color scale configuration: a log10 x axis over five
// decades of growth, and a gradient filled heatmap on two discrete
// axes.
func main() {
	logDemo()
	gradientDemo()
}

func logDemo() {
	rng := rand.New(rand.NewSource(7))
	var xs, ys []float64
	x := 10.0
	for i := 0; i < 50; i++ {
		xs = append(xs, x*(1+0.1*rng.NormFloat64()))
		ys = append(ys, float64(i)+2*rng.NormFloat64())
		x *= 1.2
	}
	tbl := data.New().Nums("load", xs...).Nums("latency", ys...)

	c := chart.New().
		Add(gg.NewLayer(gg.GeomPoint).Map(gg.AesX, "load").Map(gg.AesY, "latency"))
	c.Title = "Latency under load"
	c.X = chart.ScaleSpec{Kind: "log10"}

	write(c, tbl, "testdata/scale-log.svg", 600, 400)
}

func gradientDemo() {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	var ms, ds []string
	var act []float64
	for mi, m := range months {
		for di, d := range days {
			ms = append(ms, m)
			ds = append(ds, d)
			act = append(act, 50+40*math.Sin(float64(mi)/2)*math.Cos(float64(di)/3))
		}
	}
	tbl := data.New().
		Levels("month", ms...).
		Levels("day", ds...).
		Nums("activity", act...)

	c := chart.New().
		Add(gg.NewLayer(gg.GeomTile).
			Map(gg.AesX, "month").Map(gg.AesY, "day").Map(gg.AesFill, "activity"))
	c.Title = "Activity by day and month"
	c.Fill = chart.ColorSpec{
		Kind:   "gradient",
		Params: gg.Params{"low": "#132b43", "high": "#56b1f7"},
	}

	write(c, tbl, "testdata/scale-gradient.svg", 600, 400)
}

func write(c *chart.Chart, tbl data.Table, name string, w, h float64) {
	f, err := os.Create(name)
	if err != nil {
		panic(err)
	}
	if err := c.WriteSVG(tbl, f, w, h); err != nil {
		panic(err)
	}
	if err := f.Close(); err != nil {
		panic(err)
	}
}
