//go:build ignore
// +build ignore

package main

import (
	"math/rand"
	"os"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/chart"
	"github.com/Alipsa/matrix-gg/data"
	"github.com/Alipsa/matrix-gg/vgcanvas"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// A bubble chart with mapped size and alpha, rasterized to PNG
// through the vg canvas instead of the SVG writer.
func main() {
	rng := rand.New(rand.NewSource(3))
	var xs, ys, pop, age []float64
	for i := 0; i < 40; i++ {
		xs = append(xs, 20+60*rng.Float64())
		ys = append(ys, 40+30*rng.Float64())
		pop = append(pop, rng.Float64()*rng.Float64()*900)
		age = append(age, 20+20*rng.Float64())
	}
	tbl := data.New().
		Nums("income", xs...).
		Nums("life", ys...).
		Nums("population", pop...).
		Nums("age", age...)

	c := chart.New().
		Add(gg.NewLayer(gg.GeomPoint).
			Map(gg.AesX, "income").
			Map(gg.AesY, "life").
			Map(gg.AesSize, "population").
			Map(gg.AesAlpha, "age"))
	c.Title = "Bubble sizes"

	const w, h = 900, 600
	img := vgimg.New(w, h)
	cv := vgcanvas.New(draw.New(img))
	if err := c.Render(tbl, cv, w, h); err != nil {
		panic(err)
	}
	if err := cv.Close(); err != nil {
		panic(err)
	}

	out, err := os.Create("testdata/size.png")
	if err != nil {
		panic(err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(out); err != nil {
		panic(err)
	}
	if err = out.Close(); err != nil {
		panic(err)
	}
}
