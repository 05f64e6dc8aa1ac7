package chart

import (
	"image/color"
	"math"
)

// A TextStyle sets the color and font size of a piece of chart text.
type TextStyle struct {
	Color color.Color
	Size  float64
}

// A LineStyle sets the color and width of a furniture line. A nil
// color or a zero width switches the line off.
type LineStyle struct {
	Color color.Color
	Width float64
}

// A TickStyle sets the tick marks and tick labels of an axis. Minor
// ticks draw at half length and carry no label.
type TickStyle struct {
	LineStyle
	Length float64
	Label  TextStyle
}

// A Theme controls how the chart furniture is drawn. All lengths are
// in document units.
type Theme struct {
	// Background fills the whole document when set.
	Background color.Color

	Title       TextStyle
	TitleHeight float64

	Panel struct {
		Background color.Color
		PadX       float64
		PadY       float64
	}

	// HStrip banners label the facet columns above the top panel row,
	// VStrip banners the facet rows right of the last panel column.
	HStrip struct {
		Background color.Color
		Height     float64
		TextStyle
	}
	VStrip struct {
		Background color.Color
		Width      float64
		TextStyle
	}

	Grid struct {
		Major LineStyle
		Minor LineStyle
	}

	XAxis struct {
		Title       TextStyle
		TitleHeight float64
		Line        LineStyle
		Tick        TickStyle
	}
	YAxis struct {
		Title      TextStyle
		TitleWidth float64
		Line       LineStyle
		Tick       TickStyle
	}

	Legend struct {
		// Position is "right" or "none".
		Position string

		Title TextStyle
		Label TextStyle

		// KeySize is the side of one discrete key swatch, Pad the gap
		// between legend pieces.
		KeySize float64
		Pad     float64

		// BarSize and BarLength size the continuous colorbar.
		BarSize   float64
		BarLength float64
	}
}

// DefaultTheme returns a theme which mimics the appearance of ggplot2:
// gray panels under white grid lines, banner strips, no panel border.
// The baseFontSize is the font size for axis titles and strip labels,
// the chart title is a bit bigger, tick labels a bit smaller.
func DefaultTheme(baseFontSize float64) Theme {
	scale := func(f float64) float64 {
		return math.Round(f * baseFontSize)
	}

	th := Theme{}

	th.Title = TextStyle{Color: color.Black, Size: scale(1.2)}
	th.TitleHeight = scale(3)

	th.Panel.Background = color.Gray16{0xeeee}
	th.Panel.PadX = scale(0.5)
	th.Panel.PadY = th.Panel.PadX

	th.HStrip.Background = color.Gray16{0xcccc}
	th.HStrip.Height = scale(2)
	th.HStrip.TextStyle = TextStyle{Color: color.Black, Size: baseFontSize}

	th.VStrip.Background = color.Gray16{0xcccc}
	th.VStrip.Width = scale(2.5)
	th.VStrip.TextStyle = th.HStrip.TextStyle

	th.Grid.Major = LineStyle{Color: color.White, Width: 1}
	th.Grid.Minor = LineStyle{Color: color.White, Width: 0.5}

	tickLabel := TextStyle{Color: color.Black, Size: scale(1 / 1.2)}

	th.XAxis.Title = TextStyle{Color: color.Black, Size: baseFontSize}
	th.XAxis.TitleHeight = scale(2)
	th.XAxis.Line = LineStyle{Color: color.Gray16{0x3333}, Width: 1}
	th.XAxis.Tick.LineStyle = LineStyle{Color: color.Gray16{0x1111}, Width: 1}
	th.XAxis.Tick.Length = 5
	th.XAxis.Tick.Label = tickLabel

	th.YAxis.Title = th.XAxis.Title
	th.YAxis.TitleWidth = scale(2)
	th.YAxis.Line = th.XAxis.Line
	th.YAxis.Tick = th.XAxis.Tick

	th.Legend.Position = "right"
	th.Legend.Title = TextStyle{Color: color.Black, Size: baseFontSize}
	th.Legend.Label = tickLabel
	th.Legend.KeySize = 20
	th.Legend.Pad = 4
	th.Legend.BarSize = 20
	th.Legend.BarLength = 150

	return th
}
