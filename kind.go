package gg

import "fmt"

// GeomKind names the geometry that draws a layer.
type GeomKind int

const (
	GeomBlank GeomKind = iota
	GeomPoint
	GeomJitter
	GeomCount
	GeomLine
	GeomPath
	GeomStep
	GeomSegment
	GeomCurve
	GeomSpoke
	GeomHLine
	GeomVLine
	GeomABLine
	GeomArea
	GeomRibbon
	GeomDensity
	GeomFreqPoly
	GeomFunction
	GeomBar
	GeomCol
	GeomHistogram
	GeomBoxplot
	GeomViolin
	GeomCrossbar
	GeomErrorbar
	GeomErrorbarH
	GeomLinerange
	GeomPointrange
	GeomDotplot
	GeomTile
	GeomRect
	GeomRaster
	GeomBin2D
	GeomContour
	GeomDensity2D
	GeomPolygon
	GeomMap
	GeomSF
	GeomSmooth
	GeomQuantile
	GeomQQ
	GeomQQLine
	GeomText
	GeomLabel
	GeomRug
	GeomPie
	GeomMag
	numGeomKinds
)

var geomNames = [...]string{
	GeomBlank:      "blank",
	GeomPoint:      "point",
	GeomJitter:     "jitter",
	GeomCount:      "count",
	GeomLine:       "line",
	GeomPath:       "path",
	GeomStep:       "step",
	GeomSegment:    "segment",
	GeomCurve:      "curve",
	GeomSpoke:      "spoke",
	GeomHLine:      "hline",
	GeomVLine:      "vline",
	GeomABLine:     "abline",
	GeomArea:       "area",
	GeomRibbon:     "ribbon",
	GeomDensity:    "density",
	GeomFreqPoly:   "freqpoly",
	GeomFunction:   "function",
	GeomBar:        "bar",
	GeomCol:        "col",
	GeomHistogram:  "histogram",
	GeomBoxplot:    "boxplot",
	GeomViolin:     "violin",
	GeomCrossbar:   "crossbar",
	GeomErrorbar:   "errorbar",
	GeomErrorbarH:  "errorbarh",
	GeomLinerange:  "linerange",
	GeomPointrange: "pointrange",
	GeomDotplot:    "dotplot",
	GeomTile:       "tile",
	GeomRect:       "rect",
	GeomRaster:     "raster",
	GeomBin2D:      "bin2d",
	GeomContour:    "contour",
	GeomDensity2D:  "density2d",
	GeomPolygon:    "polygon",
	GeomMap:        "map",
	GeomSF:         "sf",
	GeomSmooth:     "smooth",
	GeomQuantile:   "quantile",
	GeomQQ:         "qq",
	GeomQQLine:     "qq-line",
	GeomText:       "text",
	GeomLabel:      "label",
	GeomRug:        "rug",
	GeomPie:        "pie",
	GeomMag:        "mag",
}

func (g GeomKind) String() string {
	if g < 0 || int(g) >= len(geomNames) {
		return fmt.Sprintf("GeomKind(%d)", int(g))
	}
	return geomNames[g]
}

// GeomKinds returns every geometry kind. The renderer registry checks
// itself against this list.
func GeomKinds() []GeomKind {
	ks := make([]GeomKind, numGeomKinds)
	for i := range ks {
		ks[i] = GeomKind(i)
	}
	return ks
}

// GeomKindOf resolves a geom token as used in themes and CSS class
// names back to its kind.
func GeomKindOf(name string) (GeomKind, bool) {
	for k, n := range geomNames {
		if n == name {
			return GeomKind(k), true
		}
	}
	return GeomBlank, false
}

// StatKind names the statistical transform of a layer.
type StatKind int

const (
	StatIdentity StatKind = iota
	StatCount
	StatBin
	StatBin2D
	StatSum
	StatSummary
	StatBoxplot
	StatDensity
	StatYDensity
	StatECDF
	StatQQ
	StatSmooth
	StatQuantile
	StatContour
	StatDensity2D
	StatUnique
	StatSample
	StatFunction
	StatSF
	StatAlign
	numStatKinds
)

var statNames = [...]string{
	StatIdentity:  "identity",
	StatCount:     "count",
	StatBin:       "bin",
	StatBin2D:     "bin2d",
	StatSum:       "sum",
	StatSummary:   "summary",
	StatBoxplot:   "boxplot",
	StatDensity:   "density",
	StatYDensity:  "ydensity",
	StatECDF:      "ecdf",
	StatQQ:        "qq",
	StatSmooth:    "smooth",
	StatQuantile:  "quantile",
	StatContour:   "contour",
	StatDensity2D: "density2d",
	StatUnique:    "unique",
	StatSample:    "sample",
	StatFunction:  "function",
	StatSF:        "sf",
	StatAlign:     "align",
}

func (s StatKind) String() string {
	if s < 0 || int(s) >= len(statNames) {
		return fmt.Sprintf("StatKind(%d)", int(s))
	}
	return statNames[s]
}

// StatKindOf resolves a stat token to its kind.
func StatKindOf(name string) (StatKind, bool) {
	for k, n := range statNames {
		if n == name {
			return StatKind(k), true
		}
	}
	return StatIdentity, false
}

// PositionKind names the position adjustment of a layer.
type PositionKind int

const (
	PositionIdentity PositionKind = iota
	PositionStack
	PositionFill
	PositionDodge
	PositionJitter
	numPositionKinds
)

var positionNames = [...]string{
	PositionIdentity: "identity",
	PositionStack:    "stack",
	PositionFill:     "fill",
	PositionDodge:    "dodge",
	PositionJitter:   "jitter",
}

func (p PositionKind) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return fmt.Sprintf("PositionKind(%d)", int(p))
	}
	return positionNames[p]
}

// PositionKindOf resolves a position token to its kind.
func PositionKindOf(name string) (PositionKind, bool) {
	for k, n := range positionNames {
		if n == name {
			return PositionKind(k), true
		}
	}
	return PositionIdentity, false
}

// DefaultStat returns the statistical transform a geom runs when the
// layer does not name one. Most geoms draw their input unchanged.
func DefaultStat(g GeomKind) StatKind {
	switch g {
	case GeomBar, GeomCount:
		return StatCount
	case GeomHistogram, GeomFreqPoly:
		return StatBin
	case GeomBin2D:
		return StatBin2D
	case GeomBoxplot:
		return StatBoxplot
	case GeomDensity:
		return StatDensity
	case GeomViolin:
		return StatYDensity
	case GeomQQ, GeomQQLine:
		return StatQQ
	case GeomSmooth:
		return StatSmooth
	case GeomQuantile:
		return StatQuantile
	case GeomContour:
		return StatContour
	case GeomDensity2D:
		return StatDensity2D
	case GeomFunction:
		return StatFunction
	case GeomSF, GeomMap:
		return StatSF
	}
	return StatIdentity
}

// DefaultPosition returns the position adjustment a geom applies when
// the layer does not name one.
func DefaultPosition(g GeomKind) PositionKind {
	switch g {
	case GeomBar, GeomCol, GeomHistogram, GeomArea:
		return PositionStack
	case GeomJitter:
		return PositionJitter
	}
	return PositionIdentity
}
