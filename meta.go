package gg

// Meta is the typed side-channel a statistical transform attaches to
// the rows it emits. Each stat has its own payload type; geometries
// type-assert the payload they understand and ignore the rest.
type Meta interface {
	isMeta()
}

// BoxplotMeta is attached by the boxplot stat, one row per group.
// WhiskerLo and WhiskerHi are the most extreme observations still
// inside the 1.5 IQR fences, not the fences themselves.
type BoxplotMeta struct {
	Q1, Median, Q3       float64
	WhiskerLo, WhiskerHi float64
	Outliers             []float64
	N                    int
	RelVarWidth          float64
}

// BinMeta is attached by the bin stats, one row per bin.
type BinMeta struct {
	Start, End float64
	Count      int
	Density    float64
}

// CountMeta is attached by the count stat. Prop is the share of the
// group count in the layer total.
type CountMeta struct {
	N    int
	Prop float64
}

// SummaryMeta is attached by the summary and sum stats.
type SummaryMeta struct {
	N   int
	Fun string
}

// DensityMeta is attached by the density stats, one row per grid
// point. Scaled is the density divided by the group maximum.
type DensityMeta struct {
	Density float64
	Scaled  float64
	N       int
}

// ECDFMeta is attached by the ecdf stat.
type ECDFMeta struct {
	N int
}

// QQMeta is attached by the qq stat. Theoretical repeats the
// theoretical quantile placed in X.
type QQMeta struct {
	Theoretical float64
}

// SmoothMeta is attached by the smooth stat.
type SmoothMeta struct {
	Method string
}

// ContourMeta is attached by contour-producing stats. Rows that share
// Level and Piece form one polyline in grid order.
type ContourMeta struct {
	Level float64
	Piece int
}

// QuantileMeta is attached by the quantile regression stat.
type QuantileMeta struct {
	Tau float64
}

// SFMeta is attached by the simple-features stat and tells the sf
// geom how to draw a feature.
type SFMeta struct {
	GeomType string // "point", "line" or "polygon"
}

func (BoxplotMeta) isMeta()  {}
func (BinMeta) isMeta()      {}
func (CountMeta) isMeta()    {}
func (SummaryMeta) isMeta()  {}
func (DensityMeta) isMeta()  {}
func (ECDFMeta) isMeta()     {}
func (QQMeta) isMeta()       {}
func (SmoothMeta) isMeta()   {}
func (ContourMeta) isMeta()  {}
func (QuantileMeta) isMeta() {}
func (SFMeta) isMeta()       {}
