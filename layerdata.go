package gg

// A LayerData is one renderable element as produced by a statistical
// transform and consumed by a geometry. Spatial fields hold data-space
// values until the geom pushes them through the panel scales; NaN
// marks a field the stat did not produce (see Has).
//
// Color and Fill stay raw Values so that both discrete and continuous
// color scales can interpret them. Row points back at the source table
// row, or is -1 for synthetic rows such as density grid points.
type LayerData struct {
	X, Y       float64
	XMin, XMax float64
	YMin, YMax float64
	XEnd, YEnd float64

	// Angle and Radius describe spoke endpoints in data space.
	Angle, Radius float64

	Color Value
	Fill  Value

	Size     float64
	Alpha    float64
	Linetype string
	Shape    string
	Label    string

	Group string
	Row   int

	Meta Meta
}

// NewLayerData returns a LayerData with every spatial and numeric
// aesthetic unset and Row marked synthetic.
func NewLayerData() LayerData {
	u := Unset()
	return LayerData{
		X: u, Y: u,
		XMin: u, XMax: u,
		YMin: u, YMax: u,
		XEnd: u, YEnd: u,
		Angle: u, Radius: u,
		Size: u, Alpha: u,
		Row: -1,
	}
}
