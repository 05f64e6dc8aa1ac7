package gg

// An Aes names an aesthetic a table column can be mapped to.
type Aes string

const (
	AesX      Aes = "x"
	AesY      Aes = "y"
	AesXMin   Aes = "xmin"
	AesXMax   Aes = "xmax"
	AesYMin   Aes = "ymin"
	AesYMax   Aes = "ymax"
	AesXEnd   Aes = "xend"
	AesYEnd   Aes = "yend"
	AesZ      Aes = "z"
	AesSample Aes = "sample"
	AesWeight Aes = "weight"
	AesAngle  Aes = "angle"
	AesRadius Aes = "radius"

	AesColor    Aes = "color"
	AesFill     Aes = "fill"
	AesGroup    Aes = "group"
	AesSize     Aes = "size"
	AesAlpha    Aes = "alpha"
	AesLinetype Aes = "linetype"
	AesShape    Aes = "shape"
	AesLabel    Aes = "label"
)

// A Mapping binds aesthetics to table column names.
type Mapping map[Aes]string

// Col returns the column mapped to a, or "" when unmapped.
func (m Mapping) Col(a Aes) string { return m[a] }

// Has reports whether aesthetic a is mapped.
func (m Mapping) Has(a Aes) bool {
	_, ok := m[a]
	return ok
}

// Clone returns a copy of m that can be modified independently.
func (m Mapping) Clone() Mapping {
	c := make(Mapping, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Params carries the free-form options of a layer, stat, position
// adjustment or scale. Lookups are permissive: a missing or mistyped
// entry yields the caller's default. Components that require a
// particular parameter validate it once at construction.
type Params map[string]any

// Float returns the parameter key as a float64.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// Int returns the parameter key as an int.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Str returns the parameter key as a string.
func (p Params) Str(key, def string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return def
}

// Bool returns the parameter key as a bool.
func (p Params) Bool(key string, def bool) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return def
}

// Floats returns the parameter key as a float slice. Scalar numbers
// yield a one-element slice.
func (p Params) Floats(key string) []float64 {
	switch v := p[key].(type) {
	case []float64:
		return v
	case float64:
		return []float64{v}
	case int:
		return []float64{float64(v)}
	case []any:
		fs := make([]float64, 0, len(v))
		for _, e := range v {
			switch n := e.(type) {
			case float64:
				fs = append(fs, n)
			case int:
				fs = append(fs, float64(n))
			}
		}
		return fs
	}
	return nil
}

// Func returns the parameter key as a float function, as used by the
// function stat.
func (p Params) Func(key string) (func(float64) float64, bool) {
	f, ok := p[key].(func(float64) float64)
	return f, ok
}

// Has reports whether the parameter key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// A LayerSpec describes one layer of a chart: which geometry draws it,
// which statistical transform prepares its rows, how overlapping
// elements are adjusted, and how table columns map onto aesthetics.
type LayerSpec struct {
	Geom     GeomKind
	Stat     StatKind
	Position PositionKind
	Mapping  Mapping
	Params   Params
}

// NewLayer returns a layer for geom g with the stat and position
// adjustment that geom runs by default.
func NewLayer(g GeomKind) *LayerSpec {
	return &LayerSpec{
		Geom:     g,
		Stat:     DefaultStat(g),
		Position: DefaultPosition(g),
		Mapping:  Mapping{},
		Params:   Params{},
	}
}

// Map binds aesthetic a to table column col and returns the layer for
// chaining.
func (s *LayerSpec) Map(a Aes, col string) *LayerSpec {
	if s.Mapping == nil {
		s.Mapping = Mapping{}
	}
	s.Mapping[a] = col
	return s
}

// Set stores a layer parameter and returns the layer for chaining.
func (s *LayerSpec) Set(key string, v any) *LayerSpec {
	if s.Params == nil {
		s.Params = Params{}
	}
	s.Params[key] = v
	return s
}
