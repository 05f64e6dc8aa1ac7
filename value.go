package gg

import (
	"math"
	"strconv"
)

// A Value is a single cell of chart data. It is either a continuous
// float64, a discrete level (a string), or absent. Scales inspect the
// kind to decide how a value maps to screen space: continuous scales
// consume numbers, discrete scales consume levels and fall back to the
// formatted number when fed a numeric value.
type Value struct {
	num  float64
	lvl  string
	kind valueKind
}

type valueKind uint8

const (
	absentValue valueKind = iota
	numValue
	levelValue
)

// Num returns a continuous Value. NaN yields an absent Value.
func Num(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{num: f, kind: numValue}
}

// Level returns a discrete Value with the given level name.
func Level(s string) Value { return Value{lvl: s, kind: levelValue} }

// Absent returns the absent Value, the zero Value.
func Absent() Value { return Value{} }

// Num returns the numeric content of v. For a level it attempts to
// parse the level as a float.
func (v Value) Num() (float64, bool) {
	switch v.kind {
	case numValue:
		return v.num, true
	case levelValue:
		f, err := strconv.ParseFloat(v.lvl, 64)
		return f, err == nil
	}
	return 0, false
}

// Level returns the level name of v. Numeric values format themselves
// so that a discrete scale can treat any column as factor levels.
func (v Value) Level() (string, bool) {
	switch v.kind {
	case numValue:
		return strconv.FormatFloat(v.num, 'g', -1, 64), true
	case levelValue:
		return v.lvl, true
	}
	return "", false
}

// IsAbsent reports whether v holds no data.
func (v Value) IsAbsent() bool { return v.kind == absentValue }

// IsNum reports whether v holds a continuous number.
func (v Value) IsNum() bool { return v.kind == numValue }

// String renders v for labels and level keys. Absent values render
// empty.
func (v Value) String() string {
	s, _ := v.Level()
	return s
}

// Has reports whether the float64 field x of a LayerData is set.
// Unset aesthetic fields are NaN.
func Has(x float64) bool { return !math.IsNaN(x) }

// Unset is the canonical "not set" float64 for LayerData fields.
func Unset() float64 { return math.NaN() }
