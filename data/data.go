// Package data defines the tabular input of the chart pipeline and a
// columnar in-memory implementation of it.
package data

import (
	"math"

	gg "github.com/Alipsa/matrix-gg"
)

// Table is the row-column view the statistical transforms consume.
// Cells are returned as gg.Value so a column can hold continuous
// numbers, discrete levels, or gaps.
type Table interface {
	// Len returns the number of rows.
	Len() int

	// Columns returns the column names in table order.
	Columns() []string

	// Has reports whether the named column exists.
	Has(col string) bool

	// Value returns the cell of the named column in row i. Unknown
	// columns and gaps yield the absent Value.
	Value(col string, i int) gg.Value
}

type column struct {
	name  string
	nums  []float64
	lvls  []string
	isNum bool
}

// A Frame is a columnar in-memory Table. Columns are appended with
// Nums and Levels; the frame length is the longest column, shorter
// columns read as absent past their end.
type Frame struct {
	cols  []column
	index map[string]int
	n     int
}

// New returns an empty Frame.
func New() *Frame {
	return &Frame{index: map[string]int{}}
}

// Nums appends a continuous column. NaN cells are gaps.
func (f *Frame) Nums(name string, xs ...float64) *Frame {
	f.add(column{name: name, nums: xs, isNum: true}, len(xs))
	return f
}

// Levels appends a discrete column. Empty strings are gaps.
func (f *Frame) Levels(name string, ls ...string) *Frame {
	f.add(column{name: name, lvls: ls}, len(ls))
	return f
}

func (f *Frame) add(c column, n int) {
	if i, ok := f.index[c.name]; ok {
		f.cols[i] = c
	} else {
		f.index[c.name] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	if n > f.n {
		f.n = n
	}
}

func (f *Frame) Len() int { return f.n }

func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.name
	}
	return names
}

func (f *Frame) Has(col string) bool {
	_, ok := f.index[col]
	return ok
}

func (f *Frame) Value(col string, i int) gg.Value {
	ci, ok := f.index[col]
	if !ok || i < 0 {
		return gg.Absent()
	}
	c := f.cols[ci]
	if c.isNum {
		if i >= len(c.nums) {
			return gg.Absent()
		}
		return gg.Num(c.nums[i])
	}
	if i >= len(c.lvls) || c.lvls[i] == "" {
		return gg.Absent()
	}
	return gg.Level(c.lvls[i])
}

// A view is a row subset of another table.
type view struct {
	t   Table
	idx []int
}

func (v *view) Len() int            { return len(v.idx) }
func (v *view) Columns() []string   { return v.t.Columns() }
func (v *view) Has(col string) bool { return v.t.Has(col) }
func (v *view) Value(col string, i int) gg.Value {
	if i < 0 || i >= len(v.idx) {
		return gg.Absent()
	}
	return v.t.Value(col, v.idx[i])
}

// Filter returns the rows of t whose cell in col matches level. The
// result shares t's storage.
func Filter(t Table, col, level string) Table {
	var idx []int
	for i := 0; i < t.Len(); i++ {
		if s, ok := t.Value(col, i).Level(); ok && s == level {
			idx = append(idx, i)
		}
	}
	return &view{t: t, idx: idx}
}

// Levels returns the distinct levels of col in first-seen order.
func Levels(t Table, col string) []string {
	var ls []string
	seen := map[string]bool{}
	for i := 0; i < t.Len(); i++ {
		s, ok := t.Value(col, i).Level()
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		ls = append(ls, s)
	}
	return ls
}

// Floats returns the numeric view of col, one entry per row, with NaN
// for gaps and unparsable levels. Indices stay aligned with the table.
func Floats(t Table, col string) []float64 {
	xs := make([]float64, t.Len())
	for i := range xs {
		if f, ok := t.Value(col, i).Num(); ok {
			xs[i] = f
		} else {
			xs[i] = math.NaN()
		}
	}
	return xs
}

// Range returns the minimum and maximum finite numeric value of the
// named columns, or (+Inf, -Inf) when they hold none.
func Range(t Table, cols ...string) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, col := range cols {
		for i := 0; i < t.Len(); i++ {
			x, ok := t.Value(col, i).Num()
			if !ok || math.IsInf(x, 0) {
				continue
			}
			min, max = math.Min(min, x), math.Max(max, x)
		}
	}
	return min, max
}
