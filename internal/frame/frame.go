// Package frame provides the in-memory tabular dataset shared by the
// quality checker and the processor: ordered rows, named columns, nullable
// typed cells. It knows nothing about OHLCV semantics.
package frame

import (
	"fmt"
	"sort"
	"time"
)

// Frame is a column-major table. Row order is insertion order until an
// explicit sort reorders it. All column slices always have equal length.
type Frame struct {
	cols []string
	data map[string][]Cell
}

// New creates an empty frame with the given column order.
// Duplicate column names keep the first occurrence.
func New(cols []string) *Frame {
	f := &Frame{data: make(map[string][]Cell, len(cols))}
	for _, c := range cols {
		if _, ok := f.data[c]; ok {
			continue
		}
		f.cols = append(f.cols, c)
		f.data[c] = nil
	}
	return f
}

// Columns returns the column names in order. The slice is a copy.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.cols))
	copy(out, f.cols)
	return out
}

// HasColumn reports whether the named column exists (case-sensitive).
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.data[name]
	return ok
}

// NumRows returns the row count.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return len(f.data[f.cols[0]])
}

// Cell returns the cell at (col, row). Unknown columns yield a null cell.
func (f *Frame) Cell(col string, row int) Cell {
	cells, ok := f.data[col]
	if !ok {
		return Null()
	}
	return cells[row]
}

// SetCell overwrites the cell at (col, row). Unknown columns are a no-op.
func (f *Frame) SetCell(col string, row int, c Cell) {
	cells, ok := f.data[col]
	if !ok {
		return
	}
	cells[row] = c
}

// AppendRow appends one row. Columns absent from the map get a null cell;
// keys that are not frame columns are ignored.
func (f *Frame) AppendRow(cells map[string]Cell) {
	for _, col := range f.cols {
		c, ok := cells[col]
		if !ok {
			c = Null()
		}
		f.data[col] = append(f.data[col], c)
	}
}

// AddColumn appends a new all-null column at the end of the column order.
// Adding an existing column is a no-op.
func (f *Frame) AddColumn(name string) {
	if _, ok := f.data[name]; ok {
		return
	}
	f.cols = append(f.cols, name)
	f.data[name] = make([]Cell, f.NumRows())
}

// Copy returns a deep copy. Mutating either frame never affects the other.
func (f *Frame) Copy() *Frame {
	out := &Frame{
		cols: make([]string, len(f.cols)),
		data: make(map[string][]Cell, len(f.cols)),
	}
	copy(out.cols, f.cols)
	for col, cells := range f.data {
		dup := make([]Cell, len(cells))
		copy(dup, cells)
		out.data[col] = dup
	}
	return out
}

// Filter keeps only the rows for which keep returns true, preserving order.
func (f *Frame) Filter(keep func(row int) bool) {
	n := f.NumRows()
	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	f.reorder(idx)
}

// SortStableBy reorders rows by the given comparison, keeping the original
// order of equal rows.
func (f *Frame) SortStableBy(less func(i, j int) bool) {
	idx := make([]int, f.NumRows())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return less(idx[a], idx[b]) })
	f.reorder(idx)
}

func (f *Frame) reorder(idx []int) {
	for col, cells := range f.data {
		next := make([]Cell, len(idx))
		for i, j := range idx {
			next[i] = cells[j]
		}
		f.data[col] = next
	}
}

// ParseError reports a cell that could not be interpreted under the
// expected type. Row is zero-based data row index (header excluded).
type ParseError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot parse %q: %v", e.Column, e.Row, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DateFormats are the date layouts accepted by ParseDates, tried in order.
var DateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDates converts string cells of the named column into date cells.
// Null and date cells pass through; anything unparseable is a *ParseError.
// Missing column is a no-op.
func (f *Frame) ParseDates(col string) error {
	cells, ok := f.data[col]
	if !ok {
		return nil
	}
	for i, c := range cells {
		switch c.Kind() {
		case KindNull, KindDate:
			continue
		case KindString:
			s, _ := c.Str()
			t, err := parseDate(s)
			if err != nil {
				return &ParseError{Column: col, Row: i, Value: s, Err: err}
			}
			cells[i] = Date(t)
		default:
			return &ParseError{Column: col, Row: i, Value: c.String(), Err: fmt.Errorf("not a date value")}
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range DateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}
