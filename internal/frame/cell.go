package frame

import (
	"strconv"
	"time"
)

// Kind identifies the type stored in a Cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindFloat
	KindDate
	KindString
)

// Cell is one nullable value. The zero value is null.
type Cell struct {
	kind Kind
	f    float64
	t    time.Time
	s    string
}

// Null returns a null cell.
func Null() Cell { return Cell{} }

// Float returns a numeric cell.
func Float(v float64) Cell { return Cell{kind: KindFloat, f: v} }

// Date returns a date cell.
func Date(t time.Time) Cell { return Cell{kind: KindDate, t: t} }

// String returns a text cell.
func String(s string) Cell { return Cell{kind: KindString, s: s} }

// Kind returns the cell type.
func (c Cell) Kind() Kind { return c.kind }

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool { return c.kind == KindNull }

// Float returns the numeric value; ok is false for any other kind.
func (c Cell) Float() (float64, bool) {
	if c.kind != KindFloat {
		return 0, false
	}
	return c.f, true
}

// Time returns the date value; ok is false for any other kind.
func (c Cell) Time() (time.Time, bool) {
	if c.kind != KindDate {
		return time.Time{}, false
	}
	return c.t, true
}

// Str returns the text value; ok is false for any other kind.
func (c Cell) Str() (string, bool) {
	if c.kind != KindString {
		return "", false
	}
	return c.s, true
}

// String renders the cell for display and CSV output. Null renders empty.
func (c Cell) String() string {
	switch c.kind {
	case KindFloat:
		return strconv.FormatFloat(c.f, 'f', -1, 64)
	case KindDate:
		return c.t.Format("2006-01-02")
	case KindString:
		return c.s
	default:
		return ""
	}
}
