// Package quality runs read-only diagnostic passes over an OHLCV frame and
// assembles a structured report. Findings are data, never errors: a dataset
// where every row is defective still produces a complete report.
package quality

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"stock-data/internal/frame"
)

// RequiredColumns must all be present for a frame to be checkable.
var RequiredColumns = []string{"date", "open", "high", "low", "close", "volume"}

// priceVolumeColumns are the numeric columns covered by the negative check.
var priceVolumeColumns = []string{"open", "high", "low", "close", "volume"}

// SchemaError reports every required column missing from the input,
// not just the first.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Options holds the check thresholds.
type Options struct {
	// ExtremeMoveThreshold is the absolute day-over-day fractional change
	// above which a move counts as extreme.
	ExtremeMoveThreshold float64
	// LargeGapDays: consecutive dates further apart than this many whole
	// days count as a large gap (strictly greater).
	LargeGapDays int
}

// DefaultOptions returns the standard thresholds: 10% moves, 3-day gaps.
func DefaultOptions() Options {
	return Options{ExtremeMoveThreshold: 0.10, LargeGapDays: 3}
}

// Checker performs quality checks over its own private copy of a frame.
// The input frame is never mutated. All checks are pure and deterministic;
// the aggregate report of the last run is cached.
type Checker struct {
	f      *frame.Frame
	opts   Options
	report *Report
}

// NewChecker builds a checker with default thresholds.
func NewChecker(f *frame.Frame) (*Checker, error) {
	return NewCheckerWithOptions(f, DefaultOptions())
}

// NewCheckerWithOptions validates the schema, copies the frame and parses
// its date column. A missing required column or an unparseable date is
// fatal; no checks run on malformed input.
func NewCheckerWithOptions(f *frame.Frame, opts Options) (*Checker, error) {
	var missing []string
	for _, col := range RequiredColumns {
		if !f.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	c := &Checker{f: f.Copy(), opts: opts}
	if err := c.f.ParseDates("date"); err != nil {
		return nil, fmt.Errorf("parse date column: %w", err)
	}
	return c, nil
}

// CheckMissingValues counts null cells per column. Columns without nulls
// are omitted from the result.
func (c *Checker) CheckMissingValues() map[string]int {
	out := make(map[string]int)
	n := c.f.NumRows()
	for _, col := range c.f.Columns() {
		count := 0
		for i := 0; i < n; i++ {
			if c.f.Cell(col, i).IsNull() {
				count++
			}
		}
		if count > 0 {
			out[col] = count
		}
	}
	return out
}

// CheckDuplicateDates counts rows whose date equals an earlier row's date
// in present row order. First occurrences are never counted. Null dates
// compare equal to each other.
func (c *Checker) CheckDuplicateDates() int {
	seen := make(map[string]bool)
	count := 0
	for i := 0; i < c.f.NumRows(); i++ {
		k := dateKey(c.f.Cell("date", i))
		if seen[k] {
			count++
		}
		seen[k] = true
	}
	return count
}

// CheckHighLowConsistency counts rows where high < low (strict).
func (c *Checker) CheckHighLowConsistency() int {
	count := 0
	for i := 0; i < c.f.NumRows(); i++ {
		if c.highLowError(i) {
			count++
		}
	}
	return count
}

// CheckPriceRange counts rows where open or close falls outside [low, high].
func (c *Checker) CheckPriceRange() int {
	count := 0
	for i := 0; i < c.f.NumRows(); i++ {
		if c.priceRangeError(i) {
			count++
		}
	}
	return count
}

// CheckNegativeValues counts rows where any price or the volume is negative.
func (c *Checker) CheckNegativeValues() int {
	count := 0
	for i := 0; i < c.f.NumRows(); i++ {
		if c.negativeError(i) {
			count++
		}
	}
	return count
}

// TotalLogicalErrors counts rows matching any of the three logical error
// predicates. The union is evaluated per row, so a row with several defects
// counts once.
func (c *Checker) TotalLogicalErrors() int {
	count := 0
	for i := 0; i < c.f.NumRows(); i++ {
		if c.highLowError(i) || c.priceRangeError(i) || c.negativeError(i) {
			count++
		}
	}
	return count
}

// GapInfo is the result of the continuity check.
type GapInfo struct {
	LargeGaps  int `json:"large_gaps"`
	MaxGapDays int `json:"max_gap_days"`
}

// CheckDateGaps sorts dates ascending and measures consecutive differences
// in whole days. Differences strictly greater than the gap threshold count
// as large gaps. Fewer than two dated rows yield zeros.
func (c *Checker) CheckDateGaps() GapInfo {
	dates := c.sortedDates()
	info := GapInfo{}
	for i := 1; i < len(dates); i++ {
		days := int(dates[i].Sub(dates[i-1]).Hours() / 24)
		if days > c.opts.LargeGapDays {
			info.LargeGaps++
		}
		if days > info.MaxGapDays {
			info.MaxGapDays = days
		}
	}
	return info
}

// CheckExtremeMoves counts days whose close moved more than the threshold
// against the immediately preceding row after sorting by date. Rows whose
// previous close is null or exactly zero yield no value and are skipped,
// not counted.
func (c *Checker) CheckExtremeMoves() int {
	order := c.sortedIndex()
	count := 0
	prev, prevOK := 0.0, false
	for _, i := range order {
		cur, curOK := c.f.Cell("close", i).Float()
		if curOK && prevOK && prev != 0 {
			change := (cur - prev) / prev
			if change < 0 {
				change = -change
			}
			if change > c.opts.ExtremeMoveThreshold {
				count++
			}
		}
		prev, prevOK = cur, curOK
	}
	return count
}

// RunAllChecks executes every check and assembles the aggregate report.
// The report is cached; the same checker always produces the same report.
func (c *Checker) RunAllChecks() *Report {
	gaps := c.CheckDateGaps()
	c.report = &Report{
		TotalRows:          c.f.NumRows(),
		MissingValues:      c.CheckMissingValues(),
		DuplicateDates:     c.CheckDuplicateDates(),
		HighLowErrors:      c.CheckHighLowConsistency(),
		PriceRangeErrors:   c.CheckPriceRange(),
		NegativeValues:     c.CheckNegativeValues(),
		LogicalErrorsTotal: c.TotalLogicalErrors(),
		LargeGaps:          gaps.LargeGaps,
		MaxGapDays:         gaps.MaxGapDays,
		ExtremeMoves:       c.CheckExtremeMoves(),
	}
	return c.report
}

// Report returns the cached aggregate report, running the checks on first use.
func (c *Checker) Report() *Report {
	if c.report == nil {
		return c.RunAllChecks()
	}
	return c.report
}

// Row predicates. A null cell never satisfies a numeric comparison, so a
// row with missing prices is not a logical error; it is reported by the
// missing-values check instead.

func (c *Checker) highLowError(i int) bool {
	high, ok1 := c.f.Cell("high", i).Float()
	low, ok2 := c.f.Cell("low", i).Float()
	return ok1 && ok2 && high < low
}

func (c *Checker) priceRangeError(i int) bool {
	high, okH := c.f.Cell("high", i).Float()
	low, okL := c.f.Cell("low", i).Float()
	for _, col := range []string{"open", "close"} {
		v, ok := c.f.Cell(col, i).Float()
		if !ok {
			continue
		}
		if okL && v < low {
			return true
		}
		if okH && v > high {
			return true
		}
	}
	return false
}

func (c *Checker) negativeError(i int) bool {
	for _, col := range priceVolumeColumns {
		if v, ok := c.f.Cell(col, i).Float(); ok && v < 0 {
			return true
		}
	}
	return false
}

// sortedIndex returns row indices ordered by date ascending, undated rows
// last, ties keeping present order. The frame itself stays untouched.
func (c *Checker) sortedIndex() []int {
	n := c.f.NumRows()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ta, okA := c.f.Cell("date", idx[a]).Time()
		tb, okB := c.f.Cell("date", idx[b]).Time()
		if !okA || !okB {
			return okA
		}
		return ta.Before(tb)
	})
	return idx
}

func (c *Checker) sortedDates() []time.Time {
	var dates []time.Time
	for _, i := range c.sortedIndex() {
		if t, ok := c.f.Cell("date", i).Time(); ok {
			dates = append(dates, t)
		}
	}
	return dates
}

func dateKey(c frame.Cell) string {
	if t, ok := c.Time(); ok {
		return t.Format("2006-01-02")
	}
	return ""
}
