// Package report renders checker and performance results for humans and
// writes machine-readable report artifacts.
package report

import (
	"fmt"
	"io"
	"sort"

	"stock-data/internal/quality"
)

const rule = "------------------------------------------------------------"

// Render writes the sectioned quality report. Every metric is listed with
// ok/issue framing; the verdict line carries the aggregate issue count.
func Render(w io.Writer, r *quality.Report) {
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "DATA QUALITY REPORT")
	fmt.Fprintln(w, "============================================================")

	fmt.Fprintln(w, "basic info")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  total rows: %d\n\n", r.TotalRows)

	fmt.Fprintln(w, "missing values")
	fmt.Fprintln(w, rule)
	if len(r.MissingValues) == 0 {
		fmt.Fprintln(w, "  ok: no missing values")
	} else {
		for _, col := range sortedKeys(r.MissingValues) {
			fmt.Fprintf(w, "  %s: %d missing\n", col, r.MissingValues[col])
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "duplicate dates")
	fmt.Fprintln(w, rule)
	if r.DuplicateDates == 0 {
		fmt.Fprintln(w, "  ok: no duplicate dates")
	} else {
		fmt.Fprintf(w, "  issue: %d duplicate date(s)\n", r.DuplicateDates)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "logical consistency")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  high < low errors:    %d\n", r.HighLowErrors)
	fmt.Fprintf(w, "  price out of range:   %d\n", r.PriceRangeErrors)
	fmt.Fprintf(w, "  negative values:      %d\n", r.NegativeValues)
	fmt.Fprintf(w, "  total logical errors: %d\n\n", r.LogicalErrorsTotal)

	fmt.Fprintln(w, "date continuity")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  large gaps:     %d\n", r.LargeGaps)
	fmt.Fprintf(w, "  max gap (days): %d\n\n", r.MaxGapDays)

	fmt.Fprintln(w, "extreme price moves")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  count: %d day(s)\n\n", r.ExtremeMoves)

	fmt.Fprintln(w, "============================================================")
	if total := r.TotalIssues(); total == 0 {
		fmt.Fprintln(w, "RESULT: data is clean")
	} else {
		fmt.Fprintf(w, "RESULT: %d issue(s) found\n", total)
	}
	fmt.Fprintln(w, "============================================================")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
