package quality

// Report is the immutable outcome of one aggregate checker run.
type Report struct {
	TotalRows          int            `json:"total_rows"`
	MissingValues      map[string]int `json:"missing_values"`
	DuplicateDates     int            `json:"duplicate_dates"`
	HighLowErrors      int            `json:"high_low_errors"`
	PriceRangeErrors   int            `json:"price_range_errors"`
	NegativeValues     int            `json:"negative_values"`
	LogicalErrorsTotal int            `json:"logical_errors_total"`
	LargeGaps          int            `json:"large_gaps"`
	MaxGapDays         int            `json:"max_gap_days"`
	ExtremeMoves       int            `json:"extreme_moves"`
}

// TotalIssues is the display aggregate: missing cells + duplicate dates +
// logical-error rows + large gaps + extreme moves. A row can contribute to
// several buckets, so this is not a deduplicated row count.
func (r *Report) TotalIssues() int {
	total := r.DuplicateDates + r.LogicalErrorsTotal + r.LargeGaps + r.ExtremeMoves
	for _, n := range r.MissingValues {
		total += n
	}
	return total
}

// Clean reports whether the aggregate found no issues at all.
func (r *Report) Clean() bool { return r.TotalIssues() == 0 }
