// Package process cleans a raw OHLCV frame and derives rolling technical
// features. The pipeline order matters: fill, dedup, sort, then features.
package process

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"stock-data/internal/frame"
	"stock-data/internal/model"
	"stock-data/internal/saver"
	"stock-data/internal/stats"
)

// Options holds the rolling-window sizes for feature derivation.
type Options struct {
	MAShortWindow int
	MALongWindow  int
	VolWindow     int
}

// DefaultOptions returns the standard windows: MA5, MA20, 20-day volatility.
func DefaultOptions() Options {
	return Options{MAShortWindow: 5, MALongWindow: 20, VolWindow: 20}
}

// Processor owns a private working copy of its input frame and transforms
// it in place. The caller's frame is never touched.
type Processor struct {
	f    *frame.Frame
	opts Options
}

// NewProcessor builds a processor with default windows.
func NewProcessor(f *frame.Frame) (*Processor, error) {
	return NewProcessorWithOptions(f, DefaultOptions())
}

// NewProcessorWithOptions copies the frame and parses its date column if
// one exists. A missing date column is tolerated (date-dependent steps
// become no-ops); an unparseable date is fatal.
func NewProcessorWithOptions(f *frame.Frame, opts Options) (*Processor, error) {
	p := &Processor{f: f.Copy(), opts: opts}
	if p.f.HasColumn("date") {
		if err := p.f.ParseDates("date"); err != nil {
			return nil, fmt.Errorf("parse date column: %w", err)
		}
	}
	return p, nil
}

// Clean runs the idempotent cleaning pipeline: forward-fill then
// backward-fill every column, drop duplicate dates keeping the first
// occurrence in pre-sort row order, then stable-sort by date ascending.
// Returns the processor for chaining with AddFeatures.
func (p *Processor) Clean() *Processor {
	p.fillMissing()
	p.dropDuplicateDates()
	p.sortByDate()
	return p
}

func (p *Processor) fillMissing() {
	n := p.f.NumRows()
	for _, col := range p.f.Columns() {
		last, haveLast := frame.Cell{}, false
		for i := 0; i < n; i++ {
			c := p.f.Cell(col, i)
			if c.IsNull() {
				if haveLast {
					p.f.SetCell(col, i, last)
				}
			} else {
				last, haveLast = c, true
			}
		}
		// Leading nulls remain; fill them from the nearest later value.
		next, haveNext := frame.Cell{}, false
		for i := n - 1; i >= 0; i-- {
			c := p.f.Cell(col, i)
			if c.IsNull() {
				if haveNext {
					p.f.SetCell(col, i, next)
				}
			} else {
				next, haveNext = c, true
			}
		}
	}
}

func (p *Processor) dropDuplicateDates() {
	if !p.f.HasColumn("date") {
		return
	}
	seen := make(map[string]bool)
	p.f.Filter(func(i int) bool {
		k := p.f.Cell("date", i).String()
		if seen[k] {
			return false
		}
		seen[k] = true
		return true
	})
}

func (p *Processor) sortByDate() {
	if !p.f.HasColumn("date") {
		return
	}
	p.f.SortStableBy(func(i, j int) bool {
		ti, okI := p.f.Cell("date", i).Time()
		tj, okJ := p.f.Cell("date", j).Time()
		if !okI || !okJ {
			return okI
		}
		return ti.Before(tj)
	})
}

// AddFeatures derives daily_return, the two moving averages and the rolling
// volatility, strictly from current and earlier rows. Each value stays null
// until its window is fully populated; partial-window approximations are
// never substituted. Assumes Clean has already run when the input was dirty.
func (p *Processor) AddFeatures() (*Processor, error) {
	if !p.f.HasColumn("close") {
		return nil, &SchemaError{Column: "close"}
	}
	returns := p.addDailyReturn()
	p.addMovingAverage(fmt.Sprintf("MA%d", p.opts.MAShortWindow), p.opts.MAShortWindow)
	p.addMovingAverage(fmt.Sprintf("MA%d", p.opts.MALongWindow), p.opts.MALongWindow)
	p.addVolatility(fmt.Sprintf("Vol_%d", p.opts.VolWindow), p.opts.VolWindow, returns)
	return p, nil
}

// SchemaError reports a column the feature builder cannot work without.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

type nullable struct {
	v  float64
	ok bool
}

func (p *Processor) closes() []nullable {
	n := p.f.NumRows()
	out := make([]nullable, n)
	for i := 0; i < n; i++ {
		out[i].v, out[i].ok = p.f.Cell("close", i).Float()
	}
	return out
}

func (p *Processor) addDailyReturn() []nullable {
	closes := p.closes()
	returns := make([]nullable, len(closes))
	p.f.AddColumn("daily_return")
	for i := 1; i < len(closes); i++ {
		cur, prev := closes[i], closes[i-1]
		if !cur.ok || !prev.ok || prev.v == 0 {
			continue
		}
		r := (cur.v - prev.v) / prev.v
		returns[i] = nullable{v: r, ok: true}
		p.f.SetCell("daily_return", i, frame.Float(r))
	}
	return returns
}

func (p *Processor) addMovingAverage(name string, window int) {
	closes := p.closes()
	p.f.AddColumn(name)
	win := make([]float64, 0, window)
	for i := range closes {
		win = rollingWindow(win, closes, i, window)
		if len(win) == window {
			p.f.SetCell(name, i, frame.Float(stats.Mean(win)))
		}
	}
}

func (p *Processor) addVolatility(name string, window int, returns []nullable) {
	p.f.AddColumn(name)
	win := make([]float64, 0, window)
	for i := range returns {
		win = rollingWindow(win, returns, i, window)
		if len(win) == window {
			p.f.SetCell(name, i, frame.Float(stats.StdSample(win)))
		}
	}
}

// rollingWindow collects the defined values among rows [i-window+1, i].
// Fewer defined values than the window size leave the feature null.
func rollingWindow(buf []float64, vals []nullable, i, window int) []float64 {
	buf = buf[:0]
	for j := i - window + 1; j <= i; j++ {
		if j < 0 {
			continue
		}
		if vals[j].ok {
			buf = append(buf, vals[j].v)
		}
	}
	return buf
}

// Frame returns a copy of the current working frame.
func (p *Processor) Frame() *frame.Frame {
	return p.f.Copy()
}

// CloseSeries returns the defined close values in current row order.
func (p *Processor) CloseSeries() []float64 {
	var out []float64
	for i := 0; i < p.f.NumRows(); i++ {
		if v, ok := p.f.Cell("close", i).Float(); ok {
			out = append(out, v)
		}
	}
	return out
}

// Rows converts the working frame into typed output rows. Every required
// cell must be non-null, which Clean guarantees for columns holding at
// least one value.
func (p *Processor) Rows() ([]model.Row, error) {
	n := p.f.NumRows()
	rows := make([]model.Row, 0, n)
	maShort := fmt.Sprintf("MA%d", p.opts.MAShortWindow)
	maLong := fmt.Sprintf("MA%d", p.opts.MALongWindow)
	vol := fmt.Sprintf("Vol_%d", p.opts.VolWindow)
	for i := 0; i < n; i++ {
		var r model.Row
		var ok bool
		if r.Date, ok = p.f.Cell("date", i).Time(); !ok {
			return nil, fmt.Errorf("row %d: date is null or unparsed", i)
		}
		fields := []struct {
			col string
			dst *float64
		}{
			{"open", &r.Open}, {"high", &r.High}, {"low", &r.Low},
			{"close", &r.Close}, {"volume", &r.Volume},
		}
		for _, fd := range fields {
			if *fd.dst, ok = p.f.Cell(fd.col, i).Float(); !ok {
				return nil, fmt.Errorf("row %d: column %q is null", i, fd.col)
			}
		}
		r.DailyReturn = p.optFloat("daily_return", i)
		r.MA5 = p.optFloat(maShort, i)
		r.MA20 = p.optFloat(maLong, i)
		r.Vol20 = p.optFloat(vol, i)
		rows = append(rows, r)
	}
	return rows, nil
}

func (p *Processor) optFloat(col string, i int) *float64 {
	if v, ok := p.f.Cell(col, i).Float(); ok {
		return &v
	}
	return nil
}

// Save serializes the working frame with the given saver, creating the
// target directory when needed.
func (p *Processor) Save(path string, s saver.RowSaver) error {
	rows, err := p.Rows()
	if err != nil {
		return fmt.Errorf("build output rows: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := s.Save(rows, path); err != nil {
		return fmt.Errorf("save %s: %w", s.Extension(), err)
	}
	return nil
}

// Summary writes a short description of the working frame: shape, date
// range, columns and per-column missing counts.
func (p *Processor) Summary(w io.Writer) {
	n := p.f.NumRows()
	cols := p.f.Columns()
	fmt.Fprintf(w, "shape: %d rows x %d columns\n", n, len(cols))

	if p.f.HasColumn("date") && n > 0 {
		first, last := "", ""
		for i := 0; i < n; i++ {
			if t, ok := p.f.Cell("date", i).Time(); ok {
				s := t.Format("2006-01-02")
				if first == "" || s < first {
					first = s
				}
				if s > last {
					last = s
				}
			}
		}
		if first != "" {
			fmt.Fprintf(w, "date range: %s .. %s\n", first, last)
		}
	}

	fmt.Fprintf(w, "columns: %v\n", cols)

	missingTotal := 0
	for _, col := range cols {
		count := 0
		for i := 0; i < n; i++ {
			if p.f.Cell(col, i).IsNull() {
				count++
			}
		}
		if count > 0 {
			fmt.Fprintf(w, "missing %s: %d\n", col, count)
			missingTotal += count
		}
	}
	if missingTotal == 0 {
		fmt.Fprintln(w, "missing values: none")
	}
}
