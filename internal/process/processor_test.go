package process

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-data/internal/frame"
	"stock-data/internal/saver"
)

func newFrame(dates []string, closes []frame.Cell) *frame.Frame {
	f := frame.New([]string{"date", "open", "high", "low", "close", "volume"})
	for i := range dates {
		dateCell := frame.Null()
		if dates[i] != "" {
			dateCell = frame.String(dates[i])
		}
		c := closes[i]
		open, high, low := c, c, c
		if v, ok := c.Float(); ok {
			high = frame.Float(v + 1)
			low = frame.Float(v - 1)
		}
		f.AppendRow(map[string]frame.Cell{
			"date": dateCell, "open": open, "high": high, "low": low,
			"close": c, "volume": frame.Float(1000),
		})
	}
	return f
}

func dayRange(n int) []string {
	out := make([]string, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}
	return out
}

func floats(vs ...float64) []frame.Cell {
	out := make([]frame.Cell, len(vs))
	for i, v := range vs {
		out[i] = frame.Float(v)
	}
	return out
}

func cellFloat(t *testing.T, f *frame.Frame, col string, i int) float64 {
	t.Helper()
	v, ok := f.Cell(col, i).Float()
	require.True(t, ok, "cell %s[%d] should be defined", col, i)
	return v
}

func TestCleanFillsEveryNull(t *testing.T) {
	closes := floats(100, 0, 104, 0, 108)
	closes[1] = frame.Null()
	closes[3] = frame.Null()
	p, err := NewProcessor(newFrame(dayRange(5), closes))
	require.NoError(t, err)

	f := p.Clean().Frame()
	for _, col := range f.Columns() {
		for i := 0; i < f.NumRows(); i++ {
			assert.False(t, f.Cell(col, i).IsNull(), "%s[%d] still null", col, i)
		}
	}
	// forward fill carries the last seen value
	assert.Equal(t, 100.0, cellFloat(t, f, "close", 1))
	assert.Equal(t, 104.0, cellFloat(t, f, "close", 3))
}

func TestCleanBackwardFillsLeadingNulls(t *testing.T) {
	closes := floats(0, 0, 104)
	closes[0] = frame.Null()
	closes[1] = frame.Null()
	p, err := NewProcessor(newFrame(dayRange(3), closes))
	require.NoError(t, err)

	f := p.Clean().Frame()
	assert.Equal(t, 104.0, cellFloat(t, f, "close", 0))
	assert.Equal(t, 104.0, cellFloat(t, f, "close", 1))
}

func TestCleanDropsDuplicatesKeepingFirstBeforeSort(t *testing.T) {
	// 2024-01-02 appears twice out of order; the first occurrence in file
	// order (close=200) must survive, even though sorting would put the
	// other row's neighborhood first.
	p, err := NewProcessor(newFrame(
		[]string{"2024-01-03", "2024-01-02", "2024-01-01", "2024-01-02"},
		floats(300, 200, 100, 999)))
	require.NoError(t, err)

	f := p.Clean().Frame()
	require.Equal(t, 3, f.NumRows())
	assert.Equal(t, 100.0, cellFloat(t, f, "close", 0))
	assert.Equal(t, 200.0, cellFloat(t, f, "close", 1))
	assert.Equal(t, 300.0, cellFloat(t, f, "close", 2))
}

func TestCleanSortsStrictlyAscending(t *testing.T) {
	p, err := NewProcessor(newFrame(
		[]string{"2024-01-05", "2024-01-01", "2024-01-03"},
		floats(5, 1, 3)))
	require.NoError(t, err)

	f := p.Clean().Frame()
	var prev time.Time
	for i := 0; i < f.NumRows(); i++ {
		d, ok := f.Cell("date", i).Time()
		require.True(t, ok)
		if i > 0 {
			assert.True(t, prev.Before(d), "dates not strictly ascending at row %d", i)
		}
		prev = d
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	p, err := NewProcessor(newFrame(
		[]string{"2024-01-03", "2024-01-01", "2024-01-01"},
		floats(3, 1, 9)))
	require.NoError(t, err)

	once := p.Clean().Frame()
	twice := p.Clean().Frame()
	require.Equal(t, once.NumRows(), twice.NumRows())
	for _, col := range once.Columns() {
		for i := 0; i < once.NumRows(); i++ {
			assert.Equal(t, once.Cell(col, i), twice.Cell(col, i))
		}
	}
}

func TestProcessorDoesNotMutateInput(t *testing.T) {
	in := newFrame([]string{"2024-01-02", "2024-01-01"}, floats(2, 1))
	snapshot := in.Copy()

	p, err := NewProcessor(in)
	require.NoError(t, err)
	_, err = p.Clean().AddFeatures()
	require.NoError(t, err)

	require.Equal(t, snapshot.NumRows(), in.NumRows())
	assert.Equal(t, snapshot.Columns(), in.Columns())
	for _, col := range snapshot.Columns() {
		for i := 0; i < snapshot.NumRows(); i++ {
			assert.Equal(t, snapshot.Cell(col, i), in.Cell(col, i))
		}
	}
}

func TestAddFeaturesDailyReturn(t *testing.T) {
	p, err := NewProcessor(newFrame(dayRange(2), floats(100, 110)))
	require.NoError(t, err)
	_, err = p.AddFeatures()
	require.NoError(t, err)

	f := p.Frame()
	assert.True(t, f.Cell("daily_return", 0).IsNull())
	assert.InDelta(t, 0.10, cellFloat(t, f, "daily_return", 1), 1e-9)
}

func TestAddFeaturesDailyReturnZeroPrevClose(t *testing.T) {
	p, err := NewProcessor(newFrame(dayRange(3), floats(0, 100, 110)))
	require.NoError(t, err)
	_, err = p.AddFeatures()
	require.NoError(t, err)

	f := p.Frame()
	assert.True(t, f.Cell("daily_return", 1).IsNull(), "division by zero close must stay null")
	assert.InDelta(t, 0.10, cellFloat(t, f, "daily_return", 2), 1e-9)
}

func TestAddFeaturesMovingAverageWindowRule(t *testing.T) {
	p, err := NewProcessor(newFrame(dayRange(5), floats(100, 102, 104, 106, 108)))
	require.NoError(t, err)
	_, err = p.AddFeatures()
	require.NoError(t, err)

	f := p.Frame()
	for i := 0; i < 4; i++ {
		assert.True(t, f.Cell("MA5", i).IsNull(), "MA5[%d] defined before window filled", i)
	}
	assert.Equal(t, 104.0, cellFloat(t, f, "MA5", 4))
	// 20-row windows never fill on 5 rows
	for i := 0; i < 5; i++ {
		assert.True(t, f.Cell("MA20", i).IsNull())
		assert.True(t, f.Cell("Vol_20", i).IsNull())
	}
}

func TestAddFeaturesLongWindows(t *testing.T) {
	n := 25
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i%3)
	}
	p, err := NewProcessor(newFrame(dayRange(n), floats(closes...)))
	require.NoError(t, err)
	_, err = p.AddFeatures()
	require.NoError(t, err)

	f := p.Frame()
	for i := 0; i < 19; i++ {
		assert.True(t, f.Cell("MA20", i).IsNull(), "MA20[%d]", i)
	}
	assert.False(t, f.Cell("MA20", 19).IsNull())
	// volatility needs 20 defined returns, so one row later than MA20
	assert.True(t, f.Cell("Vol_20", 19).IsNull())
	assert.False(t, f.Cell("Vol_20", 20).IsNull())
}

func TestAddFeaturesNoLookAhead(t *testing.T) {
	n := 30
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	full, err := NewProcessor(newFrame(dayRange(n), floats(closes...)))
	require.NoError(t, err)
	_, err = full.AddFeatures()
	require.NoError(t, err)

	k := 25
	prefix, err := NewProcessor(newFrame(dayRange(n)[:k], floats(closes[:k]...)))
	require.NoError(t, err)
	_, err = prefix.AddFeatures()
	require.NoError(t, err)

	ff, pf := full.Frame(), prefix.Frame()
	for _, col := range []string{"daily_return", "MA5", "MA20", "Vol_20"} {
		for i := 0; i < k; i++ {
			assert.Equal(t, pf.Cell(col, i), ff.Cell(col, i),
				"%s[%d] depends on rows after %d", col, i, i)
		}
	}
}

func TestAddFeaturesCustomWindows(t *testing.T) {
	p, err := NewProcessorWithOptions(
		newFrame(dayRange(4), floats(100, 102, 104, 106)),
		Options{MAShortWindow: 2, MALongWindow: 3, VolWindow: 2})
	require.NoError(t, err)
	_, err = p.AddFeatures()
	require.NoError(t, err)

	f := p.Frame()
	assert.True(t, f.HasColumn("MA2"))
	assert.True(t, f.HasColumn("MA3"))
	assert.True(t, f.HasColumn("Vol_2"))
	assert.Equal(t, 101.0, cellFloat(t, f, "MA2", 1))
	assert.Equal(t, 102.0, cellFloat(t, f, "MA3", 2))
}

func TestAddFeaturesMissingClose(t *testing.T) {
	f := frame.New([]string{"date", "open"})
	p, err := NewProcessor(f)
	require.NoError(t, err)

	_, err = p.AddFeatures()
	require.Error(t, err)
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "close", serr.Column)
}

func TestRowsErrorsOnNullDate(t *testing.T) {
	p, err := NewProcessor(newFrame([]string{""}, floats(100)))
	require.NoError(t, err)
	_, err = p.AddFeatures()
	require.NoError(t, err)

	_, err = p.Rows()
	assert.Error(t, err)
}

func TestRowsMapsFeatures(t *testing.T) {
	p, err := NewProcessor(newFrame(dayRange(6), floats(100, 102, 104, 106, 108, 110)))
	require.NoError(t, err)
	_, err = p.Clean().AddFeatures()
	require.NoError(t, err)

	rows, err := p.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Nil(t, rows[0].DailyReturn)
	require.NotNil(t, rows[1].DailyReturn)
	assert.InDelta(t, 0.02, *rows[1].DailyReturn, 1e-9)
	assert.Nil(t, rows[3].MA5)
	require.NotNil(t, rows[4].MA5)
	assert.Equal(t, 104.0, *rows[4].MA5)
	assert.Nil(t, rows[5].MA20)
	assert.Nil(t, rows[5].Vol20)
}

func TestSaveCreatesParentDir(t *testing.T) {
	p, err := NewProcessor(newFrame(dayRange(2), floats(100, 101)))
	require.NoError(t, err)
	_, err = p.Clean().AddFeatures()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "nested", "prices.csv")
	require.NoError(t, p.Save(path, saver.CSVSaver{}))
	assert.FileExists(t, path)
}

func TestSummary(t *testing.T) {
	closes := floats(100, 0, 104)
	closes[1] = frame.Null()
	p, err := NewProcessor(newFrame(dayRange(3), closes))
	require.NoError(t, err)

	var buf bytes.Buffer
	p.Summary(&buf)
	out := buf.String()
	assert.Contains(t, out, "shape: 3 rows x 6 columns")
	assert.Contains(t, out, "date range: 2024-01-01 .. 2024-01-03")
	assert.Contains(t, out, "missing close: 1")
}

func BenchmarkCleanAndFeatures(b *testing.B) {
	n := 2000
	dates := make([]string, n)
	closes := make([]float64, n)
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		dates[i] = start.AddDate(0, 0, i).Format("2006-01-02")
		closes[i] = 100 + float64(i%37)
	}
	src := newFrame(dates, floats(closes...))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := NewProcessor(src)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := p.Clean().AddFeatures(); err != nil {
			b.Fatal(err)
		}
	}
}
