package saver

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-data/internal/model"
)

func sampleRows() []model.Row {
	fp := func(v float64) *float64 { return &v }
	return []model.Row{
		{
			Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 12000,
		},
		{
			Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Open: 100.5, High: 103, Low: 100, Close: 102, Volume: 9000,
			DailyReturn: fp(0.0149253731), MA5: fp(101.25),
		},
	}
}

func TestNewRowSaver(t *testing.T) {
	assert.IsType(t, CSVSaver{}, NewRowSaver("csv"))
	assert.IsType(t, ParquetSaver{}, NewRowSaver("parquet"))
	assert.IsType(t, JSONSaver{}, NewRowSaver("json"))
	assert.IsType(t, CSVSaver{}, NewRowSaver(" CSV "))
	assert.Nil(t, NewRowSaver("xml"))
}

func TestForPath(t *testing.T) {
	assert.IsType(t, CSVSaver{}, ForPath("data/prices.csv"))
	assert.IsType(t, ParquetSaver{}, ForPath("prices.parquet"))
	assert.Nil(t, ForPath("prices"))
	assert.Nil(t, ForPath("prices.txt"))
}

func TestCSVSaver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, CSVSaver{}.Save(sampleRows(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, model.Columns, records[0])
	assert.Equal(t, "2024-01-01", records[1][0])
	assert.Equal(t, "100", records[1][1])
	// null derived features serialize as empty fields
	assert.Equal(t, "", records[1][6])
	assert.Equal(t, "101.25", records[2][7])
}

func TestJSONSaver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, JSONSaver{}.Save(sampleRows(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []model.Row
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, 100.5, decoded[0].Close)
	assert.Nil(t, decoded[0].DailyReturn)
	require.NotNil(t, decoded[1].MA5)
	assert.Equal(t, 101.25, *decoded[1].MA5)
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.parquet")
	rows := sampleRows()
	require.NoError(t, ParquetSaver{}.Save(rows, path))

	got, err := LoadParquet(path)
	require.NoError(t, err)
	require.Len(t, got, len(rows))

	for i := range rows {
		assert.True(t, rows[i].Date.Equal(got[i].Date), "row %d date", i)
		assert.Equal(t, rows[i].Open, got[i].Open)
		assert.Equal(t, rows[i].Close, got[i].Close)
		assert.Equal(t, rows[i].Volume, got[i].Volume)
	}
	assert.Nil(t, got[0].MA5)
	require.NotNil(t, got[1].MA5)
	assert.Equal(t, 101.25, *got[1].MA5)
}
