package loader

import (
	"fmt"

	"stock-data/internal/frame"
	"stock-data/internal/model"
	"stock-data/internal/saver"
)

// ParquetLoader reads back a columnar file written by the processor,
// so cleaned output can be inspected with the same checker path.
type ParquetLoader struct{}

func (ParquetLoader) Extension() string { return "parquet" }

func (ParquetLoader) Load(path string) (*frame.Frame, error) {
	rows, err := saver.LoadParquet(path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	fr := frame.New(model.Columns)
	for _, r := range rows {
		fr.AppendRow(map[string]frame.Cell{
			"date":         frame.Date(r.Date),
			"open":         frame.Float(r.Open),
			"high":         frame.Float(r.High),
			"low":          frame.Float(r.Low),
			"close":        frame.Float(r.Close),
			"volume":       frame.Float(r.Volume),
			"daily_return": optCell(r.DailyReturn),
			"MA5":          optCell(r.MA5),
			"MA20":         optCell(r.MA20),
			"Vol_20":       optCell(r.Vol20),
		})
	}
	return fr, nil
}

func optCell(f *float64) frame.Cell {
	if f == nil {
		return frame.Null()
	}
	return frame.Float(*f)
}
