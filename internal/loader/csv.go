package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"stock-data/internal/frame"
)

// priceColumns must parse as numbers when present; any other column falls
// back to text when a value is not numeric.
var priceColumns = map[string]bool{
	"open":   true,
	"high":   true,
	"low":    true,
	"close":  true,
	"volume": true,
}

// CSVLoader reads a delimited text file with a header row into a frame.
// Empty fields become null cells. The date column is kept as text; the
// checker and the processor parse it on construction.
type CSVLoader struct{}

func (CSVLoader) Extension() string { return "csv" }

func (CSVLoader) Load(path string) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	fr := frame.New(header)
	row := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}
		cells := make(map[string]frame.Cell, len(header))
		for i, col := range header {
			if i >= len(record) {
				break
			}
			c, err := parseCell(col, row, record[i])
			if err != nil {
				return nil, err
			}
			cells[col] = c
		}
		fr.AppendRow(cells)
		row++
	}
	return fr, nil
}

func parseCell(col string, row int, raw string) (frame.Cell, error) {
	if raw == "" {
		return frame.Null(), nil
	}
	if col == "date" {
		return frame.String(raw), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if priceColumns[col] {
			return frame.Cell{}, &frame.ParseError{Column: col, Row: row, Value: raw, Err: err}
		}
		return frame.String(raw), nil
	}
	return frame.Float(v), nil
}
