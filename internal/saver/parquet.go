package saver

import (
	"github.com/parquet-go/parquet-go"

	"stock-data/internal/model"
)

// ParquetSaver writes rows as a parquet file, keeping column names, value
// types and nulls from the Row parquet tags.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(rows []model.Row, path string) error {
	return parquet.WriteFile(path, rows)
}

// LoadParquet reads back a file written by ParquetSaver.
func LoadParquet(path string) ([]model.Row, error) {
	return parquet.ReadFile[model.Row](path)
}
