package saver

import (
	"strings"

	"stock-data/internal/model"
)

// RowSaver is the abstraction for writing processed rows to disk.
// High-level code (cmd) injects the implementation; the processor only
// depends on the interface.
type RowSaver interface {
	Save(rows []model.Row, path string) error
	Extension() string
}

// NewRowSaver creates the implementation for a format (csv, parquet, json).
// Returns nil if the format is not supported.
func NewRowSaver(format string) RowSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}

// ForPath picks a saver from the path's file extension.
// Returns nil for unknown extensions.
func ForPath(path string) RowSaver {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return nil
	}
	return NewRowSaver(path[i+1:])
}
