// Package loader reads tabular files into frames. Implementations are
// dumb I/O wrappers: they parse cell types but apply no domain rules.
package loader

import (
	"strings"

	"stock-data/internal/frame"
)

// Loader is the abstraction used by commands to read an input dataset.
type Loader interface {
	Load(path string) (*frame.Frame, error)
	Extension() string
}

// ForPath picks a loader from the path's file extension.
// Returns nil for unknown extensions.
func ForPath(path string) Loader {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return nil
	}
	switch strings.ToLower(path[i+1:]) {
	case "csv":
		return CSVLoader{}
	case "parquet":
		return ParquetLoader{}
	default:
		return nil
	}
}
