package app

import (
	"fmt"

	"stock-data/internal/saver"
)

// ProvideConfig loads and validates config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvideSaver creates the RowSaver from config (for Wire).
// Returns an error if SaveFormat is not supported.
func ProvideSaver(cfg *Config) (saver.RowSaver, error) {
	s := saver.NewRowSaver(cfg.SaveFormat)
	if s == nil {
		return nil, fmt.Errorf("unsupported SAVE_FORMAT %q (use: csv, parquet, json)", cfg.SaveFormat)
	}
	return s, nil
}
