package report

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"stock-data/internal/quality"
)

// WriteJSON persists the quality report as an indented JSON artifact,
// creating the target directory when needed.
func WriteJSON(path string, r *quality.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	slog.Info("report artifact written", "path", path, "issues", r.TotalIssues())
	return nil
}
