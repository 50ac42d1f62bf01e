package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"stock-data/internal/quality"
	"stock-data/internal/report"
)

// checkCmd runs the read-only quality inspection over an input dataset.
type checkCmd struct {
	jsonOut string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "run quality checks over an OHLCV file" }
func (*checkCmd) Usage() string {
	return `check [-json report.json] <input.csv|input.parquet>:
  Run all quality checks and print the report.
  Exit code 0 when clean, 1 when issues were found, 2 on fatal input errors.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.jsonOut, "json", "", "also write the report as JSON to this path")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return exitFatal
	}
	input := f.Arg(0)

	a, err := setupApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return exitFatal
	}

	fr, err := loadFrame(input)
	if err != nil {
		slog.Error("failed to load input", "path", input, "error", err)
		return exitFatal
	}
	slog.Info("loaded input", "path", input, "rows", fr.NumRows(), "columns", len(fr.Columns()))

	ck, err := quality.NewCheckerWithOptions(fr, a.Config.QualityOptions())
	if err != nil {
		slog.Error("validation failed", "path", input, "error", err)
		return exitFatal
	}

	rep := ck.RunAllChecks()
	report.Render(os.Stdout, rep)

	if c.jsonOut != "" {
		if err := report.WriteJSON(c.jsonOut, rep); err != nil {
			slog.Error("failed to write report artifact", "path", c.jsonOut, "error", err)
			return exitFatal
		}
	}

	if rep.Clean() {
		return exitClean
	}
	return exitIssues
}
