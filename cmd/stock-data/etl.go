package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/google/subcommands"

	"stock-data/internal/process"
	"stock-data/internal/saver"
)

// etlCmd runs the full pipeline: load, clean, derive features, save.
type etlCmd struct {
	input  string
	output string
}

func (*etlCmd) Name() string     { return "etl" }
func (*etlCmd) Synopsis() string { return "clean an OHLCV file, add features, save columnar output" }
func (*etlCmd) Usage() string {
	return `etl -input raw.csv -output processed/out.parquet:
  Clean the input (fill, dedup, sort), derive daily_return/MA5/MA20/Vol_20
  and save. Output format follows the file extension, falling back to the
  configured SAVE_FORMAT.
`
}

func (c *etlCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", "", "input file (csv or parquet)")
	f.StringVar(&c.output, "output", "", "output file")
}

func (c *etlCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" || c.output == "" {
		f.Usage()
		return exitFatal
	}

	a, err := setupApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return exitFatal
	}

	fr, err := loadFrame(c.input)
	if err != nil {
		slog.Error("failed to load input", "path", c.input, "error", err)
		return exitFatal
	}
	slog.Info("loaded input", "path", c.input, "rows", fr.NumRows())

	p, err := process.NewProcessorWithOptions(fr, a.Config.ProcessOptions())
	if err != nil {
		slog.Error("validation failed", "path", c.input, "error", err)
		return exitFatal
	}
	if _, err := p.Clean().AddFeatures(); err != nil {
		slog.Error("feature derivation failed", "error", err)
		return exitFatal
	}

	s := saver.ForPath(c.output)
	if s == nil {
		s = a.Saver
	}
	if err := p.Save(c.output, s); err != nil {
		slog.Error("failed to save output", "path", c.output, "error", err)
		return exitFatal
	}

	out := p.Frame()
	slog.Info("saved output", "path", c.output, "format", s.Extension(),
		"rows", out.NumRows(), "columns", len(out.Columns()))
	return exitClean
}
