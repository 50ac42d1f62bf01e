package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"stock-data/internal/process"
)

// summaryCmd prints shape, date range, columns and missing counts.
type summaryCmd struct {
	clean bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print a short summary of an OHLCV file" }
func (*summaryCmd) Usage() string {
	return `summary [-clean] <input.csv|input.parquet>:
  Print shape, date range, columns and missing-value counts.
  With -clean, summarize the dataset after the cleaning pipeline.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.clean, "clean", false, "summarize after cleaning")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	p, err := process.NewProcessorWithOptions(fr, a.Config.ProcessOptions())
	if err != nil {
		slog.Error("validation failed", "path", input, "error", err)
		return exitFatal
	}
	if c.clean {
		p.Clean()
	}
	p.Summary(os.Stdout)
	return exitClean
}
