package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"stock-data/internal/process"
	"stock-data/internal/report"
)

// perfCmd computes the basic performance report from close prices.
type perfCmd struct {
	clean bool
}

func (*perfCmd) Name() string     { return "perf" }
func (*perfCmd) Synopsis() string { return "basic return/volatility/drawdown report from closes" }
func (*perfCmd) Usage() string {
	return `perf [-clean] <input.csv|input.parquet>:
  Compute daily returns and a NAV series from the close column and print
  mean return, volatility, total return and max drawdown.
`
}

func (c *perfCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.clean, "clean", false, "run the cleaning pipeline first")
}

func (c *perfCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return exitFatal
	}
	input := f.Arg(0)

	if _, err := setupApp(); err != nil {
		slog.Error("failed to initialize app", "error", err)
		return exitFatal
	}

	fr, err := loadFrame(input)
	if err != nil {
		slog.Error("failed to load input", "path", input, "error", err)
		return exitFatal
	}
	if !fr.HasColumn("close") {
		slog.Error("input has no close column", "path", input)
		return exitFatal
	}

	p, err := process.NewProcessor(fr)
	if err != nil {
		slog.Error("validation failed", "path", input, "error", err)
		return exitFatal
	}
	if c.clean {
		p.Clean()
	}

	report.RenderPerf(os.Stdout, report.Perf(p.CloseSeries()))
	return exitClean
}
