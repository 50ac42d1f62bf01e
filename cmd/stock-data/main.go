package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"stock-data/internal/app"
	"stock-data/internal/frame"
	"stock-data/internal/loader"
	"stock-data/internal/saver"
	"stock-data/internal/slogx"
)

// Exit codes: clean run, issues found in the data, fatal input error.
const (
	exitClean  = subcommands.ExitSuccess
	exitIssues = subcommands.ExitFailure
	exitFatal  = subcommands.ExitStatus(2)
)

// App holds application dependencies built by Wire.
type App struct {
	Config *app.Config
	Saver  saver.RowSaver
}

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&checkCmd{}, "quality")
	subcommands.Register(&etlCmd{}, "pipeline")
	subcommands.Register(&summaryCmd{}, "pipeline")
	subcommands.Register(&perfCmd{}, "analysis")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

// setupApp initializes dependencies and applies the configured log level.
func setupApp() (*App, error) {
	a, err := InitializeApp()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slogx.NewDefault(a.Config.LogLevel))
	return a, nil
}

// loadFrame picks a loader by extension and reads the input dataset.
func loadFrame(path string) (*frame.Frame, error) {
	ld := loader.ForPath(path)
	if ld == nil {
		return nil, fmt.Errorf("unsupported input format: %s", path)
	}
	return ld.Load(path)
}
