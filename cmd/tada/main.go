package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/idilsaglam/tada/internal/cli"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand) come from the config layer.
	fs := flag.NewFlagSet("tada", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "tada:", err)
		os.Exit(2)
	}

	opts := logging.DefaultOptions()
	opts.Level = cfg.Level()
	logger := logging.New(os.Stderr, opts)
	logger.Debug("config resolved", "file", cfg.File, "data_dir", cfg.DataDir, "slot", cfg.Slot)

	ui.SetTheme(cfg.Theme)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(fs.Args(), cli.Options{
		Config:      cfg,
		Logger:      logger,
		Interactive: isatty.IsTerminal(os.Stdout.Fd()),
	})
	os.Exit(code)
}
