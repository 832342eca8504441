// Command evolve opens the interactive evolution board: a grid of procedurally
// grown creatures bred by clicking on the ones worth keeping.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"evolve/internal/app"
	"evolve/internal/core"
	"evolve/internal/window"
)

var (
	exitFunc = os.Exit
	// launch opens the window for a built board; tests replace it.
	launch = func(ctx context.Context, a *app.App, cfg app.Config, logger *slog.Logger) error {
		g := window.NewGame(ctx, window.Config{Width: cfg.Width, Height: cfg.Height, Title: cfg.Title}, a.Router, a.Raster, logger)
		return window.Run(g)
	}
)

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	cfg, level, tracePath, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if tracePath != "" {
		f, err := os.Create(tracePath) // #nosec G304 -- operator supplied output path
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "open trace file: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		cfg.Trace = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "evolve: %v\n", err)
		return 1
	}
	runErr := launch(ctx, a, cfg, logger)
	if err := a.Close(); err != nil {
		logger.Warn("shutdown incomplete", "error", err)
	}
	if runErr != nil {
		_, _ = fmt.Fprintf(stderr, "evolve: %v\n", runErr)
		return 1
	}
	_, _ = fmt.Fprintln(stdout, "bye")
	return 0
}

func parseFlags(args []string, stderr io.Writer) (app.Config, slog.Level, string, error) {
	cfg := app.DefaultConfig()
	fs := flag.NewFlagSet("evolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.Rows, "rows", cfg.Rows, "grid rows")
	fs.IntVar(&cfg.Columns, "cols", cfg.Columns, "grid columns")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "window width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "window height in pixels")
	fs.IntVar(&cfg.HeaderHeight, "header", cfg.HeaderHeight, "header band height in pixels")
	fs.Float64Var(&cfg.BorderWidth, "border", cfg.BorderWidth, "cell border width in pixels")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	fs.IntVar(&cfg.MaxAttempts, "max-attempts", 0, "candidates tried per cell before giving up (0 never gives up)")
	resetMode := fs.String("reset-mode", string(cfg.ResetMode), "reset policy: progressive|snapshot")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "header title")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	tracePath := fs.String("trace", "", "write one JSON line per board operation to this file")
	defaultLevel := os.Getenv("EVOLVE_LOG_LEVEL")
	if defaultLevel == "" {
		defaultLevel = "info"
	}
	logLevel := fs.String("log-level", defaultLevel, "debug|info|warn|error (env EVOLVE_LOG_LEVEL)")
	if err := fs.Parse(args); err != nil {
		return cfg, 0, "", err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		_, _ = fmt.Fprintln(stderr, err)
		return cfg, 0, "", err
	}
	mode, ok := core.ParseResetMode(*resetMode)
	if !ok {
		err := fmt.Errorf("invalid -reset-mode %q", *resetMode)
		_, _ = fmt.Fprintln(stderr, err)
		return cfg, 0, "", err
	}
	cfg.ResetMode = mode
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		err = fmt.Errorf("invalid -log-level %q", *logLevel)
		_, _ = fmt.Fprintln(stderr, err)
		return cfg, 0, "", err
	}
	return cfg, level, *tracePath, nil
}
