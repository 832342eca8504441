package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"evolve/internal/app"
	"evolve/internal/core"
)

func stubLaunch(t *testing.T, fn func(context.Context, *app.App, app.Config, *slog.Logger) error) {
	t.Helper()
	prev := launch
	launch = fn
	t.Cleanup(func() { launch = prev })
}

func headlessEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EVOLVE_AUDIT_DRIVER", "memory")
	t.Setenv("EVOLVE_BLOB_DRIVER", "memory")
}

func TestParseFlagsDefaults(t *testing.T) {
	t.Setenv("EVOLVE_LOG_LEVEL", "")
	cfg, level, trace, err := parseFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Rows != 3 || cfg.Columns != 4 || cfg.Width != 800 || cfg.Height != 600 || cfg.HeaderHeight != 80 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.ResetMode != core.ResetProgressive || level != slog.LevelInfo || trace != "" {
		t.Fatalf("unexpected defaults %+v %v %q", cfg, level, trace)
	}
}

func TestLogLevelFromEnvironment(t *testing.T) {
	t.Setenv("EVOLVE_LOG_LEVEL", "warn")
	_, level, _, err := parseFlags(nil, &bytes.Buffer{})
	if err != nil || level != slog.LevelWarn {
		t.Fatalf("expected warn level, got %v %v", level, err)
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	args := []string{"-rows", "2", "-cols", "5", "-seed", "7", "-max-attempts", "50", "-reset-mode", "snapshot", "-log-level", "debug", "-trace", "t.jsonl"}
	cfg, level, trace, err := parseFlags(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Rows != 2 || cfg.Columns != 5 || cfg.Seed != 7 || cfg.MaxAttempts != 50 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.ResetMode != core.ResetSnapshotParent || level != slog.LevelDebug || trace != "t.jsonl" {
		t.Fatalf("unexpected config %+v %v %q", cfg, level, trace)
	}
}

func TestCLIRejectsBadFlags(t *testing.T) {
	cases := map[string][]string{
		"unknown flag": {"-nope"},
		"reset mode":   {"-reset-mode", "sideways"},
		"log level":    {"-log-level", "loud"},
		"positional":   {"extra"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var stderr bytes.Buffer
			if code := cli(args, &bytes.Buffer{}, &stderr); code != 2 {
				t.Fatalf("expected exit 2, got %d", code)
			}
			if stderr.Len() == 0 {
				t.Fatalf("expected a diagnostic")
			}
		})
	}
}

func TestCLIReportsBuildFailure(t *testing.T) {
	headlessEnv(t)
	stubLaunch(t, func(context.Context, *app.App, app.Config, *slog.Logger) error {
		t.Fatalf("launch must not run")
		return nil
	})
	var stderr bytes.Buffer
	if code := cli([]string{"-rows", "0"}, &bytes.Buffer{}, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "invalid configuration") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestCLILaunchesBuiltBoard(t *testing.T) {
	headlessEnv(t)
	var launched *app.App
	stubLaunch(t, func(_ context.Context, a *app.App, cfg app.Config, _ *slog.Logger) error {
		launched = a
		if cfg.Seed != 3 {
			t.Errorf("expected seed 3, got %d", cfg.Seed)
		}
		return nil
	})
	trace := filepath.Join(t.TempDir(), "trace.jsonl")
	var stdout bytes.Buffer
	if code := cli([]string{"-seed", "3", "-trace", trace, "-log-level", "error"}, &stdout, &bytes.Buffer{}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if launched == nil || launched.Controller == nil {
		t.Fatalf("expected a wired board")
	}
	if strings.TrimSpace(stdout.String()) != "bye" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}

func TestCLIReportsWindowFailure(t *testing.T) {
	headlessEnv(t)
	stubLaunch(t, func(context.Context, *app.App, app.Config, *slog.Logger) error {
		return errors.New("no display")
	})
	var stderr bytes.Buffer
	if code := cli([]string{"-log-level", "error"}, &bytes.Buffer{}, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "no display") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestMainUsesExitFunc(t *testing.T) {
	headlessEnv(t)
	stubLaunch(t, func(context.Context, *app.App, app.Config, *slog.Logger) error { return nil })
	prevExit := exitFunc
	t.Cleanup(func() { exitFunc = prevExit })
	code := -1
	exitFunc = func(c int) { code = c }
	main()
	if code != 0 && code != 2 {
		t.Fatalf("unexpected exit code %d", code)
	}
}
