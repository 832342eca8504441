// Package app assembles the evolution board from its parts: grid geometry,
// raster canvas, creature generator, population controller, audit journal,
// snapshot exporter, metrics and the input router. It stays free of the
// window layer so the whole board can be built and driven headless.
package app

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"evolve/internal/blob"
	"evolve/internal/canvas"
	"evolve/internal/core"
	"evolve/internal/grid"
	"evolve/internal/input"
	"evolve/internal/journal"
	"evolve/internal/snapshot"
	"evolve/plugins/creature"
)

// Config collects everything the command line can tune.
type Config struct {
	Width        int
	Height       int
	HeaderHeight int
	Rows         int
	Columns      int
	BorderWidth  float64
	Seed         uint64
	MaxAttempts  int
	ResetMode    core.ResetMode
	Title        string
	MetricsAddr  string
	// Trace receives one JSON line per controller operation when set.
	Trace io.Writer
}

// DefaultConfig is the classic 3x4 board in an 800x600 window.
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       600,
		HeaderHeight: 80,
		Rows:         3,
		Columns:      4,
		BorderWidth:  2,
		ResetMode:    core.ResetProgressive,
		Title:        "Evolve",
	}
}

// Logger is the structured logging surface shared by every component.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// App is a fully wired, initialised board.
type App struct {
	Layout     *grid.Layout
	Raster     *canvas.Raster
	Controller *core.Controller
	Router     *input.Router
	Journal    journal.Store
	Snapshots  blob.Store

	metrics    *http.Server
	metricsLis net.Listener
	logger     Logger
}

// Build wires the board and populates every cell. The audit journal and the
// snapshot store are chosen from the environment.
func Build(ctx context.Context, cfg Config, logger Logger) (*App, error) {
	layout, err := grid.New(grid.Config{
		ScreenWidth:  float64(cfg.Width),
		ScreenHeight: float64(cfg.Height),
		HeaderHeight: float64(cfg.HeaderHeight),
		Rows:         cfg.Rows,
		Columns:      cfg.Columns,
		BorderWidth:  cfg.BorderWidth,
	})
	if err != nil {
		return nil, err
	}
	raster := canvas.NewRaster(cfg.Width, cfg.Height)

	store, err := core.OpenJournal(ctx)
	if err != nil {
		return nil, fmt.Errorf("open audit journal: %w", err)
	}
	a := &App{Layout: layout, Raster: raster, Journal: store, logger: logger}

	opts := []core.Option{
		core.WithLogger(logger),
		core.WithAuditRecorder(core.NewJournalAuditRecorder(store, logger)),
		core.WithMaxAttempts(cfg.MaxAttempts),
		core.WithResetMode(cfg.ResetMode),
		core.WithTitle(cfg.Title),
	}
	if cfg.Trace != nil {
		opts = append(opts, core.WithTracer(core.NewJSONTracer(cfg.Trace)))
	}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		recorder, err := core.NewPrometheusMetricsRecorder(reg)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		if err := a.serveMetrics(cfg.MetricsAddr, reg); err != nil {
			_ = a.Close()
			return nil, err
		}
		opts = append(opts, core.WithMetricsRecorder(recorder))
	} else {
		opts = append(opts, core.WithMetricsRecorder(core.NewExpvarMetricsRecorder("")))
	}

	a.Controller = core.NewController(layout, raster, creature.NewFactory(cfg.Seed), opts...)

	routerOpts := []input.Option{input.WithLogger(logger)}
	snapshots, err := blob.Open(ctx)
	if err != nil {
		logger.Warn("snapshot export disabled", "error", err)
	} else {
		a.Snapshots = snapshots
		routerOpts = append(routerOpts, input.WithSnapshotter(snapshot.NewExporter(snapshots, raster, a.Controller)))
	}
	a.Router = input.NewRouter(layout, a.Controller, routerOpts...)

	if err := a.Controller.Init(ctx); err != nil && !errors.Is(err, core.ErrPlacementFailed) {
		_ = a.Close()
		return nil, fmt.Errorf("initialise board: %w", err)
	}
	return a, nil
}

// MetricsAddr reports the address the metrics endpoint listens on, or "".
func (a *App) MetricsAddr() string {
	if a.metricsLis == nil {
		return ""
	}
	return a.metricsLis.Addr().String()
}

func (a *App) serveMetrics(addr string, reg *prometheus.Registry) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen metrics %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/debug/vars", expvar.Handler())
	a.metrics = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	a.metricsLis = lis
	go func() {
		if err := a.metrics.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", lis.Addr().String())
	return nil
}

// Close tears the board down and releases the journal and metrics endpoint.
func (a *App) Close() error {
	if a.Controller != nil {
		a.Controller.Teardown()
	}
	var errs []error
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		errs = append(errs, a.metrics.Shutdown(ctx))
	}
	if a.Journal != nil {
		errs = append(errs, a.Journal.Close())
	}
	return errors.Join(errs...)
}
