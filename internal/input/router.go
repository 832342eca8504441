// Package input routes pointer and key events onto the population controller.
package input

import (
	"context"

	"evolve/internal/grid"
	"evolve/pkg/domain"
)

// Population is the subset of the controller the router drives.
type Population interface {
	Promote(ctx context.Context, index int) error
	Discard(ctx context.Context, index int) error
	ResetAll(ctx context.Context) error
}

// Snapshotter exports the current board.
type Snapshotter interface {
	Snapshot(ctx context.Context) (string, error)
}

// Logger is the logging surface used for key handling.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any) {}
func (noopLogger) Warn(string, ...any) {}

// Router maps clicks in grid coordinates to population operations.
type Router struct {
	layout   *grid.Layout
	pop      Population
	snap     Snapshotter
	logger   Logger
	quitting bool
}

// Option configures a Router.
type Option func(*Router)

// WithSnapshotter enables the snapshot key.
func WithSnapshotter(s Snapshotter) Option {
	return func(r *Router) { r.snap = s }
}

// WithLogger installs a logger.
func WithLogger(l Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRouter binds layout and pop.
func NewRouter(layout *grid.Layout, pop Population, opts ...Option) *Router {
	r := &Router{layout: layout, pop: pop, logger: noopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DispatchClick handles a click at (x, y), origin bottom-left. Left promotes
// and right discards the cell under the pointer. Outside the grid a right
// click resets the board and a left click does nothing.
func (r *Router) DispatchClick(ctx context.Context, button domain.Button, x, y float64) error {
	index, ok := r.layout.Locate(x, y)
	if !ok {
		if button == domain.ButtonRight {
			return r.pop.ResetAll(ctx)
		}
		return nil
	}
	switch button {
	case domain.ButtonLeft:
		return r.pop.Promote(ctx, index)
	case domain.ButtonRight:
		return r.pop.Discard(ctx, index)
	default:
		return nil
	}
}

// DispatchKey handles a named key press.
func (r *Router) DispatchKey(ctx context.Context, key domain.Key) error {
	switch key {
	case domain.KeyQuit:
		r.quitting = true
		r.logger.Info("quit requested")
	case domain.KeySnapshot:
		if r.snap == nil {
			r.logger.Warn("snapshot export not configured")
			return nil
		}
		name, err := r.snap.Snapshot(ctx)
		if err != nil {
			return err
		}
		r.logger.Info("snapshot exported", "key", name)
	}
	return nil
}

// Quitting reports whether the quit key has been pressed.
func (r *Router) Quitting() bool { return r.quitting }
