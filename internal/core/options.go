package core

import (
	"context"
	"image/color"
	"time"

	"evolve/internal/journal"
)

// Logger is the structured logging surface used by the controller. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// MetricsRecorder receives operation outcomes and placement statistics.
type MetricsRecorder interface {
	// Observe records the outcome and latency of a public operation.
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
	// ObservePlacement records how many candidates one cell consumed and
	// whether one was finally placed.
	ObservePlacement(ctx context.Context, attempts int, placed bool)
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}
func (noopMetrics) ObservePlacement(context.Context, int, bool)          {}

// TraceSpan ends a traced operation.
type TraceSpan interface {
	End(err error)
}

// Tracer starts spans around public operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

type noopTracer struct{}

type noopSpan struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

func (noopSpan) End(error) {}

type (
	// AuditEntry is one journaled controller operation.
	AuditEntry = journal.Entry
	// AuditStatus is the outcome recorded in an AuditEntry.
	AuditStatus = journal.Status
)

const (
	AuditStatusSuccess = journal.StatusSuccess
	AuditStatusError   = journal.StatusError

	// BoardCell is the cell recorded for operations spanning the whole board.
	BoardCell = journal.BoardCell
)

// AuditRecorder receives one entry per completed public operation.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type noopAudit struct{}

func (noopAudit) Record(context.Context, AuditEntry) {}

// ResetMode selects how ResetAll treats a standing parent.
type ResetMode string

const (
	// ResetProgressive discards slot by slot; the first discard revokes the
	// parent, so later slots in the same sweep regenerate as random organisms.
	ResetProgressive ResetMode = "progressive"
	// ResetSnapshotParent keeps the prior parent armed for the entire sweep so
	// every replaced slot becomes its child, then revokes it.
	ResetSnapshotParent ResetMode = "snapshot"
)

// ParseResetMode validates a reset mode name.
func ParseResetMode(s string) (ResetMode, bool) {
	switch ResetMode(s) {
	case ResetProgressive, ResetSnapshotParent:
		return ResetMode(s), true
	default:
		return "", false
	}
}

// Theme holds the colours the controller paints with.
type Theme struct {
	Background color.Color
	Border     color.Color
	Text       color.Color
	Label      color.Color
}

// DefaultTheme paints on black with grey cell borders.
func DefaultTheme() Theme {
	return Theme{
		Background: color.RGBA{A: 0xff},
		Border:     color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff},
		Text:       color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
		Label:      color.RGBA{R: 0xff, G: 0xd7, A: 0xff},
	}
}

type serviceOptions struct {
	clock       Clock
	logger      Logger
	audit       AuditRecorder
	metrics     MetricsRecorder
	tracer      Tracer
	maxAttempts int
	resetMode   ResetMode
	theme       Theme
	title       string
}

// Option configures a Controller.
type Option func(*serviceOptions)

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		clock:     ClockFunc(func() time.Time { return time.Now().UTC() }),
		logger:    noopLogger{},
		audit:     noopAudit{},
		metrics:   noopMetrics{},
		tracer:    noopTracer{},
		resetMode: ResetProgressive,
		theme:     DefaultTheme(),
		title:     "Evolve",
	}
}

// WithClock overrides the time source used for audit timestamps and durations.
func WithClock(c Clock) Option {
	return func(o *serviceOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger installs a structured logger.
func WithLogger(l Logger) Option {
	return func(o *serviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAuditRecorder installs a recorder that receives one entry per operation.
func WithAuditRecorder(r AuditRecorder) Option {
	return func(o *serviceOptions) {
		if r != nil {
			o.audit = r
		}
	}
}

// WithMetricsRecorder installs a metrics sink.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(o *serviceOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(t Tracer) Option {
	return func(o *serviceOptions) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithMaxAttempts caps the candidates tried per cell. Zero or negative keeps
// the default of never giving up.
func WithMaxAttempts(n int) Option {
	return func(o *serviceOptions) { o.maxAttempts = n }
}

// WithResetMode selects the ResetAll policy.
func WithResetMode(m ResetMode) Option {
	return func(o *serviceOptions) {
		if _, ok := ParseResetMode(string(m)); ok {
			o.resetMode = m
		}
	}
}

// WithTheme overrides the board colours.
func WithTheme(t Theme) Option {
	return func(o *serviceOptions) { o.theme = t }
}

// WithTitle sets the text shown at the start of the header band.
func WithTitle(title string) Option {
	return func(o *serviceOptions) { o.title = title }
}
