package core

import (
	"context"
	"image/color"
	"testing"
	"time"

	"evolve/internal/grid"
	"evolve/pkg/domain"
)

// lineageOrganism records how it was constructed so tests can tell random
// organisms from mutated children.
type lineageOrganism struct {
	id       int
	parentID int // 0 for organisms built by the generator
	pool     *lineagePool
	renders  int
}

func (o *lineageOrganism) MutatedChild() domain.Organism {
	return o.pool.spawn(o.id)
}

func (o *lineageOrganism) Render(c domain.Canvas, region domain.Rect) bool {
	if !o.pool.fits(o) {
		return false
	}
	o.renders++
	c.DrawDot(region.Center(), 2, color.White)
	return true
}

type lineagePool struct {
	next    int
	created []*lineageOrganism
	// reject, when set, decides which organisms refuse to render.
	reject func(*lineageOrganism) bool
}

func (p *lineagePool) Random() domain.Organism { return p.spawn(0) }

func (p *lineagePool) spawn(parentID int) *lineageOrganism {
	p.next++
	org := &lineageOrganism{id: p.next, parentID: parentID, pool: p}
	p.created = append(p.created, org)
	return org
}

func (p *lineagePool) fits(o *lineageOrganism) bool {
	return p.reject == nil || !p.reject(o)
}

type drawCall struct {
	kind string
	text string
	auto bool
}

// recordingCanvas is a domain.Canvas that only records calls.
type recordingCanvas struct {
	w, h      float64
	auto      bool
	calls     []drawCall
	refreshes int
}

func newRecordingCanvas(w, h float64) *recordingCanvas {
	return &recordingCanvas{w: w, h: h, auto: true}
}

func (c *recordingCanvas) Size() (float64, float64) { return c.w, c.h }
func (c *recordingCanvas) DrawRectangle(domain.Rect, float64, color.Color, color.Color) {
	c.calls = append(c.calls, drawCall{kind: "rect", auto: c.auto})
}
func (c *recordingCanvas) DrawLine(domain.Point, domain.Point, float64, color.Color) {
	c.calls = append(c.calls, drawCall{kind: "line", auto: c.auto})
}
func (c *recordingCanvas) DrawCircle(domain.Point, float64, float64, color.Color, color.Color) {
	c.calls = append(c.calls, drawCall{kind: "circle", auto: c.auto})
}
func (c *recordingCanvas) DrawDot(domain.Point, float64, color.Color) {
	c.calls = append(c.calls, drawCall{kind: "dot", auto: c.auto})
}
func (c *recordingCanvas) WriteText(_ domain.Point, text string, _ color.Color) {
	c.calls = append(c.calls, drawCall{kind: "text", text: text, auto: c.auto})
}
func (c *recordingCanvas) SetAutoRefresh(enabled bool) { c.auto = enabled }
func (c *recordingCanvas) Refresh()                    { c.refreshes++ }

func (c *recordingCanvas) texts(text string) int {
	n := 0
	for _, call := range c.calls {
		if call.kind == "text" && call.text == text {
			n++
		}
	}
	return n
}

type stubClock struct{ t time.Time }

func (s stubClock) Now() time.Time { return s.t }

type captureLogger struct{ calls []string }

func (c *captureLogger) Debug(msg string, _ ...any) { c.calls = append(c.calls, "d:"+msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.calls = append(c.calls, "i:"+msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.calls = append(c.calls, "w:"+msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.calls = append(c.calls, "e:"+msg) }

func (c *captureLogger) has(call string) bool {
	for _, got := range c.calls {
		if got == call {
			return true
		}
	}
	return false
}

type captureAuditRecorder struct {
	entries []AuditEntry
}

func (c *captureAuditRecorder) Record(_ context.Context, entry AuditEntry) {
	c.entries = append(c.entries, entry)
}

func (c *captureAuditRecorder) last() AuditEntry {
	return c.entries[len(c.entries)-1]
}

type metricsCall struct {
	op      string
	success bool
}

type captureMetricsRecorder struct {
	calls      []metricsCall
	placements []int
	failed     int
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, success: success})
}

func (c *captureMetricsRecorder) ObservePlacement(_ context.Context, attempts int, placed bool) {
	c.placements = append(c.placements, attempts)
	if !placed {
		c.failed++
	}
}

func (c *captureMetricsRecorder) has(op string, success bool) bool {
	for _, call := range c.calls {
		if call.op == op && call.success == success {
			return true
		}
	}
	return false
}

type spanRecord struct {
	op  string
	err error
}

type captureTracer struct {
	ended []spanRecord
}

func (c *captureTracer) Start(ctx context.Context, op string) (context.Context, TraceSpan) {
	return ctx, &captureSpan{tracer: c, op: op}
}

type captureSpan struct {
	tracer *captureTracer
	op     string
}

func (s *captureSpan) End(err error) {
	s.tracer.ended = append(s.tracer.ended, spanRecord{op: s.op, err: err})
}

// scenarioLayout is the 3x4 board on an 800x600 screen with an 80px header.
func scenarioLayout(t *testing.T) *grid.Layout {
	t.Helper()
	layout, err := grid.New(grid.Config{
		ScreenWidth:  800,
		ScreenHeight: 600,
		HeaderHeight: 80,
		Rows:         3,
		Columns:      4,
		BorderWidth:  2,
	})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return layout
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *lineagePool, *recordingCanvas) {
	t.Helper()
	layout := scenarioLayout(t)
	pool := &lineagePool{}
	canvas := newRecordingCanvas(800, 600)
	ctrl := NewController(layout, canvas, pool, opts...)
	if err := ctrl.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return ctrl, pool, canvas
}

func mustLineage(t *testing.T, org domain.Organism) *lineageOrganism {
	t.Helper()
	l, ok := org.(*lineageOrganism)
	if !ok {
		t.Fatalf("expected *lineageOrganism, got %T", org)
	}
	return l
}
