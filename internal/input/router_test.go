package input

import (
	"context"
	"errors"
	"testing"

	"evolve/internal/grid"
	"evolve/pkg/domain"
)

type recordingPopulation struct {
	calls []string
	cells []int
}

func (p *recordingPopulation) Promote(_ context.Context, i int) error {
	p.calls = append(p.calls, "promote")
	p.cells = append(p.cells, i)
	return nil
}

func (p *recordingPopulation) Discard(_ context.Context, i int) error {
	p.calls = append(p.calls, "discard")
	p.cells = append(p.cells, i)
	return nil
}

func (p *recordingPopulation) ResetAll(context.Context) error {
	p.calls = append(p.calls, "reset")
	p.cells = append(p.cells, -1)
	return nil
}

type stubSnapshotter struct {
	calls int
	err   error
}

func (s *stubSnapshotter) Snapshot(context.Context) (string, error) {
	s.calls++
	return "snapshots/x.png", s.err
}

func testLayout(t *testing.T) *grid.Layout {
	t.Helper()
	l, err := grid.New(grid.Config{ScreenWidth: 800, ScreenHeight: 600, HeaderHeight: 80, Rows: 3, Columns: 4, BorderWidth: 2})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return l
}

func TestDispatchClick(t *testing.T) {
	cases := []struct {
		name   string
		button domain.Button
		x, y   float64
		call   string
		cell   int
	}{
		{"left in cell", domain.ButtonLeft, 750, 500, "promote", 11},
		{"right in cell", domain.ButtonRight, 750, 10, "discard", 3},
		{"right in header", domain.ButtonRight, 10, 590, "reset", -1},
		{"right off screen", domain.ButtonRight, -5, 100, "reset", -1},
		{"left in header", domain.ButtonLeft, 10, 590, "", 0},
		{"unknown button", domain.Button(9), 100, 100, "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pop := &recordingPopulation{}
			r := NewRouter(testLayout(t), pop)
			if err := r.DispatchClick(context.Background(), tc.button, tc.x, tc.y); err != nil {
				t.Fatalf("dispatch: %v", err)
			}
			if tc.call == "" {
				if len(pop.calls) != 0 {
					t.Fatalf("expected no-op, got %v", pop.calls)
				}
				return
			}
			if len(pop.calls) != 1 || pop.calls[0] != tc.call || pop.cells[0] != tc.cell {
				t.Fatalf("expected %s(%d), got %v %v", tc.call, tc.cell, pop.calls, pop.cells)
			}
		})
	}
}

func TestDispatchKeyQuit(t *testing.T) {
	r := NewRouter(testLayout(t), &recordingPopulation{})
	if r.Quitting() {
		t.Fatalf("router quitting before key press")
	}
	if err := r.DispatchKey(context.Background(), domain.KeyQuit); err != nil {
		t.Fatalf("quit: %v", err)
	}
	if !r.Quitting() {
		t.Fatalf("expected quitting after quit key")
	}
}

func TestDispatchKeySnapshot(t *testing.T) {
	snap := &stubSnapshotter{}
	r := NewRouter(testLayout(t), &recordingPopulation{}, WithSnapshotter(snap), WithLogger(nil))
	if err := r.DispatchKey(context.Background(), domain.KeySnapshot); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.calls != 1 {
		t.Fatalf("expected one export, got %d", snap.calls)
	}
	snap.err = errors.New("bucket gone")
	if err := r.DispatchKey(context.Background(), domain.KeySnapshot); err == nil {
		t.Fatalf("expected export error to propagate")
	}
}

func TestDispatchKeySnapshotUnconfigured(t *testing.T) {
	r := NewRouter(testLayout(t), &recordingPopulation{})
	if err := r.DispatchKey(context.Background(), domain.KeySnapshot); err != nil {
		t.Fatalf("expected unconfigured snapshot to be ignored, got %v", err)
	}
}
