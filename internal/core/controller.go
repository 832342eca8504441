// Package core owns the population of the evolution board: one organism per
// grid cell plus the optional parent that new organisms are bred from.
//
// Every public operation leaves every slot holding an organism that rendered
// successfully inside its cell, unless an attempt cap was configured and ran out.
package core

import (
	"context"
	"errors"
	"fmt"

	"evolve/internal/grid"
	"evolve/pkg/domain"
)

// Operation names used for tracing, metrics and the audit journal.
const (
	OpInit     = "init"
	OpPromote  = "promote"
	OpDiscard  = "discard"
	OpResetAll = "reset_all"
	OpResolve  = "resolve"
)

const (
	parentLabel      = "Parent"
	placeFailedLabel = "could not place"
	labelInset       = 4
	labelHeight      = 13
)

// ErrIndexOutOfRange is returned when an operation names a cell that does not exist.
type ErrIndexOutOfRange struct {
	Index int
	Len   int
}

func (e ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("cell %d out of range [0,%d)", e.Index, e.Len)
}

// Controller is the population state machine. It is not safe for concurrent
// use; all calls are expected from the single input-event path.
type Controller struct {
	layout *grid.Layout
	canvas domain.Canvas
	gen    domain.Generator
	opts   serviceOptions

	slots  []domain.Organism
	parent ParentState

	// attempts accumulates candidates tried during the current operation.
	attempts int
}

// NewController wires a population of layout.Len() empty slots.
func NewController(layout *grid.Layout, canvas domain.Canvas, gen domain.Generator, opts ...Option) *Controller {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller{
		layout: layout,
		canvas: canvas,
		gen:    gen,
		opts:   o,
		slots:  make([]domain.Organism, layout.Len()),
		parent: NoParent{},
	}
}

// Layout returns the grid the controller populates.
func (c *Controller) Layout() *grid.Layout { return c.layout }

// Rows returns the number of grid rows.
func (c *Controller) Rows() int { return c.layout.Rows() }

// Columns returns the number of grid columns.
func (c *Controller) Columns() int { return c.layout.Columns() }

// Parent returns the current parent state.
func (c *Controller) Parent() ParentState { return c.parent }

// Slot returns the organism in cell index, or nil.
func (c *Controller) Slot(index int) domain.Organism {
	if !c.layout.Valid(index) {
		return nil
	}
	return c.slots[index]
}

// Slots returns a copy of all slots in cell order.
func (c *Controller) Slots() []domain.Organism {
	out := make([]domain.Organism, len(c.slots))
	copy(out, c.slots)
	return out
}

// ParentCell returns the first cell still holding the armed parent.
func (c *Controller) ParentCell() (int, bool) {
	for i, org := range c.slots {
		if isParent(c.parent, org) {
			return i, true
		}
	}
	return 0, false
}

// Init paints the board chrome and fills every cell.
func (c *Controller) Init(ctx context.Context) error {
	return c.run(ctx, OpInit, BoardCell, func(ctx context.Context) error {
		w, h := c.canvas.Size()
		theme := c.opts.theme
		c.canvas.DrawRectangle(domain.Rect{Width: w, Height: h}, 0, nil, theme.Background)
		c.drawHeader()
		for i := range c.slots {
			c.canvas.DrawRectangle(c.layout.Exterior(i), c.layout.BorderWidth(), theme.Border, theme.Background)
		}
		var failed []error
		for i := range c.slots {
			if err := c.resolve(ctx, i); !placementFailed(err, &failed) {
				return err
			}
		}
		c.opts.logger.Info("board initialised", "rows", c.layout.Rows(), "columns", c.layout.Columns())
		return errors.Join(failed...)
	})
}

// Teardown drops the population and the parent.
func (c *Controller) Teardown() {
	for i := range c.slots {
		c.slots[i] = nil
	}
	c.parent = NoParent{}
	c.opts.logger.Info("board torn down")
}

// Resolve guarantees that cell index holds a rendered organism. An existing
// occupant that still renders is kept; otherwise candidates are generated
// until one fits.
func (c *Controller) Resolve(ctx context.Context, index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	return c.run(ctx, OpResolve, index, func(ctx context.Context) error {
		return c.resolve(ctx, index)
	})
}

// Promote makes the organism in cell index the parent and refills every other
// cell with its mutated children. An invalid index clears the parent and
// refills every cell at random.
func (c *Controller) Promote(ctx context.Context, index int) error {
	return c.run(ctx, OpPromote, index, func(ctx context.Context) error {
		valid := c.layout.Valid(index)
		if valid {
			c.parent = parentOf(c.slots[index])
		} else {
			c.parent = NoParent{}
		}
		var failed []error
		for j := range c.slots {
			if valid && j == index {
				continue
			}
			c.slots[j] = nil
			c.erase(j)
			if err := c.resolve(ctx, j); !placementFailed(err, &failed) {
				return err
			}
		}
		if !valid {
			return errors.Join(failed...)
		}
		if err := c.resolve(ctx, index); !placementFailed(err, &failed) {
			return err
		}
		if _, armed := Armed(c.parent); armed {
			c.labelParent(index)
			c.opts.logger.Info("parent promoted", "cell", index)
		}
		return errors.Join(failed...)
	})
}

// Discard revokes any parent, whichever cell it came from, and regenerates
// cell index at random.
func (c *Controller) Discard(ctx context.Context, index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	return c.run(ctx, OpDiscard, index, func(ctx context.Context) error {
		return c.discard(ctx, index)
	})
}

// ResetAll discards every cell except those holding the prior parent, which
// are left untouched.
func (c *Controller) ResetAll(ctx context.Context) error {
	return c.run(ctx, OpResetAll, BoardCell, func(ctx context.Context) error {
		prior := c.parent
		var failed []error
		for i, org := range c.slots {
			if isParent(prior, org) {
				continue
			}
			var err error
			if c.opts.resetMode == ResetSnapshotParent {
				c.slots[i] = nil
				c.erase(i)
				err = c.resolve(ctx, i)
			} else {
				err = c.discard(ctx, i)
			}
			if !placementFailed(err, &failed) {
				return err
			}
		}
		c.parent = NoParent{}
		c.opts.logger.Info("board reset", "mode", string(c.opts.resetMode))
		return errors.Join(failed...)
	})
}

func (c *Controller) discard(ctx context.Context, index int) error {
	c.parent = NoParent{}
	c.slots[index] = nil
	c.erase(index)
	return c.resolve(ctx, index)
}

func (c *Controller) resolve(ctx context.Context, index int) error {
	region := c.layout.Interior(index)
	if org := c.slots[index]; org != nil {
		c.erase(index)
		if org.Render(c.canvas, region) {
			return nil
		}
		c.slots[index] = nil
	}
	org, attempts, err := TryGenerate(ctx, c.opts.maxAttempts, c.candidate, func(candidate domain.Organism) bool {
		c.erase(index)
		return candidate.Render(c.canvas, region)
	})
	c.attempts += attempts
	if err == nil || errors.Is(err, ErrPlacementFailed) {
		c.opts.metrics.ObservePlacement(ctx, attempts, err == nil)
	}
	if err != nil {
		if errors.Is(err, ErrPlacementFailed) {
			c.erase(index)
			c.writeLabel(index, placeFailedLabel)
			c.opts.logger.Warn("cell left empty", "cell", index, "attempts", attempts)
		}
		return fmt.Errorf("resolve cell %d: %w", index, err)
	}
	c.slots[index] = org
	c.opts.logger.Debug("cell placed", "cell", index, "attempts", attempts)
	return nil
}

// placementFailed reports whether the sweep may continue after err, collecting
// capped placement failures so the remaining cells still get filled.
func placementFailed(err error, failed *[]error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrPlacementFailed) {
		*failed = append(*failed, err)
		return true
	}
	return false
}

func (c *Controller) candidate() domain.Organism {
	switch p := c.parent.(type) {
	case HasParent:
		return p.Organism.MutatedChild()
	default:
		return c.gen.Random()
	}
}

func (c *Controller) erase(index int) {
	c.canvas.DrawRectangle(c.layout.Interior(index), 0, nil, c.opts.theme.Background)
}

func (c *Controller) labelParent(index int) {
	c.writeLabel(index, parentLabel)
}

func (c *Controller) writeLabel(index int, text string) {
	in := c.layout.Interior(index)
	at := domain.Point{X: in.Left + labelInset, Y: in.Top() - labelInset - labelHeight}
	c.canvas.WriteText(at, text, c.opts.theme.Label)
}

func (c *Controller) drawHeader() {
	header := c.layout.Header()
	if header.Empty() {
		return
	}
	c.canvas.DrawRectangle(header, 0, nil, c.opts.theme.Background)
	base := header.Top() - labelInset - labelHeight
	c.canvas.WriteText(domain.Point{X: labelInset, Y: base}, c.opts.title, c.opts.theme.Text)
	for i, line := range helpLines {
		y := base - float64(i+1)*(labelHeight+labelInset)
		if y < header.Bottom {
			break
		}
		c.canvas.WriteText(domain.Point{X: labelInset, Y: y}, line, c.opts.theme.Text)
	}
}

var helpLines = []string{
	"left click: breed from cell   right click: replace cell",
	"right click outside the grid: reset   s: snapshot   q: quit",
}

func (c *Controller) checkIndex(index int) error {
	if !c.layout.Valid(index) {
		return ErrIndexOutOfRange{Index: index, Len: c.layout.Len()}
	}
	return nil
}

// run wraps a public operation with refresh suppression, tracing, metrics,
// the audit journal and logging.
func (c *Controller) run(ctx context.Context, op string, cell int, fn func(context.Context) error) error {
	ctx, span := c.opts.tracer.Start(ctx, op)
	start := c.opts.clock.Now()
	c.attempts = 0

	c.canvas.SetAutoRefresh(false)
	err := fn(ctx)
	c.canvas.Refresh()
	c.canvas.SetAutoRefresh(true)

	duration := c.opts.clock.Now().Sub(start)
	span.End(err)
	c.opts.metrics.Observe(ctx, op, err == nil, duration)
	_, armed := Armed(c.parent)
	entry := AuditEntry{
		Operation:   op,
		Cell:        cell,
		Status:      AuditStatusSuccess,
		Attempts:    c.attempts,
		ParentArmed: armed,
		Duration:    duration,
		RecordedAt:  start,
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
		c.opts.logger.Error("operation failed", "operation", op, "cell", cell, "error", err)
	}
	c.opts.audit.Record(ctx, entry)
	return err
}
