// Package grid computes the fixed cell geometry of the evolution board and maps
// screen coordinates back to cells.
//
// Cells are numbered 0..rows*columns-1; row = index / columns and
// column = index % columns. Row 0 is the bottom band of the board and the
// header band sits above the last row.
package grid

import (
	"errors"
	"fmt"
	"math"

	"evolve/pkg/domain"
)

// ErrInvalidConfig reports a geometry that cannot produce drawable cells.
var ErrInvalidConfig = errors.New("grid: invalid configuration")

// Config holds the inputs of the layout computation.
type Config struct {
	ScreenWidth  float64
	ScreenHeight float64
	HeaderHeight float64
	Rows         int
	Columns      int
	BorderWidth  float64
}

// Layout is the immutable cell geometry derived from a Config.
type Layout struct {
	cfg        Config
	cellWidth  float64
	cellHeight float64
}

// New validates cfg and computes the cell size. A configuration whose cells
// would have a non-positive interior is rejected here, once, rather than per cell.
func New(cfg Config) (*Layout, error) {
	switch {
	case cfg.Rows <= 0 || cfg.Columns <= 0:
		return nil, fmt.Errorf("%w: rows and columns must be positive, got %dx%d", ErrInvalidConfig, cfg.Rows, cfg.Columns)
	case cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0:
		return nil, fmt.Errorf("%w: screen must be positive, got %gx%g", ErrInvalidConfig, cfg.ScreenWidth, cfg.ScreenHeight)
	case cfg.HeaderHeight < 0 || cfg.HeaderHeight >= cfg.ScreenHeight:
		return nil, fmt.Errorf("%w: header height %g outside [0,%g)", ErrInvalidConfig, cfg.HeaderHeight, cfg.ScreenHeight)
	case cfg.BorderWidth < 0:
		return nil, fmt.Errorf("%w: negative border width %g", ErrInvalidConfig, cfg.BorderWidth)
	}
	l := &Layout{
		cfg:        cfg,
		cellWidth:  (cfg.ScreenWidth - cfg.BorderWidth) / float64(cfg.Columns),
		cellHeight: (cfg.ScreenHeight - cfg.HeaderHeight) / float64(cfg.Rows),
	}
	if in := l.Interior(0); in.Empty() {
		return nil, fmt.Errorf("%w: %dx%d cells leave a %gx%g interior", ErrInvalidConfig, cfg.Rows, cfg.Columns, in.Width, in.Height)
	}
	return l, nil
}

// Rows returns the number of cell rows.
func (l *Layout) Rows() int { return l.cfg.Rows }

// Columns returns the number of cell columns.
func (l *Layout) Columns() int { return l.cfg.Columns }

// Len returns the number of cells.
func (l *Layout) Len() int { return l.cfg.Rows * l.cfg.Columns }

// CellSize returns the exterior width and height shared by all cells.
func (l *Layout) CellSize() (width, height float64) { return l.cellWidth, l.cellHeight }

// BorderWidth returns the border drawn around every cell.
func (l *Layout) BorderWidth() float64 { return l.cfg.BorderWidth }

// Valid reports whether index names a cell.
func (l *Layout) Valid(index int) bool { return index >= 0 && index < l.Len() }

// Exterior returns the full bounds of the cell, border included.
// It panics if index is out of range.
func (l *Layout) Exterior(index int) domain.Rect {
	l.mustValid(index)
	col := index % l.cfg.Columns
	row := index / l.cfg.Columns
	return domain.Rect{
		Left:   float64(col) * l.cellWidth,
		Bottom: float64(row) * l.cellHeight,
		Width:  l.cellWidth,
		Height: l.cellHeight,
	}
}

// Interior returns the drawable bounds of the cell: the exterior inset by the
// border width on every side. It panics if index is out of range.
func (l *Layout) Interior(index int) domain.Rect {
	return l.Exterior(index).Inset(l.cfg.BorderWidth)
}

// Header returns the band above the grid reserved for titles and help text.
func (l *Layout) Header() domain.Rect {
	return domain.Rect{
		Left:   0,
		Bottom: l.cfg.ScreenHeight - l.cfg.HeaderHeight,
		Width:  l.cfg.ScreenWidth,
		Height: l.cfg.HeaderHeight,
	}
}

// Locate maps a screen coordinate to the cell containing it. Coordinates
// outside the grid, including the header band, report false.
func (l *Layout) Locate(x, y float64) (int, bool) {
	col := math.Floor(x / l.cellWidth)
	row := math.Floor(y / l.cellHeight)
	if col < 0 || col >= float64(l.cfg.Columns) || row < 0 || row >= float64(l.cfg.Rows) {
		return 0, false
	}
	return int(row)*l.cfg.Columns + int(col), true
}

func (l *Layout) mustValid(index int) {
	if !l.Valid(index) {
		panic(fmt.Sprintf("grid: cell index %d out of range [0,%d)", index, l.Len()))
	}
}
