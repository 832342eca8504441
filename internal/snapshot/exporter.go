// Package snapshot exports the visible board as a PNG into blob storage.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"time"

	"evolve/internal/blob"
)

const (
	// DefaultPrefix is the key prefix snapshots are written under.
	DefaultPrefix = "snapshots/"
	contentType   = "image/png"
	keyLayout     = "20060102T150405.000000000Z"
)

// Frames supplies the image to export.
type Frames interface {
	Frame() *image.RGBA
}

// Board describes the population being exported.
type Board interface {
	Rows() int
	Columns() int
	ParentCell() (int, bool)
}

// Exporter writes PNG snapshots with the board shape as blob metadata.
type Exporter struct {
	store  blob.Store
	frames Frames
	board  Board
	prefix string
	now    func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(e *Exporter) { e.prefix = prefix }
}

// WithClock overrides the time source used for keys.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExporter binds the exporter to a store, a frame source and a board.
func NewExporter(store blob.Store, frames Frames, board Board, opts ...Option) *Exporter {
	e := &Exporter{store: store, frames: frames, board: board, prefix: DefaultPrefix, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot encodes the current frame and stores it, returning the blob key.
func (e *Exporter) Snapshot(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, e.frames.Frame()); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	key := e.prefix + e.now().UTC().Format(keyLayout) + ".png"
	parent := "none"
	if cell, ok := e.board.ParentCell(); ok {
		parent = strconv.Itoa(cell)
	}
	_, err := e.store.Put(ctx, key, bytes.NewReader(buf.Bytes()), blob.PutOptions{
		ContentType: contentType,
		Metadata: map[string]string{
			"rows":        strconv.Itoa(e.board.Rows()),
			"cols":        strconv.Itoa(e.board.Columns()),
			"parent_cell": parent,
		},
	})
	if err != nil {
		return "", fmt.Errorf("store snapshot %s: %w", key, err)
	}
	return key, nil
}
