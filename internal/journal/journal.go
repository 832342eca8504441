// Package journal defines the audit trail of population operations and the
// store abstraction its backends implement.
//
// Entries describe what the user did to the board (promote, discard, reset)
// and how placement went; they never carry genomes and are not used to
// restore a population.
package journal

import (
	"context"
	"time"
)

// Driver identifies a journal backend.
type Driver string

const (
	DriverNone     Driver = "none"     // entries are dropped
	DriverMemory   Driver = "memory"   // process memory (default, tests)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL server
)

// Status is the outcome of a journaled operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// BoardCell marks entries that apply to the whole board rather than one cell.
const BoardCell = -1

// Entry records a single controller operation.
type Entry struct {
	Operation   string        `json:"operation"`
	Cell        int           `json:"cell"`
	Status      Status        `json:"status"`
	Attempts    int           `json:"attempts"`
	ParentArmed bool          `json:"parent_armed"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
	RecordedAt  time.Time     `json:"recorded_at"`
}

// Store persists journal entries in append order.
type Store interface {
	Append(ctx context.Context, e Entry) error
	// Entries returns all entries in the order they were appended.
	Entries(ctx context.Context) ([]Entry, error)
	Close() error
	Driver() Driver
}
