// Package sqlite persists the operation journal to an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"evolve/internal/journal"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion.
var _ journal.Store = (*Store)(nil)

const defaultPath = "evolve-journal.db"

// Store appends journal entries to a single SQLite table.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if needed) the journal database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		operation TEXT NOT NULL,
		cell INTEGER NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL,
		parent_armed INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		duration_ns INTEGER NOT NULL,
		recorded_at TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create journal table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Driver implements journal.Store.
func (s *Store) Driver() journal.Driver { return journal.DriverSQLite }

// Append inserts e at the end of the journal.
func (s *Store) Append(ctx context.Context, e journal.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	armed := 0
	if e.ParentArmed {
		armed = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal(operation,cell,status,attempts,parent_armed,error,duration_ns,recorded_at) VALUES(?,?,?,?,?,?,?,?)`,
		e.Operation, e.Cell, string(e.Status), e.Attempts, armed, e.Error, int64(e.Duration), e.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// Entries returns the journal in insertion order.
func (s *Store) Entries(ctx context.Context) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT operation,cell,status,attempts,parent_armed,error,duration_ns,recorded_at FROM journal ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select journal: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []journal.Entry
	for rows.Next() {
		var (
			e        journal.Entry
			status   string
			armed    int64
			duration int64
			recorded string
		)
		if err := rows.Scan(&e.Operation, &e.Cell, &status, &e.Attempts, &armed, &e.Error, &duration, &recorded); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.Status = journal.Status(status)
		e.ParentArmed = armed != 0
		e.Duration = time.Duration(duration)
		if e.RecordedAt, err = time.Parse(time.RFC3339Nano, recorded); err != nil {
			return nil, fmt.Errorf("decode recorded_at: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
