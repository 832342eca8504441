// Package postgres persists the operation journal to PostgreSQL through the
// pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"evolve/internal/journal"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion.
var _ journal.Store = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/evolve?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// OverrideSQLOpen swaps the function used to open connections and returns a
// restore func. Tests use it to inject stub drivers.
func OverrideSQLOpen(fn func(driverName, dsn string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}

const createTable = `CREATE TABLE IF NOT EXISTS journal (
	id BIGSERIAL PRIMARY KEY,
	operation TEXT NOT NULL,
	cell INTEGER NOT NULL,
	status TEXT NOT NULL,
	attempts INTEGER NOT NULL,
	parent_armed BOOLEAN NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	duration_ns BIGINT NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL
)`

// Store appends journal entries to a Postgres table.
type Store struct {
	db *sql.DB
}

// NewStore connects using dsn (falling back to a local default) and ensures
// the journal table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure journal table: %w", err)
	}
	return &Store{db: db}, nil
}

// Driver implements journal.Store.
func (s *Store) Driver() journal.Driver { return journal.DriverPostgres }

// Append inserts e at the end of the journal.
func (s *Store) Append(ctx context.Context, e journal.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal (operation, cell, status, attempts, parent_armed, error, duration_ns, recorded_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.Operation, e.Cell, string(e.Status), e.Attempts, e.ParentArmed, e.Error, int64(e.Duration), e.RecordedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// Entries returns the journal in insertion order.
func (s *Store) Entries(ctx context.Context) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT operation, cell, status, attempts, parent_armed, error, duration_ns, recorded_at FROM journal ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select journal: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []journal.Entry
	for rows.Next() {
		var (
			e        journal.Entry
			status   string
			duration int64
		)
		if err := rows.Scan(&e.Operation, &e.Cell, &status, &e.Attempts, &e.ParentArmed, &e.Error, &duration, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.Status = journal.Status(status)
		e.Duration = time.Duration(duration)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }
