package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

var stubSeq atomic.Int64

// stubConn records statements and keeps inserted journal rows in memory.
type stubConn struct {
	execs    []string
	rows     [][]driver.Value
	failPing bool
	failExec bool
}

func newStubDB() (*sql.DB, *stubConn) {
	conn := &stubConn{}
	name := fmt.Sprintf("stubpg%d", stubSeq.Add(1))
	sql.Register(name, &stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	return db, conn
}

type stubDriver struct{ conn *stubConn }

func (d *stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, fmt.Errorf("not implemented") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return nil, fmt.Errorf("not implemented") }

func (c *stubConn) Ping(context.Context) error {
	if c.failPing {
		return fmt.Errorf("ping fail")
	}
	return nil
}

func (c *stubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.execs = append(c.execs, query)
	if c.failExec {
		return nil, fmt.Errorf("exec fail")
	}
	if strings.HasPrefix(strings.TrimSpace(query), "INSERT INTO journal") {
		row := make([]driver.Value, len(args))
		for i, a := range args {
			row[i] = a.Value
		}
		c.rows = append(c.rows, row)
		return driver.RowsAffected(1), nil
	}
	return driver.RowsAffected(0), nil
}

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	if !strings.HasPrefix(strings.TrimSpace(query), "SELECT") {
		return nil, fmt.Errorf("unsupported query %q", query)
	}
	return &stubRows{data: c.rows}, nil
}

type stubRows struct {
	data [][]driver.Value
	pos  int
}

func (r *stubRows) Columns() []string {
	return []string{"operation", "cell", "status", "attempts", "parent_armed", "error", "duration_ns", "recorded_at"}
}

func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.pos])
	r.pos++
	return nil
}
