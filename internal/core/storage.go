package core

import (
	"context"
	"fmt"
	"os"

	"evolve/internal/infra/journal/postgres"
	"evolve/internal/infra/journal/sqlite"
	"evolve/internal/journal"
)

// OpenJournal selects a journal backend using environment variables.
// Defaults to memory when unset.
//
//	EVOLVE_AUDIT_DRIVER: none|memory|sqlite|postgres (default memory)
//	EVOLVE_SQLITE_PATH: path to sqlite file (default ./evolve-journal.db)
//	EVOLVE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenJournal(ctx context.Context) (journal.Store, error) {
	driver := os.Getenv("EVOLVE_AUDIT_DRIVER")
	if driver == "" {
		driver = string(journal.DriverMemory)
	}
	switch journal.Driver(driver) {
	case journal.DriverNone:
		return journal.Discard{}, nil
	case journal.DriverMemory:
		return journal.NewMemory(), nil
	case journal.DriverSQLite:
		return sqlite.NewStore(os.Getenv("EVOLVE_SQLITE_PATH"))
	case journal.DriverPostgres:
		return postgres.NewStore(ctx, os.Getenv("EVOLVE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown audit driver %s", driver)
	}
}
