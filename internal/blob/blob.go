// Package blob is the entry point for snapshot storage. It re-exports the core
// abstractions and constructs the infra-backed implementations; other packages
// depend on Store and never import the backends directly.
package blob

import (
	"context"
	"fmt"
	"os"

	"evolve/internal/blob/core"
	"evolve/internal/infra/blob/fs"
	"evolve/internal/infra/blob/memory"
	"evolve/internal/infra/blob/s3"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// PutOptions configures a blob write.
	PutOptions = core.PutOptions
	// Info describes stored blob metadata.
	Info = core.Info
	// Store is the interface for blob storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory driver.
	DriverMemory = core.DriverMemory
)

var (
	// ErrExists is returned when writing to a taken key.
	ErrExists = core.ErrExists
	// ErrNotFound is returned when reading a missing key.
	ErrNotFound = core.ErrNotFound
)

// NewFilesystem returns a store rooted at dir.
func NewFilesystem(dir string) (Store, error) { return fs.New(dir) }

// NewMemory returns an in-process store.
func NewMemory() Store { return memory.New() }

// NewS3Mock returns an S3 store over a fake transport.
func NewS3Mock() Store { return s3.NewMock() }

// Open selects a Store implementation using environment variables.
//
//	EVOLVE_BLOB_DRIVER: fs|s3|memory (default fs)
//	EVOLVE_BLOB_FS_ROOT: directory root when driver=fs (default ./snapshots)
//	(S3 specific variables documented in the s3 backend)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("EVOLVE_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("EVOLVE_BLOB_FS_ROOT"))
	case DriverS3:
		return s3.OpenFromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
