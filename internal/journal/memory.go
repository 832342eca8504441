package journal

import (
	"context"
	"sync"
)

// Memory keeps entries in process memory.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory returns an empty in-memory journal.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Driver() Driver { return DriverMemory }

// Append stores e.
func (m *Memory) Append(_ context.Context, e Entry) error {
	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()
	return nil
}

// Entries returns a copy of the stored entries.
func (m *Memory) Entries(context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *Memory) Close() error { return nil }

// Discard drops every entry. It backs the "none" driver.
type Discard struct{}

func (Discard) Driver() Driver                           { return DriverNone }
func (Discard) Append(context.Context, Entry) error      { return nil }
func (Discard) Entries(context.Context) ([]Entry, error) { return nil, nil }
func (Discard) Close() error                             { return nil }
