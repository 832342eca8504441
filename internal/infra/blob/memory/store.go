// Package memory provides an in-process blob store.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"evolve/internal/blob/core"
)

type object struct {
	info core.Info
	data []byte
}

// Store keeps blobs in a map guarded by a mutex.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New returns an empty store.
func New() *Store {
	return &Store{objects: make(map[string]object)}
}

// Driver implements core.Store.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Put implements core.Store.
func (s *Store) Put(_ context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	if strings.TrimSpace(key) == "" {
		return core.Info{}, fmt.Errorf("empty key")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Info{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; ok {
		return core.Info{}, fmt.Errorf("%w: %s", core.ErrExists, key)
	}
	info := core.Info{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  opts.ContentType,
		Metadata:     maps.Clone(opts.Metadata),
		LastModified: time.Now().UTC(),
	}
	s.objects[key] = object{info: info, data: data}
	return cloneInfo(info), nil
}

// Get implements core.Store.
func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return core.Info{}, nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	return cloneInfo(obj.info), io.NopCloser(bytes.NewReader(obj.data)), nil
}

// List implements core.Store.
func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Info
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, cloneInfo(obj.info))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func cloneInfo(info core.Info) core.Info {
	info.Metadata = maps.Clone(info.Metadata)
	return info
}
