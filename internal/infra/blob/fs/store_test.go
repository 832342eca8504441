package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"evolve/internal/blob/core"
)

func TestPutGetList(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "blobs")
	s, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Root() != root || s.Driver() != core.DriverFilesystem {
		t.Fatalf("unexpected store %+v", s)
	}
	info, err := s.Put(ctx, "snapshots/1.png", bytes.NewReader([]byte("image")), core.PutOptions{ContentType: "image/png", Metadata: map[string]string{"cols": "4"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "snapshots/1.png" || info.Size != 5 {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := os.Stat(filepath.Join(root, "snapshots", "1.png")); err != nil {
		t.Fatalf("expected data file: %v", err)
	}

	got, rc, err := s.Get(ctx, "snapshots/1.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "image" || got.ContentType != "image/png" || got.Metadata["cols"] != "4" {
		t.Fatalf("unexpected blob %+v %q", got, body)
	}

	if _, err := s.Put(ctx, "snapshots/0.png", bytes.NewReader(nil), core.PutOptions{}); err != nil {
		t.Fatalf("put second: %v", err)
	}
	if _, err := s.Put(ctx, "exports/x.png", bytes.NewReader(nil), core.PutOptions{}); err != nil {
		t.Fatalf("put third: %v", err)
	}
	list, err := s.List(ctx, "snapshots/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "snapshots/0.png" || list[1].Key != "snapshots/1.png" {
		t.Fatalf("unexpected listing %+v", list)
	}
	all, err := s.List(ctx, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 blobs, got %d %v", len(all), err)
	}
}

func TestPutIsCreateOnly(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	if _, err := s.Put(ctx, "a", bytes.NewReader([]byte("1")), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "a", bytes.NewReader([]byte("2")), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestRejectsUnsafeKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"", "/etc/passwd", "../escape", "a/../../b", "x.meta"} {
		if _, err := s.Put(context.Background(), key, bytes.NewReader(nil), core.PutOptions{}); err == nil {
			t.Fatalf("expected key %q rejected", key)
		}
	}
}

func TestGetMissing(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, _, err := s.Get(context.Background(), "none.png"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetCorruptSidecar(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := s.Put(context.Background(), "k", bytes.NewReader([]byte("x")), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "k.meta"), []byte("{"), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	if _, _, err := s.Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := s.List(context.Background(), ""); err == nil {
		t.Fatalf("expected list decode error")
	}
}
