package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"evolve/internal/blob/core"
)

func TestMockRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMock()
	if s.Driver() != core.DriverS3 || s.Bucket() != "mock-bucket" || s.Client() == nil {
		t.Fatalf("unexpected store")
	}
	payload := []byte("\x89PNG\r\n\x1a\nbody\r\n0\r\n")
	info, err := s.Put(ctx, "snapshots/20260101T000000Z.png", bytes.NewReader(payload), core.PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"rows": "3", "cols": "4"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(payload)) || info.ContentType != "image/png" || info.Metadata["rows"] != "3" {
		t.Fatalf("unexpected info %+v", info)
	}

	got, rc, err := s.Get(ctx, "snapshots/20260101T000000Z.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if !bytes.Equal(body, payload) {
		t.Fatalf("body mismatch: %q", body)
	}
	if got.Metadata["cols"] != "4" {
		t.Fatalf("metadata lost: %+v", got)
	}
}

func TestMockPutIsCreateOnly(t *testing.T) {
	ctx := context.Background()
	s := NewMock()
	if _, err := s.Put(ctx, "k", strings.NewReader("a"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "k", strings.NewReader("b"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestMockGetMissing(t *testing.T) {
	if _, _, err := NewMock().Get(context.Background(), "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMockListPaginates(t *testing.T) {
	ctx := context.Background()
	s := NewMock()
	for _, k := range []string{"snapshots/c", "snapshots/a", "other/x", "snapshots/b", "snapshots/d", "snapshots/e"} {
		if _, err := s.Put(ctx, k, strings.NewReader(k), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}
	list, err := s.List(ctx, "snapshots/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"snapshots/a", "snapshots/b", "snapshots/c", "snapshots/d", "snapshots/e"}
	if len(list) != len(want) {
		t.Fatalf("expected %d keys, got %+v", len(want), list)
	}
	for i, k := range want {
		if list[i].Key != k || list[i].Size != int64(len(k)) {
			t.Fatalf("entry %d: expected %s, got %+v", i, k, list[i])
		}
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestOpenFromEnv(t *testing.T) {
	t.Setenv("EVOLVE_BLOB_S3_BUCKET", "")
	if _, err := OpenFromEnv(context.Background()); err == nil {
		t.Fatalf("expected missing bucket error")
	}
	t.Setenv("EVOLVE_BLOB_S3_BUCKET", "snaps")
	t.Setenv("EVOLVE_BLOB_S3_ENDPOINT", "http://127.0.0.1:9000")
	t.Setenv("EVOLVE_BLOB_S3_PATH_STYLE", "true")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	s, err := OpenFromEnv(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Bucket() != "snaps" {
		t.Fatalf("unexpected bucket %s", s.Bucket())
	}
}

func TestDecodeAWSChunked(t *testing.T) {
	raw := []byte("5;chunk-signature=abc\r\nhe\r\nl\r\n0\r\nx-amz-checksum-crc32:AAAA\r\n\r\n")
	got, err := decodeAWSChunked(raw)
	if err != nil || string(got) != "he\r\nl" {
		t.Fatalf("unexpected decode %q %v", got, err)
	}
	if _, err := decodeAWSChunked([]byte("zz\r\n")); err == nil {
		t.Fatalf("expected bad size error")
	}
	if _, err := decodeAWSChunked([]byte("10\r\nshort")); err == nil {
		t.Fatalf("expected short chunk error")
	}
	if _, err := decodeAWSChunked([]byte("no header")); err == nil {
		t.Fatalf("expected missing header error")
	}
}
