package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const metaHeaderPrefix = "X-Amz-Meta-"

// mockPageSize keeps listings short enough to exercise continuation tokens.
const mockPageSize = 2

// NewMock returns a Store backed by an in-memory fake S3 transport. It serves
// the subset of the API the store uses: conditional PUT, HEAD, GET and
// ListObjectsV2.
func NewMock() *Store {
	st, err := New(context.Background(), Config{
		Region:          "us-east-1",
		Bucket:          "mock-bucket",
		Endpoint:        "https://mock.s3.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: &mockRoundTripper{objects: make(map[string]mockObject)}},
	})
	if err != nil {
		panic(err)
	}
	return st
}

// Client exposes the underlying SDK client.
func (s *Store) Client() *s3.Client { return s.client }

type mockObject struct {
	body        []byte
	contentType string
	metadata    http.Header
	modified    time.Time
}

type mockRoundTripper struct {
	mu      sync.Mutex
	objects map[string]mockObject
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	switch {
	case req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2":
		return m.list(req.URL.Query().Get("prefix"), req.URL.Query().Get("continuation-token")), nil
	case req.Method == http.MethodPut:
		return m.put(req, key)
	case req.Method == http.MethodHead, req.Method == http.MethodGet:
		obj, ok := m.objects[key]
		if !ok {
			return respond(http.StatusNotFound, nil, nil), nil
		}
		header := obj.metadata.Clone()
		header.Set("Content-Length", strconv.Itoa(len(obj.body)))
		header.Set("Content-Type", obj.contentType)
		header.Set("ETag", `"mock"`)
		header.Set("Last-Modified", obj.modified.Format(http.TimeFormat))
		if req.Method == http.MethodHead {
			return respond(http.StatusOK, header, nil), nil
		}
		return respond(http.StatusOK, header, obj.body), nil
	}
	return respond(http.StatusNotImplemented, nil, nil), nil
}

func (m *mockRoundTripper) put(req *http.Request, key string) (*http.Response, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") || req.Header.Get("X-Amz-Decoded-Content-Length") != "" {
		if body, err = decodeAWSChunked(body); err != nil {
			return respond(http.StatusBadRequest, nil, nil), nil
		}
	}
	if _, exists := m.objects[key]; exists && req.Header.Get("If-None-Match") == "*" {
		return respond(http.StatusPreconditionFailed, nil, nil), nil
	}
	meta := http.Header{}
	for name, values := range req.Header {
		if strings.HasPrefix(http.CanonicalHeaderKey(name), metaHeaderPrefix) {
			meta[http.CanonicalHeaderKey(name)] = values
		}
	}
	m.objects[key] = mockObject{
		body:        body,
		contentType: req.Header.Get("Content-Type"),
		metadata:    meta,
		modified:    time.Now().UTC().Truncate(time.Second),
	}
	return respond(http.StatusOK, http.Header{"ETag": {`"mock"`}}, nil), nil
}

func (m *mockRoundTripper) list(prefix, token string) *http.Response {
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) && k > token {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult>`)
	if len(keys) > mockPageSize {
		keys = keys[:mockPageSize]
		fmt.Fprintf(&b, "<IsTruncated>true</IsTruncated><NextContinuationToken>%s</NextContinuationToken>", keys[len(keys)-1])
	} else {
		b.WriteString("<IsTruncated>false</IsTruncated>")
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>%s</LastModified></Contents>",
			k, len(m.objects[k].body), m.objects[k].modified.Format(time.RFC3339))
	}
	b.WriteString("</ListBucketResult>")
	return respond(http.StatusOK, http.Header{"Content-Type": {"application/xml"}}, []byte(b.String()))
}

func respond(status int, header http.Header, body []byte) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode:    status,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

// decodeAWSChunked strips aws-chunked framing: "<hex>[;ext]\r\n<data>\r\n"
// repeated until a zero-length chunk, followed by optional trailers.
func decodeAWSChunked(b []byte) ([]byte, error) {
	var out []byte
	for {
		i := bytes.Index(b, []byte("\r\n"))
		if i < 0 {
			return nil, fmt.Errorf("missing chunk header")
		}
		sizeField := string(b[:i])
		if j := strings.IndexByte(sizeField, ';'); j >= 0 {
			sizeField = sizeField[:j]
		}
		n, err := strconv.ParseInt(strings.TrimSpace(sizeField), 16, 64)
		if err != nil {
			return nil, fmt.Errorf("chunk size: %w", err)
		}
		b = b[i+2:]
		if n == 0 {
			return out, nil
		}
		if int64(len(b)) < n+2 {
			return nil, fmt.Errorf("short chunk")
		}
		out = append(out, b[:n]...)
		b = b[n+2:]
	}
}
