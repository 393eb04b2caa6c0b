package main

// Notes:
// - Test helpers and mocks shared by the command tests.
// - mockPool hands out a single mockConverter; its Convert records every
//   job config so tests can assert on what reached the library.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockDoc is a renderedDoc that writes fixed bytes.
type mockDoc struct {
	data  []byte
	pages int
}

func (d *mockDoc) WriteToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, d.data, 0o600)
}

func (d *mockDoc) DataURI() string { return "data:application/pdf;base64,JVBERg==" }
func (d *mockDoc) PageCount() int  { return d.pages }

// mockConverter records calls and returns doc or err.
type mockConverter struct {
	mu      sync.Mutex
	err     error
	configs []*html2pdf.Config
	sources []html2pdf.Source
}

func (c *mockConverter) Convert(_ context.Context, src html2pdf.Source, cfg *html2pdf.Config) (renderedDoc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configs = append(c.configs, cfg)
	c.sources = append(c.sources, src)
	if c.err != nil {
		return nil, c.err
	}
	return &mockDoc{data: []byte("%PDF-1.3 mock"), pages: 2}, nil
}

func (c *mockConverter) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.configs)
}

// mockPool serves conv, or acquireErr when set.
type mockPool struct {
	conv       *mockConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	opts     []html2pdf.Option
	closed   bool
	released int
}

func (p *mockPool) Acquire() (docConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(docConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// mockLoader returns content for any path, or err.
type mockLoader struct {
	content string
	err     error
}

func (l *mockLoader) Load(_ context.Context, _ string) (string, error) {
	return l.content, l.err
}

// ---------------------------------------------------------------------------
// Environment Helpers
// ---------------------------------------------------------------------------

// testEnv bundles an Environment with its captured output and pool.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	pool   *mockPool
}

// newTestEnv returns an Environment with captured output, a fixed clock,
// the given variables and a mock pool.
func newTestEnv(t *testing.T, vars map[string]string) *testEnv {
	t.Helper()
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pool:   &mockPool{conv: &mockConverter{}},
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	te.Environment = &Environment{
		Now:    func() time.Time { return now },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewPool: func(size int, opts ...html2pdf.Option) Pool {
			te.pool.size = size
			te.pool.opts = opts
			return te.pool
		},
	}
	return te
}

// writeFile creates a file with content below dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("output %q does not contain %q", s, substr)
	}
}
