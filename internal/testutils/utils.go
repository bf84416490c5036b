package testutils

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gi8lino/jirahook/internal/chat"
)

// MustWriteFile writes data to a file or fails the test, creating parent directories if needed.
func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %q: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file %q: %v", path, err)
	}
}

// MockPoster implements chat.Poster and records every posted message.
type MockPoster struct {
	PostFn func(ctx context.Context, msg *chat.Message) error

	mu     sync.Mutex
	posted []*chat.Message
}

// Post records msg and delegates to PostFn if set.
func (m *MockPoster) Post(ctx context.Context, msg *chat.Message) error {
	m.mu.Lock()
	m.posted = append(m.posted, msg)
	m.mu.Unlock()

	if m.PostFn == nil {
		return nil
	}
	return m.PostFn(ctx, msg)
}

// Posted returns the messages received so far.
func (m *MockPoster) Posted() []*chat.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*chat.Message(nil), m.posted...)
}
