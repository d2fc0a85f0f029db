package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestDocument registers a document and fails the test on error.
func createTestDocument(t *testing.T, s *Store, token string, seq int64) {
	t.Helper()
	if err := s.CreateDocument(context.Background(), token, "html", seq); err != nil {
		t.Fatalf("CreateDocument() failed: %v", err)
	}
}
