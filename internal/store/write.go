package store

import (
	"context"
	"fmt"
)

// CreateDocument registers a document compile.
// Uses ON CONFLICT DO NOTHING - creating an existing document is a no-op.
func (s *Store) CreateDocument(ctx context.Context, token, format string, seq int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (token, format, seq)
		VALUES (?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`, token, format, seq)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// AppendEntry appends value to the named list of a document.
//
// The seq must be unique within the document; the host's logical clock
// guarantees this. The document must exist (foreign key constraint).
func (s *Store) AppendEntry(ctx context.Context, document, list, value string, seq int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO list_entries (document, list, value, seq)
		VALUES (?, ?, ?, ?)
	`, document, list, value, seq)
	if err != nil {
		return fmt.Errorf("append entry to %s/%s: %w", document, list, err)
	}
	return nil
}

// Entry is one list-push to apply.
type Entry struct {
	List  string
	Value string
	Seq   int64
}

// AppendEntries applies the pushes of one invocation atomically, in order.
// Either every entry is written or none is.
func (s *Store) AppendEntries(ctx context.Context, document string, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append entries: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO list_entries (document, list, value, seq)
			VALUES (?, ?, ?, ?)
		`, document, e.List, e.Value, e.Seq); err != nil {
			return fmt.Errorf("append entries to %s/%s: %w", document, e.List, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append entries: commit: %w", err)
	}
	return nil
}
