package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrDocumentNotFound is returned when a document token is unknown.
var ErrDocumentNotFound = errors.New("document not found")

// Document describes one stored compile.
type Document struct {
	Token  string `json:"token"`
	Format string `json:"format"`
	Seq    int64  `json:"seq"`
}

// GetDocument returns the document with the given token.
func (s *Store) GetDocument(ctx context.Context, token string) (Document, error) {
	var doc Document
	err := s.db.QueryRowContext(ctx, `
		SELECT token, format, seq FROM documents WHERE token = ?
	`, token).Scan(&doc.Token, &doc.Format, &doc.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("get document %s: %w", token, ErrDocumentNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("get document %s: %w", token, err)
	}
	return doc, nil
}

// ListDocuments returns every document in creation order.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, format, seq FROM documents
		ORDER BY seq ASC, token ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.Token, &doc.Format, &doc.Seq); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

// ReadList returns the entries of one list in push order.
// A list that was never pushed to is empty, not an error.
func (s *Store) ReadList(ctx context.Context, document, list string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT value FROM list_entries
		WHERE document = ? AND list = ?
		ORDER BY seq ASC, id ASC
	`, document, list)
	if err != nil {
		return nil, fmt.Errorf("read list %s/%s: %w", document, list, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return values, nil
}

// LastSeq returns the highest sequence number in use, or 0 for an empty
// store. A host resuming work continues its clock from here.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(seq) FROM (
			SELECT seq FROM documents
			UNION ALL
			SELECT seq FROM list_entries
		)
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq.Int64, nil
}
