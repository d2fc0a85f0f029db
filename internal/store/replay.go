package store

import (
	"context"
	"fmt"

	"github.com/roach88/chalmers-thesis/internal/structure"
)

// ReplayStructure reads a document's structure list and decodes it into a
// structure log. Reading the same document twice always yields the same
// log; rows are never modified after insertion.
func (s *Store) ReplayStructure(ctx context.Context, token string) (structure.Log, error) {
	if _, err := s.GetDocument(ctx, token); err != nil {
		return structure.Log{}, err
	}
	entries, err := s.ReadList(ctx, token, structure.ListName)
	if err != nil {
		return structure.Log{}, err
	}
	log, err := structure.ParseLog(entries)
	if err != nil {
		return structure.Log{}, fmt.Errorf("replay %s: %w", token, err)
	}
	return log, nil
}
