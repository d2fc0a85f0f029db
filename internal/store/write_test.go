package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDocument_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDocument(ctx, "doc-1", "html", 1))
	require.NoError(t, s.CreateDocument(ctx, "doc-1", "latex", 7))

	doc, err := s.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	// First write wins.
	assert.Equal(t, Document{Token: "doc-1", Format: "html", Seq: 1}, doc)
}

func TestAppendEntry_RequiresDocument(t *testing.T) {
	s := createTestStore(t)

	err := s.AppendEntry(context.Background(), "missing", "structure", "h1", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing/structure")
}

func TestAppendEntry_DuplicateSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestDocument(t, s, "doc-1", 1)

	require.NoError(t, s.AppendEntry(ctx, "doc-1", "structure", "h1", 2))
	err := s.AppendEntry(ctx, "doc-1", "notes", "{}", 2)
	assert.Error(t, err)
}

func TestAppendEntries_Atomic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestDocument(t, s, "doc-1", 1)

	// Second entry collides on seq; the first must be rolled back.
	err := s.AppendEntries(ctx, "doc-1", []Entry{
		{List: "structure", Value: "fig", Seq: 2},
		{List: "structure", Value: "label/a", Seq: 2},
	})
	require.Error(t, err)

	entries, err := s.ReadList(ctx, "doc-1", "structure")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, s.AppendEntries(ctx, "doc-1", []Entry{
		{List: "structure", Value: "fig", Seq: 2},
		{List: "structure", Value: "label/a", Seq: 3},
	}))
	entries, err = s.ReadList(ctx, "doc-1", "structure")
	require.NoError(t, err)
	assert.Equal(t, []string{"fig", "label/a"}, entries)
}
