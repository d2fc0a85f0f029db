package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/chalmers-thesis/internal/store"
)

// OpenMemoryStore opens an in-memory store that is closed when the test ends.
func OpenMemoryStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
