package testutil

import "sync"

// FixedTokenGenerator returns predetermined document tokens in order, then
// repeats the last one.
//
// This enables deterministic compiles and golden trace comparison: the same
// scenario with the same tokens produces byte-identical traces.
//
// Thread-safety: FixedTokenGenerator is safe for concurrent use.
type FixedTokenGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokenGenerator creates a generator over tokens.
//
// The tokens are typically set in the scenario YAML:
//
//	token: "doc-00000000-0000-0000-0000-000000000001"
//
// If no tokens are given, Generate() returns "test-doc-default".
func NewFixedTokenGenerator(tokens ...string) *FixedTokenGenerator {
	if len(tokens) == 0 {
		tokens = []string{"test-doc-default"}
	}
	return &FixedTokenGenerator{tokens: tokens}
}

// Generate returns the next token.
//
// Implements host.TokenGenerator.
func (g *FixedTokenGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	token := g.tokens[g.idx]
	if g.idx < len(g.tokens)-1 {
		g.idx++
	}
	return token
}
