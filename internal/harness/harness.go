package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/chalmers-thesis/internal/host"
	"github.com/roach88/chalmers-thesis/internal/manifest"
	"github.com/roach88/chalmers-thesis/internal/store"
	"github.com/roach88/chalmers-thesis/internal/testutil"
)

// Option configures a scenario run.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger routes host diagnostics to logger. Runs are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Deterministic helpers ensure reproducible results.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Compile the document through the reference host
// 3. Evaluate assertions against the result and the store
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	m, err := manifest.Default()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	token := scenario.Token
	if token == "" {
		token = DefaultToken
	}

	h := host.New(st, m,
		host.WithClock(testutil.NewDeterministicClock()),
		host.WithTokens(testutil.NewFixedTokenGenerator(token)),
		host.WithLogger(cfg.logger),
	)

	ctx := context.Background()
	compiled, err := h.Compile(ctx, scenario.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to compile document: %w", err)
	}

	result := NewResult()
	result.Token = compiled.Token
	result.Trace = append(result.Trace, compiled.Steps...)
	for label, number := range compiled.Labels {
		result.Labels[label] = number
	}
	result.Output = compiled.Output()

	actx := &AssertionContext{
		Store: st,
		Ctx:   ctx,
		Token: compiled.Token,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	cfg.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"steps", len(result.Trace),
		"pass", result.Pass,
	)
	return result, nil
}
