package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/chalmers-thesis/internal/store"
	"github.com/roach88/chalmers-thesis/internal/structure"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Document string // optional - specific document only
}

// ReplayDocumentResult holds the replay result for a single document.
type ReplayDocumentResult struct {
	Token         string            `json:"token"`
	Format        string            `json:"format"`
	Entries       int               `json:"entries"`
	Labels        map[string]string `json:"labels"`
	Deterministic bool              `json:"deterministic"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Documents        []ReplayDocumentResult `json:"documents"`
	TotalDocuments   int                    `json:"total_documents"`
	AllDeterministic bool                   `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay stored structure logs and verify determinism",
		Long: `Replay the structure log of each stored document and report the number
of every label.

Each log is read and resolved twice; the two passes must agree entry for
entry and label for label.

Exit codes:
  0 - All documents replay deterministically
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, malformed entries, etc.)

Examples:
  chalmers-thesis replay --db ./thesis.db
  chalmers-thesis replay --db ./thesis.db --doc 0190a5c2-...
  chalmers-thesis replay --db ./thesis.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Document, "doc", "", "replay specific document only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var docs []store.Document
	if opts.Document != "" {
		doc, err := st.GetDocument(ctx, opts.Document)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to load document", err)
		}
		docs = []store.Document{doc}
	} else {
		docs, err = st.ListDocuments(ctx)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to list documents", err)
		}
	}

	result := ReplayResult{
		Documents:        make([]ReplayDocumentResult, 0, len(docs)),
		TotalDocuments:   len(docs),
		AllDeterministic: true,
	}

	if len(docs) == 0 {
		if opts.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No documents found in database.")
		return nil
	}

	for _, doc := range docs {
		docResult, err := replayAndVerifyDocument(ctx, st, doc)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay document %s", doc.Token), err)
		}
		formatter.VerboseLog("Replayed %s: %d entries", doc.Token, docResult.Entries)

		result.Documents = append(result.Documents, docResult)
		if !docResult.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		if !result.AllDeterministic {
			if err := formatter.Failure(ErrCodeDeterminism, "determinism verification failed", result); err != nil {
				return err
			}
			return NewExitError(ExitFailure, "determinism verification failed")
		}
		return formatter.Success(result)
	}

	return outputReplayText(cmd, result)
}

// replayAndVerifyDocument replays one structure log twice and compares the
// passes.
func replayAndVerifyDocument(ctx context.Context, st *store.Store, doc store.Document) (ReplayDocumentResult, error) {
	first, err := st.ReplayStructure(ctx, doc.Token)
	if err != nil {
		return ReplayDocumentResult{}, fmt.Errorf("first replay failed: %w", err)
	}
	second, err := st.ReplayStructure(ctx, doc.Token)
	if err != nil {
		return ReplayDocumentResult{}, fmt.Errorf("second replay failed: %w", err)
	}

	labels := structure.ResolveAll(first)
	deterministic := slices.Equal(first.Entries(), second.Entries()) &&
		maps.Equal(labels, structure.ResolveAll(second))

	return ReplayDocumentResult{
		Token:         doc.Token,
		Format:        doc.Format,
		Entries:       first.Len(),
		Labels:        labels,
		Deterministic: deterministic,
	}, nil
}

func outputReplayText(cmd *cobra.Command, result ReplayResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay Summary: %d document(s)\n", result.TotalDocuments)
	fmt.Fprintln(w)

	for _, doc := range result.Documents {
		status := "✓"
		if !doc.Deterministic {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Document: %s (%s, %d entries)\n", status, doc.Token, doc.Format, doc.Entries)

		names := make([]string, 0, len(doc.Labels))
		for name := range doc.Labels {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s = %s\n", name, doc.Labels[name])
		}

		if !doc.Deterministic {
			fmt.Fprintln(w, "  Warning: Non-deterministic replay detected!")
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All documents verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}
