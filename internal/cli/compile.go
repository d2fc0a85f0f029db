package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/chalmers-thesis/internal/host"
	"github.com/roach88/chalmers-thesis/internal/manifest"
	"github.com/roach88/chalmers-thesis/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Database string
}

// CompileResult is the JSON payload of the compile command.
type CompileResult struct {
	Token  string            `json:"token"`
	Output string            `json:"output"`
	Labels map[string]string `json:"labels"`
	Steps  []host.Step       `json:"steps"`
	Failed int               `json:"failed"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <document.yaml>",
		Short: "Compile a document with the reference host",
		Long: `Compile a YAML document (format, constants, authors, elements) with the
built-in reference host and print the rendered output.

Host variables pushed during the compile are persisted in --db, so the
document's structure log can be replayed later.

Exit codes:
  0 - Every invocation succeeded
  1 - One or more invocations failed (output is still printed)
  2 - Command error (unreadable document, database error)

Examples:
  chalmers-thesis compile thesis.yaml
  chalmers-thesis compile thesis.yaml --db ./thesis.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", ":memory:", "path to SQLite database")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	doc, err := loadDocument(path)
	if err != nil {
		_ = formatter.Error(ErrCodeInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load document", err)
	}

	m, err := manifest.Default()
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load manifest", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	res, err := host.New(st, m, host.WithLogger(logger)).Compile(context.Background(), *doc)
	if err != nil {
		_ = formatter.Error(ErrCodeCompile, err.Error(), nil)
		return WrapExitError(ExitCommandError, "compile failed", err)
	}

	result := CompileResult{
		Token:  res.Token,
		Output: res.Output(),
		Labels: res.Labels,
		Steps:  res.Steps,
	}
	for _, step := range res.Steps {
		if step.Error != "" {
			result.Failed++
			formatter.VerboseLog("[%d] %s: %s", step.Seq, step.Element, step.Error)
		}
	}
	formatter.VerboseLog("Document %s: %d step(s), %d label(s)", res.Token, len(res.Steps), len(res.Labels))

	if opts.Format == "json" {
		if result.Failed > 0 {
			if err := formatter.Failure(ErrCodeTransform, fmt.Sprintf("%d invocation(s) failed", result.Failed), result); err != nil {
				return err
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d invocation(s) failed", result.Failed))
		}
		return formatter.Success(result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Output)
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invocation(s) failed", result.Failed))
	}
	return nil
}

// loadDocument reads a document YAML file with strict field checking.
func loadDocument(path string) (*host.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc host.Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Format == "" {
		return nil, fmt.Errorf("%s: format is required", path)
	}
	return &doc, nil
}
