package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/chalmers-thesis/internal/config"
	"github.com/roach88/chalmers-thesis/internal/structure"
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	Structure string // path to a JSON string list; empty reads the structure variable
}

// ResolveResult is the JSON payload of the resolve command.
type ResolveResult struct {
	Label  string `json:"label"`
	Number string `json:"number"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve <label>",
		Short: "Resolve a label against a structure log",
		Long: `Resolve the display number of a label.

The structure log is a JSON list of entries (h1..h6, fig, tab, label/<name>),
read from --structure or else from the "structure" host variable. An
unresolved label prints an empty number.

Examples:
  chalmers-thesis resolve intro --structure structure.json
  structure='["h1","label/intro"]' chalmers-thesis resolve intro`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Structure, "structure", "", "path to a JSON structure list")

	return cmd
}

func runResolve(opts *ResolveOptions, label string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	entries, err := readStructure(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read structure", err)
	}

	log, err := structure.ParseLog(entries)
	if err != nil {
		_ = formatter.Error(ErrCodeInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "malformed structure", err)
	}
	formatter.VerboseLog("Replayed %d structure entries", log.Len())

	number := structure.Resolve(log, label)
	if opts.Format == "json" {
		return formatter.Success(ResolveResult{Label: label, Number: number})
	}
	return formatter.Success(number)
}

func readStructure(opts *ResolveOptions) ([]string, error) {
	if opts.Structure == "" {
		vars, err := config.Load(opts.lookup())
		if err != nil {
			return nil, err
		}
		return vars.Structure, nil
	}

	data, err := os.ReadFile(opts.Structure)
	if err != nil {
		return nil, err
	}
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Structure, err)
	}
	return entries, nil
}
