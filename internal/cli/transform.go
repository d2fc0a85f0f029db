package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/chalmers-thesis/internal/config"
	"github.com/roach88/chalmers-thesis/internal/ir"
	"github.com/roach88/chalmers-thesis/internal/manifest"
	"github.com/roach88/chalmers-thesis/internal/transform"
)

// NewTransformCommand creates the transform command, the plugin's entry
// point for the host.
func NewTransformCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transform <from> <to>",
		Short: "Transform one element",
		Long: `Transform one element read from stdin.

The element is a JSON object with name, data, arguments and children.
Host variables are read from the environment. The output node array is
written to stdout; on failure the error goes to stderr and nothing is
written to stdout.

Exit codes:
  0 - Element transformed
  1 - Transform failed (the error code is printed)
  2 - Command error (unreadable input, malformed variables)

Example:
  echo '{"name":"label","data":"intro"}' | chalmers-thesis transform label html`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runTransform(opts *RootOptions, from, to string, cmd *cobra.Command) error {
	logger := newLogger(opts, cmd.ErrOrStderr())

	input, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read element", err)
	}
	el, err := ir.ParseElement(input)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse element", err)
	}
	if el.Name == "" {
		el.Name = from
	}

	vars, err := config.Load(opts.lookup())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read host variables", err)
	}

	m, err := manifest.Default()
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load manifest", err)
	}

	nodes, err := transform.New(m, vars, transform.WithLogger(logger)).Transform(from, to, el)
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("transform %s to %s", from, to), err)
	}

	data, err := ir.MarshalNodes(nodes)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to encode output", err)
	}
	w := cmd.OutOrStdout()
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
