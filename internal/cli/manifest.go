package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/chalmers-thesis/internal/manifest"
)

// NewManifestCommand creates the manifest command.
func NewManifestCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Print the plugin manifest",
		Long: `Print the capability manifest as JSON.

The host reads the manifest to learn which elements the plugin transforms,
their arguments, and the variables each of them reads or pushes. The output
is always bare JSON, regardless of --format.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Default()
			if err != nil {
				return WrapExitError(ExitFailure, "failed to load manifest", err)
			}
			data, err := m.JSON()
			if err != nil {
				return WrapExitError(ExitFailure, "failed to encode manifest", err)
			}
			w := cmd.OutOrStdout()
			if _, err := w.Write(data); err != nil {
				return err
			}
			_, err = w.Write([]byte("\n"))
			return err
		},
	}
}
