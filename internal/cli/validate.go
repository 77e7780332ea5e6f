package cli

import (
	"github.com/spf13/cobra"

	"github.com/microsoft/figma-variables-import/internal/store"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file-or-dir>...",
		Short: "Check token files without touching the variable store",
		Long: `Run a full import into an empty in-memory store and print the result log.

Use this to find unsupported types, invalid values and broken aliases before
importing for real. Team libraries are never consulted.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			st, err := rootOpts.openStore(store.MemoryPath, store.WithoutLibraries())
			if err != nil {
				return outputCommandError(formatter, ErrCodeDatabase, err)
			}
			defer closeStore(st)
			return runImport(rootOpts, st, args, cmd, formatter)
		},
	}

	return cmd
}
