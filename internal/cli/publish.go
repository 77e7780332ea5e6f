package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewPublishCommand creates the publish command.
func NewPublishCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		database string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "publish <library-db>",
		Short: "Make another store's variables available as a team library",
		Long: `Publish the local collections and variables of another store into this
store's team library. Tokens imported into this store may then alias them;
the aliased variables are imported by key on first use.

Publishing the same store again updates the library in place.

Example:
  tokenvars publish --db ./product.db --name Core ./core.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			if _, err := os.Stat(args[0]); err != nil {
				_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("library database not found: %s", args[0]), nil)
				return WrapExitError(ExitCommandError, "library database not found", err)
			}
			if name == "" {
				name = args[0]
			}

			src, err := rootOpts.openStore(args[0])
			if err != nil {
				return outputCommandError(formatter, ErrCodeDatabase, err)
			}
			defer closeStore(src)

			dst, err := rootOpts.openStore(rootOpts.database(database))
			if err != nil {
				return outputCommandError(formatter, ErrCodeDatabase, err)
			}
			defer closeStore(dst)

			if err := dst.Publish(cmd.Context(), src, name); err != nil {
				return outputCommandError(formatter, ErrCodeDatabase, err)
			}

			libraries, err := dst.LibraryCollections(cmd.Context())
			if err != nil {
				return outputCommandError(formatter, ErrCodeDatabase, err)
			}
			if formatter.Format == "json" {
				return formatter.Success(libraries)
			}
			return formatter.Success(fmt.Sprintf("Published %s; %d library collection(s) available.", name, len(libraries)))
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "path to the receiving SQLite database (default from config, else tokenvars.db)")
	cmd.Flags().StringVar(&name, "name", "", "library name (default: the library database path)")

	return cmd
}
