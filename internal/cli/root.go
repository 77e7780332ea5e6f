package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/microsoft/figma-variables-import/internal/config"
	"github.com/microsoft/figma-variables-import/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is loaded before any subcommand runs.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tokenvars CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tokenvars",
		Short: "Import design tokens into variables",
		Long: `Import design-token JSON files (Design Token Community Group format) into
a store of typed, mode-scoped variables.

Tokens that alias other tokens may appear in any order and in any file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			opts.Config = cfg
			configureLogging(cmd.ErrOrStderr(), opts.Verbose)
			if cfg.Path != "" {
				slog.Debug("config loaded", "path", cfg.Path)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $TOKENVARS_CONFIG or ~/.config/tokenvars/config.yaml)")

	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewPublishCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// configureLogging installs the process-wide slog handler. Diagnostics go to
// w so they never mix with command output.
func configureLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// settings returns the loaded config, or the defaults when a command runs
// without the root command (as in tests).
func (o *RootOptions) settings() *config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return o.Config
}

// database returns the store path: the flag when set, else the config.
func (o *RootOptions) database(flag string) string {
	if flag != "" {
		return flag
	}
	return o.settings().Database
}

// openStore opens the store at path with the configured library and mode
// limit settings.
func (o *RootOptions) openStore(path string, extra ...store.Option) (*store.Store, error) {
	cfg := o.settings()
	var opts []store.Option
	if !cfg.LibrariesEnabled() {
		opts = append(opts, store.WithoutLibraries())
	}
	if cfg.ModeLimit > 0 {
		opts = append(opts, store.WithModeLimit(cfg.ModeLimit))
	}
	opts = append(opts, extra...)

	slog.Debug("opening store", "path", path)
	st, err := store.Open(path, opts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// closeStore closes st, logging any error.
func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
