package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/microsoft/figma-variables-import/internal/engine"
	"github.com/microsoft/figma-variables-import/internal/result"
	"github.com/microsoft/figma-variables-import/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string

	// IDGenerator overrides store IDs (for testing). Nil means UUIDv7.
	IDGenerator store.IDGenerator
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file-or-dir>...",
		Short: "Import token files into the variable store",
		Long: `Import design-token JSON files into the variable store.

Directories are searched for *.json files. If one of the files is a manifest
(it has "name" and "collections"), it decides which files go into which
collection and mode. Otherwise every file goes into one collection, in a
mode called "Default".

Example:
  tokenvars import --db ./vars.db ./tokens
  tokenvars import global.json light.json dark.json manifest.json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)
			var extra []store.Option
			if opts.IDGenerator != nil {
				extra = append(extra, store.WithIDGenerator(opts.IDGenerator))
			}
			st, err := opts.openStore(opts.database(opts.Database), extra...)
			if err != nil {
				return outputCommandError(formatter, ErrCodeDatabase, err)
			}
			defer closeStore(st)
			return runImport(opts.RootOptions, st, args, cmd, formatter)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config, else tokenvars.db)")

	return cmd
}

// runImport loads paths, imports them into st and prints the result log.
func runImport(opts *RootOptions, st *store.Store, paths []string, cmd *cobra.Command, formatter *OutputFormatter) error {
	files, err := LoadFiles(paths)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, map[string]string{"path": loadErr.Path})
			return WrapExitError(ExitCommandError, "failed to load files", err)
		}
		return outputCommandError(formatter, ErrCodeGeneric, err)
	}
	formatter.VerboseLog("Loaded %d file(s)", len(files))

	im := engine.New(st,
		engine.WithDefaultScopes(opts.settings().DefaultScopes),
		engine.WithLogger(slog.Default()),
	)
	entries, err := im.ImportFiles(cmd.Context(), files)
	if err != nil {
		if engine.IsConversionError(err) {
			_ = formatter.Log(entries)
			_ = formatter.Error(ErrCodeConversion, "import aborted", err.Error())
			return WrapExitError(ExitCommandError, "import aborted", err)
		}
		return outputCommandError(formatter, ErrCodeGeneric, err)
	}

	if err := formatter.Log(entries); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	var errs int
	for _, e := range entries {
		if e.Kind == result.KindError {
			errs++
		}
	}
	if errs > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: import finished with %d error(s)", ErrCodeImportErrors, errs))
	}
	return nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// outputCommandError prints err and returns it as a command error.
func outputCommandError(formatter *OutputFormatter, code string, err error) error {
	_ = formatter.Error(code, err.Error(), nil)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return WrapExitError(ExitCommandError, "command failed", err)
}
