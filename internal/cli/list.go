package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/microsoft/figma-variables-import/internal/store"
	"github.com/microsoft/figma-variables-import/internal/variable"
)

// ListedCollection is one collection in the list command's output.
type ListedCollection struct {
	Name      string           `json:"name"`
	Modes     []string         `json:"modes"`
	Variables []ListedVariable `json:"variables"`
}

// ListedVariable is one variable in the list command's output. Values are
// keyed by mode name; aliases are shown as "→ <name>".
type ListedVariable struct {
	Name        string            `json:"name"`
	Kind        variable.Kind     `json:"resolved_type"`
	Values      map[string]string `json:"values"`
	Description string            `json:"description,omitempty"`
	Scopes      []string          `json:"scopes,omitempty"`
	CodeSyntax  map[string]string `json:"code_syntax,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the collections and variables in the store",
		Long: `List every local collection with its modes and variables.

Example:
  tokenvars list --db ./vars.db
  tokenvars list --db ./vars.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			st, err := rootOpts.openStore(rootOpts.database(database))
			if err != nil {
				return outputCommandError(formatter, ErrCodeDatabase, err)
			}
			defer closeStore(st)

			listed, err := listStore(cmd.Context(), st)
			if err != nil {
				return outputCommandError(formatter, ErrCodeDatabase, err)
			}
			if formatter.Format == "json" {
				return formatter.Success(listed)
			}
			writeListing(formatter, listed)
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "path to SQLite database (default from config, else tokenvars.db)")

	return cmd
}

// listStore reads every local collection and variable from st.
func listStore(ctx context.Context, st *store.Store) ([]ListedCollection, error) {
	collections, err := st.LocalCollections(ctx)
	if err != nil {
		return nil, err
	}
	vars, err := st.LocalVariables(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(vars))
	for _, v := range vars {
		names[v.ID] = v.Name
	}

	listed := make([]ListedCollection, 0, len(collections))
	index := make(map[string]int, len(collections))
	modeNames := make(map[string]string)
	for _, c := range collections {
		lc := ListedCollection{Name: c.Name, Modes: []string{}, Variables: []ListedVariable{}}
		for _, m := range c.Modes {
			lc.Modes = append(lc.Modes, m.Name)
			modeNames[m.ID] = m.Name
		}
		index[c.ID] = len(listed)
		listed = append(listed, lc)
	}

	for _, v := range vars {
		i, ok := index[v.CollectionID]
		if !ok {
			continue
		}
		lv := ListedVariable{
			Name:        v.Name,
			Kind:        v.Kind,
			Values:      make(map[string]string, len(v.Values)),
			Description: v.Description,
			Scopes:      v.Scopes,
			CodeSyntax:  v.CodeSyntax,
		}
		for modeID, value := range v.Values {
			lv.Values[modeNames[modeID]] = formatValue(value, names)
		}
		listed[i].Variables = append(listed[i].Variables, lv)
	}
	return listed, nil
}

// formatValue renders a value, naming alias targets when they are local.
func formatValue(value variable.Value, names map[string]string) string {
	if alias, ok := value.(variable.Alias); ok {
		if name, ok := names[alias.ID]; ok {
			return "→ " + name
		}
	}
	return variable.Format(value)
}

func writeListing(f *OutputFormatter, listed []ListedCollection) {
	s := f.styles()
	if len(listed) == 0 {
		fmt.Fprintln(f.Writer, s.dim.Render("No collections."))
		return
	}
	for i, c := range listed {
		if i > 0 {
			fmt.Fprintln(f.Writer)
		}
		fmt.Fprintf(f.Writer, "%s %s\n", s.heading.Render(c.Name), s.dim.Render("("+strings.Join(c.Modes, ", ")+")"))
		for _, v := range c.Variables {
			fmt.Fprintf(f.Writer, "  %s %s\n", v.Name, s.dim.Render(string(v.Kind)))
			for _, mode := range c.Modes {
				value, ok := v.Values[mode]
				if !ok {
					continue
				}
				fmt.Fprintf(f.Writer, "    %s: %s\n", mode, value)
			}
		}
	}
}
