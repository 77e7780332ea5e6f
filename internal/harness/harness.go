package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/microsoft/figma-variables-import/internal/engine"
	"github.com/microsoft/figma-variables-import/internal/result"
	"github.com/microsoft/figma-variables-import/internal/store"
	"github.com/microsoft/figma-variables-import/internal/testutil"
	"github.com/microsoft/figma-variables-import/internal/variable"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	// Log is the importer's result log.
	Log []result.Entry `json:"log"`

	// State is the store's local collections after the import.
	State []CollectionState `json:"state"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// CollectionState is one collection in a state snapshot.
type CollectionState struct {
	Name      string          `json:"name"`
	Modes     []string        `json:"modes"`
	Variables []VariableState `json:"variables"`
}

// VariableState is one variable in a state snapshot. Values are keyed by
// mode name and formatted; aliases to local variables read "→ <name>".
type VariableState struct {
	Name        string            `json:"name"`
	Kind        variable.Kind     `json:"kind"`
	Values      map[string]string `json:"values"`
	Description string            `json:"description,omitempty"`
	Scopes      []string          `json:"scopes,omitempty"`
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run executes a scenario and evaluates its assertions.
//
// Each scenario runs in a fresh in-memory database with sequential IDs.
// The returned error is non-nil only when the scenario could not be
// executed; assertion failures are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	st, err := openStore(scenario)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if err := publishLibrary(ctx, scenario, st); err != nil {
		return nil, err
	}

	entries, err := importFiles(ctx, st, scenario.Files)
	if err != nil {
		return nil, fmt.Errorf("import aborted: %w", err)
	}

	state, err := Snapshot(ctx, st)
	if err != nil {
		return nil, err
	}

	res := &Result{Pass: true, Log: entries, State: state}
	for _, msg := range EvaluateAssertions(res, scenario.Assertions) {
		res.AddError(msg)
	}
	return res, nil
}

func openStore(scenario *Scenario) (*store.Store, error) {
	opts := []store.Option{store.WithIDGenerator(testutil.NewSequentialIDs("id"))}
	if !scenario.LibrariesEnabled() {
		opts = append(opts, store.WithoutLibraries())
	}
	if scenario.ModeLimit > 0 {
		opts = append(opts, store.WithModeLimit(scenario.ModeLimit))
	}
	st, err := store.Open(store.MemoryPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	return st, nil
}

// publishLibrary imports the scenario's library files into a separate store
// and publishes it into st.
func publishLibrary(ctx context.Context, scenario *Scenario, st *store.Store) error {
	if scenario.Library == nil {
		return nil
	}
	lib, err := store.Open(store.MemoryPath, store.WithIDGenerator(testutil.NewSequentialIDs("lib")))
	if err != nil {
		return fmt.Errorf("failed to create library store: %w", err)
	}
	defer lib.Close()

	entries, err := importFiles(ctx, lib, scenario.Library.Files)
	if err != nil {
		return fmt.Errorf("library import aborted: %w", err)
	}
	for _, e := range entries {
		if e.Kind == result.KindError {
			return fmt.Errorf("library import failed: %s", e.Text)
		}
	}

	if err := st.Publish(ctx, lib, scenario.Library.Name); err != nil {
		return fmt.Errorf("failed to publish library: %w", err)
	}
	return nil
}

func importFiles(ctx context.Context, st variable.Store, files []File) ([]result.Entry, error) {
	im := engine.New(st, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	in := make([]engine.File, len(files))
	for i, f := range files {
		in[i] = engine.File{Name: f.Name, Text: f.Text}
	}
	return im.ImportFiles(ctx, in)
}

// Snapshot reads every local collection and variable from s.
func Snapshot(ctx context.Context, s variable.Store) ([]CollectionState, error) {
	collections, err := s.LocalCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	vars, err := s.LocalVariables(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	names := make(map[string]string, len(vars))
	for _, v := range vars {
		names[v.ID] = v.Name
	}

	state := make([]CollectionState, 0, len(collections))
	index := make(map[string]int, len(collections))
	modeNames := make(map[string]string)
	for _, c := range collections {
		cs := CollectionState{Name: c.Name, Modes: []string{}, Variables: []VariableState{}}
		for _, m := range c.Modes {
			cs.Modes = append(cs.Modes, m.Name)
			modeNames[m.ID] = m.Name
		}
		index[c.ID] = len(state)
		state = append(state, cs)
	}

	for _, v := range vars {
		i, ok := index[v.CollectionID]
		if !ok {
			continue
		}
		vs := VariableState{
			Name:        v.Name,
			Kind:        v.Kind,
			Values:      make(map[string]string, len(v.Values)),
			Description: v.Description,
			Scopes:      slices.Clone(v.Scopes),
		}
		for modeID, value := range v.Values {
			formatted := variable.Format(value)
			if alias, ok := value.(variable.Alias); ok {
				if name, ok := names[alias.ID]; ok {
					formatted = "→ " + name
				}
			}
			vs.Values[modeNames[modeID]] = formatted
		}
		state[i].Variables = append(state[i].Variables, vs)
	}
	return state, nil
}
