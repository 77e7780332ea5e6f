package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/microsoft/figma-variables-import/internal/convert"
	"github.com/microsoft/figma-variables-import/internal/result"
	"github.com/microsoft/figma-variables-import/internal/store"
	"github.com/microsoft/figma-variables-import/internal/token"
	"github.com/microsoft/figma-variables-import/internal/variable"
)

// run is the state of one Import call. It is never shared.
type run struct {
	*Importer
	log   *result.Log
	queue *worklist

	// collections and variables are keyed by name and hold both local
	// entries (*variable.Collection, *variable.Variable) and library entries
	// (variable.LibraryCollection, variable.LibraryVariable). Local entries
	// shadow library entries of the same name.
	collections map[string]variable.CollectionRef
	variables   map[string]variable.VariableRef

	// imported caches library variables imported during this run, by key.
	imported map[string]variable.Variable

	libraries bool
	created   int
	updated   int
}

// outcome is what processing one update did.
type outcome int

const (
	applied  outcome = iota // the store changed
	dropped                 // the update was logged and discarded
	deferred                // the alias target is unknown; retry next pass
)

// scan seeds the name tables from the store: library contents first, then
// local contents. Failures are logged; the run continues with what it has.
func (r *run) scan(ctx context.Context) {
	libCollections, err := r.store.LibraryCollections(ctx)
	switch {
	case errors.Is(err, variable.ErrLibrariesUnavailable):
		r.libraries = false
		r.logger.Debug("team libraries unavailable")
	case err != nil:
		r.log.Error("Failed to read team library collections: %v.", err)
	}
	for _, c := range libCollections {
		r.collections[c.Name] = c
		vars, err := r.store.LibraryVariables(ctx, c.Key)
		if err != nil {
			r.log.Error("Failed to read variables of library collection %s: %v.", c.Name, err)
			continue
		}
		for _, v := range vars {
			r.variables[v.Name] = v
		}
	}

	collections, err := r.store.LocalCollections(ctx)
	if err != nil {
		r.log.Error("Failed to read local collections: %v.", err)
	}
	for i := range collections {
		r.collections[collections[i].Name] = &collections[i]
	}

	vars, err := r.store.LocalVariables(ctx)
	if err != nil {
		r.log.Error("Failed to read local variables: %v.", err)
	}
	for i := range vars {
		r.variables[vars[i].Name] = &vars[i]
	}

	r.logger.Debug("store scanned",
		"library_collections", len(libCollections),
		"collections", len(collections),
		"variables", len(vars),
	)
}

// drain runs passes until one makes no progress or the queue is empty.
func (r *run) drain(ctx context.Context) (passes int, err error) {
	for r.queue.Len() > 0 {
		passes++
		progress := false

		for n := r.queue.Len(); n > 0; n-- {
			u, _ := r.queue.TryDequeue()
			out, err := r.process(ctx, u)
			if err != nil {
				return passes, err
			}
			switch out {
			case applied:
				progress = true
			case deferred:
				r.queue.Enqueue(u)
			}
		}

		r.logger.Debug("pass complete", "pass", passes, "remaining", r.queue.Len(), "progress", progress)
		if !progress {
			break
		}
	}
	return passes, nil
}

// process handles one update. The only error it returns is a *RuntimeError.
func (r *run) process(ctx context.Context, u QueuedUpdate) (outcome, error) {
	kind, ok := r.table.KindOf(u.Token.Type)
	if !ok {
		typ := u.Token.Type
		if typ == "" {
			typ = "unknown"
		}
		r.log.Info("Unable to add %s mode %s because %s tokens aren't supported.", u.Name, u.Mode, typ)
		return dropped, nil
	}

	var (
		value  variable.Value
		target variable.VariableRef
	)
	if alias, ok := u.Token.Alias(); ok {
		targetName := token.StoreName(alias)
		if targetName == u.Name {
			r.log.Error("Alias cycle detected: %s → %s.", u.Name, u.Name)
			return dropped, nil
		}
		target, ok = r.variables[targetName]
		if !ok {
			r.logger.Debug("alias target not yet known", "variable", u.Name, "target", targetName)
			return deferred, nil
		}
		if targetKind := refKind(target); targetKind != kind {
			r.log.Error("Unable to add %s mode %s because it is an alias of %s, which is %s, but %s tokens are %s.",
				u.Name, u.Mode, targetName, targetKind, u.Token.Type, kind)
			return dropped, nil
		}
	} else {
		v, err := r.table.Convert(u.Token.Type, u.Token.Value)
		switch {
		case errors.Is(err, convert.ErrNoConversion):
			return dropped, NewConversionError(u.Name, u.Token.Type, err)
		case err != nil:
			r.log.Error("Invalid %s: %s = %s", u.Token.Type, u.Name, convert.Literal(u.Token.Value))
			return dropped, nil
		}
		value = v
	}

	_, existed := r.variables[u.Name]
	v, modeID, ok := r.resolveVariable(ctx, u, kind)
	if !ok {
		return dropped, nil
	}

	if target != nil {
		alias, ok := r.aliasTo(ctx, u, target)
		if !ok {
			return dropped, nil
		}
		value = alias
	}

	if err := r.store.SetValue(ctx, v.ID, modeID, value); err != nil {
		r.reportSetValue(u, err)
		return dropped, nil
	}

	if existed {
		r.updated++
	}
	r.attachMetadata(ctx, u, v)
	r.logger.Debug("variable updated", "variable", u.Name, "mode", u.Mode, "value", variable.Format(value))
	return applied, nil
}

// resolveVariable finds or creates the local variable for u and the mode it
// writes to. It logs and returns false when the update cannot proceed.
func (r *run) resolveVariable(ctx context.Context, u QueuedUpdate, kind variable.Kind) (*variable.Variable, string, bool) {
	var (
		v          *variable.Variable
		collection variable.Collection
		modeID     string
	)

	switch existing := r.variables[u.Name].(type) {
	case nil:
		switch c := r.collections[u.Collection].(type) {
		case nil:
			created, err := r.store.CreateCollection(ctx, u.Collection)
			if err != nil {
				r.log.Error("Failed to create collection %s: %v.", u.Collection, err)
				return nil, "", false
			}
			modeID = created.Modes[0].ID
			if err := r.store.RenameMode(ctx, created.ID, modeID, u.Mode); err != nil {
				r.log.Error("Failed to rename the first mode of %s to %s: %v.", u.Collection, u.Mode, err)
				return nil, "", false
			}
			created.Modes[0].Name = u.Mode
			r.collections[u.Collection] = &created
			collection = created
			r.logger.Debug("collection created", "collection", u.Collection, "mode", u.Mode)
		case variable.LibraryCollection:
			r.log.Error("Failed to create %s because it‘s defined in a different library.", u.Name)
			return nil, "", false
		case *variable.Collection:
			fresh, err := r.store.Collection(ctx, c.ID)
			if err != nil {
				r.log.Error("Failed to create %s: %v.", u.Name, err)
				return nil, "", false
			}
			collection = fresh
		}

		created, err := r.store.CreateVariable(ctx, u.Name, collection.ID, kind)
		if err != nil {
			r.log.Error("Failed to create %s: %v.", u.Name, err)
			return nil, "", false
		}
		v = &created
		r.variables[u.Name] = v
		r.created++

	case variable.LibraryVariable:
		r.log.Error("Failed to update %s because it‘s defined in a different library.", u.Name)
		return nil, "", false

	case *variable.Variable:
		if existing.Imported() {
			r.log.Error("Failed to update %s because it‘s defined in a different library.", u.Name)
			return nil, "", false
		}
		v = existing
		c, err := r.store.Collection(ctx, v.CollectionID)
		if err != nil {
			r.log.Error("Failed to update %s: %v.", u.Name, err)
			return nil, "", false
		}
		collection = c
	}

	if modeID == "" {
		if mode, ok := collection.ModeByName(u.Mode); ok {
			modeID = mode.ID
		} else {
			mode, err := r.store.AddMode(ctx, collection.ID, u.Mode)
			if errors.Is(err, store.ErrModeLimit) {
				r.log.Error("Failed to add a variable mode for %s. You may be at the limit of what your account currently allows. (You already have %d.)",
					u.Mode, len(collection.Modes))
				return nil, "", false
			}
			if err != nil {
				r.log.Error("Failed to add a variable mode for %s: %v.", u.Mode, err)
				return nil, "", false
			}
			modeID = mode.ID
			r.logger.Debug("mode added", "collection", collection.Name, "mode", u.Mode)
		}
	}
	return v, modeID, true
}

// aliasTo returns an alias to target, importing target first when it lives
// in a team library.
func (r *run) aliasTo(ctx context.Context, u QueuedUpdate, target variable.VariableRef) (variable.Alias, bool) {
	switch t := target.(type) {
	case *variable.Variable:
		return variable.Alias{ID: t.ID}, true
	case variable.LibraryVariable:
		if v, ok := r.imported[t.Key]; ok {
			return variable.Alias{ID: v.ID}, true
		}
		v, err := r.store.ImportVariable(ctx, t.Key)
		if err != nil {
			r.log.Error("Unable to add %s mode %s because %s could not be imported from its library: %v.", u.Name, u.Mode, t.Name, err)
			return variable.Alias{}, false
		}
		r.imported[t.Key] = v
		r.logger.Debug("library variable imported", "variable", t.Name, "key", t.Key)
		return variable.Alias{ID: v.ID}, true
	}
	return variable.Alias{}, false
}

func (r *run) reportSetValue(u QueuedUpdate, err error) {
	alias, _ := u.Token.Alias()
	switch {
	case errors.Is(err, store.ErrAliasCycle):
		r.log.Error("Unable to add %s mode %s because aliasing %s would create a cycle.", u.Name, u.Mode, token.StoreName(alias))
	case errors.Is(err, store.ErrKindMismatch):
		r.log.Error("Unable to add %s mode %s because its value doesn't match the variable's type: %v.", u.Name, u.Mode, err)
	default:
		r.log.Error("Failed to update %s mode %s: %v.", u.Name, u.Mode, err)
	}
}

// attachMetadata sets description, code syntax and scopes after a value has
// been written. Failures here are logged but do not undo the value.
func (r *run) attachMetadata(ctx context.Context, u QueuedUpdate, v *variable.Variable) {
	description := u.Token.Description
	if description == "" {
		description = v.Description
	}
	if err := r.store.SetDescription(ctx, v.ID, description); err != nil {
		r.log.Error("Failed to set the description of %s: %v.", u.Name, err)
	} else {
		v.Description = description
	}

	for _, cs := range u.Token.CodeSyntax() {
		if err := r.store.SetCodeSyntax(ctx, v.ID, cs.Platform, cs.Syntax); err != nil {
			r.log.Error("Failed to set %s code syntax of %s: %v.", cs.Platform, u.Name, err)
			continue
		}
		if v.CodeSyntax == nil {
			v.CodeSyntax = map[string]string{}
		}
		v.CodeSyntax[cs.Platform] = cs.Syntax
	}

	if !v.Kind.HasScopes() {
		return
	}
	scopes, ok := u.Token.Scopes()
	if !ok {
		if len(v.Scopes) > 0 || len(r.scopes) == 0 {
			return
		}
		scopes = r.scopes
	}
	if err := r.store.SetScopes(ctx, v.ID, scopes); err != nil {
		r.log.Error("Failed to set the scopes of %s: %v.", u.Name, err)
		return
	}
	v.Scopes = slices.Clone(scopes)
}

// reportUnresolved logs everything left in the queue after the fixed point,
// in queue order: one entry per alias cycle, and one entry per other
// unresolved update. An update aliasing into a cycle says so.
func (r *run) reportUnresolved() {
	remaining := r.queue.Items()
	if len(remaining) == 0 {
		return
	}

	if !r.libraries {
		r.log.Error("Team libraries aren't available, so variables that alias variables in other files can't be created. With that in mind:")
	}

	graph := newAliasGraph()
	for _, u := range remaining {
		alias, _ := u.Token.Alias()
		graph.addEdge(u.Name, token.StoreName(alias))
	}
	sccs, member := graph.cycles()
	reported := make(map[int]bool)

	candidates := r.knownNames()
	for _, u := range remaining {
		alias, _ := u.Token.Alias()
		targetName := token.StoreName(alias)

		if i, ok := member[u.Name]; ok {
			if j, ok := member[targetName]; ok && i == j {
				if !reported[i] {
					reported[i] = true
					path := graph.cyclePath(u.Name, sccs[i])
					r.log.Error("Alias cycle detected: %s.", strings.Join(path, " → "))
				}
				continue
			}
		}

		if _, ok := member[targetName]; ok {
			r.log.Error("Unable to add %s mode %s because it is an alias of %s, which is part of an alias cycle.", u.Name, u.Mode, targetName)
			continue
		}

		reason := "that doesn't exist"
		if !r.libraries {
			reason = "it wasn't found—it may be in a different file"
		}
		text := fmt.Sprintf("Unable to add %s mode %s because it is an alias of %s but %s.", u.Name, u.Mode, targetName, reason)
		if suggestion, ok := suggest(targetName, candidates); ok {
			text += fmt.Sprintf(" Did you mean %s?", suggestion)
		}
		r.log.Append(result.Entry{Kind: result.KindError, Text: text})
	}
}

// knownNames returns every variable name the run knows, sorted.
func (r *run) knownNames() []string {
	names := make([]string, 0, len(r.variables))
	for name := range r.variables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// suggest returns the best fuzzy match for name among candidates.
func suggest(name string, candidates []string) (string, bool) {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}

func refKind(ref variable.VariableRef) variable.Kind {
	switch v := ref.(type) {
	case *variable.Variable:
		return v.Kind
	case variable.LibraryVariable:
		return v.Kind
	}
	return ""
}
