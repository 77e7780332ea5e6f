package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/microsoft/figma-variables-import/internal/variable"
)

// CreateCollection creates a collection with one mode named DefaultModeName.
func (s *Store) CreateCollection(ctx context.Context, name string) (variable.Collection, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return variable.Collection{}, fmt.Errorf("create collection: begin tx: %w", err)
	}
	defer tx.Rollback()

	c := variable.Collection{
		ID:    s.ids.Generate(),
		Name:  name,
		Modes: []variable.Mode{{ID: s.ids.Generate(), Name: DefaultModeName}},
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO collections (id, name) VALUES (?, ?)`, c.ID, c.Name); err != nil {
		return variable.Collection{}, fmt.Errorf("create collection: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO modes (id, collection_id, name) VALUES (?, ?, ?)
	`, c.Modes[0].ID, c.ID, c.Modes[0].Name); err != nil {
		return variable.Collection{}, fmt.Errorf("create collection: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return variable.Collection{}, fmt.Errorf("create collection: commit: %w", err)
	}
	return c, nil
}

// RenameMode renames one mode of a collection.
func (s *Store) RenameMode(ctx context.Context, collectionID, modeID, name string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE modes SET name = ? WHERE id = ? AND collection_id = ?
	`, name, modeID, collectionID)
	if err != nil {
		return fmt.Errorf("rename mode: %w", err)
	}
	return requireAffected(res, "rename mode", "mode %s in collection %s", modeID, collectionID)
}

// AddMode appends a mode to a collection.
// Returns ErrModeLimit when the collection already has the maximum number of
// modes.
func (s *Store) AddMode(ctx context.Context, collectionID, name string) (variable.Mode, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM modes WHERE collection_id = ?
	`, collectionID).Scan(&count); err != nil {
		return variable.Mode{}, fmt.Errorf("add mode: %w", err)
	}
	if count == 0 {
		return variable.Mode{}, fmt.Errorf("add mode: collection %s: %w", collectionID, ErrNotFound)
	}
	if s.modeLimit > 0 && count >= s.modeLimit {
		return variable.Mode{}, fmt.Errorf("add mode: collection %s has %d of %d modes: %w", collectionID, count, s.modeLimit, ErrModeLimit)
	}

	m := variable.Mode{ID: s.ids.Generate(), Name: name}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO modes (id, collection_id, name) VALUES (?, ?, ?)
	`, m.ID, collectionID, m.Name); err != nil {
		return variable.Mode{}, fmt.Errorf("add mode: %w", err)
	}
	return m, nil
}

// CreateVariable creates a local variable in a collection.
func (s *Store) CreateVariable(ctx context.Context, name, collectionID string, kind variable.Kind) (variable.Variable, error) {
	if !kind.Valid() {
		return variable.Variable{}, fmt.Errorf("create variable %s: invalid kind %q", name, kind)
	}
	if _, err := s.Collection(ctx, collectionID); err != nil {
		return variable.Variable{}, fmt.Errorf("create variable %s: %w", name, err)
	}

	v := variable.Variable{
		ID:           s.ids.Generate(),
		Name:         name,
		CollectionID: collectionID,
		Kind:         kind,
		Values:       map[string]variable.Value{},
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO variables (id, name, collection_id, resolved_type) VALUES (?, ?, ?, ?)
	`, v.ID, v.Name, v.CollectionID, string(v.Kind)); err != nil {
		return variable.Variable{}, fmt.Errorf("create variable %s: %w", name, err)
	}
	return v, nil
}

// SetValue sets a variable's value for one mode of its collection.
//
// Errors:
//   - ErrNotFound if the variable, the mode or an alias target is missing
//   - ErrReadOnly if the variable is an imported library variable
//   - ErrKindMismatch if the value or alias target has another kind
//   - ErrAliasCycle if an alias would lead back to the variable
func (s *Store) SetValue(ctx context.Context, variableID, modeID string, value variable.Value) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set value: begin tx: %w", err)
	}
	defer tx.Rollback()

	target, err := variableHeader(ctx, tx, variableID)
	if err != nil {
		return fmt.Errorf("set value: %w", err)
	}
	if target.collectionID == "" {
		return fmt.Errorf("set value: %s: %w", target.name, ErrReadOnly)
	}

	var owner string
	err = tx.QueryRowContext(ctx, `SELECT collection_id FROM modes WHERE id = ?`, modeID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != target.collectionID) {
		return fmt.Errorf("set value: mode %s of %s: %w", modeID, target.name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("set value: %w", err)
	}

	var aliasID sql.NullString
	if alias, ok := value.(variable.Alias); ok {
		aliased, err := variableHeader(ctx, tx, alias.ID)
		if err != nil {
			return fmt.Errorf("set value: alias target: %w", err)
		}
		if aliased.kind != target.kind {
			return fmt.Errorf("set value: %s is %s but alias target %s is %s: %w",
				target.name, target.kind, aliased.name, aliased.kind, ErrKindMismatch)
		}
		cycle, err := reaches(ctx, tx, alias.ID, variableID)
		if err != nil {
			return fmt.Errorf("set value: %w", err)
		}
		if cycle {
			return fmt.Errorf("set value: %s → %s: %w", target.name, aliased.name, ErrAliasCycle)
		}
		aliasID = sql.NullString{String: alias.ID, Valid: true}
	} else if kind, ok := variable.KindOf(value); !ok || kind != target.kind {
		return fmt.Errorf("set value: %s is %s but value is %s: %w", target.name, target.kind, kind, ErrKindMismatch)
	}

	data, err := marshalValue(value)
	if err != nil {
		return fmt.Errorf("set value: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO variable_values (variable_id, mode_id, value, alias_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(variable_id, mode_id) DO UPDATE SET value = excluded.value, alias_id = excluded.alias_id
	`, variableID, modeID, data, aliasID); err != nil {
		return fmt.Errorf("set value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set value: commit: %w", err)
	}
	return nil
}

// reaches reports whether following alias bindings from start, in any mode,
// arrives at goal.
func reaches(ctx context.Context, tx *sql.Tx, start, goal string) (bool, error) {
	var found int
	err := tx.QueryRowContext(ctx, `
		WITH RECURSIVE reach(id) AS (
			SELECT ?
			UNION
			SELECT vv.alias_id FROM variable_values vv
			JOIN reach r ON vv.variable_id = r.id
			WHERE vv.alias_id IS NOT NULL
		)
		SELECT COUNT(*) FROM reach WHERE id = ?
	`, start, goal).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("alias reachability: %w", err)
	}
	return found > 0, nil
}

// ImportVariable makes a library variable available locally. Importing the
// same key twice returns the same variable.
func (s *Store) ImportVariable(ctx context.Context, key string) (variable.Variable, error) {
	if !s.libraries {
		return variable.Variable{}, fmt.Errorf("import variable %s: %w", key, variable.ErrLibrariesUnavailable)
	}

	if v, err := s.importedVariable(ctx, key); err == nil {
		return v, nil
	} else if !errors.Is(err, ErrNotFound) {
		return variable.Variable{}, fmt.Errorf("import variable %s: %w", key, err)
	}

	var (
		name string
		kind string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT name, resolved_type FROM library_variables WHERE key = ?
	`, key).Scan(&name, &kind)
	if errors.Is(err, sql.ErrNoRows) {
		return variable.Variable{}, fmt.Errorf("import variable %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return variable.Variable{}, fmt.Errorf("import variable %s: %w", key, err)
	}

	v := variable.Variable{
		ID:     s.ids.Generate(),
		Name:   name,
		Kind:   variable.Kind(kind),
		Key:    key,
		Values: map[string]variable.Value{},
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO variables (id, name, resolved_type, library_key) VALUES (?, ?, ?, ?)
	`, v.ID, v.Name, string(v.Kind), v.Key); err != nil {
		return variable.Variable{}, fmt.Errorf("import variable %s: %w", key, err)
	}
	return v, nil
}

// SetCodeSyntax sets a variable's code name for one platform.
func (s *Store) SetCodeSyntax(ctx context.Context, variableID, platform, syntax string) error {
	switch platform {
	case variable.PlatformWeb, variable.PlatformAndroid, variable.PlatformIOS:
	default:
		return fmt.Errorf("set code syntax: unknown platform %q", platform)
	}
	if err := s.requireLocal(ctx, variableID); err != nil {
		return fmt.Errorf("set code syntax: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO code_syntax (variable_id, platform, syntax) VALUES (?, ?, ?)
		ON CONFLICT(variable_id, platform) DO UPDATE SET syntax = excluded.syntax
	`, variableID, platform, syntax); err != nil {
		return fmt.Errorf("set code syntax: %w", err)
	}
	return nil
}

// SetDescription sets a variable's description.
func (s *Store) SetDescription(ctx context.Context, variableID, description string) error {
	if err := s.requireLocal(ctx, variableID); err != nil {
		return fmt.Errorf("set description: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		UPDATE variables SET description = ? WHERE id = ?
	`, description, variableID); err != nil {
		return fmt.Errorf("set description: %w", err)
	}
	return nil
}

// SetScopes replaces a variable's scope list.
func (s *Store) SetScopes(ctx context.Context, variableID string, scopes []string) error {
	if err := s.requireLocal(ctx, variableID); err != nil {
		return fmt.Errorf("set scopes: %w", err)
	}
	data, err := marshalScopes(scopes)
	if err != nil {
		return fmt.Errorf("set scopes: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		UPDATE variables SET scopes = ? WHERE id = ?
	`, data, variableID); err != nil {
		return fmt.Errorf("set scopes: %w", err)
	}
	return nil
}

func (s *Store) requireLocal(ctx context.Context, variableID string) error {
	h, err := variableHeader(ctx, s.db, variableID)
	if err != nil {
		return err
	}
	if h.collectionID == "" {
		return fmt.Errorf("%s: %w", h.name, ErrReadOnly)
	}
	return nil
}

func requireAffected(res sql.Result, op, format string, args ...any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), ErrNotFound)
	}
	return nil
}
