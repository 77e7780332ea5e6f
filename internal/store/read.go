package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/microsoft/figma-variables-import/internal/variable"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type header struct {
	name         string
	kind         variable.Kind
	collectionID string
}

func variableHeader(ctx context.Context, q queryer, id string) (header, error) {
	var (
		h            header
		kind         string
		collectionID sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT name, resolved_type, collection_id FROM variables WHERE id = ?
	`, id).Scan(&h.name, &kind, &collectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return header{}, fmt.Errorf("variable %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return header{}, fmt.Errorf("query variable %s: %w", id, err)
	}
	h.kind = variable.Kind(kind)
	h.collectionID = collectionID.String
	return h, nil
}

// Collection returns a local collection by ID.
func (s *Store) Collection(ctx context.Context, id string) (variable.Collection, error) {
	c := variable.Collection{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT name FROM collections WHERE id = ?`, id).Scan(&c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return variable.Collection{}, fmt.Errorf("collection %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return variable.Collection{}, fmt.Errorf("query collection %s: %w", id, err)
	}

	modes, err := s.modes(ctx, `WHERE collection_id = ?`, id)
	if err != nil {
		return variable.Collection{}, err
	}
	c.Modes = modes[id]
	return c, nil
}

// LocalCollections lists local collections in creation order.
// Returns an empty slice (not nil) when there are none.
func (s *Store) LocalCollections(ctx context.Context) ([]variable.Collection, error) {
	modes, err := s.modes(ctx, "")
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM collections ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer rows.Close()

	collections := []variable.Collection{}
	for rows.Next() {
		var c variable.Collection
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		c.Modes = modes[c.ID]
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return collections, nil
}

// modes returns modes grouped by collection ID, each group in creation order.
func (s *Store) modes(ctx context.Context, where string, args ...any) (map[string][]variable.Mode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, collection_id, name FROM modes `+where+` ORDER BY seq ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query modes: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]variable.Mode)
	for rows.Next() {
		var (
			m            variable.Mode
			collectionID string
		)
		if err := rows.Scan(&m.ID, &collectionID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan mode: %w", err)
		}
		out[collectionID] = append(out[collectionID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate modes: %w", err)
	}
	return out, nil
}

// LocalVariables lists local variables in creation order, with their values,
// description, scopes and code syntax. Imported library variables are not
// included. Returns an empty slice (not nil) when there are none.
func (s *Store) LocalVariables(ctx context.Context) ([]variable.Variable, error) {
	vars, err := s.readVariables(ctx, `WHERE library_key IS NULL`)
	if err != nil {
		return nil, err
	}
	if err := s.attachValues(ctx, vars); err != nil {
		return nil, err
	}
	if err := s.attachCodeSyntax(ctx, vars); err != nil {
		return nil, err
	}
	return vars, nil
}

// importedVariable returns the local handle of an imported library variable.
func (s *Store) importedVariable(ctx context.Context, key string) (variable.Variable, error) {
	vars, err := s.readVariables(ctx, `WHERE library_key = ?`, key)
	if err != nil {
		return variable.Variable{}, err
	}
	if len(vars) == 0 {
		return variable.Variable{}, fmt.Errorf("imported variable %s: %w", key, ErrNotFound)
	}
	return vars[0], nil
}

func (s *Store) readVariables(ctx context.Context, where string, args ...any) ([]variable.Variable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, collection_id, resolved_type, description, scopes, library_key
		FROM variables `+where+`
		ORDER BY seq ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query variables: %w", err)
	}
	defer rows.Close()

	vars := []variable.Variable{}
	for rows.Next() {
		var (
			v            variable.Variable
			collectionID sql.NullString
			kind         string
			scopes       string
			key          sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Name, &collectionID, &kind, &v.Description, &scopes, &key); err != nil {
			return nil, fmt.Errorf("scan variable: %w", err)
		}
		v.CollectionID = collectionID.String
		v.Kind = variable.Kind(kind)
		v.Key = key.String
		if v.Scopes, err = unmarshalScopes(scopes); err != nil {
			return nil, fmt.Errorf("variable %s: %w", v.Name, err)
		}
		v.Values = map[string]variable.Value{}
		vars = append(vars, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variables: %w", err)
	}
	return vars, nil
}

func (s *Store) attachValues(ctx context.Context, vars []variable.Variable) error {
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v.ID] = i
	}

	rows, err := s.db.QueryContext(ctx, `SELECT variable_id, mode_id, value FROM variable_values`)
	if err != nil {
		return fmt.Errorf("query values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var variableID, modeID, data string
		if err := rows.Scan(&variableID, &modeID, &data); err != nil {
			return fmt.Errorf("scan value: %w", err)
		}
		i, ok := index[variableID]
		if !ok {
			continue
		}
		value, err := unmarshalValue(data)
		if err != nil {
			return fmt.Errorf("variable %s: %w", vars[i].Name, err)
		}
		vars[i].Values[modeID] = value
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate values: %w", err)
	}
	return nil
}

func (s *Store) attachCodeSyntax(ctx context.Context, vars []variable.Variable) error {
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v.ID] = i
	}

	rows, err := s.db.QueryContext(ctx, `SELECT variable_id, platform, syntax FROM code_syntax`)
	if err != nil {
		return fmt.Errorf("query code syntax: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var variableID, platform, syntax string
		if err := rows.Scan(&variableID, &platform, &syntax); err != nil {
			return fmt.Errorf("scan code syntax: %w", err)
		}
		i, ok := index[variableID]
		if !ok {
			continue
		}
		if vars[i].CodeSyntax == nil {
			vars[i].CodeSyntax = map[string]string{}
		}
		vars[i].CodeSyntax[platform] = syntax
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate code syntax: %w", err)
	}
	return nil
}

// LibraryCollections lists published library collections in publish order.
// Returns variable.ErrLibrariesUnavailable when the store was opened
// WithoutLibraries.
func (s *Store) LibraryCollections(ctx context.Context) ([]variable.LibraryCollection, error) {
	if !s.libraries {
		return nil, variable.ErrLibrariesUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, name, library_name FROM library_collections ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query library collections: %w", err)
	}
	defer rows.Close()

	collections := []variable.LibraryCollection{}
	for rows.Next() {
		var c variable.LibraryCollection
		if err := rows.Scan(&c.Key, &c.Name, &c.LibraryName); err != nil {
			return nil, fmt.Errorf("scan library collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate library collections: %w", err)
	}
	return collections, nil
}

// LibraryVariables lists the variables of one library collection.
func (s *Store) LibraryVariables(ctx context.Context, collectionKey string) ([]variable.LibraryVariable, error) {
	if !s.libraries {
		return nil, variable.ErrLibrariesUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, name, collection_key, resolved_type FROM library_variables
		WHERE collection_key = ?
		ORDER BY seq ASC
	`, collectionKey)
	if err != nil {
		return nil, fmt.Errorf("query library variables: %w", err)
	}
	defer rows.Close()

	vars := []variable.LibraryVariable{}
	for rows.Next() {
		var (
			v    variable.LibraryVariable
			kind string
		)
		if err := rows.Scan(&v.Key, &v.Name, &v.CollectionKey, &kind); err != nil {
			return nil, fmt.Errorf("scan library variable: %w", err)
		}
		v.Kind = variable.Kind(kind)
		vars = append(vars, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate library variables: %w", err)
	}
	return vars, nil
}
