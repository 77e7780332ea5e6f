package store

import (
	"context"
	"fmt"
)

// Publish copies src's local collections and variables into this store's
// library tables under libraryName, so they can be listed and imported here.
//
// Keys are the source IDs, so publishing the same source again updates the
// existing library entries instead of duplicating them.
func (s *Store) Publish(ctx context.Context, src *Store, libraryName string) error {
	collections, err := src.LocalCollections(ctx)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	vars, err := src.readVariables(ctx, `WHERE library_key IS NULL`)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("publish: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range collections {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO library_collections (key, name, library_name) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET name = excluded.name, library_name = excluded.library_name
		`, c.ID, c.Name, libraryName); err != nil {
			return fmt.Errorf("publish collection %s: %w", c.Name, err)
		}
	}
	for _, v := range vars {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO library_variables (key, name, collection_key, resolved_type) VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET name = excluded.name
		`, v.ID, v.Name, v.CollectionID, string(v.Kind)); err != nil {
			return fmt.Errorf("publish variable %s: %w", v.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("publish: commit: %w", err)
	}
	return nil
}
