// Package store provides a SQLite-backed variable store.
//
// The store holds:
//   - Collections: named groups of variables, each with ordered modes
//   - Variables: typed, named, one value per mode of their collection
//   - Library tables: read-only collections and variables published by
//     another store, which can be imported by key and then aliased
//
// # Ordering
//
// Every list is returned in creation order (ORDER BY seq ASC). Nothing is
// ordered by name or ID.
//
// # Integrity
//
//   - A variable's kind never changes after creation
//   - SetValue rejects values of the wrong kind and aliases to a variable of
//     another kind (ErrKindMismatch)
//   - SetValue rejects aliases that would make a variable reach itself
//     (ErrAliasCycle)
//   - Imported library variables are read-only (ErrReadOnly)
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
