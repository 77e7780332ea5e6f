package store

import "errors"

var (
	// ErrNotFound is returned when a collection, mode, variable or library
	// key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrModeLimit is returned by AddMode when the collection already has as
	// many modes as the store allows.
	ErrModeLimit = errors.New("mode limit reached")

	// ErrKindMismatch is returned when a value or alias target does not have
	// the variable's resolved kind.
	ErrKindMismatch = errors.New("value kind does not match variable")

	// ErrAliasCycle is returned when an alias would make a variable refer to
	// itself, directly or through other aliases.
	ErrAliasCycle = errors.New("alias cycle")

	// ErrReadOnly is returned when writing to an imported library variable.
	ErrReadOnly = errors.New("variable is read-only")
)
