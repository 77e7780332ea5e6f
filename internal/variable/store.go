package variable

import (
	"context"
	"errors"
)

// ErrLibrariesUnavailable is returned by Store.LibraryCollections when the
// store has no team-library capability. Callers treat it as "no remote
// collections", not as a failure.
var ErrLibrariesUnavailable = errors.New("team libraries are unavailable")

// Platform names accepted by Store.SetCodeSyntax.
const (
	PlatformWeb     = "WEB"
	PlatformAndroid = "ANDROID"
	PlatformIOS     = "iOS"
)

// Store is the capability interface of a variable store.
//
// Every call may cross a process boundary; the importer issues them one at a
// time and never concurrently.
type Store interface {
	// LocalCollections lists local collections in creation order.
	LocalCollections(ctx context.Context) ([]Collection, error)
	// LocalVariables lists local variables in creation order.
	// Imported library variables are not included.
	LocalVariables(ctx context.Context) ([]Variable, error)

	// LibraryCollections lists collections available from team libraries.
	LibraryCollections(ctx context.Context) ([]LibraryCollection, error)
	// LibraryVariables lists the variables in one library collection.
	LibraryVariables(ctx context.Context, collectionKey string) ([]LibraryVariable, error)

	CreateCollection(ctx context.Context, name string) (Collection, error)
	RenameMode(ctx context.Context, collectionID, modeID, name string) error
	AddMode(ctx context.Context, collectionID, name string) (Mode, error)
	Collection(ctx context.Context, id string) (Collection, error)

	CreateVariable(ctx context.Context, name, collectionID string, kind Kind) (Variable, error)
	SetValue(ctx context.Context, variableID, modeID string, value Value) error

	// ImportVariable makes a library variable available locally so it can be
	// the target of an Alias.
	ImportVariable(ctx context.Context, key string) (Variable, error)

	SetCodeSyntax(ctx context.Context, variableID, platform, syntax string) error
	SetDescription(ctx context.Context, variableID, description string) error
	SetScopes(ctx context.Context, variableID string, scopes []string) error
}
