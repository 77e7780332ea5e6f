// Package manifest describes how token documents map onto collections and
// modes.
//
// A manifest is itself a JSON file:
//
//	{
//	  "name": "Fluent",
//	  "collections": {
//	    "Theme": {"modes": {"Light": ["global.json"], "Dark": ["dark.json"]}}
//	  }
//	}
//
// Collections, modes and files are kept in the order they were written.
package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/microsoft/figma-variables-import/internal/token"
)

//go:embed schema.cue
var schemaSource string

// DefaultMode is the single mode of a synthesised manifest.
const DefaultMode = "Default"

// ErrInvalid is returned when a manifest-shaped document does not match the
// manifest schema.
var ErrInvalid = errors.New("invalid manifest")

// Manifest maps collections to modes to ordered document names.
type Manifest struct {
	Name        string
	Collections []Collection
}

// Collection is one named collection of a manifest.
type Collection struct {
	Name  string
	Modes []Mode
}

// Mode lists the documents that supply values for one mode.
type Mode struct {
	Name  string
	Files []string
}

// Detect reports whether a decoded document looks like a manifest: it has
// both a name and a collections member. The check is structural; the file
// name plays no part.
func Detect(doc token.Object) bool {
	return doc.Has("name") && doc.Has("collections")
}

// FromDocument validates doc against the manifest schema and converts it.
func FromDocument(ctx *cue.Context, doc token.Object) (*Manifest, error) {
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}

	v := ctx.Encode(token.Plain(doc))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, firstError(err))
	}
	unified := schema.LookupPath(cue.ParsePath("#Manifest")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, firstError(err))
	}

	// Walk the document rather than the CUE value so members come out in
	// the order they were written.
	m := &Manifest{}
	name, ok := doc.String("name")
	if !ok {
		return nil, fmt.Errorf("%w: name must be a string", ErrInvalid)
	}
	m.Name = name

	collections, ok := doc.Object("collections")
	if !ok {
		return nil, fmt.Errorf("%w: collections must be an object", ErrInvalid)
	}
	for _, cm := range collections {
		c := Collection{Name: cm.Key}
		body, ok := cm.Value.(token.Object)
		if !ok {
			return nil, fmt.Errorf("%w: collection %s must be an object", ErrInvalid, c.Name)
		}
		modes, ok := body.Object("modes")
		if !ok {
			return nil, fmt.Errorf("%w: collection %s: modes must be an object", ErrInvalid, c.Name)
		}
		for _, mm := range modes {
			mode := Mode{Name: mm.Key}
			files, ok := mm.Value.(token.Array)
			if !ok {
				return nil, fmt.Errorf("%w: mode %s/%s must be a list of file names", ErrInvalid, c.Name, mode.Name)
			}
			for _, f := range files {
				file, ok := f.(string)
				if !ok {
					return nil, fmt.Errorf("%w: mode %s/%s must be a list of file names", ErrInvalid, c.Name, mode.Name)
				}
				mode.Files = append(mode.Files, file)
			}
			c.Modes = append(c.Modes, mode)
		}
		m.Collections = append(m.Collections, c)
	}
	return m, nil
}

// firstError trims a CUE error list to its first message.
func firstError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	return errs[0].Error()
}

// Default synthesises a manifest for documents supplied without one: a single
// collection named after the joined document names, with one mode holding
// every document in the given order.
func Default(names []string) *Manifest {
	name := strings.Join(names, ", ")
	files := append([]string(nil), names...)
	return &Manifest{
		Name: name,
		Collections: []Collection{{
			Name:  name,
			Modes: []Mode{{Name: DefaultMode, Files: files}},
		}},
	}
}
