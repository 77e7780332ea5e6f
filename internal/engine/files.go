package engine

import (
	"context"

	"cuelang.org/go/cue/cuecontext"

	"github.com/microsoft/figma-variables-import/internal/manifest"
	"github.com/microsoft/figma-variables-import/internal/result"
	"github.com/microsoft/figma-variables-import/internal/token"
)

// File is a named raw-text input file.
type File struct {
	Name string
	Text string
}

// ImportFiles parses files, picks out at most one manifest, and imports the
// rest as token documents.
//
// A file is a manifest when it has both a name and a collections member.
// Without a manifest, every document goes into one collection named after
// the joined file names, in a single mode called "Default".
//
// The result log is always returned, even when the error is non-nil.
func (im *Importer) ImportFiles(ctx context.Context, files []File) ([]result.Entry, error) {
	var (
		log   result.Log
		m     *manifest.Manifest
		docs  = make(map[string]token.Object, len(files))
		names []string
	)

	cuectx := cuecontext.New()
	for _, f := range files {
		doc, err := token.Decode(f.Name, []byte(f.Text))
		if err != nil {
			im.logger.Debug("parse failed", "file", f.Name, "error", err)
			log.Error("Failed to parse JSON: %s.", f.Name)
			continue
		}

		if manifest.Detect(doc) {
			if m != nil {
				log.Error("More than one manifest file was found—ignoring %s.", f.Name)
				continue
			}
			parsed, err := manifest.FromDocument(cuectx, doc)
			if err != nil {
				log.Error("Ignoring manifest file %s because it is invalid: %v.", f.Name, err)
				continue
			}
			log.Info("Using token manifest file %s.", f.Name)
			m = parsed
			continue
		}

		if _, seen := docs[f.Name]; !seen {
			names = append(names, f.Name)
		}
		docs[f.Name] = doc
	}

	if m == nil {
		m = manifest.Default(names)
	}

	err := im.Import(ctx, m, docs, &log)
	return log.Entries(), err
}
