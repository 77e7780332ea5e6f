package manifest

import (
	"github.com/microsoft/figma-variables-import/internal/result"
	"github.com/microsoft/figma-variables-import/internal/token"
)

// Entry is one (collection, mode, document) triple.
type Entry struct {
	Collection string
	Mode       string
	File       string
	Document   token.Object
}

// Expand lists the manifest's documents in collection, mode, file order.
// A file missing from docs is reported to log and skipped.
func (m *Manifest) Expand(docs map[string]token.Object, log *result.Log) []Entry {
	var entries []Entry
	for _, c := range m.Collections {
		for _, mode := range c.Modes {
			for _, file := range mode.Files {
				doc, ok := docs[file]
				if !ok {
					log.Error("The manifest mentioned %s but you didn‘t give me that file, so I skipped it.", file)
					continue
				}
				entries = append(entries, Entry{Collection: c.Name, Mode: mode.Name, File: file, Document: doc})
			}
		}
	}
	return entries
}
