package engine

import (
	"context"
	"log/slog"
	"slices"

	"github.com/microsoft/figma-variables-import/internal/convert"
	"github.com/microsoft/figma-variables-import/internal/manifest"
	"github.com/microsoft/figma-variables-import/internal/result"
	"github.com/microsoft/figma-variables-import/internal/token"
	"github.com/microsoft/figma-variables-import/internal/variable"
)

// DefaultScopes are applied to color and number variables that have no
// scopes of their own.
var DefaultScopes = []string{"ALL_SCOPES"}

// Importer writes token documents into a variable store.
//
// An Importer holds configuration only. Each call to Import rebuilds its view
// of the store from scratch, so one Importer may be reused for many runs, but
// runs against the same store must not overlap.
type Importer struct {
	store  variable.Store
	table  convert.Table
	scopes []string
	logger *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithConversionTable replaces the standard token type table.
func WithConversionTable(t convert.Table) Option {
	return func(im *Importer) {
		im.table = t
	}
}

// WithDefaultScopes sets the scopes given to color and number variables that
// have none. An empty list turns the policy off.
func WithDefaultScopes(scopes []string) Option {
	return func(im *Importer) {
		im.scopes = slices.Clone(scopes)
	}
}

// WithLogger sets the logger for diagnostics. Defaults to slog.Default().
// The result log is separate and is always returned to the caller.
func WithLogger(l *slog.Logger) Option {
	return func(im *Importer) {
		im.logger = l
	}
}

// New creates an Importer for the given store.
func New(s variable.Store, opts ...Option) *Importer {
	im := &Importer{
		store:  s,
		table:  convert.Standard(),
		scopes: slices.Clone(DefaultScopes),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import expands m over docs and writes every token to the store, appending
// narration to log.
//
// Per-token problems are recorded in log and never returned. The returned
// error is non-nil only for a *RuntimeError, when the conversion table
// accepts a type the converters cannot handle; the run stops there and
// changes already made to the store are kept.
func (im *Importer) Import(ctx context.Context, m *manifest.Manifest, docs map[string]token.Object, log *result.Log) error {
	r := &run{
		Importer:    im,
		log:         log,
		collections: make(map[string]variable.CollectionRef),
		variables:   make(map[string]variable.VariableRef),
		imported:    make(map[string]variable.Variable),
		libraries:   true,
	}

	entries := m.Expand(docs, log)
	r.queue = newWorklist(len(entries) * 8)
	for _, entry := range entries {
		for name, tok := range token.All(entry.Document) {
			r.queue.Enqueue(QueuedUpdate{
				Name:       token.StoreName(name),
				Token:      tok,
				Collection: entry.Collection,
				Mode:       entry.Mode,
			})
		}
	}

	im.logger.Info("import started",
		"manifest", m.Name,
		"documents", len(entries),
		"updates", r.queue.Len(),
	)

	r.scan(ctx)

	passes, err := r.drain(ctx)
	if err != nil {
		im.logger.Error("import aborted", "error", err)
		return err
	}

	r.reportUnresolved()
	r.summarize()

	im.logger.Info("import finished",
		"passes", passes,
		"created", r.created,
		"updated", r.updated,
		"errors", log.Errors(),
	)
	return nil
}

// summarize appends the final entry of a run.
func (r *run) summarize() {
	if r.created == 0 && r.updated == 0 {
		r.log.Error("Failed to create or update any variables due to errors.")
		return
	}
	if errs := r.log.Errors(); errs > 0 {
		r.log.Error("%d variables were created and %d other updates were made, but %d had errors.", r.created, r.updated, errs)
		return
	}
	r.log.Info("%d variables were created and %d other updates were made.", r.created, r.updated)
}
