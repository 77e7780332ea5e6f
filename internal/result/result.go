// Package result provides the ordered, append-only log of informational and
// error entries returned by an import run.
package result

import "fmt"

// Kind classifies a log entry.
type Kind string

const (
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Entry is one line of narration surfaced verbatim to the caller.
type Entry struct {
	Kind Kind   `json:"result" yaml:"result"`
	Text string `json:"text" yaml:"text"`
}

// Log accumulates entries in the order they are produced.
// Entries are never deduplicated or reordered.
//
// The zero value is ready to use. A Log is owned by a single run and is not
// safe for concurrent use.
type Log struct {
	entries []Entry
}

// Info appends an informational entry.
func (l *Log) Info(format string, args ...any) {
	l.Append(Entry{Kind: KindInfo, Text: fmt.Sprintf(format, args...)})
}

// Error appends an error entry.
func (l *Log) Error(format string, args ...any) {
	l.Append(Entry{Kind: KindError, Text: fmt.Sprintf(format, args...)})
}

// Append adds entries to the end of the log.
func (l *Log) Append(entries ...Entry) {
	l.entries = append(l.entries, entries...)
}

// Entries returns a copy of the log. Returns an empty slice (not nil) for an
// empty log.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Errors returns the number of error entries.
func (l *Log) Errors() int {
	n := 0
	for _, e := range l.entries {
		if e.Kind == KindError {
			n++
		}
	}
	return n
}
