// Package engine imports design-token documents into a variable store.
//
// An import walks every document the manifest names and queues one update
// per (token, mode). The queue is drained in passes. An alias whose target
// has not been seen yet is put back at the end of the queue for the next
// pass, so alias targets may appear anywhere, in any document. Draining
// stops at a fixed point: the queue is empty, or a whole pass changed
// nothing.
//
// Whatever is left after the fixed point is reported: alias cycles once per
// cycle, everything else once per update, with a suggestion for the name
// that was probably meant.
//
// A run is single-threaded. Store calls are issued one at a time, and the
// queue, the name tables and the result log belong to the run alone.
//
// Errors:
//
// Problems with individual tokens are written to the result log and never
// stop the run. The one exception is a conversion table that accepts a
// token type no converter handles; Import returns a *RuntimeError for it
// (see IsConversionError) and leaves earlier writes in place.
package engine
