package engine

import "github.com/microsoft/figma-variables-import/internal/token"

// QueuedUpdate is one token waiting to be written to one mode of a variable.
type QueuedUpdate struct {
	// Name is the variable name in store form ("color/brand").
	Name       string
	Token      token.Token
	Collection string
	Mode       string
}

// worklist is a FIFO queue of updates.
//
// A pass dequeues exactly the items present when it starts. Items that must
// wait for a later pass are enqueued again, behind everything else, so their
// relative order is preserved from pass to pass.
//
// A worklist is owned by a single run and is not safe for concurrent use.
type worklist struct {
	items []QueuedUpdate
}

func newWorklist(capacity int) *worklist {
	return &worklist{items: make([]QueuedUpdate, 0, capacity)}
}

// Enqueue adds an update to the back of the queue.
func (q *worklist) Enqueue(u QueuedUpdate) {
	q.items = append(q.items, u)
}

// TryDequeue removes and returns the front update.
// Returns (QueuedUpdate{}, false) if the queue is empty.
func (q *worklist) TryDequeue() (QueuedUpdate, bool) {
	if len(q.items) == 0 {
		return QueuedUpdate{}, false
	}

	u := q.items[0]

	// Clear the slot so the token tree it references can be collected.
	q.items[0] = QueuedUpdate{}

	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}

	return u, true
}

// Len returns the current queue length.
func (q *worklist) Len() int {
	return len(q.items)
}

// Items returns a copy of the queued updates in order.
func (q *worklist) Items() []QueuedUpdate {
	out := make([]QueuedUpdate, len(q.items))
	copy(out, q.items)
	return out
}
