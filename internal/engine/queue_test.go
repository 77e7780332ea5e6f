package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorklist_EnqueueDequeue(t *testing.T) {
	q := newWorklist(0)

	q.Enqueue(QueuedUpdate{Name: "color/brand", Mode: "Light"})

	got, ok := q.TryDequeue()
	require.True(t, ok, "dequeue should succeed")
	assert.Equal(t, "color/brand", got.Name)
	assert.Equal(t, "Light", got.Mode)
}

func TestWorklist_FIFO(t *testing.T) {
	q := newWorklist(3)

	for _, name := range []string{"A", "B", "C"} {
		q.Enqueue(QueuedUpdate{Name: name})
	}

	for _, want := range []string{"A", "B", "C"} {
		got, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, want, got.Name)
	}
}

func TestWorklist_TryDequeue_Empty(t *testing.T) {
	q := newWorklist(0)

	_, ok := q.TryDequeue()
	assert.False(t, ok, "dequeue from empty queue should return false")
}

func TestWorklist_RequeueKeepsRelativeOrder(t *testing.T) {
	q := newWorklist(4)
	for _, name := range []string{"a", "b", "c", "d"} {
		q.Enqueue(QueuedUpdate{Name: name})
	}

	// One pass: defer b and d.
	for n := q.Len(); n > 0; n-- {
		u, _ := q.TryDequeue()
		if u.Name == "b" || u.Name == "d" {
			q.Enqueue(u)
		}
	}

	require.Equal(t, 2, q.Len())
	items := q.Items()
	assert.Equal(t, "b", items[0].Name)
	assert.Equal(t, "d", items[1].Name)
}

func TestWorklist_ItemsIsACopy(t *testing.T) {
	q := newWorklist(1)
	q.Enqueue(QueuedUpdate{Name: "a"})

	items := q.Items()
	items[0].Name = "changed"

	got, _ := q.TryDequeue()
	assert.Equal(t, "a", got.Name)
}
