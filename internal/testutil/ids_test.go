package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialIDs_Sequence(t *testing.T) {
	ids := NewSequentialIDs("var")

	assert.Equal(t, "var-1", ids.Generate())
	assert.Equal(t, "var-2", ids.Generate())
	assert.Equal(t, 2, ids.Count())
}

func TestSequentialIDs_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "id-1", NewSequentialIDs("").Generate())
}

func TestSequentialIDs_Reset(t *testing.T) {
	ids := NewSequentialIDs("x")
	ids.Generate()
	ids.Generate()

	ids.Reset()
	assert.Equal(t, 0, ids.Count())
	assert.Equal(t, "x-1", ids.Generate())
}

func TestSequentialIDs_ConcurrentUnique(t *testing.T) {
	ids := NewSequentialIDs("c")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := ids.Generate()
			mu.Lock()
			defer mu.Unlock()
			seen[id] = true
		}()
	}
	wg.Wait()

	require.Len(t, seen, 50)
	assert.Equal(t, 50, ids.Count())
}
