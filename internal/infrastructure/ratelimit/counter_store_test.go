package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterStore_BasicOperations(t *testing.T) {
	store := NewCounterStore()
	now := time.Now()

	_, ok := store.Get("k")
	assert.False(t, ok)

	store.Set("k", Record{Count: 2, ResetAt: now})
	rec, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, rec.Count)
	assert.Equal(t, 1, store.Len())

	store.Delete("k")
	_, ok = store.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestCounterStore_UpdateWriteBack(t *testing.T) {
	store := NewCounterStore()

	store.Update("k", func(rec Record, exists bool) (Record, bool) {
		assert.False(t, exists)
		return Record{Count: 1}, true
	})
	rec, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, 1, rec.Count)

	// Returning write=false leaves the record untouched.
	store.Update("k", func(rec Record, exists bool) (Record, bool) {
		require.True(t, exists)
		rec.Count = 99
		return rec, false
	})
	rec, _ = store.Get("k")
	assert.Equal(t, 1, rec.Count)
}

func TestCounterStore_Entries(t *testing.T) {
	store := NewCounterStore()
	now := time.Now()
	store.Set("a", Record{Count: 1, ResetAt: now})
	store.Set("b", Record{Count: 2, ResetAt: now})

	entries := store.Entries()
	assert.Len(t, entries, 2)
	keys := map[string]int{}
	for _, e := range entries {
		keys[e.Key] = e.Record.Count
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, keys)
}

func TestCounterStore_DeleteExpired(t *testing.T) {
	store := NewCounterStore()
	now := time.Now()

	store.Set("expired", Record{Count: 5, ResetAt: now.Add(-time.Second)})
	store.Set("live", Record{Count: 3, ResetAt: now.Add(time.Minute)})
	store.Set("boundary", Record{Count: 1, ResetAt: now})

	removed := store.DeleteExpired(now)
	assert.Equal(t, 1, removed)

	_, ok := store.Get("expired")
	assert.False(t, ok)
	_, ok = store.Get("live")
	assert.True(t, ok, "a record inside its window must never be evicted")
	_, ok = store.Get("boundary")
	assert.True(t, ok, "expiry is strictly after the reset time")
}
