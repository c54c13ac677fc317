package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skystack/backoffice/pkg/logger"
)

func TestSweeper_SweepOnce(t *testing.T) {
	store := NewCounterStore()
	now := time.Now()
	store.Set("stale", Record{Count: 4, ResetAt: now.Add(-time.Minute)})
	store.Set("fresh", Record{Count: 2, ResetAt: now.Add(time.Minute)})

	sweeper := NewSweeper(store, time.Minute, logger.NewNop())
	removed := sweeper.SweepOnce(context.Background())

	assert.Equal(t, 1, removed)
	_, ok := store.Get("stale")
	assert.False(t, ok)
	_, ok = store.Get("fresh")
	assert.True(t, ok)
}

func TestSweeper_RunEvictsPeriodically(t *testing.T) {
	store := NewCounterStore()
	store.Set("stale", Record{Count: 1, ResetAt: time.Now().Add(-time.Second)})

	sweeper := NewSweeper(store, 10*time.Millisecond, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sweeper.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		_, ok := store.Get("stale")
		return !ok
	}, time.Second, 5*time.Millisecond, "expired record should be swept")

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}
