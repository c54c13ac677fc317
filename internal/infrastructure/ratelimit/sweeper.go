package ratelimit

import (
	"context"
	"time"

	"github.com/skystack/backoffice/pkg/logger"
)

// Sweeper periodically evicts expired counter records so the store's memory
// stays bounded by active traffic rather than by every key ever seen. It only
// removes records whose window has already elapsed; a live counter is never
// evicted early.
type Sweeper struct {
	store    *CounterStore
	interval time.Duration
	log      logger.Logger
	now      func() time.Time
}

// NewSweeper creates a sweeper over the given store.
func NewSweeper(store *CounterStore, interval time.Duration, log logger.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		log:      log.WithComponent("ratelimit.sweeper"),
		now:      time.Now,
	}
}

// Run sweeps on a fixed period until ctx is cancelled. Intended to run in its
// own goroutine alongside the HTTP server.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce performs a single eviction pass.
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	removed := s.store.DeleteExpired(s.now())
	if removed > 0 {
		s.log.Debug(ctx, "evicted expired rate limit counters",
			logger.Int("removed", removed),
			logger.Int("remaining", s.store.Len()),
		)
	}
	return removed
}
