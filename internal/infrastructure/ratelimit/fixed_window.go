package ratelimit

import (
	"math"
	"time"
)

// Policy is a fixed-window admission policy: at most Max requests per client
// key within each window.
type Policy struct {
	Window time.Duration
	Max    int
}

// Decision is the limiter's verdict for a single request.
type Decision struct {
	Allowed bool
	// Remaining is the number of requests still admissible in the current
	// window. Zero when denied.
	Remaining int
	// RetryAfter is the whole-second hint until the window resets. Only set
	// on denial.
	RetryAfter int
	ResetAt    time.Time
}

// FixedWindowLimiter evaluates a Policy against a shared CounterStore. The
// window resets entirely at its boundary rather than sliding, so prior usage
// is forgiven the instant the window rolls over; bursts are possible at
// window boundaries. The limiter is a best-effort ceiling, not a fairness
// mechanism.
type FixedWindowLimiter struct {
	store  *CounterStore
	policy Policy
	now    func() time.Time
}

// Option configures a FixedWindowLimiter.
type Option func(*FixedWindowLimiter)

// WithClock overrides the limiter's clock. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(l *FixedWindowLimiter) {
		l.now = now
	}
}

// NewFixedWindowLimiter creates a limiter over the given store and policy.
func NewFixedWindowLimiter(store *CounterStore, policy Policy, opts ...Option) *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		store:  store,
		policy: policy,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Policy returns the limiter's configured policy.
func (l *FixedWindowLimiter) Policy() Policy {
	return l.policy
}

// Allow decides whether a request for key is admitted. The read-decide-write
// sequence runs inside a single store Update, so concurrent requests for the
// same key cannot both observe a count below the ceiling and both be
// admitted. A denied request does not advance the counter.
func (l *FixedWindowLimiter) Allow(key string) Decision {
	now := l.now()
	var d Decision

	l.store.Update(key, func(rec Record, exists bool) (Record, bool) {
		switch {
		case !exists || now.After(rec.ResetAt):
			// First request from this key, or the window elapsed: start a
			// fresh window with this request counted.
			rec = Record{Count: 1, ResetAt: now.Add(l.policy.Window)}
			d = Decision{Allowed: true, Remaining: l.policy.Max - 1, ResetAt: rec.ResetAt}
			return rec, true
		case rec.Count >= l.policy.Max:
			d = Decision{
				Allowed:    false,
				RetryAfter: retryAfterSeconds(rec.ResetAt.Sub(now)),
				ResetAt:    rec.ResetAt,
			}
			return rec, false
		default:
			rec.Count++
			d = Decision{Allowed: true, Remaining: l.policy.Max - rec.Count, ResetAt: rec.ResetAt}
			return rec, true
		}
	})

	return d
}

// retryAfterSeconds rounds the time until window reset up to whole seconds.
func retryAfterSeconds(until time.Duration) int {
	secs := int(math.Ceil(until.Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}
