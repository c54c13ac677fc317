package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skystack/backoffice/internal/infrastructure/monitoring"
	"github.com/skystack/backoffice/internal/infrastructure/ratelimit"
	"github.com/skystack/backoffice/pkg/logger"
)

// RateLimitGuard applies a fixed-window limiter to the admission pipeline.
// The client key is gin's ClientIP, which resolves forwarded headers when
// the router trusts the proxy.
type RateLimitGuard struct {
	scope   string
	limiter *ratelimit.FixedWindowLimiter
	metrics *monitoring.Metrics
	log     logger.Logger
}

// NewRateLimitGuard creates a rate-limiting guard for the named scope.
func NewRateLimitGuard(scope string, limiter *ratelimit.FixedWindowLimiter, metrics *monitoring.Metrics, log logger.Logger) *RateLimitGuard {
	return &RateLimitGuard{
		scope:   scope,
		limiter: limiter,
		metrics: metrics,
		log:     log.WithComponent("middleware.ratelimit"),
	}
}

// Name implements Guard.
func (g *RateLimitGuard) Name() string { return "ratelimit." + g.scope }

// Admit implements Guard.
func (g *RateLimitGuard) Admit(c *gin.Context) Decision {
	key := g.scope + ":" + c.ClientIP()
	d := g.limiter.Allow(key)
	limit := strconv.Itoa(g.limiter.Policy().Max)

	if !d.Allowed {
		g.metrics.RecordRateLimitDenial(g.scope)
		g.log.Warn(c.Request.Context(), "request rate limited",
			logger.String("scope", g.scope),
			logger.String("client_ip", c.ClientIP()),
			logger.Int("retry_after", d.RetryAfter))
		return Terminate(http.StatusTooManyRequests, gin.H{
			"error":      "Too many requests",
			"retryAfter": d.RetryAfter,
		}).
			WithHeader("X-RateLimit-Limit", limit).
			WithHeader("X-RateLimit-Remaining", "0").
			WithHeader("Retry-After", strconv.Itoa(d.RetryAfter))
	}

	return Continue().
		WithHeader("X-RateLimit-Limit", limit).
		WithHeader("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
}
