package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skystack/backoffice/internal/infrastructure/monitoring"
	"github.com/skystack/backoffice/pkg/constants"
	"github.com/skystack/backoffice/pkg/logger"
)

// RequestID assigns a correlation ID to every request and propagates it
// through the request context so log lines can be tied together. An inbound
// X-Request-ID is honored; otherwise one is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(string(constants.ContextKeyRequestID), id)
		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyRequestID, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Observability records metrics and an access log line for each request.
// The route template keeps metric label cardinality bounded.
func Observability(metrics *monitoring.Metrics, log logger.Logger) gin.HandlerFunc {
	accessLog := log.WithComponent("http.access")
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "not_found"
		}

		metrics.RecordRequest(c.Request.Method, route, strconv.Itoa(status), duration)
		accessLog.Info(c.Request.Context(), "request completed",
			logger.String("method", c.Request.Method),
			logger.String("route", route),
			logger.Int("status", status),
			logger.Duration("duration", duration),
			logger.String("client_ip", c.ClientIP()))
	}
}
