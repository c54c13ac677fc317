package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skystack/backoffice/pkg/logger"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	db  *gorm.DB
	log logger.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB, log logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log.WithComponent("handler.health")}
}

// HealthCheck reports service health and the database check result.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	overall := "healthy"
	checks := gin.H{"database": "ok"}
	status := http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.log.Error(c.Request.Context(), "database health check failed", err)
		overall = "unhealthy"
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}

// ReadyCheck is a lightweight liveness probe.
func (h *HealthHandler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
