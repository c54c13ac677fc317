package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/internal/domain/repository"
	"github.com/skystack/backoffice/internal/infrastructure/monitoring"
	"github.com/skystack/backoffice/pkg/constants"
	apperrors "github.com/skystack/backoffice/pkg/errors"
	"github.com/skystack/backoffice/pkg/logger"
)

// adminCacheTTL bounds how long a confirmed registration is reused before the
// registry is consulted again. Only positive results are cached, so revoking
// an admin takes effect within the TTL while a freshly granted role applies
// immediately.
const adminCacheTTL = 30 * time.Second

// AdminGate admits only authenticated callers with an admin registration.
// It runs after the Authenticator; a request with no Identity is a pipeline
// ordering bug and is rejected as unauthenticated, not forbidden.
type AdminGate struct {
	admins  repository.AdminRepository
	cache   *gocache.Cache
	metrics *monitoring.Metrics
	log     logger.Logger
}

// NewAdminGate creates the admin authorization guard.
func NewAdminGate(admins repository.AdminRepository, metrics *monitoring.Metrics, log logger.Logger) *AdminGate {
	return &AdminGate{
		admins:  admins,
		cache:   gocache.New(adminCacheTTL, 2*adminCacheTTL),
		metrics: metrics,
		log:     log.WithComponent("middleware.admin"),
	}
}

// Name implements Guard.
func (g *AdminGate) Name() string { return "admin_gate" }

// Admit implements Guard.
func (g *AdminGate) Admit(c *gin.Context) Decision {
	identity, ok := IdentityFrom(c)
	if !ok {
		return Terminate(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}

	if cached, found := g.cache.Get(identity.UserID); found {
		return Continue().WithValue(constants.ContextKeyAdmin, cached.(*models.AdminPrincipal))
	}

	admin, err := g.admins.FindBySubject(c.Request.Context(), identity.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			g.metrics.RecordAdminDenial()
			g.log.Warn(c.Request.Context(), "admin access denied",
				logger.String("user_id", identity.UserID))
			return Terminate(http.StatusForbidden, gin.H{"error": "Admin access required"})
		}
		// A registry failure must not silently grant or deny access.
		g.log.Error(c.Request.Context(), "admin lookup failed", err,
			logger.String("user_id", identity.UserID))
		return Terminate(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}

	principal := admin.Principal()
	g.cache.SetDefault(identity.UserID, principal)
	return Continue().WithValue(constants.ContextKeyAdmin, principal)
}
