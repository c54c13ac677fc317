package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skystack/backoffice/internal/domain/service"
	"github.com/skystack/backoffice/internal/infrastructure/monitoring"
	"github.com/skystack/backoffice/pkg/constants"
	"github.com/skystack/backoffice/pkg/logger"
)

// extractBearer extracts the token from the Authorization header.
func extractBearer(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Authenticator verifies bearer credentials and attaches the caller's
// Identity to the request. It fails closed: absent, malformed and invalid
// tokens all produce the same 401 response.
type Authenticator struct {
	tokens  service.TokenService
	metrics *monitoring.Metrics
	log     logger.Logger
}

// NewAuthenticator creates the authentication guard.
func NewAuthenticator(tokens service.TokenService, metrics *monitoring.Metrics, log logger.Logger) *Authenticator {
	return &Authenticator{
		tokens:  tokens,
		metrics: metrics,
		log:     log.WithComponent("middleware.auth"),
	}
}

// Name implements Guard.
func (a *Authenticator) Name() string { return "authenticate" }

// Admit implements Guard.
func (a *Authenticator) Admit(c *gin.Context) Decision {
	tokenStr := extractBearer(c.GetHeader("Authorization"))
	if tokenStr == "" {
		a.metrics.RecordAuthFailure("missing_token")
		return Terminate(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}

	identity, err := a.tokens.Verify(c.Request.Context(), tokenStr)
	if err != nil {
		a.log.Warn(c.Request.Context(), "token verification failed", logger.Any("error", err))
		a.metrics.RecordAuthFailure("invalid_token")
		return Terminate(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}

	return Continue().WithValue(constants.ContextKeyIdentity, identity)
}
