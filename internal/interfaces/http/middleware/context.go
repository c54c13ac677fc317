package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/pkg/constants"
)

// IdentityFrom returns the authenticated caller's identity, if any.
func IdentityFrom(c *gin.Context) (*models.Identity, bool) {
	v, ok := c.Get(constants.ContextKeyIdentity)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*models.Identity)
	return identity, ok
}

// AdminFrom returns the admitted admin principal, if any.
func AdminFrom(c *gin.Context) (*models.AdminPrincipal, bool) {
	v, ok := c.Get(constants.ContextKeyAdmin)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*models.AdminPrincipal)
	return principal, ok
}
