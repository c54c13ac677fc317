package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skystack/backoffice/internal/application/dto"
	"github.com/skystack/backoffice/internal/application/service"
	"github.com/skystack/backoffice/internal/interfaces/http/middleware"
)

// UserHandler serves the signed-in user's account surface.
type UserHandler struct {
	users *service.UserService
	plans *service.SubscriptionService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, plans *service.SubscriptionService) *UserHandler {
	return &UserHandler{users: users, plans: plans}
}

// Dashboard handles GET /api/users/dashboard.
func (h *UserHandler) Dashboard(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dash, err := h.users.Dashboard(c.Request.Context(), identity.UserID)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, dash)
}

// ListInvoices handles GET /api/users/invoices.
func (h *UserHandler) ListInvoices(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.SendValidationError(c, err)
		return
	}

	list, err := h.users.ListInvoices(c.Request.Context(), identity.UserID, q)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, list)
}

// ListBackups handles GET /api/users/backups.
func (h *UserHandler) ListBackups(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.SendValidationError(c, err)
		return
	}

	list, err := h.users.ListBackups(c.Request.Context(), identity.UserID, q)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, list)
}

// ListPlans handles GET /api/users/plans. The plan catalog is public.
func (h *UserHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.ListActivePlans(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"plans": plans})
}
