package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skystack/backoffice/internal/application/dto"
	"github.com/skystack/backoffice/internal/application/service"
)

// AdminHandler serves the back-office operations surface. Every route behind
// it has already passed the admin gate.
type AdminHandler struct {
	admin *service.AdminService
	plans *service.SubscriptionService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *service.AdminService, plans *service.SubscriptionService) *AdminHandler {
	return &AdminHandler{admin: admin, plans: plans}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, stats)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.SendValidationError(c, err)
		return
	}

	list, err := h.admin.ListUsers(c.Request.Context(), q)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, list)
}

// GetUser handles GET /api/admin/users/:id.
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.admin.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"user": user})
}

// SuspendUser handles POST /api/admin/users/:id/suspend.
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	if err := h.admin.SuspendUser(c.Request.Context(), c.Param("id")); err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"success": true})
}

// ActivateUser handles POST /api/admin/users/:id/activate.
func (h *AdminHandler) ActivateUser(c *gin.Context) {
	if err := h.admin.ActivateUser(c.Request.Context(), c.Param("id")); err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"success": true})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.admin.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"success": true})
}

// ListPlans handles GET /api/admin/plans.
func (h *AdminHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.ListAllPlans(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"plans": plans})
}

// CreatePlan handles POST /api/admin/plans.
func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendValidationError(c, err)
		return
	}

	plan, err := h.plans.CreatePlan(c.Request.Context(), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, gin.H{"success": true, "plan": plan})
}

// UpdatePlan handles PUT /api/admin/plans/:id.
func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendValidationError(c, err)
		return
	}

	plan, err := h.plans.UpdatePlan(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"success": true, "plan": plan})
}

// DeletePlan handles DELETE /api/admin/plans/:id.
func (h *AdminHandler) DeletePlan(c *gin.Context) {
	if err := h.plans.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"success": true})
}
