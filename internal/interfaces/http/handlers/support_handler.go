package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skystack/backoffice/internal/application/dto"
	"github.com/skystack/backoffice/internal/application/service"
	"github.com/skystack/backoffice/internal/interfaces/http/middleware"
)

// SupportHandler serves the ticket surface for users and admins.
type SupportHandler struct {
	support *service.SupportService
}

// NewSupportHandler creates a new SupportHandler.
func NewSupportHandler(support *service.SupportService) *SupportHandler {
	return &SupportHandler{support: support}
}

// CreateTicket handles POST /api/support/tickets.
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendValidationError(c, err)
		return
	}

	ticket, err := h.support.CreateTicket(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, gin.H{"success": true, "ticket": ticket})
}

// ListTickets handles GET /api/support/tickets.
func (h *SupportHandler) ListTickets(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tickets, err := h.support.ListTickets(c.Request.Context(), identity.UserID)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"tickets": tickets})
}

// GetTicket handles GET /api/support/tickets/:id.
func (h *SupportHandler) GetTicket(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ticket, err := h.support.GetTicket(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"ticket": ticket})
}

// ReplyToTicket handles POST /api/support/tickets/:id/messages.
func (h *SupportHandler) ReplyToTicket(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendValidationError(c, err)
		return
	}

	message, err := h.support.ReplyToTicket(c.Request.Context(), c.Param("id"), identity.UserID, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, gin.H{"success": true, "message": message})
}

// AdminListTickets handles GET /api/support/admin/tickets.
func (h *SupportHandler) AdminListTickets(c *gin.Context) {
	var q dto.ListTicketsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.SendValidationError(c, err)
		return
	}

	list, err := h.support.AdminListTickets(c.Request.Context(), q)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, list)
}

// AdminUpdateTicket handles PUT /api/support/admin/tickets/:id.
func (h *SupportHandler) AdminUpdateTicket(c *gin.Context) {
	var req dto.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendValidationError(c, err)
		return
	}

	ticket, err := h.support.AdminUpdateTicket(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"success": true, "ticket": ticket})
}

// AdminReplyToTicket handles POST /api/support/admin/tickets/:id/messages.
func (h *SupportHandler) AdminReplyToTicket(c *gin.Context) {
	admin, ok := middleware.AdminFrom(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	var req dto.TicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendValidationError(c, err)
		return
	}

	message, err := h.support.AdminReplyToTicket(c.Request.Context(), c.Param("id"), admin, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, gin.H{"success": true, "message": message})
}
