package service

import (
	"context"

	"github.com/skystack/backoffice/internal/application/dto"
	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/internal/domain/repository"
	"github.com/skystack/backoffice/pkg/constants"
	apperrors "github.com/skystack/backoffice/pkg/errors"
	"github.com/skystack/backoffice/pkg/logger"
)

// SupportService handles ticket workflows for users and admins. User-facing
// operations only ever see the caller's own tickets.
type SupportService struct {
	tickets repository.TicketRepository
	log     logger.Logger
}

// NewSupportService creates the support ticket service.
func NewSupportService(tickets repository.TicketRepository, log logger.Logger) *SupportService {
	return &SupportService{tickets: tickets, log: log.WithComponent("service.support")}
}

// CreateTicket opens a ticket for the caller.
func (s *SupportService) CreateTicket(ctx context.Context, userID string, req *dto.CreateTicketRequest) (*models.SupportTicket, error) {
	ticket := &models.SupportTicket{
		UserID:   userID,
		Subject:  req.Subject,
		Message:  req.Message,
		Category: req.Category,
		Priority: req.Priority,
		Status:   constants.TicketOpen,
	}
	if ticket.Category == "" {
		ticket.Category = constants.CategoryOther
	}
	if ticket.Priority == "" {
		ticket.Priority = constants.PriorityNormal
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "ticket opened",
		logger.String("ticket_id", ticket.ID),
		logger.String("user_id", userID))
	return ticket, nil
}

// ListTickets returns the caller's tickets, newest first.
func (s *SupportService) ListTickets(ctx context.Context, userID string) ([]*models.SupportTicket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

// GetTicket returns one of the caller's tickets with its thread. A ticket
// belonging to someone else is reported as not found, not forbidden.
func (s *SupportService) GetTicket(ctx context.Context, ticketID, userID string) (*models.SupportTicket, error) {
	return s.tickets.FindByIDForUser(ctx, ticketID, userID)
}

// ReplyToTicket appends a user message to one of the caller's tickets.
func (s *SupportService) ReplyToTicket(ctx context.Context, ticketID, userID string, req *dto.TicketReplyRequest) (*models.TicketMessage, error) {
	ticket, err := s.tickets.FindByIDForUser(ctx, ticketID, userID)
	if err != nil {
		return nil, err
	}
	if ticket.IsClosed() {
		return nil, apperrors.ErrConflict("Ticket is closed")
	}

	message := &models.TicketMessage{
		TicketID:   ticket.ID,
		SenderID:   userID,
		SenderType: constants.SenderUser,
		Message:    req.Message,
	}
	if err := s.tickets.AddMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// AdminListTickets returns tickets across all users for triage.
func (s *SupportService) AdminListTickets(ctx context.Context, q dto.ListTicketsQuery) (*dto.TicketList, error) {
	filter := repository.TicketFilter{
		Status:   constants.TicketStatus(q.Status),
		Category: constants.TicketCategory(q.Category),
		Priority: constants.TicketPriority(q.Priority),
	}
	tickets, total, err := s.tickets.List(ctx, filter, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	return &dto.TicketList{
		Tickets:    tickets,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// AdminUpdateTicket applies triage changes to a ticket.
func (s *SupportService) AdminUpdateTicket(ctx context.Context, ticketID string, req *dto.UpdateTicketRequest) (*models.SupportTicket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		ticket.Status = *req.Status
	}
	if req.Priority != nil {
		ticket.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		ticket.AssignedTo = *req.AssignedTo
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// AdminReplyToTicket appends an admin message to any ticket.
func (s *SupportService) AdminReplyToTicket(ctx context.Context, ticketID string, admin *models.AdminPrincipal, req *dto.TicketReplyRequest) (*models.TicketMessage, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	message := &models.TicketMessage{
		TicketID:   ticket.ID,
		SenderID:   admin.ID,
		SenderType: constants.SenderAdmin,
		Message:    req.Message,
	}
	if err := s.tickets.AddMessage(ctx, message); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "admin replied to ticket",
		logger.String("ticket_id", ticket.ID),
		logger.String("admin_id", admin.ID))
	return message, nil
}
