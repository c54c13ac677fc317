package repository

import (
	"context"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/pkg/constants"
)

// TicketFilter narrows admin ticket listings. Empty fields match everything.
type TicketFilter struct {
	Status   constants.TicketStatus
	Category constants.TicketCategory
	Priority constants.TicketPriority
}

// TicketRepository persists support tickets and their message threads.
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.SupportTicket) error
	// FindByIDForUser returns the ticket only when it belongs to userID,
	// with its messages in chronological order.
	FindByIDForUser(ctx context.Context, id, userID string) (*models.SupportTicket, error)
	FindByID(ctx context.Context, id string) (*models.SupportTicket, error)
	// ListByUser returns the user's tickets, newest first, messages included.
	ListByUser(ctx context.Context, userID string) ([]*models.SupportTicket, error)
	// ListOpenByUser returns up to limit of the user's non-closed tickets.
	ListOpenByUser(ctx context.Context, userID string, limit int) ([]*models.SupportTicket, error)
	// List returns tickets matching the filter, newest first, with the
	// reporting user and latest message preloaded.
	List(ctx context.Context, filter TicketFilter, limit, offset int) ([]*models.SupportTicket, int64, error)
	Update(ctx context.Context, ticket *models.SupportTicket) error
	AddMessage(ctx context.Context, message *models.TicketMessage) error
	CountByStatus(ctx context.Context, status constants.TicketStatus) (int64, error)
}
