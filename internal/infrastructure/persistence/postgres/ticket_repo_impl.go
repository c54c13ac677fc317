package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/internal/domain/repository"
	"github.com/skystack/backoffice/pkg/constants"
	apperrors "github.com/skystack/backoffice/pkg/errors"
	"github.com/skystack/backoffice/pkg/logger"
)

// TicketRepoImpl implements repository.TicketRepository on gorm.
type TicketRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewTicketRepository creates a gorm-backed ticket repository.
func NewTicketRepository(db *gorm.DB, log logger.Logger) repository.TicketRepository {
	return &TicketRepoImpl{db: db, log: log.WithComponent("repo.tickets")}
}

// Create inserts a new support ticket.
func (r *TicketRepoImpl) Create(ctx context.Context, ticket *models.SupportTicket) error {
	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		r.log.Error(ctx, "failed to create ticket", err, logger.String("user_id", ticket.UserID))
		return apperrors.ErrStorage("create ticket", err)
	}
	r.log.Info(ctx, "ticket created",
		logger.String("ticket_id", ticket.ID),
		logger.String("user_id", ticket.UserID),
	)
	return nil
}

// FindByIDForUser retrieves a ticket only when it belongs to userID.
// Ownership failures are indistinguishable from missing tickets.
func (r *TicketRepoImpl) FindByIDForUser(ctx context.Context, id, userID string) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("User").
		Where("id = ? AND user_id = ?", id, userID).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound("Ticket")
		}
		return nil, apperrors.ErrStorage("find ticket", err)
	}
	return &ticket, nil
}

// FindByID retrieves a ticket regardless of owner. Admin use only.
func (r *TicketRepoImpl) FindByID(ctx context.Context, id string) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("User").
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound("Ticket")
		}
		return nil, apperrors.ErrStorage("find ticket", err)
	}
	return &ticket, nil
}

// ListByUser returns the user's tickets, newest first.
func (r *TicketRepoImpl) ListByUser(ctx context.Context, userID string) ([]*models.SupportTicket, error) {
	var tickets []*models.SupportTicket
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		r.log.Error(ctx, "failed to list tickets", err, logger.String("user_id", userID))
		return nil, apperrors.ErrStorage("list tickets", err)
	}
	return tickets, nil
}

// ListOpenByUser returns up to limit non-closed tickets for the user.
func (r *TicketRepoImpl) ListOpenByUser(ctx context.Context, userID string, limit int) ([]*models.SupportTicket, error) {
	var tickets []*models.SupportTicket
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, constants.TicketClosed).
		Order("created_at DESC").
		Limit(limit).
		Find(&tickets).Error
	if err != nil {
		return nil, apperrors.ErrStorage("list open tickets", err)
	}
	return tickets, nil
}

// List returns tickets matching the filter, newest first, with the reporting
// user preloaded.
func (r *TicketRepoImpl) List(ctx context.Context, filter repository.TicketFilter, limit, offset int) ([]*models.SupportTicket, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SupportTicket{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrStorage("count tickets", err)
	}

	var tickets []*models.SupportTicket
	err := query.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tickets).Error
	if err != nil {
		r.log.Error(ctx, "failed to list tickets", err)
		return nil, 0, apperrors.ErrStorage("list tickets", err)
	}
	return tickets, total, nil
}

// Update saves the ticket's triage fields. The columns are written from a map
// so zero values persist; clearing an assignee sets an empty string.
func (r *TicketRepoImpl) Update(ctx context.Context, ticket *models.SupportTicket) error {
	result := r.db.WithContext(ctx).Model(&models.SupportTicket{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]interface{}{
			"status":      ticket.Status,
			"priority":    ticket.Priority,
			"assigned_to": ticket.AssignedTo,
		})
	if result.Error != nil {
		r.log.Error(ctx, "failed to update ticket", result.Error, logger.String("ticket_id", ticket.ID))
		return apperrors.ErrStorage("update ticket", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound("Ticket")
	}
	return nil
}

// CountByStatus returns the number of tickets in the given state.
func (r *TicketRepoImpl) CountByStatus(ctx context.Context, status constants.TicketStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SupportTicket{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.ErrStorage("count tickets", err)
	}
	return count, nil
}

// AddMessage appends a message to a ticket's thread.
func (r *TicketRepoImpl) AddMessage(ctx context.Context, message *models.TicketMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		r.log.Error(ctx, "failed to add ticket message", err, logger.String("ticket_id", message.TicketID))
		return apperrors.ErrStorage("add ticket message", err)
	}
	return nil
}
