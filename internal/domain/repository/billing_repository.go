package repository

import (
	"context"
	"time"

	"github.com/skystack/backoffice/internal/domain/models"
)

// InvoiceRepository persists billing records.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Invoice, int64, error)
	RecentByUser(ctx context.Context, userID string, limit int) ([]*models.Invoice, error)
	// SumPaidSince returns the total amount of paid invoices created at or
	// after the given time. Used for revenue reporting.
	SumPaidSince(ctx context.Context, since time.Time) (float64, error)
}

// BackupRepository persists server backup records.
type BackupRepository interface {
	Create(ctx context.Context, backup *models.Backup) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Backup, int64, error)
	RecentByUser(ctx context.Context, userID string, limit int) ([]*models.Backup, error)
}
