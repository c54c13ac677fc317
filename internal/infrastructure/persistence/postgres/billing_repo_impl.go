package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/internal/domain/repository"
	"github.com/skystack/backoffice/pkg/constants"
	apperrors "github.com/skystack/backoffice/pkg/errors"
	"github.com/skystack/backoffice/pkg/logger"
)

// InvoiceRepoImpl implements repository.InvoiceRepository on gorm.
type InvoiceRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewInvoiceRepository creates a gorm-backed invoice repository.
func NewInvoiceRepository(db *gorm.DB, log logger.Logger) repository.InvoiceRepository {
	return &InvoiceRepoImpl{db: db, log: log.WithComponent("repo.invoices")}
}

// Create inserts a new invoice.
func (r *InvoiceRepoImpl) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		r.log.Error(ctx, "failed to create invoice", err, logger.String("user_id", invoice.UserID))
		return apperrors.ErrStorage("create invoice", err)
	}
	return nil
}

// ListByUser returns the user's invoices, newest first, with the total count.
func (r *InvoiceRepoImpl) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrStorage("count invoices", err)
	}

	var invoices []*models.Invoice
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&invoices).Error
	if err != nil {
		return nil, 0, apperrors.ErrStorage("list invoices", err)
	}
	return invoices, total, nil
}

// RecentByUser returns the user's most recent invoices.
func (r *InvoiceRepoImpl) RecentByUser(ctx context.Context, userID string, limit int) ([]*models.Invoice, error) {
	var invoices []*models.Invoice
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return nil, apperrors.ErrStorage("list recent invoices", err)
	}
	return invoices, nil
}

// SumPaidSince totals paid invoices created at or after since.
func (r *InvoiceRepoImpl) SumPaidSince(ctx context.Context, since time.Time) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ? AND created_at >= ?", constants.InvoicePaid, since).
		Scan(&sum).Error
	if err != nil {
		return 0, apperrors.ErrStorage("sum paid invoices", err)
	}
	return sum, nil
}

// BackupRepoImpl implements repository.BackupRepository on gorm.
type BackupRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewBackupRepository creates a gorm-backed backup repository.
func NewBackupRepository(db *gorm.DB, log logger.Logger) repository.BackupRepository {
	return &BackupRepoImpl{db: db, log: log.WithComponent("repo.backups")}
}

// Create inserts a new backup record.
func (r *BackupRepoImpl) Create(ctx context.Context, backup *models.Backup) error {
	if err := r.db.WithContext(ctx).Create(backup).Error; err != nil {
		r.log.Error(ctx, "failed to create backup", err, logger.String("user_id", backup.UserID))
		return apperrors.ErrStorage("create backup", err)
	}
	return nil
}

// ListByUser returns the user's backups, newest first, with the total count.
func (r *BackupRepoImpl) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Backup, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Backup{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrStorage("count backups", err)
	}

	var backups []*models.Backup
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&backups).Error
	if err != nil {
		return nil, 0, apperrors.ErrStorage("list backups", err)
	}
	return backups, total, nil
}

// RecentByUser returns the user's most recent backups.
func (r *BackupRepoImpl) RecentByUser(ctx context.Context, userID string, limit int) ([]*models.Backup, error) {
	var backups []*models.Backup
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&backups).Error
	if err != nil {
		return nil, apperrors.ErrStorage("list recent backups", err)
	}
	return backups, nil
}
