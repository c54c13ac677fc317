package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/internal/domain/repository"
	apperrors "github.com/skystack/backoffice/pkg/errors"
	"github.com/skystack/backoffice/pkg/logger"
)

// AdminRepoImpl implements repository.AdminRepository on gorm.
type AdminRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewAdminRepository creates a gorm-backed admin registry.
func NewAdminRepository(db *gorm.DB, log logger.Logger) repository.AdminRepository {
	return &AdminRepoImpl{db: db, log: log.WithComponent("repo.admins")}
}

// Create registers a new admin.
func (r *AdminRepoImpl) Create(ctx context.Context, admin *models.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict("admin already registered")
		}
		r.log.Error(ctx, "failed to create admin", err, logger.String("email", admin.Email))
		return apperrors.ErrStorage("create admin", err)
	}
	return nil
}

// FindBySubject looks up the admin registration for a user id. A missing
// registration is an ErrNotFound, which the admin gate turns into a 403;
// any other failure is a storage error and must not be treated as "not admin".
func (r *AdminRepoImpl) FindBySubject(ctx context.Context, subjectID string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("user_id = ?", subjectID).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound("Admin")
		}
		r.log.Error(ctx, "failed to look up admin", err, logger.String("subject_id", subjectID))
		return nil, apperrors.ErrStorage("find admin", err)
	}
	return &admin, nil
}
