package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/internal/domain/repository"
	"github.com/skystack/backoffice/pkg/constants"
	apperrors "github.com/skystack/backoffice/pkg/errors"
	"github.com/skystack/backoffice/pkg/logger"
)

// UserRepoImpl implements repository.UserRepository on gorm.
type UserRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewUserRepository creates a gorm-backed user repository.
func NewUserRepository(db *gorm.DB, log logger.Logger) repository.UserRepository {
	return &UserRepoImpl{db: db, log: log.WithComponent("repo.users")}
}

// Create inserts a new user.
func (r *UserRepoImpl) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict("User already exists")
		}
		r.log.Error(ctx, "failed to create user", err, logger.String("email", user.Email))
		return apperrors.ErrStorage("create user", err)
	}
	r.log.Info(ctx, "user created", logger.String("user_id", user.ID))
	return nil
}

// FindByID retrieves a user by primary key.
func (r *UserRepoImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound("User")
		}
		r.log.Error(ctx, "failed to find user", err, logger.String("user_id", id))
		return nil, apperrors.ErrStorage("find user", err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by email address.
func (r *UserRepoImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound("User")
		}
		r.log.Error(ctx, "failed to find user by email", err)
		return nil, apperrors.ErrStorage("find user by email", err)
	}
	return &user, nil
}

// ExistsByEmail reports whether an account with the email exists.
func (r *UserRepoImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, apperrors.ErrStorage("count users by email", err)
	}
	return count > 0, nil
}

// Update saves the full user record.
func (r *UserRepoImpl) Update(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Model(user).Where("id = ?", user.ID).Updates(user)
	if result.Error != nil {
		r.log.Error(ctx, "failed to update user", result.Error, logger.String("user_id", user.ID))
		return apperrors.ErrStorage("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound("User")
	}
	return nil
}

// UpdateFields applies a partial update by column.
func (r *UserRepoImpl) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		r.log.Error(ctx, "failed to update user fields", result.Error, logger.String("user_id", id))
		return apperrors.ErrStorage("update user fields", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound("User")
	}
	return nil
}

// Delete removes a user record.
func (r *UserRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		r.log.Error(ctx, "failed to delete user", result.Error, logger.String("user_id", id))
		return apperrors.ErrStorage("delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound("User")
	}
	r.log.Info(ctx, "user deleted", logger.String("user_id", id))
	return nil
}

// List returns users matching the filter, newest first, with the total count
// for pagination.
func (r *UserRepoImpl) List(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]*models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filter.Status != "" {
		query = query.Where("subscription_status = ?", filter.Status)
	}
	if filter.Plan != "" {
		query = query.Where("plan = ?", filter.Plan)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrStorage("count users", err)
	}

	var users []*models.User
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		r.log.Error(ctx, "failed to list users", err)
		return nil, 0, apperrors.ErrStorage("list users", err)
	}
	return users, total, nil
}

// Count returns the total number of users.
func (r *UserRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, apperrors.ErrStorage("count users", err)
	}
	return count, nil
}

// CountActiveSince counts users last active at or after the given time.
func (r *UserRepoImpl) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("last_active_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.ErrStorage("count active users", err)
	}
	return count, nil
}

// CountByPlan counts users subscribed to the given plan.
func (r *UserRepoImpl) CountByPlan(ctx context.Context, planID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("plan = ?", planID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.ErrStorage("count users by plan", err)
	}
	return count, nil
}

// CountByServerStatus counts users whose server and subscription are in the
// given states.
func (r *UserRepoImpl) CountByServerStatus(ctx context.Context, server constants.ServerStatus, sub constants.SubscriptionStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("server_status = ? AND subscription_status = ?", server, sub).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.ErrStorage("count users by server status", err)
	}
	return count, nil
}
