// Package repository declares the persistence interfaces consumed by the
// application layer. Implementations live under internal/infrastructure.
package repository

import (
	"context"
	"time"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/pkg/constants"
)

// UserFilter narrows user listings. Empty fields match everything; Search
// matches email or name substrings.
type UserFilter struct {
	Search string
	Status constants.SubscriptionStatus
	Plan   string
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter UserFilter, limit, offset int) ([]*models.User, int64, error)
	Count(ctx context.Context) (int64, error)
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
	CountByPlan(ctx context.Context, planID string) (int64, error)
	CountByServerStatus(ctx context.Context, server constants.ServerStatus, sub constants.SubscriptionStatus) (int64, error)
}
