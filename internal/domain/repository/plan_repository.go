package repository

import (
	"context"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/pkg/constants"
)

// PlanRepository persists subscription plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *models.SubscriptionPlan) error
	FindByID(ctx context.Context, id string) (*models.SubscriptionPlan, error)
	// List returns plans ordered by ascending price. A zero-value status
	// returns every plan.
	List(ctx context.Context, status constants.PlanStatus) ([]*models.SubscriptionPlan, error)
	Update(ctx context.Context, plan *models.SubscriptionPlan) error
	Delete(ctx context.Context, id string) error
}
