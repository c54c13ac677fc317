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

// PlanRepoImpl implements repository.PlanRepository on gorm.
type PlanRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewPlanRepository creates a gorm-backed plan repository.
func NewPlanRepository(db *gorm.DB, log logger.Logger) repository.PlanRepository {
	return &PlanRepoImpl{db: db, log: log.WithComponent("repo.plans")}
}

// Create inserts a new subscription plan.
func (r *PlanRepoImpl) Create(ctx context.Context, plan *models.SubscriptionPlan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		r.log.Error(ctx, "failed to create plan", err, logger.String("name", plan.Name))
		return apperrors.ErrStorage("create plan", err)
	}
	r.log.Info(ctx, "plan created", logger.String("plan_id", plan.ID))
	return nil
}

// FindByID retrieves a plan by primary key.
func (r *PlanRepoImpl) FindByID(ctx context.Context, id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound("Plan")
		}
		return nil, apperrors.ErrStorage("find plan", err)
	}
	return &plan, nil
}

// List returns plans ordered by ascending price.
func (r *PlanRepoImpl) List(ctx context.Context, status constants.PlanStatus) ([]*models.SubscriptionPlan, error) {
	query := r.db.WithContext(ctx).Model(&models.SubscriptionPlan{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var plans []*models.SubscriptionPlan
	if err := query.Order("price ASC").Find(&plans).Error; err != nil {
		r.log.Error(ctx, "failed to list plans", err)
		return nil, apperrors.ErrStorage("list plans", err)
	}
	return plans, nil
}

// Update saves the full plan record.
func (r *PlanRepoImpl) Update(ctx context.Context, plan *models.SubscriptionPlan) error {
	result := r.db.WithContext(ctx).Model(plan).Where("id = ?", plan.ID).Updates(plan)
	if result.Error != nil {
		r.log.Error(ctx, "failed to update plan", result.Error, logger.String("plan_id", plan.ID))
		return apperrors.ErrStorage("update plan", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound("Plan")
	}
	return nil
}

// Delete removes a plan record.
func (r *PlanRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SubscriptionPlan{})
	if result.Error != nil {
		r.log.Error(ctx, "failed to delete plan", result.Error, logger.String("plan_id", id))
		return apperrors.ErrStorage("delete plan", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound("Plan")
	}
	r.log.Info(ctx, "plan deleted", logger.String("plan_id", id))
	return nil
}
