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

// SubscriptionService manages the plan catalog.
type SubscriptionService struct {
	plans repository.PlanRepository
	users repository.UserRepository
	log   logger.Logger
}

// NewSubscriptionService creates the plan catalog service.
func NewSubscriptionService(plans repository.PlanRepository, users repository.UserRepository, log logger.Logger) *SubscriptionService {
	return &SubscriptionService{
		plans: plans,
		users: users,
		log:   log.WithComponent("service.subscription"),
	}
}

// ListActivePlans returns the purchasable plans, cheapest first.
func (s *SubscriptionService) ListActivePlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	return s.plans.List(ctx, constants.PlanActive)
}

// ListAllPlans returns every plan including archived ones.
func (s *SubscriptionService) ListAllPlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	return s.plans.List(ctx, "")
}

// GetPlan returns a single plan.
func (s *SubscriptionService) GetPlan(ctx context.Context, id string) (*models.SubscriptionPlan, error) {
	return s.plans.FindByID(ctx, id)
}

// CreatePlan adds a plan to the catalog.
func (s *SubscriptionService) CreatePlan(ctx context.Context, req *dto.PlanRequest) (*models.SubscriptionPlan, error) {
	plan := planFromRequest(req)
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "plan created", logger.String("plan_id", plan.ID), logger.String("name", plan.Name))
	return plan, nil
}

// UpdatePlan replaces a plan's definition.
func (s *SubscriptionService) UpdatePlan(ctx context.Context, id string, req *dto.PlanRequest) (*models.SubscriptionPlan, error) {
	if _, err := s.plans.FindByID(ctx, id); err != nil {
		return nil, err
	}

	plan := planFromRequest(req)
	plan.ID = id
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a plan. Deletion is refused while any user is still
// subscribed to it.
func (s *SubscriptionService) DeletePlan(ctx context.Context, id string) error {
	if _, err := s.plans.FindByID(ctx, id); err != nil {
		return err
	}

	subscribers, err := s.users.CountByPlan(ctx, id)
	if err != nil {
		return err
	}
	if subscribers > 0 {
		return apperrors.ErrConflict("Plan has active subscribers")
	}

	if err := s.plans.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "plan deleted", logger.String("plan_id", id))
	return nil
}

func planFromRequest(req *dto.PlanRequest) *models.SubscriptionPlan {
	return &models.SubscriptionPlan{
		Name:                req.Name,
		Price:               req.Price,
		PlanType:            req.PlanType,
		ServerType:          req.ServerType,
		ServerSpecs:         req.ServerSpecs,
		MaxUsageHours:       req.MaxUsageHours,
		MaxProjects:         req.MaxProjects,
		BackupRetentionDays: req.BackupRetentionDays,
		Features:            req.Features,
		Status:              req.Status,
		StripePriceID:       req.StripePriceID,
	}
}
