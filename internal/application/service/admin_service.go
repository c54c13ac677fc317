package service

import (
	"context"
	"time"

	"github.com/skystack/backoffice/internal/application/dto"
	"github.com/skystack/backoffice/internal/domain/repository"
	"github.com/skystack/backoffice/pkg/constants"
	"github.com/skystack/backoffice/pkg/logger"
)

// Monthly infrastructure cost per provisioned server, in EUR.
const (
	runningServerCost = 10.5
	stoppedServerCost = 5.25
)

// AdminService implements the back-office operations surface.
type AdminService struct {
	users    repository.UserRepository
	tickets  repository.TicketRepository
	invoices repository.InvoiceRepository
	now      func() time.Time
	log      logger.Logger
}

// NewAdminService creates the admin operations service.
func NewAdminService(
	users repository.UserRepository,
	tickets repository.TicketRepository,
	invoices repository.InvoiceRepository,
	log logger.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		tickets:  tickets,
		invoices: invoices,
		now:      time.Now,
		log:      log.WithComponent("service.admin"),
	}
}

// Stats aggregates the platform overview: account totals, 7-day activity,
// 30-day revenue, server fleet counts and the estimated infrastructure cost.
func (s *AdminService) Stats(ctx context.Context) (*dto.PlatformStats, error) {
	now := s.now()

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.users.CountActiveSince(ctx, now.Add(-7*24*time.Hour))
	if err != nil {
		return nil, err
	}

	monthlyRevenue, err := s.invoices.SumPaidSince(ctx, now.Add(-30*24*time.Hour))
	if err != nil {
		return nil, err
	}

	running, err := s.users.CountByServerStatus(ctx, constants.ServerRunning, constants.SubscriptionActive)
	if err != nil {
		return nil, err
	}
	stopped, err := s.users.CountByServerStatus(ctx, constants.ServerStopped, constants.SubscriptionActive)
	if err != nil {
		return nil, err
	}

	openTickets, err := s.tickets.CountByStatus(ctx, constants.TicketOpen)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.tickets.CountByStatus(ctx, constants.TicketInProgress)
	if err != nil {
		return nil, err
	}

	return &dto.PlatformStats{
		TotalUsers:        totalUsers,
		ActiveUsers:       activeUsers,
		MonthlyRevenue:    monthlyRevenue,
		AnnualRevenue:     monthlyRevenue * 12,
		RunningServers:    running,
		StoppedServers:    stopped,
		EstimatedCosts:    float64(running)*runningServerCost + float64(stopped)*stoppedServerCost,
		OpenTickets:       openTickets,
		InProgressTickets: inProgress,
	}, nil
}

// ListUsers returns accounts matching the query filters.
func (s *AdminService) ListUsers(ctx context.Context, q dto.ListUsersQuery) (*dto.AdminUserList, error) {
	filter := repository.UserFilter{
		Search: q.Search,
		Status: constants.SubscriptionStatus(q.Status),
		Plan:   q.Plan,
	}
	users, total, err := s.users.List(ctx, filter, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}

	profiles := make([]*dto.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, dto.NewUserProfile(u))
	}
	return &dto.AdminUserList{
		Users:      profiles,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// GetUser returns a single account.
func (s *AdminService) GetUser(ctx context.Context, userID string) (*dto.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

// SuspendUser freezes an account.
func (s *AdminService) SuspendUser(ctx context.Context, userID string) error {
	err := s.users.UpdateFields(ctx, userID, map[string]interface{}{
		"subscription_status": constants.SubscriptionSuspended,
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "user suspended", logger.String("user_id", userID))
	return nil
}

// ActivateUser restores a frozen account.
func (s *AdminService) ActivateUser(ctx context.Context, userID string) error {
	err := s.users.UpdateFields(ctx, userID, map[string]interface{}{
		"subscription_status": constants.SubscriptionActive,
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "user activated", logger.String("user_id", userID))
	return nil
}

// DeleteUser permanently removes an account.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Warn(ctx, "user deleted", logger.String("user_id", userID))
	return nil
}
