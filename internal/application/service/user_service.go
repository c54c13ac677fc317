// Package service implements the application use cases behind the HTTP API.
package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/skystack/backoffice/internal/application/dto"
	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/internal/domain/repository"
	domainsvc "github.com/skystack/backoffice/internal/domain/service"
	"github.com/skystack/backoffice/pkg/constants"
	apperrors "github.com/skystack/backoffice/pkg/errors"
	"github.com/skystack/backoffice/pkg/logger"
)

// UserService handles registration, authentication and profile management.
type UserService struct {
	users    repository.UserRepository
	tickets  repository.TicketRepository
	invoices repository.InvoiceRepository
	backups  repository.BackupRepository
	tokens   domainsvc.TokenService
	log      logger.Logger
}

// NewUserService creates the user application service.
func NewUserService(
	users repository.UserRepository,
	tickets repository.TicketRepository,
	invoices repository.InvoiceRepository,
	backups repository.BackupRepository,
	tokens domainsvc.TokenService,
	log logger.Logger,
) *UserService {
	return &UserService{
		users:    users,
		tickets:  tickets,
		invoices: invoices,
		backups:  backups,
		tokens:   tokens,
		log:      log.WithComponent("service.user"),
	}
}

// Register creates an account and signs the caller in. The email existence
// check runs before the password is hashed so duplicate registrations do not
// pay the bcrypt cost.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrInvalidRequest("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), constants.BcryptCost)
	if err != nil {
		return nil, apperrors.ErrInternal("failed to hash password").WithCause(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(ctx, &models.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", logger.String("user_id", user.ID))
	return &dto.AuthResponse{Success: true, User: dto.NewUserProfile(user), Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error so the response does not leak which one
// was at fault.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrUnauthenticated("Invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrUnauthenticated("Invalid credentials")
	}

	user.TouchLastActive()
	if err := s.users.Update(ctx, user); err != nil {
		// A failed activity-timestamp write should not block the login.
		s.log.Warn(ctx, "failed to record login activity", logger.String("user_id", user.ID))
	}

	token, err := s.tokens.Issue(ctx, &models.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", logger.String("user_id", user.ID))
	return &dto.AuthResponse{Success: true, User: dto.NewUserProfile(user), Token: token}, nil
}

// GetProfile returns the caller's account view.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

// UpdateProfile applies the fields present in the request.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.DefaultModel != nil {
		user.DefaultModel = *req.DefaultModel
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

// UpdateCustomModels replaces the user's model provider configuration.
func (s *UserService) UpdateCustomModels(ctx context.Context, userID string, req *dto.UpdateModelsRequest) (*dto.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.CustomModels = req.CustomModels
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

// Dashboard assembles the signed-in user's account overview.
func (s *UserService) Dashboard(ctx context.Context, userID string) (*dto.Dashboard, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	openTickets, err := s.tickets.ListOpenByUser(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.RecentByUser(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	backups, err := s.backups.RecentByUser(ctx, userID, 5)
	if err != nil {
		return nil, err
	}

	return &dto.Dashboard{
		User:        dto.NewUserProfile(user),
		OpenTickets: openTickets,
		Invoices:    invoices,
		Backups:     backups,
	}, nil
}

// ListInvoices returns the caller's invoices, newest first.
func (s *UserService) ListInvoices(ctx context.Context, userID string, q dto.PageQuery) (*dto.InvoiceList, error) {
	invoices, total, err := s.invoices.ListByUser(ctx, userID, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceList{
		Invoices:   invoices,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// ListBackups returns the caller's backups, newest first.
func (s *UserService) ListBackups(ctx context.Context, userID string, q dto.PageQuery) (*dto.BackupList, error) {
	backups, total, err := s.backups.ListByUser(ctx, userID, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	return &dto.BackupList{
		Backups:    backups,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}
