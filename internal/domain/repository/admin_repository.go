package repository

import (
	"context"

	"github.com/skystack/backoffice/internal/domain/models"
)

// AdminRepository is the admin registry consulted by the admission pipeline's
// admin gate. FindBySubject returns ErrNotFound when no registration exists
// for the subject; any other error is a storage failure.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindBySubject(ctx context.Context, subjectID string) (*models.Admin, error)
}
