// Package service declares domain service interfaces implemented by the
// infrastructure layer.
package service

import (
	"context"

	"github.com/skystack/backoffice/internal/domain/models"
)

// TokenService issues and verifies bearer credentials. Verify fails closed:
// any absent, malformed, expired or tampered token yields an error and no
// identity.
type TokenService interface {
	Issue(ctx context.Context, identity *models.Identity) (string, error)
	Verify(ctx context.Context, token string) (*models.Identity, error)
}
