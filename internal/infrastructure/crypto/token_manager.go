// Package crypto implements credential issuance and verification for the
// back-office service using HMAC-signed JWTs.
package crypto

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skystack/backoffice/internal/config"
	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/internal/domain/service"
	"github.com/skystack/backoffice/pkg/logger"
)

// TokenManager issues and verifies HS256 bearer tokens carrying the caller's
// subject ID and email.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	log    logger.Logger
	now    func() time.Time
}

var _ service.TokenService = (*TokenManager)(nil)

// NewTokenManager creates a token manager from the JWT configuration.
func NewTokenManager(cfg *config.JWTConfig, log logger.Logger) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.TokenTTL) * time.Second,
		log:    log.WithComponent("crypto.tokens"),
		now:    time.Now,
	}
}

// Issue signs a token for the given identity.
func (m *TokenManager) Issue(ctx context.Context, identity *models.Identity) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":   identity.UserID,
		"email": identity.Email,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		m.log.Error(ctx, "failed to sign token", err, logger.String("user_id", identity.UserID))
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the identity it asserts.
// It fails closed: signature, algorithm and expiry are all enforced.
func (m *TokenManager) Verify(ctx context.Context, tokenStr string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing subject claim")
	}
	email, _ := claims["email"].(string)

	return &models.Identity{UserID: sub, Email: email}, nil
}
