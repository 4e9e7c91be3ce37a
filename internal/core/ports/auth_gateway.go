package ports

import (
	"context"

	"github.com/lenshive/admin-console/internal/core/domain"
)

// AuthGateway is the backend's authentication contract.
type AuthGateway interface {
	// Login exchanges credentials for a token and the account profile.
	Login(ctx context.Context, identifier, secret string) (token string, user *domain.UserProfile, err error)
	// Verify resolves a stored token to its profile.
	Verify(ctx context.Context, token string) (*domain.UserProfile, error)
}
