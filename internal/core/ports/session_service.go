package ports

import (
	"context"

	"github.com/lenshive/admin-console/internal/core/domain"
)

// SessionHandle is the slice of the guard a controller needs: reacting to an
// authorization failure and naming the operator in the journal.
type SessionHandle interface {
	Invalidate(ctx context.Context)
	Actor() string
}

// SessionService is the session guard as seen by the HTTP layer.
type SessionService interface {
	SessionHandle
	Login(ctx context.Context, identifier, secret string) (*domain.UserProfile, error)
	Logout(ctx context.Context)
	Verify(ctx context.Context) domain.SessionState
	Snapshot() domain.Session
	State() domain.SessionState
}
