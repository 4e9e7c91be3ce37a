package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lenshive/admin-console/internal/api/metrics"
	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// Guard owns the operator's session: it verifies the stored token, performs
// login and logout, and is the only writer of the token store.
type Guard struct {
	auth   ports.AuthGateway
	tokens ports.TokenStore
	log    zerolog.Logger

	mu        sync.RWMutex
	state     domain.SessionState
	user      *domain.UserProfile
	loggingIn bool
}

// NewGuard returns a guard in the Unverified state. Call Verify once at
// startup to settle it.
func NewGuard(auth ports.AuthGateway, tokens ports.TokenStore, log zerolog.Logger) *Guard {
	g := &Guard{auth: auth, tokens: tokens, log: log, state: domain.StateUnverified}
	publishState(g.state)
	return g
}

// Verify resolves the stored token. It never fails: every error path ends in
// Unauthenticated with the token cleared.
func (g *Guard) Verify(ctx context.Context) domain.SessionState {
	token, err := g.tokens.Load(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("token store read failed")
		g.drop(ctx)
		return domain.StateUnauthenticated
	}
	if token == "" {
		g.set(domain.StateUnauthenticated, nil)
		return domain.StateUnauthenticated
	}

	g.set(domain.StateVerifying, nil)

	user, err := g.auth.Verify(ctx, token)
	switch {
	case err != nil:
		g.log.Info().Err(err).Msg("stored token rejected")
		g.drop(ctx)
	case !user.IsAdmin():
		g.log.Info().Str("role", string(user.Role)).Msg("stored token belongs to a non-admin account")
		g.drop(ctx)
	default:
		g.set(domain.StateAuthenticated, user)
		g.log.Info().Str("email", user.Email).Msg("session verified")
	}
	return g.State()
}

// Login sends the credentials to the backend and admits admins only. A
// non-admin account leaves the store and the state untouched. Only one login
// may be outstanding; a second caller gets domain.ErrRequestInFlight.
func (g *Guard) Login(ctx context.Context, identifier, secret string) (*domain.UserProfile, error) {
	if err := g.beginLogin(); err != nil {
		return nil, err
	}
	defer g.endLogin()

	token, user, err := g.auth.Login(ctx, identifier, secret)
	if err != nil {
		var re *domain.RemoteError
		switch {
		case errors.As(err, &re) && re.Message != "":
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			return nil, err
		case errors.As(err, &re):
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			return nil, domain.ErrInvalidCredentials
		default:
			metrics.LoginAttemptsTotal.WithLabelValues("transport_error").Inc()
			g.log.Warn().Err(err).Msg("login request failed")
			return nil, domain.ErrLoginFailed
		}
	}

	if !user.IsAdmin() {
		metrics.LoginAttemptsTotal.WithLabelValues("not_admin").Inc()
		g.log.Info().Str("identifier", identifier).Str("role", string(user.Role)).Msg("login refused: not an admin")
		return nil, domain.ErrAdminRequired
	}

	if err := g.tokens.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("login: persist token: %w", err)
	}
	g.set(domain.StateAuthenticated, user)
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	g.log.Info().Str("email", user.Email).Msg("operator logged in")
	return cloneProfile(user), nil
}

func (g *Guard) beginLogin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loggingIn {
		return domain.ErrRequestInFlight
	}
	g.loggingIn = true
	return nil
}

func (g *Guard) endLogin() {
	g.mu.Lock()
	g.loggingIn = false
	g.mu.Unlock()
}

// Logout clears the token and the in-memory session. It is idempotent.
func (g *Guard) Logout(ctx context.Context) {
	if g.State() == domain.StateAuthenticated {
		g.log.Info().Str("email", g.Actor()).Msg("operator logged out")
	}
	g.drop(ctx)
}

// Invalidate ends the session after the backend rejected the token.
func (g *Guard) Invalidate(ctx context.Context) {
	if g.State() == domain.StateAuthenticated {
		g.log.Warn().Str("email", g.Actor()).Msg("session invalidated by backend")
	}
	g.drop(ctx)
}

// State returns the current state.
func (g *Guard) State() domain.SessionState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Actor names the operator for the activity journal.
func (g *Guard) Actor() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.user == nil {
		return ""
	}
	return g.user.Email
}

// Snapshot returns a copy of the session safe to hand out.
func (g *Guard) Snapshot() domain.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return domain.Session{
		State:   g.state,
		User:    cloneProfile(g.user),
		Loading: !g.state.Settled(),
	}
}

func (g *Guard) drop(ctx context.Context) {
	if err := g.tokens.Clear(ctx); err != nil {
		g.log.Error().Err(err).Msg("failed to clear stored token")
	}
	g.set(domain.StateUnauthenticated, nil)
}

func (g *Guard) set(next domain.SessionState, user *domain.UserProfile) {
	g.mu.Lock()
	if !g.state.CanTransitionTo(next) {
		g.log.Debug().Stringer("from", g.state).Stringer("to", next).Msg("unexpected session transition")
	}
	g.state = next
	g.user = cloneProfile(user)
	g.mu.Unlock()
	publishState(next)
}

func publishState(current domain.SessionState) {
	for _, s := range []domain.SessionState{
		domain.StateUnverified, domain.StateVerifying,
		domain.StateAuthenticated, domain.StateUnauthenticated,
	} {
		v := 0.0
		if s == current {
			v = 1
		}
		metrics.SessionState.WithLabelValues(s.String()).Set(v)
	}
}

func cloneProfile(u *domain.UserProfile) *domain.UserProfile {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Permissions != nil {
		clone.Permissions = make(domain.Permissions, len(u.Permissions))
		for k, v := range u.Permissions {
			clone.Permissions[k] = v
		}
	}
	return &clone
}
