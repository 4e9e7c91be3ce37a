package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lenshive/admin-console/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string              `json:"token"`
	User  *domain.UserProfile `json:"user"`
}

// AuthGateway implements ports.AuthGateway.
type AuthGateway struct {
	c *Client
}

func NewAuthGateway(c *Client) *AuthGateway {
	return &AuthGateway{c: c}
}

func (g *AuthGateway) Login(ctx context.Context, identifier, secret string) (string, *domain.UserProfile, error) {
	body, err := jsonBody(loginRequest{Email: identifier, Password: secret})
	if err != nil {
		return "", nil, fmt.Errorf("auth.login: encode: %w", err)
	}

	var out loginResponse
	err = g.c.do(ctx, request{
		op:          "auth.login",
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        body,
		contentType: "application/json",
		anonymous:   true,
	}, &out)
	if err != nil {
		return "", nil, err
	}
	if out.Token == "" || out.User == nil {
		return "", nil, fmt.Errorf("auth.login: %w: response without token or user", domain.ErrRemote)
	}
	return out.Token, out.User, nil
}

// Verify resolves token to its profile. An empty token is rejected without a
// request.
func (g *AuthGateway) Verify(ctx context.Context, token string) (*domain.UserProfile, error) {
	if token == "" {
		return nil, fmt.Errorf("auth.verify: %w: empty token", domain.ErrUnauthorized)
	}
	var out domain.UserProfile
	err := g.c.do(ctx, request{
		op:     "auth.verify",
		method: http.MethodGet,
		path:   "/auth/verify",
		token:  token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
