package ports

import "context"

// TokenSource is the read side of the credential store. Gateways only read.
type TokenSource interface {
	// Load returns the stored token, or "" when none is stored.
	Load(ctx context.Context) (string, error)
}

// TokenStore persists the credential token across restarts. Only the session
// guard writes to it.
type TokenStore interface {
	TokenSource
	Save(ctx context.Context, token string) error
	// Clear removes the token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
