// Package app wires the session pieces shared by the console server and the
// terminal login.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lenshive/admin-console/internal/core/ports"
	"github.com/lenshive/admin-console/internal/core/service"
	"github.com/lenshive/admin-console/internal/infrastructure/backend"
	"github.com/lenshive/admin-console/internal/infrastructure/config"
	redisdb "github.com/lenshive/admin-console/internal/infrastructure/db/redis"
	"github.com/lenshive/admin-console/internal/infrastructure/storage"
)

// Session is the guard with the backend client and token store it runs on.
type Session struct {
	Guard   *service.Guard
	Backend *backend.Client
	Tokens  ports.TokenStore
	// Redis is set when tokens live in Redis.
	Redis *redis.Client
}

// Close releases the token store connection, if any.
func (s *Session) Close() {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
}

// OpenSession builds the token store chosen by cfg, the backend client and
// the session guard. The guard is not verified yet.
func OpenSession(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Session, error) {
	s := &Session{}

	switch cfg.Tokens.Store {
	case config.TokenStoreRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, fmt.Errorf("token store: %w", err)
		}
		s.Redis = rdb
		s.Tokens = redisdb.NewTokenStore(rdb, cfg.Tokens.RedisKey, cfg.Tokens.TTL)
	default:
		s.Tokens = storage.NewFileTokenStore(cfg.Tokens.File)
	}

	s.Backend = backend.NewClient(backend.Options{
		BaseURL:       cfg.Backend.URL,
		Timeout:       cfg.Backend.Timeout,
		TrailingSlash: cfg.Backend.TrailingSlash,
	}, s.Tokens, log.With().Str("component", "backend").Logger())

	s.Guard = service.NewGuard(
		backend.NewAuthGateway(s.Backend),
		s.Tokens,
		log.With().Str("component", "session").Logger(),
	)
	return s, nil
}
