package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyValue is the part of the redis client the store uses.
type keyValue interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// TokenStore keeps the credential token under a single key so several
// console instances share one session. It implements ports.TokenStore.
type TokenStore struct {
	client keyValue
	key    string
	ttl    time.Duration
}

// NewTokenStore stores the token under key. A zero ttl keeps it until
// cleared.
func NewTokenStore(client keyValue, key string, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, key: key, ttl: ttl}
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token store get: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("token store set: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("token store del: %w", err)
	}
	return nil
}
