package redisstore

// Package redisstore provides a Redis-backed token store so a restarted
// console can resume its session silently. TTL semantics bound how long a
// stored token is offered for resumption; the API remains the authority on
// whether the token is still valid.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 12 * time.Hour

// TokenStore persists the session token under a fixed key in Redis.
type TokenStore struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// Options configures a Redis token store.
type Options struct {
	Client redis.UniversalClient
	// KeyPrefix namespaces the token key (e.g. "hr-console:").
	KeyPrefix string
	// TTL caps how long a persisted token is kept. Defaults to 12h.
	TTL time.Duration
}

// NewTokenStore creates a Redis-backed token store.
func NewTokenStore(opts Options) (*TokenStore, error) {
	if opts.Client == nil {
		return nil, errors.New("redis client is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TokenStore{
		client: opts.Client,
		key:    opts.KeyPrefix + "session-token",
		ttl:    ttl,
	}, nil
}

func (s *TokenStore) Persist(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Read returns the stored token, or the empty string when none is stored or
// the TTL has lapsed.
func (s *TokenStore) Read(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
