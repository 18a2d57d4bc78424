package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a magic-link token is unknown,
// expired, or already consumed.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore holds short-lived authentication state: pending magic-link
// tokens and the denylist of signed-out session IDs.
type TokenStore interface {
	SaveMagicLink(ctx context.Context, token, email string, ttl time.Duration) error
	// ConsumeMagicLink returns the email a token was issued for and
	// removes it, so each link works exactly once.
	ConsumeMagicLink(ctx context.Context, token string) (string, error)
	DenySession(ctx context.Context, tokenID string, ttl time.Duration) error
	IsSessionDenied(ctx context.Context, tokenID string) (bool, error)
}

// RedisTokenStore is the Redis-backed TokenStore used in production.
// Expiry is delegated to Redis TTLs.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func magicLinkKey(token string) string {
	return fmt.Sprintf("auth:magiclink:%s", token)
}

func deniedSessionKey(tokenID string) string {
	return fmt.Sprintf("auth:denied:%s", tokenID)
}

func (s *RedisTokenStore) SaveMagicLink(ctx context.Context, token, email string, ttl time.Duration) error {
	if err := s.client.Set(ctx, magicLinkKey(token), email, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save magic-link token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) ConsumeMagicLink(ctx context.Context, token string) (string, error) {
	email, err := s.client.GetDel(ctx, magicLinkKey(token)).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume magic-link token: %w", err)
	}
	return email, nil
}

func (s *RedisTokenStore) DenySession(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to deny.
		return nil
	}
	if err := s.client.Set(ctx, deniedSessionKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to deny session: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) IsSessionDenied(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.client.Get(ctx, deniedSessionKey(tokenID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check session denylist: %w", err)
	}
	return true, nil
}
