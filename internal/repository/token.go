package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepository tracks live session tokens in redis. A token is valid only
// while its jti key exists; sign-out deletes the key, which is what makes
// sign-out effective before the JWT itself expires.
type TokenRepository struct {
	rdb *redis.Client
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(rdb *redis.Client) *TokenRepository {
	return &TokenRepository{rdb: rdb}
}

func tokenKey(jti string) string {
	return "session:" + jti
}

// Put registers a session token with a TTL matching the token expiry
func (r *TokenRepository) Put(ctx context.Context, jti, uid string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, tokenKey(jti), uid, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

// Exists reports whether a session token is still live
func (r *TokenRepository) Exists(ctx context.Context, jti string) (bool, error) {
	_, err := r.rdb.Get(ctx, tokenKey(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check session token: %w", err)
	}
	return true, nil
}

// Revoke deletes a session token
func (r *TokenRepository) Revoke(ctx context.Context, jti string) error {
	if err := r.rdb.Del(ctx, tokenKey(jti)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}
	return nil
}
