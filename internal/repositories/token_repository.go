package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrTokenNotFound is returned when a refresh or reset token is unknown,
// expired, or already consumed.
var ErrTokenNotFound = fmt.Errorf("token not found")

// TokenRepository defines the interface for credential token storage.
// Refresh tokens live until logout or TTL expiry; reset tokens are one-shot.
type TokenRepository interface {
	StoreRefreshToken(ctx context.Context, token string, userID uint, ttl time.Duration) error
	GetRefreshTokenUser(ctx context.Context, token string) (uint, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	StoreResetToken(ctx context.Context, token string, userID uint, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (uint, error)
}

// RedisTokenRepository implements TokenRepository on Redis
type RedisTokenRepository struct {
	client *redis.Client
}

// NewRedisTokenRepository creates a new RedisTokenRepository
func NewRedisTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{client: client}
}

func refreshKey(token string) string { return "refresh:" + token }
func resetKey(token string) string   { return "reset:" + token }

// StoreRefreshToken persists a refresh token for the user with a TTL
func (r *RedisTokenRepository) StoreRefreshToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return r.client.Set(ctx, refreshKey(token), userID, ttl).Err()
}

// GetRefreshTokenUser resolves a refresh token to its user ID
func (r *RedisTokenRepository) GetRefreshTokenUser(ctx context.Context, token string) (uint, error) {
	val, err := r.client.Get(ctx, refreshKey(token)).Result()
	if err == redis.Nil {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// DeleteRefreshToken revokes a refresh token (logout)
func (r *RedisTokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	return r.client.Del(ctx, refreshKey(token)).Err()
}

// StoreResetToken persists a one-shot password reset token
func (r *RedisTokenRepository) StoreResetToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return r.client.Set(ctx, resetKey(token), userID, ttl).Err()
}

// ConsumeResetToken resolves and deletes a reset token in one round trip
func (r *RedisTokenRepository) ConsumeResetToken(ctx context.Context, token string) (uint, error) {
	val, err := r.client.GetDel(ctx, resetKey(token)).Result()
	if err == redis.Nil {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
