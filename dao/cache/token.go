package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStorage 已注销的访问令牌，保存到令牌过期为止
type TokenStorage struct {
	redis *redis.Client
}

func NewTokenStorage(rds *redis.Client) *TokenStorage {
	return &TokenStorage{rds}
}

// Revoke 注销 jti，expiresAt 已过去时无需记录
func (t *TokenStorage) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return t.redis.Set(ctx, t.name(jti), 1, ttl).Err()
}

func (t *TokenStorage) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := t.redis.Get(ctx, t.name(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *TokenStorage) name(jti string) string {
	return "scribe:revoked:" + jti
}
