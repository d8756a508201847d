package identity

import (
	"context"
	"time"

	"tourbook/utils"

	"github.com/go-redis/redis/v8"
)

// RedisRevocationStore keeps revoked token hashes in the auth cache database.
type RedisRevocationStore struct {
	Client *redis.Client
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, utils.RevokedTokenPrefix+tokenHash, 1, ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	n, err := s.Client.Exists(ctx, utils.RevokedTokenPrefix+tokenHash).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
