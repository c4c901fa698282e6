// Package cache implements the balance cache on Redis.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hawkker/loyalty/pkg/cache"
)

// RedisBalanceCache implements cache.BalanceCache using Redis.
type RedisBalanceCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisBalanceCache creates a new RedisBalanceCache from redis.Options.
func NewRedisBalanceCache(
	opt *redis.Options,
	prefix string,
	logger *slog.Logger,
) *RedisBalanceCache {
	client := redis.NewClient(opt)
	return &RedisBalanceCache{client: client, prefix: prefix, logger: logger}
}

func (r *RedisBalanceCache) key(userID uuid.UUID) string {
	return r.prefix + userID.String()
}

func (r *RedisBalanceCache) Get(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	val, err := r.client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("balance cache miss", "user_id", userID)
		return 0, false, nil
	}
	if err != nil {
		r.logger.Error("balance cache get error", "user_id", userID, "error", err)
		return 0, false, err
	}
	coins, err := strconv.Atoi(val)
	if err != nil {
		r.logger.Error("balance cache parse error", "user_id", userID, "error", err)
		return 0, false, err
	}
	return coins, true, nil
}

func (r *RedisBalanceCache) Set(ctx context.Context, userID uuid.UUID, coins int, ttl time.Duration) error {
	err := r.client.Set(ctx, r.key(userID), strconv.Itoa(coins), ttl).Err()
	if err != nil {
		r.logger.Error("balance cache set error", "user_id", userID, "error", err)
		return err
	}
	return nil
}

func (r *RedisBalanceCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	err := r.client.Del(ctx, r.key(userID)).Err()
	if err != nil {
		r.logger.Error("balance cache delete error", "user_id", userID, "error", err)
		return err
	}
	return nil
}

var _ cache.BalanceCache = (*RedisBalanceCache)(nil)
