package cart

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/nirajd1102/shopping-website/internal/config"
)

// Carts survive browser sessions but not forever; Redis expires them.
const cartTTL = 30 * 24 * time.Hour

// RedisStorage persists serialized carts in Redis, one key per session.
type RedisStorage struct {
	rdb *redis.Client
}

// NewRedisStorage creates a Redis-backed cart storage and verifies connectivity
func NewRedisStorage(cfg config.RedisConfig) (*RedisStorage, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStorage{rdb: rdb}, nil
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, cartTTL).Err()
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
