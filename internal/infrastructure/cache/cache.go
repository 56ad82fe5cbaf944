package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/e-commerce/shop-service/config"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	db  *redis.Client
	ttl time.Duration
}

func ConnectToRedis(ctx context.Context, cfg config.RedisConfig) (*Cache, error) {
	db := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Cache{db: db, ttl: cfg.TTL}, nil
}

// Get reports false without an error on a miss.
func (c *Cache) Get(ctx context.Context, key string, result any) (bool, error) {
	val, err := c.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(val, result); err != nil {
		return false, fmt.Errorf("redis decode %s: %w", key, err)
	}

	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.db.Set(ctx, key, jsonData, c.ttl).Err()
}

// Incr bumps a counter key that never expires.
func (c *Cache) Incr(ctx context.Context, key string) (int64, error) {
	return c.db.Incr(ctx, key).Result()
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	return c.db.Del(ctx, keys...).Err()
}

func (c *Cache) Close() error {
	return c.db.Close()
}
