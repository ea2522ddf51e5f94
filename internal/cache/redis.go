// Package cache implements the Redis-backed cart view cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/giovanniklein/inn-b2b-varejista/internal/cart"
	"github.com/redis/go-redis/v9"
)

func NewRedisViewCache(client *redis.Client) *RedisViewCache {
	return &RedisViewCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisViewCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisViewCache) Get(ctx context.Context, retailerID string) (*cart.View, error) {
	data, err := r.client.Get(ctx, cacheKey(retailerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var view cart.View
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("unmarshal cart view failed: %w", err)
	}
	return &view, nil
}

func (r *RedisViewCache) Set(ctx context.Context, retailerID string, view *cart.View) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("marshal cart view failed: %w", err)
	}

	// Jitter spreads expirations so hot keys don't stampede together.
	ttl := r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
	if err := r.client.Set(ctx, cacheKey(retailerID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisViewCache) Delete(ctx context.Context, retailerID string) error {
	if err := r.client.Del(ctx, cacheKey(retailerID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(retailerID string) string {
	return fmt.Sprintf("cart-view:%s", retailerID)
}
