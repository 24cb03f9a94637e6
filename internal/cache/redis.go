// Package cache keeps read-through copies of User profiles in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agenthands/distnode/internal/core/model"
)

type UserCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewUserCache connects to redisURL and verifies it is reachable.
func NewUserCache(ctx context.Context, redisURL string, ttl time.Duration) (*UserCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewUserCacheWithClient(client, ttl), nil
}

func NewUserCacheWithClient(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UserCache{client: client, prefix: "user:", ttl: ttl}
}

func (c *UserCache) key(userID string) string {
	return c.prefix + userID
}

// Get returns the cached user and whether it was present.
func (c *UserCache) Get(ctx context.Context, userID string) (model.User, bool, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("lookup cached user: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return model.User{}, false, fmt.Errorf("unmarshal cached user: %w", err)
	}
	return user, true, nil
}

func (c *UserCache) Set(ctx context.Context, user model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := c.client.Set(ctx, c.key(user.UserID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache user: %w", err)
	}
	return nil
}

func (c *UserCache) Delete(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("evict cached user: %w", err)
	}
	return nil
}

func (c *UserCache) Close() error {
	return c.client.Close()
}
