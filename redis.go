package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"finance-tracker-backend/internal/budget"
)

// newRedisClient connects to Redis and verifies the connection
func newRedisClient(redisURL string) (*redis.Client, error) {
	if !strings.HasPrefix(redisURL, "redis://") && !strings.HasPrefix(redisURL, "rediss://") {
		redisURL = "redis://" + redisURL
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: strings.TrimPrefix(redisURL, "redis://"),
		}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// redisCache stores computed budget reports under "budget:{user}:..." keys.
type redisCache struct {
	client *redis.Client
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, budget.ErrCacheMiss
	}
	return data, err
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.SetEx(ctx, key, value, ttl).Err()
}

// InvalidateUser deletes every key under the user's prefix.
func (c *redisCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	iter := c.client.Scan(ctx, 0, fmt.Sprintf("budget:%s:*", userID), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
