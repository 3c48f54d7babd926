package prefs

import (
	"context"
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

// RedisBackend keeps one hash per visitor under prefs:<visitor>.
type RedisBackend struct {
	cli *redis.Client
}

func NewRedisBackend(url string) (*RedisBackend, error) {
	if url == "" {
		url = "redis://localhost:6379/0"
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("prefs: redis url: %w", err)
	}
	return &RedisBackend{cli: redis.NewClient(opt)}, nil
}

func hashKey(visitor string) string { return "prefs:" + visitor }

func (r *RedisBackend) Get(ctx context.Context, visitor, key string) (string, bool, error) {
	v, err := r.cli.HGet(ctx, hashKey(visitor), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, visitor, key, value string) error {
	return r.cli.HSet(ctx, hashKey(visitor), key, value).Err()
}

func (r *RedisBackend) Close() error { return r.cli.Close() }
