package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a string key/value store with counters.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	Key(parts ...string) string
	Close() error
}

type redisCache struct {
	client    *redis.Client
	namespace string
}

// NewRedisCache connects lazily to addr; keys are prefixed with namespace.
func NewRedisCache(addr, password, namespace string) Cache {
	return &redisCache{
		client: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     password,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		}),
		namespace: namespace,
	}
}

func (r *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *redisCache) Incr(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return n, nil
}

func (r *redisCache) Key(parts ...string) string {
	return joinKey(r.namespace, parts)
}

func (r *redisCache) Close() error {
	return r.client.Close()
}

// Nop never stores anything; every Get misses.
type Nop struct {
	namespace string
}

// NewNop returns a cache that always misses.
func NewNop(namespace string) *Nop {
	return &Nop{namespace: namespace}
}

func (Nop) Get(context.Context, string) (string, bool, error)        { return "", false, nil }
func (Nop) Set(context.Context, string, string, time.Duration) error { return nil }
func (Nop) Incr(context.Context, string) (int64, error)              { return 0, nil }
func (n Nop) Key(parts ...string) string                             { return joinKey(n.namespace, parts) }
func (Nop) Close() error                                             { return nil }

func joinKey(namespace string, parts []string) string {
	key := namespace
	for _, p := range parts {
		key += ":" + p
	}
	return key
}
