package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/newmandigital/catalog/internal/core/port"
)

// Cache stores JSON-encoded values under "<namespace>:<key>".
type Cache[T any] struct {
	client    *Client
	namespace string
}

func NewCache[T any](client *Client, namespace string) port.CachePort[T] {
	return &Cache[T]{client: client, namespace: namespace}
}

func (c *Cache[T]) key(key string) string {
	return c.namespace + ":" + key
}

func (c *Cache[T]) Get(ctx context.Context, key string) (*T, error) {
	data, err := c.client.Get(ctx, c.key(key))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return &value, nil
}

func (c *Cache[T]) Set(ctx context.Context, key string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return c.client.Set(ctx, c.key(key), data, ttl)
}

func (c *Cache[T]) SetNX(ctx context.Context, key string, value *T, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return c.client.SetNX(ctx, c.key(key), data, ttl)
}

func (c *Cache[T]) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key))
}
