package cache

import (
	"context"
	"encoding/json"
	"time"
)

// TypedCache stores values of one type as JSON in a Cacher.
type TypedCache[T any] struct {
	cache      Cacher
	defaultTTL time.Duration
}

// NewTypedCache wraps c. A zero defaultTTL defers to the backend default.
func NewTypedCache[T any](c Cacher, defaultTTL time.Duration) *TypedCache[T] {
	return &TypedCache[T]{cache: c, defaultTTL: defaultTTL}
}

// Get returns the cached value. Misses, backend errors and undecodable
// entries all report false.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set stores value with the default TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, key, data, c.defaultTTL)
}

// Delete removes key.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, key)
}

// DeletePrefix removes every key under prefix when the backend supports it,
// and clears the whole cache otherwise.
func (c *TypedCache[T]) DeletePrefix(ctx context.Context, prefix string) error {
	if pd, ok := c.cache.(PrefixDeleter); ok {
		return pd.DeleteByPrefix(ctx, prefix)
	}
	return c.cache.Clear(ctx)
}

// GetOrSet returns the cached value or computes, stores and returns it.
// A failed store does not fail the call.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, fn func() (*T, error)) (*T, error) {
	if v, ok := c.Get(ctx, key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return nil, err
	}
	_ = c.Set(ctx, key, v)
	return v, nil
}
