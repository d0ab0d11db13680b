// Package cache provides a keyed read-through cache with TTL and explicit
// eviction, backed by Redis or process memory.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/daniilsolovey/news-cms/internal/metrics"
)

const (
	KeyHomepage     = "homepage"
	KeyCategoryList = "category-list"
	KeyTagList      = "tag-list"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Remember returns the cached value of key or computes, stores and returns it.
// Read and decode errors are logged and treated as a miss. Concurrent misses
// may both compute; the last Set wins.
func Remember[T any](ctx context.Context, c Cache, logger *slog.Logger, key string, ttl time.Duration,
	compute func(ctx context.Context) (T, error)) (T, error) {

	var value T
	raw, err := c.Get(ctx, key)
	switch {
	case err == nil:
		if err = json.Unmarshal(raw, &value); err == nil {
			metrics.CacheRequestsTotal.WithLabelValues(key, metrics.ResultHit).Inc()
			return value, nil
		}
		logger.WarnContext(ctx, "cache decode failed", "key", key, "error", err)
		metrics.CacheRequestsTotal.WithLabelValues(key, metrics.ResultError).Inc()
	case errors.Is(err, ErrMiss):
		metrics.CacheRequestsTotal.WithLabelValues(key, metrics.ResultMiss).Inc()
	default:
		logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		metrics.CacheRequestsTotal.WithLabelValues(key, metrics.ResultError).Inc()
	}

	value, err = compute(ctx)
	if err != nil {
		return value, err
	}

	raw, err = json.Marshal(value)
	if err != nil {
		logger.WarnContext(ctx, "cache encode failed", "key", key, "error", err)
		return value, nil
	}

	if err := c.Set(ctx, key, raw, ttl); err != nil {
		logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}

	return value, nil
}

// Evict deletes keys. Unlike reads, eviction errors are returned so a write
// never reports success while stale data stays cached.
func Evict(ctx context.Context, c Cache, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("evict %v: %w", keys, err)
	}

	for _, key := range keys {
		metrics.CacheEvictionsTotal.WithLabelValues(key).Inc()
	}

	return nil
}
