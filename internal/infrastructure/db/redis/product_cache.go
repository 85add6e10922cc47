package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/alshadows/product-catalog/internal/core/domain"
)

const (
	defaultProductTTL = 5 * time.Minute

	// versionTTL outlives any in-flight read by a wide margin.
	versionTTL = 24 * time.Hour
)

var errStaleVersion = errors.New("product cache: stale version")

// ProductCache stores products as JSON keyed by id, next to a per-id version
// counter that every invalidation advances.
// Key format: catalog:product:<id> and catalog:product:<id>:version
type ProductCache struct {
	client  *redis.Client
	ttl     time.Duration
	lookups *prometheus.CounterVec
}

// NewProductCache wraps client. A non-positive ttl falls back to five minutes.
// lookups is labelled by result (hit/miss/error/stale) and may be nil.
func NewProductCache(client *redis.Client, ttl time.Duration, lookups *prometheus.CounterVec) *ProductCache {
	if ttl <= 0 {
		ttl = defaultProductTTL
	}
	return &ProductCache{client: client, ttl: ttl, lookups: lookups}
}

// Get reports whether id is cached and decodes it when it is.
func (c *ProductCache) Get(ctx context.Context, id string) (*domain.Product, bool, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.count("miss")
		return nil, false, nil
	}
	if err != nil {
		c.count("error")
		return nil, false, fmt.Errorf("product cache get: %w", err)
	}

	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		c.count("error")
		return nil, false, fmt.Errorf("product cache decode: %w", err)
	}
	c.count("hit")
	return &p, true, nil
}

// Version returns the current invalidation counter for id, zero if unset.
func (c *ProductCache) Version(ctx context.Context, id string) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("product cache version: %w", err)
	}
	return v, nil
}

// SetIfVersion caches p only if id's version still equals version. A lost
// race is not an error; the entry is simply not written.
func (c *ProductCache) SetIfVersion(ctx context.Context, p *domain.Product, version int64) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("product cache encode: %w", err)
	}

	vkey := c.versionKey(p.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(p.ID), raw, c.ttl)
			return nil
		})
		return err
	}, vkey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStaleVersion), errors.Is(err, redis.TxFailedErr):
		c.count("stale")
		return nil
	default:
		return fmt.Errorf("product cache set: %w", err)
	}
}

// Invalidate advances id's version and drops the cached entry atomically.
func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	vkey := c.versionKey(id)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, vkey)
		pipe.Expire(ctx, vkey, versionTTL)
		pipe.Del(ctx, c.key(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("product cache invalidate: %w", err)
	}
	return nil
}

func (c *ProductCache) count(result string) {
	if c.lookups != nil {
		c.lookups.WithLabelValues(result).Inc()
	}
}

func (c *ProductCache) key(id string) string {
	return fmt.Sprintf("catalog:product:%s", id)
}

func (c *ProductCache) versionKey(id string) string {
	return c.key(id) + ":version"
}
