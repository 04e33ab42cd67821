// Package cache is a two-tier byte cache: an in-process ristretto L1 in
// front of a shared Redis L2. Both tiers expire entries after the same TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/redis/go-redis/v9"

	"mafatih/internal/common/config"
	"mafatih/internal/common/logger"
	"mafatih/internal/common/metrics"
)

const (
	DefaultTTL         = 10 * time.Minute
	DefaultMaxCost     = 64 << 20
	DefaultNumCounters = 1e6

	keyPrefix = "mafatih:"
)

type Cache struct {
	l1     *ristretto.Cache[string, []byte]
	l2     redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

// New builds the cache. l2 may be nil, in which case only the in-process
// tier is used.
func New(cfg config.CacheConfig, l2 redis.Cmdable, log logger.Logger) (*Cache, error) {
	ttl := config.GetDuration(cfg.TTL)
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	maxCost := cfg.L1MaxCost
	if maxCost <= 0 {
		maxCost = DefaultMaxCost
	}
	numCounters := cfg.L1NumCounters
	if numCounters <= 0 {
		numCounters = DefaultNumCounters
	}

	l1, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Cache{
		l1:     l1,
		l2:     l2,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"component": "cache"}),
	}, nil
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get looks in L1, then L2. An L2 hit is promoted to L1.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	key = keyPrefix + key

	if data, ok := c.l1.Get(key); ok {
		metrics.CacheLookupsTotal.WithLabelValues("l1", "hit").Inc()
		return data, true
	}
	metrics.CacheLookupsTotal.WithLabelValues("l1", "miss").Inc()

	if c.l2 == nil {
		return nil, false
	}

	data, err := c.l2.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("L2 cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		metrics.CacheLookupsTotal.WithLabelValues("l2", "miss").Inc()
		return nil, false
	}
	if len(data) == 0 {
		metrics.CacheLookupsTotal.WithLabelValues("l2", "miss").Inc()
		return nil, false
	}

	metrics.CacheLookupsTotal.WithLabelValues("l2", "hit").Inc()
	c.l1.SetWithTTL(key, data, int64(len(data)), c.ttl)
	c.l1.Wait()
	return data, true
}

// Set writes both tiers. An L2 failure is returned but the L1 write stands.
func (c *Cache) Set(ctx context.Context, key string, data []byte) error {
	key = keyPrefix + key

	c.l1.SetWithTTL(key, data, int64(len(data)), c.ttl)
	c.l1.Wait()

	if c.l2 == nil {
		return nil
	}
	if err := c.l2.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("L2 cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		return fmt.Errorf("L2 set failed: %w", err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	key = keyPrefix + key
	c.l1.Del(key)

	if c.l2 == nil {
		return nil
	}
	if err := c.l2.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("L2 delete failed: %w", err)
	}
	return nil
}

func (c *Cache) Close() {
	c.l1.Close()
}
