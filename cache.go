package esql

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Cache is a Redis-backed result cache keyed on query text and parameter
// values. ES|QL results are immutable snapshots, so repeated dashboards
// and reports can be served without re-running the query until the TTL
// expires.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
	log   Logger
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	Redis  *redis.Client // Redis client (required)
	TTL    time.Duration // Entry TTL (default: 5m)
	Logger Logger        // Optional debug logger
}

// NewCache creates a query-result cache.
func NewCache(cfg CacheConfig) (*Cache, error) {
	if cfg.Redis == nil {
		return nil, errors.New("redis client is required")
	}
	if cfg.TTL == 0 {
		cfg.TTL = 5 * time.Minute
	}

	return &Cache{
		redis: cfg.Redis,
		ttl:   cfg.TTL,
		log:   safeLogger(cfg.Logger),
	}, nil
}

// Get returns the cached result set for a request, if present. Cache
// failures are treated as misses.
func (c *Cache) Get(ctx context.Context, req *QueryRequest) (*ResultSet, bool) {
	key, err := cacheKey(req)
	if err != nil {
		return nil, false
	}

	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.DebugWithCtx(ctx, "query cache get failed", "error", err.Error())
		}
		return nil, false
	}

	var rs ResultSet
	if err := json.Unmarshal([]byte(val), &rs); err != nil {
		c.log.DebugWithCtx(ctx, "query cache entry corrupt, dropping", "key", key)
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}

	return &rs, true
}

// Put stores a result set under the request's key with the cache TTL.
func (c *Cache) Put(ctx context.Context, req *QueryRequest, rs *ResultSet) error {
	key, err := cacheKey(req)
	if err != nil {
		return err
	}

	data, err := json.Marshal(rs)
	if err != nil {
		return errors.Wrap(err, "failed to marshal result set")
	}

	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set failed")
	}

	return nil
}

// PutAsync stores a result set in the background with a bounded timeout,
// so caching never delays the caller.
func (c *Cache) PutAsync(req *QueryRequest, rs *ResultSet) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.Put(ctx, req, rs); err != nil {
			c.log.Debug("query cache put failed", "error", err.Error())
		}
	}()
}

// Invalidate removes the cached result for one request.
func (c *Cache) Invalidate(ctx context.Context, req *QueryRequest) error {
	key, err := cacheKey(req)
	if err != nil {
		return err
	}
	return c.redis.Del(ctx, key).Err()
}

// cacheKey derives a stable key from the query text and its positional
// parameters.
func cacheKey(req *QueryRequest) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"query":  req.Query,
		"params": req.Params,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to build cache key")
	}

	sum := sha256.Sum256(payload)
	return fmt.Sprintf("esql_result_%s", hex.EncodeToString(sum[:])), nil
}
