package linkedin

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "talentscout:profile:"

// CachedSource keeps raw records in Redis keyed by canonical URL, so repeated
// runs against the same candidate pool do not burn provider quota. Cache
// failures degrade to a plain fetch.
type CachedSource struct {
	inner  ProfileSource
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedSource(inner ProfileSource, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedSource{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *CachedSource) Name() string { return "cached " + c.inner.Name() }

func (c *CachedSource) Fetch(ctx context.Context, url string) (*RawRecord, error) {
	key := cacheKeyPrefix + url

	body, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil && len(body) > 0 {
		c.logger.Debug("profile cache hit", zap.String("url", url))
		return &RawRecord{URL: url, Body: body}, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("profile cache read failed", zap.String("url", url), zap.Error(err))
	}

	record, err := c.inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := c.rdb.Set(ctx, key, record.Body, c.ttl).Err(); err != nil {
		c.logger.Warn("profile cache write failed", zap.String("url", url), zap.Error(err))
	}

	return record, nil
}
