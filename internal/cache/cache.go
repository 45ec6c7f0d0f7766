// internal/cache/cache.go

// Package cache stores computed scores in Redis keyed by a digest of the
// request body, so identical requests within the TTL skip the engine.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/openfinanceafrica/scoreapi/internal/common/database"
	"github.com/openfinanceafrica/scoreapi/internal/common/logger"
	"github.com/openfinanceafrica/scoreapi/internal/common/metrics"
	"github.com/openfinanceafrica/scoreapi/internal/score"
)

const keyPrefix = "scoreapi:score:"

// ScoreCache caches computed scores. A nil *ScoreCache is a valid no-op
// cache, so callers never need to branch on whether caching is enabled.
type ScoreCache struct {
	redis *database.RedisClient
	ttl   time.Duration
	log   logger.Logger
}

func New(redis *database.RedisClient, ttl time.Duration, log logger.Logger) *ScoreCache {
	return &ScoreCache{redis: redis, ttl: ttl, log: log}
}

// Key derives the cache key from the raw request body.
func Key(body []byte) string {
	sum := sha256.Sum256(body)
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached score for key, or false when absent or unreadable.
func (c *ScoreCache) Get(ctx context.Context, key string) (score.Score, bool) {
	if c == nil || c.redis == nil {
		return score.Score{}, false
	}

	raw, err := c.redis.Get(ctx, key)
	if err != nil {
		if !database.IsNotFound(err) {
			c.log.Warn("score cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		metrics.CacheMisses.Inc()
		return score.Score{}, false
	}

	var cached score.Score
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		c.log.Warn("score cache entry is corrupt, dropping it", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		_ = c.redis.Del(ctx, key)
		metrics.CacheMisses.Inc()
		return score.Score{}, false
	}

	metrics.CacheHits.Inc()
	return cached, true
}

// Set stores a computed score. Failures are logged, never surfaced: a broken
// cache must not break scoring.
func (c *ScoreCache) Set(ctx context.Context, key string, result score.Score) {
	if c == nil || c.redis == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		c.log.Warn("score cache marshal failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	if err := c.redis.Set(ctx, key, string(raw), c.ttl); err != nil {
		c.log.Warn("score cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
