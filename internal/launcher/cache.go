package launcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fitnesshub/backend/internal/telemetry/tracing"
)

const (
	DefaultCacheTTL = 6 * time.Hour

	cacheKeyPrefix = "launcher-prediction::"
	expiryIndexKey = "launcher-prediction-expiry"
)

type cacheEntry struct {
	Prediction Prediction `json:"prediction"`
	CachedAt   time.Time  `json:"cachedAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
}

// Cache keeps one prediction per user in redis. Entries have no redis
// expiration; a sorted set scored by expiry time lets Sweep find stale
// entries without scanning the keyspace.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		rdb: rdb,
		ttl: ttl,
	}
}

func cacheKey(userID uuid.UUID) string {
	return cacheKeyPrefix + userID.String()
}

// Get returns the cached prediction of the user. Missing and expired
// entries both report found=false.
func (c *Cache) Get(ctx context.Context, userID uuid.UUID, now time.Time) (_ *Prediction, found bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.launcher.cache.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := c.rdb.Get(ctx, cacheKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get cached prediction: %w", err)
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached prediction: %w", err)
	}

	if !now.Before(entry.ExpiresAt) {
		return nil, false, nil
	}

	return &entry.Prediction, true, nil
}

func (c *Cache) Set(ctx context.Context, userID uuid.UUID, prediction Prediction, now time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.launcher.cache.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entry := cacheEntry{
		Prediction: prediction,
		CachedAt:   now.UTC(),
		ExpiresAt:  now.Add(c.ttl).UTC(),
	}
	entryJson, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}

	if _, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, cacheKey(userID), string(entryJson), 0)
		pipe.ZAdd(ctx, expiryIndexKey, &redis.Z{
			Score:  float64(entry.ExpiresAt.Unix()),
			Member: userID.String(),
		})
		return nil
	}); err != nil {
		return fmt.Errorf("store prediction: %w", err)
	}

	return nil
}

// evictExpiredScript drops one cache entry and its index member, but only
// while the indexed expiry is still at or before ARGV[2]. A Set that lands
// between the range and the eviction moves the score forward and keeps the
// entry.
var evictExpiredScript = redis.NewScript(`
local score = redis.call('ZSCORE', KEYS[1], ARGV[1])
if not score or tonumber(score) > tonumber(ARGV[2]) then
	return 0
end
redis.call('DEL', KEYS[2])
redis.call('ZREM', KEYS[1], ARGV[1])
return 1
`)

// Sweep removes the predictions that expired at or before now, as found in
// the expiry index, and returns how many were evicted.
func (c *Cache) Sweep(ctx context.Context, now time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.launcher.cache.sweep")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	members, err := c.rdb.ZRangeByScore(ctx, expiryIndexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("range expiry index: %w", err)
	}

	evicted := 0
	for _, member := range members {
		n, err := evictExpiredScript.Run(ctx, c.rdb,
			[]string{expiryIndexKey, cacheKeyPrefix + member},
			member, now.Unix(),
		).Int()
		if err != nil {
			log.Errorf("launcher cache sweep, evict %s: %s", member, err)
			continue
		}
		evicted += n
	}

	return evicted, nil
}
