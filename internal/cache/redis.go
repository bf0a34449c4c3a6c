package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kwameosei/ghanajobs/internal/model"
)

// Ensure RedisCache implements model.ResultCache.
var _ model.ResultCache = (*RedisCache)(nil)

const redisKeyPrefix = "jobcache:"

// RedisCache stores analysis results in Redis, leaning on Redis' native
// expiry for the TTL contract. For deployments that already run Redis it
// gives the same restart durability as the SQLite backend.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client; used by tests.
func NewRedisCacheFromClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// redisEntry is the JSON shape stored per key.
type redisEntry struct {
	URL       string    `json:"url"`
	Verdict   string    `json:"verdict"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get returns the entry for key if present and not expired. Redis evicts on
// expiry itself; ExpiresAt is still checked for clock-skew safety.
func (c *RedisCache) Get(ctx context.Context, key string) (model.CacheEntry, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return model.CacheEntry{}, false, nil
	}
	if err != nil {
		return model.CacheEntry{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var e redisEntry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return model.CacheEntry{}, false, fmt.Errorf("unmarshal cache entry %s: %w", key, err)
	}
	if !time.Now().Before(e.ExpiresAt) {
		return model.CacheEntry{}, false, nil
	}

	return model.CacheEntry{
		Key:       key,
		URL:       e.URL,
		Verdict:   model.ParseVerdict(e.Verdict),
		Reason:    e.Reason,
		CreatedAt: e.CreatedAt,
		ExpiresAt: e.ExpiresAt,
	}, true, nil
}

// Put inserts or fully replaces the entry for key with TTL-backed expiry.
func (c *RedisCache) Put(ctx context.Context, key, url string, verdict model.Verdict, reason string, ttl time.Duration) error {
	now := time.Now().UTC()
	data, err := json.Marshal(redisEntry{
		URL:       url,
		Verdict:   verdict.String(),
		Reason:    reason,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("marshal cache entry %s: %w", key, err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// ClearAll removes every cache key under the prefix and returns the count.
func (c *RedisCache) ClearAll(ctx context.Context) (int, error) {
	keys, err := c.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("redis del: %w", err)
	}
	return len(keys), nil
}

// PurgeExpired is a no-op for Redis: expiry is native. It returns 0.
func (c *RedisCache) PurgeExpired(ctx context.Context) (int, error) {
	return 0, nil
}

// Stats reports entry counts. Redis holds no expired entries, so Total equals
// Active.
func (c *RedisCache) Stats(ctx context.Context) (model.CacheStats, error) {
	keys, err := c.scanKeys(ctx)
	if err != nil {
		return model.CacheStats{}, err
	}

	stats := model.CacheStats{Verdicts: make(map[string]int)}
	for _, key := range keys {
		data, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue // expired between scan and get
		}
		if err != nil {
			return model.CacheStats{}, fmt.Errorf("redis get %s: %w", key, err)
		}
		var e redisEntry
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			continue
		}
		stats.Total++
		stats.Active++
		stats.Verdicts[e.Verdict]++
	}
	return stats, nil
}

func (c *RedisCache) scanKeys(ctx context.Context) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := c.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
