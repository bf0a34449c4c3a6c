package cache

import (
	"context"
	"time"

	"github.com/kwameosei/ghanajobs/internal/model"
)

// NopCache is a no-op cache used when caching is disabled. Every lookup is a
// miss and writes are discarded, so each check re-runs the full pipeline.
type NopCache struct{}

func NewNopCache() *NopCache { return &NopCache{} }

func (NopCache) Get(ctx context.Context, key string) (model.CacheEntry, bool, error) {
	return model.CacheEntry{}, false, nil
}

func (NopCache) Put(ctx context.Context, key, url string, verdict model.Verdict, reason string, ttl time.Duration) error {
	return nil
}

func (NopCache) ClearAll(ctx context.Context) (int, error)     { return 0, nil }
func (NopCache) PurgeExpired(ctx context.Context) (int, error) { return 0, nil }
func (NopCache) Stats(ctx context.Context) (model.CacheStats, error) {
	return model.CacheStats{Verdicts: map[string]int{}}, nil
}
func (NopCache) Close() error { return nil }
