package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/kwameosei/ghanajobs/internal/model"
)

// Janitor periodically purges expired entries from a ResultCache. Expiry
// correctness never depends on it (Get filters stale rows itself); it only
// keeps the backing store from growing without bound.
type Janitor struct {
	cache    model.ResultCache
	interval time.Duration
	logger   *slog.Logger
}

// NewJanitor creates a janitor that purges on the given interval.
func NewJanitor(cache model.ResultCache, interval time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

// Run purges once immediately, then on every tick. It returns when ctx is
// cancelled.
func (j *Janitor) Run(ctx context.Context) {
	j.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(j.interval):
			j.purge(ctx)
		}
	}
}

func (j *Janitor) purge(ctx context.Context) {
	n, err := j.cache.PurgeExpired(ctx)
	if err != nil {
		j.logger.Error("cache purge failed", "error", err)
		return
	}
	if n > 0 {
		j.logger.Info("purged expired cache entries", "count", n)
	}
}
