package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kwameosei/ghanajobs/internal/model"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCacheFromClient(client), mr
}

func TestRedisCache_PutGet(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	err := c.Put(ctx, "abc", "https://example.com/jobs/1", model.VisaSponsorship, "Offers visa sponsorship: 'h-1b sponsorship'", time.Hour)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	entry, ok, err := c.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get: want hit, got miss")
	}
	if entry.Verdict != model.VisaSponsorship {
		t.Errorf("Verdict = %v, want VisaSponsorship", entry.Verdict)
	}
	if entry.URL != "https://example.com/jobs/1" {
		t.Errorf("URL = %q", entry.URL)
	}
}

func TestRedisCache_ExpiryIsMiss(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "k", "https://example.com", model.Helpful, "r", time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expired entry returned as valid")
	}
}

func TestRedisCache_ClearAll(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b"} {
		if err := c.Put(ctx, key, "https://example.com/"+key, model.Helpful, "r", time.Hour); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	n, err := c.ClearAll(ctx)
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearAll removed %d, want 2", n)
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Error("entry survived ClearAll")
	}
}

func TestRedisCache_Stats(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "h", "https://example.com/1", model.Helpful, "r", time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Put(ctx, "u", "https://example.com/2", model.Unclear, "r", time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Active != 2 {
		t.Errorf("Active = %d, want 2", stats.Active)
	}
	if stats.Verdicts["helpful"] != 1 || stats.Verdicts["unclear"] != 1 {
		t.Errorf("verdict breakdown = %v", stats.Verdicts)
	}
}
