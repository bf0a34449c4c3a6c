package model

import (
	"context"
	"time"
)

// Source identifies which pipeline stage produced an AnalysisResult.
type Source string

const (
	SourceRule  Source = "rule"
	SourceAI    Source = "ai"
	SourceCache Source = "cache"
	SourceError Source = "error"
)

// AnalysisResult is the terminal output of one analysis: a verdict, a short
// human-readable reason (never empty), and the stage that produced it.
type AnalysisResult struct {
	Verdict Verdict
	Reason  string
	Source  Source
}

// ScrapedContent is what a ContentFetcher returns for a job-posting URL.
// When Success is false, RawText carries no guarantee.
type ScrapedContent struct {
	RawText string
	Success bool
}

// CacheEntry is a cached analysis result keyed by the hash of a normalized
// URL. An entry is valid iff now < ExpiresAt.
type CacheEntry struct {
	Key       string
	URL       string
	Verdict   Verdict
	Reason    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// CacheStats summarizes the state of a ResultCache.
type CacheStats struct {
	Total    int
	Active   int
	Expired  int
	Verdicts map[string]int // active entries per verdict string
}

// ResultCache stores analysis results with per-entry TTLs. Implementations
// must never return an expired entry as valid; physical eviction timing is
// their own business. Operations are atomic per key; concurrent writes to the
// same key are last-writer-wins.
type ResultCache interface {
	// Get returns the entry for key if present and not expired.
	Get(ctx context.Context, key string) (CacheEntry, bool, error)
	// Put inserts or fully replaces the entry for key with
	// CreatedAt = now and ExpiresAt = now + ttl.
	Put(ctx context.Context, key, url string, verdict Verdict, reason string, ttl time.Duration) error
	// ClearAll removes every entry regardless of TTL and returns the count
	// removed. Idempotent.
	ClearAll(ctx context.Context) (int, error)
	// PurgeExpired removes entries whose TTL has lapsed and returns the
	// count removed.
	PurgeExpired(ctx context.Context) (int, error)
	// Stats reports entry counts and the per-verdict breakdown.
	Stats(ctx context.Context) (CacheStats, error)
	Close() error
}

// ContentFetcher retrieves and extracts text from a job-posting page.
// Ordinary network/parse failures are reported as Success=false, never as a
// panic or error; the fetcher enforces its own bounded wait.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) ScrapedContent
}

// AIJudge classifies job-posting text when rule matching is inconclusive.
type AIJudge interface {
	// Available reports whether the judge can be invoked at all
	// (e.g. credentials configured).
	Available() bool
	// Judge returns a verdict and reason for the assembled posting text.
	// A transport or parse fault is returned as an error; the caller
	// treats it the same as unavailability.
	Judge(ctx context.Context, content string) (Verdict, string, error)
}
