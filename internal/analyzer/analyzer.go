package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/kwameosei/ghanajobs/internal/model"
	"github.com/kwameosei/ghanajobs/internal/rules"
)

// ExhaustedReason is the fixed reason returned when every pipeline step is
// exhausted without a verdict.
const ExhaustedReason = "Cannot determine requirements"

// maxAIContentChars caps the text handed to the AI judge.
const maxAIContentChars = 8000

// Analyzer owns the full decision pipeline for one job-posting URL:
// cache lookup → rules on caller text → rules on scraped content → AI judge,
// with each step short-circuiting on a non-unclear result. Terminal verdicts
// are written back to the cache; exhaustion results never are, so a later
// call can succeed once scraping recovers or the AI becomes available.
type Analyzer struct {
	rules        *rules.Engine
	cache        model.ResultCache
	fetcher      model.ContentFetcher
	judge        model.AIJudge
	ttl          time.Duration
	storeUnclear bool
	logger       *slog.Logger
}

// NewAnalyzer creates an analyzer wired with all its dependencies.
// ttl is the cache lifetime for terminal verdicts. storeUnclear controls
// whether an AI-sourced unclear verdict is cached.
func NewAnalyzer(
	engine *rules.Engine,
	cache model.ResultCache,
	fetcher model.ContentFetcher,
	judge model.AIJudge,
	ttl time.Duration,
	storeUnclear bool,
	logger *slog.Logger,
) *Analyzer {
	return &Analyzer{
		rules:        engine,
		cache:        cache,
		fetcher:      fetcher,
		judge:        judge,
		ttl:          ttl,
		storeUnclear: storeUnclear,
		logger:       logger,
	}
}

// Analyze classifies the posting at rawURL. callerText is the free-text
// context supplied by the caller (e.g. the chat message the URL appeared in)
// and may be empty. An error is returned only for contract violations — an
// empty or unparseable URL; every runtime failure degrades to a verdict.
func (a *Analyzer) Analyze(ctx context.Context, callerText, rawURL string) (model.AnalysisResult, error) {
	if strings.TrimSpace(rawURL) == "" {
		return model.AnalysisResult{}, errors.New("analyze: empty URL")
	}
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	key := CacheKey(normalized)

	// Step 1: cache. A read failure degrades to a miss, never blocks analysis.
	entry, hit, err := a.cache.Get(ctx, key)
	if err != nil {
		a.logger.Warn("cache read failed, treating as miss", "url", normalized, "error", err)
	}
	if hit {
		a.logger.Debug("cache hit", "url", normalized, "verdict", entry.Verdict.String())
		return model.AnalysisResult{Verdict: entry.Verdict, Reason: entry.Reason, Source: model.SourceCache}, nil
	}

	// Step 2: rules over the caller-supplied text.
	if verdict, reason := a.rules.Classify(callerText, rawURL); verdict != model.Unclear {
		a.store(ctx, key, normalized, verdict, reason)
		return model.AnalysisResult{Verdict: verdict, Reason: reason, Source: model.SourceRule}, nil
	}

	// Step 3: rules over scraped page content.
	content := a.fetcher.Fetch(ctx, rawURL)
	if content.Success && content.RawText != "" {
		if verdict, reason := a.rules.Classify(content.RawText, rawURL); verdict != model.Unclear {
			reason += " (from scraped content)"
			a.store(ctx, key, normalized, verdict, reason)
			return model.AnalysisResult{Verdict: verdict, Reason: reason, Source: model.SourceRule}, nil
		}
	}

	// Step 4: AI judge over the assembled context, scraped text first.
	if a.judge.Available() {
		verdict, reason, err := a.judge.Judge(ctx, assembleContent(callerText, content))
		if err != nil {
			a.logger.Warn("ai judge failed", "url", normalized, "error", err)
		} else {
			reason += " (AI analysis)"
			if verdict != model.Unclear || a.storeUnclear {
				a.store(ctx, key, normalized, verdict, reason)
			}
			return model.AnalysisResult{Verdict: verdict, Reason: reason, Source: model.SourceAI}, nil
		}
	}

	// Step 5: exhaustion. Never cached.
	return model.AnalysisResult{Verdict: model.Unclear, Reason: ExhaustedReason, Source: model.SourceError}, nil
}

// ClearCache removes every cached verdict and returns the count removed.
func (a *Analyzer) ClearCache(ctx context.Context) (int, error) {
	return a.cache.ClearAll(ctx)
}

// store writes a terminal verdict to the cache. Caching is best-effort: a
// write failure is logged and swallowed.
func (a *Analyzer) store(ctx context.Context, key, url string, verdict model.Verdict, reason string) {
	if err := a.cache.Put(ctx, key, url, verdict, reason, a.ttl); err != nil {
		a.logger.Warn("cache write failed", "url", url, "error", err)
	}
}

// assembleContent builds the AI judge input: scraped text (when present)
// ahead of the caller text, truncated to keep the prompt bounded.
func assembleContent(callerText string, content model.ScrapedContent) string {
	var b strings.Builder
	if content.Success && content.RawText != "" {
		b.WriteString(content.RawText)
	}
	if callerText != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(callerText)
	}
	assembled := b.String()
	if len(assembled) > maxAIContentChars {
		assembled = assembled[:maxAIContentChars] + "...[truncated]"
	}
	return assembled
}
