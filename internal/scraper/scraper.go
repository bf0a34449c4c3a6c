package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/kwameosei/ghanajobs/internal/model"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// maxBodyBytes caps how much of a page is read; job postings are small and
// this guards against pathological responses.
const maxBodyBytes = 2 << 20

// Ensure Scraper implements model.ContentFetcher.
var _ model.ContentFetcher = (*Scraper)(nil)

// Scraper fetches a job-posting page over HTTP and extracts its visible text.
// Ordinary failures — network errors, non-2xx statuses, parse problems — are
// reported as Success=false, never as an error: the pipeline continues with
// text-only analysis. The scraper enforces its own bounded wait via the
// injected client's timeout plus a capped retry budget for 429/5xx responses.
type Scraper struct {
	client     *http.Client
	limiter    *hostLimiter
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewScraper creates a scraper. maxRetries is the number of additional
// attempts after a transient failure; retryDelay is the base backoff, doubled
// per attempt unless the server sent Retry-After.
func NewScraper(client *http.Client, minHostDelay time.Duration, maxRetries int, retryDelay time.Duration, logger *slog.Logger) *Scraper {
	return &Scraper{
		client:     client,
		limiter:    newHostLimiter(minHostDelay),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// siteContent picks the main posting container for known job boards so the
// extracted text is mostly the posting itself. Falls back to the whole page.
func siteContent(host string, root *html.Node) *html.Node {
	switch {
	case strings.Contains(host, "greenhouse.io"):
		if n := findNode(root, byID("content")); n != nil {
			return n
		}
	case strings.Contains(host, "lever.co"):
		if n := findNode(root, byClass("posting-description")); n != nil {
			return n
		}
	case strings.Contains(host, "workable.com"):
		if n := findNode(root, byAttr("data-ui", "job-description")); n != nil {
			return n
		}
	case strings.Contains(host, "weworkremotely.com"):
		if n := findNode(root, byClass("listing-container")); n != nil {
			return n
		}
	}
	// RemoteOK and unknown boards use whole-page text.
	return root
}

// Fetch retrieves the page at rawURL and returns its extracted text.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) model.ScrapedContent {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		s.logger.Warn("scrape skipped, bad url", "url", rawURL, "error", err)
		return model.ScrapedContent{}
	}

	if err := s.limiter.Wait(ctx, u.Host); err != nil {
		s.logger.Warn("scrape cancelled while rate limited", "url", rawURL, "error", err)
		return model.ScrapedContent{}
	}

	body, err := s.fetchWithRetry(ctx, rawURL)
	if err != nil {
		s.logger.Warn("scrape failed", "url", rawURL, "error", err)
		return model.ScrapedContent{}
	}

	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		s.logger.Warn("scrape parse failed", "url", rawURL, "error", err)
		return model.ScrapedContent{}
	}

	text := extractText(siteContent(strings.ToLower(u.Host), root))
	if text == "" {
		s.logger.Warn("scrape yielded no text", "url", rawURL)
		return model.ScrapedContent{}
	}

	s.logger.Debug("scraped page", "url", rawURL, "chars", len(text))
	return model.ScrapedContent{RawText: text, Success: true}
}

// fetchWithRetry performs the GET, retrying transient failures with
// exponential backoff. The budget is small and every wait is ctx-aware, so
// the total time stays bounded by the client timeout times the attempt count.
func (s *Scraper) fetchWithRetry(ctx context.Context, rawURL string) (string, error) {
	body, err := s.fetchOnce(ctx, rawURL)
	if err == nil {
		return body, nil
	}

	lastErr := err
	for attempt := 1; attempt <= s.maxRetries && isRetryable(lastErr); attempt++ {
		delay := s.backoffDelay(attempt, lastErr)
		s.logger.Debug("retrying scrape", "url", rawURL, "attempt", attempt, "delay", delay, "error", lastErr)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("scrape cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		body, err = s.fetchOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func (s *Scraper) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// backoffDelay computes the delay for a given attempt. A server-sent
// Retry-After takes precedence over exponential backoff.
func (s *Scraper) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}
	delay := s.retryDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

// isRetryable reports whether the failure is transient: 429, 5xx, or a
// non-HTTP (network) error. Context cancellation is never retried.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	return true
}
