package scraper

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScraper(client *http.Client) *Scraper {
	return NewScraper(client, 0, 2, time.Millisecond, testLogger())
}

const testPage = `<!DOCTYPE html>
<html>
<head><title>Job</title><style>body { color: red }</style></head>
<body>
<script>var tracking = true;</script>
<h1>Senior Backend Engineer</h1>
<p>Worldwide remote. Work from anywhere.</p>
</body>
</html>`

func TestFetch_ExtractsVisibleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, testPage)
	}))
	t.Cleanup(srv.Close)

	s := newTestScraper(srv.Client())
	content := s.Fetch(context.Background(), srv.URL+"/jobs/1")

	if !content.Success {
		t.Fatal("Fetch: want success")
	}
	if !strings.Contains(content.RawText, "Worldwide remote") {
		t.Errorf("RawText = %q, missing body text", content.RawText)
	}
	if strings.Contains(content.RawText, "tracking") || strings.Contains(content.RawText, "color: red") {
		t.Errorf("RawText = %q, contains script/style text", content.RawText)
	}
}

func TestFetch_FailureMarkerOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden) // anti-scraping block
	}))
	t.Cleanup(srv.Close)

	s := newTestScraper(srv.Client())
	content := s.Fetch(context.Background(), srv.URL)

	if content.Success {
		t.Error("Fetch: want Success=false on 403")
	}
	if content.RawText != "" {
		t.Errorf("RawText = %q, want empty", content.RawText)
	}
}

func TestFetch_FailureMarkerOnBadURL(t *testing.T) {
	s := newTestScraper(&http.Client{})
	if content := s.Fetch(context.Background(), "::not-a-url"); content.Success {
		t.Error("Fetch: want Success=false for unparseable URL")
	}
}

func TestFetch_RetriesTransientFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, testPage)
	}))
	t.Cleanup(srv.Close)

	s := newTestScraper(srv.Client())
	content := s.Fetch(context.Background(), srv.URL)

	if !content.Success {
		t.Fatal("Fetch: want success after retry")
	}
	if calls != 2 {
		t.Errorf("server calls = %d, want 2", calls)
	}
}

func TestFetch_NoRetryOnClientError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	s := newTestScraper(srv.Client())
	if content := s.Fetch(context.Background(), srv.URL); content.Success {
		t.Error("Fetch: want Success=false on 404")
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1 (4xx not retried)", calls)
	}
}

func TestFetch_SetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		io.WriteString(w, testPage)
	}))
	t.Cleanup(srv.Close)

	newTestScraper(srv.Client()).Fetch(context.Background(), srv.URL)
	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestSiteContent(t *testing.T) {
	page := `<html><body>
	<nav>Careers Home About</nav>
	<div id="content" class="posting-description" data-ui="job-description"><p>Visa sponsorship available for this role.</p></div>
	<footer>Privacy Terms</footer>
	</body></html>`

	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tests := []struct {
		host    string
		wantNav bool
	}{
		{host: "boards.greenhouse.io", wantNav: false},
		{host: "jobs.lever.co", wantNav: false},
		{host: "apply.workable.com", wantNav: false},
		{host: "remoteok.com", wantNav: true},
		{host: "careers.example.com", wantNav: true},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			text := extractText(siteContent(tt.host, root))
			if !strings.Contains(text, "Visa sponsorship available") {
				t.Fatalf("extraction lost posting text: %q", text)
			}
			if gotNav := strings.Contains(text, "Careers Home"); gotNav != tt.wantNav {
				t.Errorf("nav text present = %v, want %v: %q", gotNav, tt.wantNav, text)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter("120"); got != 120*time.Second {
		t.Errorf("parseRetryAfter(120) = %v", got)
	}
	if got := parseRetryAfter(""); got != 0 {
		t.Errorf("parseRetryAfter(empty) = %v", got)
	}
	if got := parseRetryAfter("soon"); got != 0 {
		t.Errorf("parseRetryAfter(soon) = %v", got)
	}
}

func TestHostLimiter_SpacesRequests(t *testing.T) {
	l := newHostLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	if err := l.Wait(ctx, "example.com"); err != nil {
		t.Fatalf("first Wait: %v", err)
	}
	if err := l.Wait(ctx, "example.com"); err != nil {
		t.Fatalf("second Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("second request not delayed: elapsed %v", elapsed)
	}

	// Different host is not delayed.
	start = time.Now()
	if err := l.Wait(ctx, "other.com"); err != nil {
		t.Fatalf("other host Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 25*time.Millisecond {
		t.Errorf("unrelated host delayed: elapsed %v", elapsed)
	}
}

func TestHostLimiter_CancelledWhileWaiting(t *testing.T) {
	l := newHostLimiter(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	if err := l.Wait(ctx, "example.com"); err != nil {
		t.Fatalf("first Wait: %v", err)
	}
	cancel()
	if err := l.Wait(ctx, "example.com"); err == nil {
		t.Fatal("expected error when cancelled while waiting")
	}
}
