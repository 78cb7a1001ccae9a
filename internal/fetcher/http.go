package fetcher

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/PuerkitoBio/goquery"

	"go-seek-scraper/internal/browser"
)

// HTTPFetcher is the lightweight transport: a direct GET with a spoofed
// browser identity. Cheaper than driving a real browser but blind to
// client-side rendering.
type HTTPFetcher struct {
	client     *http.Client
	maxRetries int
}

func NewHTTPFetcher() *HTTPFetcher {
	// Cookie jar keeps the session cookies the site sets on first contact
	jar, _ := cookiejar.New(nil)
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		maxRetries: DefaultMaxRetries,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var lastErr error

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, retryDelay, err := f.attempt(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		log.Printf("⚠️ Attempt %d failed for %s: %v", attempt+1, url, err)

		if attempt < f.maxRetries-1 {
			delay := retryDelay
			if delay == 0 {
				delay = backoff(attempt)
			}
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
		}
	}

	return nil, &FetchError{URL: url, Attempts: f.maxRetries, Err: lastErr}
}

// attempt performs one GET. It returns the delay to use before the next try:
// transport faults get a flat 2s pause, a 403 rate-limit signal gets zero so
// the caller applies exponential backoff.
func (f *HTTPFetcher) attempt(ctx context.Context, url string) (*goquery.Document, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("User-Agent", browser.RandomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 2 * time.Second, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return nil, 2 * time.Second, fmt.Errorf("failed to parse page: %w", err)
		}
		return doc, 0, nil

	case resp.StatusCode == http.StatusForbidden:
		// Rate-limit signal, back off exponentially before retrying
		log.Printf("🚫 Received 403 Forbidden for %s, backing off", url)
		return nil, 0, fmt.Errorf("HTTP 403 Forbidden")

	default:
		return nil, 2 * time.Second, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
}

func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
