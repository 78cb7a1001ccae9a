// Page retrieval with two interchangeable transports
// Both return a parsed document tree and share the same retry contract

package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultMaxRetries is how many attempts one Fetch gets before a
	// FetchError is returned.
	DefaultMaxRetries = 3

	// requestTimeout bounds every page load and readiness wait.
	requestTimeout = 30 * time.Second
)

// Fetcher retrieves the rendered document for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
	Close() error
}

// FetchError means all retry attempts for one URL were exhausted.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// sleepCtx is a cancellation-aware sleep shared by both transports. It returns
// early with the context error when the caller gives up.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoff is the shared exponential retry delay: 2^attempt seconds.
func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}
