package fetcher

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"go-seek-scraper/internal/browser"
)

// BrowserFetcher is the browser-automation transport: it drives one
// exclusively-owned Chromium page so client-side rendered markup comes back
// complete. On a fatal driver fault the whole browser is torn down and
// recreated before the next retry.
type BrowserFetcher struct {
	headless    bool
	cookiesPath string
	mgr         *browser.Manager
	page        playwright.Page
	debugger    *browser.ScreenshotDebugger
	maxRetries  int
}

func NewBrowserFetcher(headless bool, cookiesPath string) (*BrowserFetcher, error) {
	f := &BrowserFetcher{
		headless:    headless,
		cookiesPath: cookiesPath,
		debugger:    browser.NewScreenshotDebugger(),
		maxRetries:  DefaultMaxRetries,
	}
	if err := f.setup(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *BrowserFetcher) setup() error {
	mgr, err := browser.NewManager(f.headless)
	if err != nil {
		return err
	}

	var cookies []playwright.OptionalCookie
	if f.cookiesPath != "" {
		cookies, err = browser.LoadCookies(f.cookiesPath)
		if err != nil {
			log.Printf("⚠️ Could not load cookies from %s: %v. Continuing without.", f.cookiesPath, err)
			cookies = nil
		}
	}

	page, err := mgr.NewPage(cookies)
	if err != nil {
		mgr.Close()
		return err
	}

	f.mgr = mgr
	f.page = page
	return nil
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var lastErr error

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := f.attempt(url)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		log.Printf("⚠️ Browser attempt %d failed for %s: %v", attempt+1, url, err)

		if attempt < f.maxRetries-1 {
			if err := sleepCtx(ctx, backoff(attempt)); err != nil {
				return nil, err
			}
			// A dead driver cannot be retried, rebuild it first
			if isFatalDriverFault(err) {
				log.Println("🔄 Fatal driver fault, recreating browser...")
				f.teardown()
				if err := f.setup(); err != nil {
					lastErr = err
				}
			}
		}
	}

	if f.page != nil {
		f.debugger.CaptureAndLog(f.page, "fetch-exhausted", fmt.Sprintf("🚨 Giving up on %s", url))
	}
	return nil, &FetchError{URL: url, Attempts: f.maxRetries, Err: lastErr}
}

func (f *BrowserFetcher) attempt(url string) (*goquery.Document, error) {
	if f.page == nil {
		return nil, fmt.Errorf("browser session not available")
	}
	if _, err := f.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(requestTimeout.Seconds() * 1000),
	}); err != nil {
		return nil, err
	}

	// Human-like pause before touching the page
	browser.RandomDelay(2000, 4000)

	// Minimal readiness condition: the document body exists
	if _, err := f.page.WaitForSelector("body", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(requestTimeout.Seconds() * 1000),
	}); err != nil {
		return nil, err
	}

	html, err := f.page.Content()
	if err != nil {
		return nil, err
	}

	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// isFatalDriverFault spots conditions the retry loop cannot recover from
// without a fresh browser: an invalidated session or lost connectivity.
func isFatalDriverFault(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{
		"ERR_INTERNET_DISCONNECTED",
		"invalid session",
		"Target closed",
		"browser has been closed",
		"Connection closed",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func (f *BrowserFetcher) teardown() {
	if f.page != nil {
		f.page.Close()
		f.page = nil
	}
	if f.mgr != nil {
		f.mgr.Close()
		f.mgr = nil
	}
}

func (f *BrowserFetcher) Close() error {
	f.teardown()
	return nil
}
