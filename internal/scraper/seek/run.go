package seek

import (
	"context"

	"go-seek-scraper/internal/config"
	"go-seek-scraper/internal/fetcher"
	"go-seek-scraper/internal/scraper"
)

// Run is the single entry point the service layer calls. It validates the
// request, acquires a fresh fetch resource for this session and guarantees
// its release on every exit path, including early termination and faults.
func Run(ctx context.Context, cfg *config.Config, req scraper.SearchRequest) ([]scraper.JobRecord, scraper.TerminationReason, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	f, err := newFetcher(cfg)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return New(f).Scrape(ctx, req)
}

func newFetcher(cfg *config.Config) (fetcher.Fetcher, error) {
	if cfg.UseBrowser {
		return fetcher.NewBrowserFetcher(cfg.Headless, cfg.CookiesPath)
	}
	return fetcher.NewHTTPFetcher(), nil
}
