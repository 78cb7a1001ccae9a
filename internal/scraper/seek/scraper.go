// Seek scrape pipeline: page traversal, card filtering, detail extraction
// Listings are assumed newest-first; one stale posting ends the whole run

package seek

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"go-seek-scraper/internal/extractor"
	"go-seek-scraper/internal/fetcher"
	"go-seek-scraper/internal/filter"
	"go-seek-scraper/internal/scraper"
)

const (
	jobCardSelector   = `article[data-automation="normalJob"], [data-automation="jobCard"]`
	cardTitleSelector = `[data-automation="jobTitle"]`

	detailRetries = 3
)

// Scraper drives the page-by-page traversal of one search. Delay fields are
// exported so tests can collapse the politeness pauses.
type Scraper struct {
	fetcher   fetcher.Fetcher
	extractor *extractor.Extractor
	baseURL   string

	PageDelayMin     time.Duration
	PageDelayMax     time.Duration
	DetailRetryPause time.Duration
}

func New(f fetcher.Fetcher) *Scraper {
	return &Scraper{
		fetcher:   f,
		extractor: extractor.New(f),
		baseURL:   "https://www.seek.com.au",
		// 2-5s between pages plus a settling second, rate-limit politeness
		PageDelayMin:     3 * time.Second,
		PageDelayMax:     6 * time.Second,
		DetailRetryPause: 2 * time.Second,
	}
}

// session is the mutable state of one run, owned by Scrape for its duration.
type session struct {
	currentPage int
	jobsScraped int
	results     []scraper.JobRecord
}

// Scrape walks the search results page by page until a limit is hit, the
// pages run out, or fetching breaks down. It always returns everything
// accumulated so far together with the reason it stopped; the error is
// non-nil only for an invalid request or caller cancellation.
func (s *Scraper) Scrape(ctx context.Context, req scraper.SearchRequest) ([]scraper.JobRecord, scraper.TerminationReason, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	log.Printf("🚀 Starting scrape with search URL: %s", req.SearchURL)

	sess := &session{currentPage: 1}
	currentURL := req.SearchURL

	for {
		log.Printf("📄 Scraping page %d", sess.currentPage)

		doc, err := s.fetcher.Fetch(ctx, currentURL)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return sess.results, scraper.ReasonFetchExhausted, err
			}
			log.Printf("❌ Page fetch exhausted: %v", err)
			return sess.results, scraper.ReasonFetchExhausted, nil
		}

		cards := doc.Find(jobCardSelector)
		log.Printf("📦 Found %d job cards on page %d", cards.Length(), sess.currentPage)

		for i := 0; i < cards.Length(); i++ {
			if req.NumJobs != nil && sess.jobsScraped >= *req.NumJobs {
				return sess.results, scraper.ReasonMaxJobsReached, nil
			}
			if err := ctx.Err(); err != nil {
				return sess.results, scraper.ReasonFetchExhausted, err
			}

			card := cards.Eq(i)

			// Pre-filter on the card title so rejected jobs never cost a
			// detail fetch
			cardTitle := strings.TrimSpace(card.Find(cardTitleSelector).First().Text())
			if !filter.MatchesTitle(cardTitle, req.JobTitleFilter) {
				log.Printf("⏭️ Skipping job - title doesn't match filter: %s", cardTitle)
				continue
			}

			href, ok := card.Find("a").First().Attr("href")
			if !ok {
				continue
			}
			jobURL := s.resolveURL(href)
			log.Printf("🔍 Processing job %d: %s", sess.jobsScraped+1, jobURL)

			record, err := s.extractWithRetries(ctx, jobURL)
			if err != nil {
				if ctx.Err() != nil {
					return sess.results, scraper.ReasonFetchExhausted, ctx.Err()
				}
				// One unreachable detail page skips the job, not the run
				log.Printf("⚠️ Giving up on job %s: %v", jobURL, err)
				continue
			}

			if req.PostedTimeLimit != "" && !filter.WithinLimit(record.PostingTime, req.PostedTimeLimit) {
				log.Printf("🛑 Job outside time limit (%s), stopping scrape", record.PostingTime)
				return sess.results, scraper.ReasonTimeLimitExceeded, nil
			}

			sess.results = append(sess.results, *record)
			sess.jobsScraped++
			log.Printf("✅ Scraped job %d: %s - %s", sess.jobsScraped, record.Title, record.Company)
		}

		// The limit can land exactly on a page boundary; stop before paying
		// for another page fetch
		if req.NumJobs != nil && sess.jobsScraped >= *req.NumJobs {
			return sess.results, scraper.ReasonMaxJobsReached, nil
		}

		if req.MaxPages != nil && sess.currentPage >= *req.MaxPages {
			return sess.results, scraper.ReasonMaxPagesReached, nil
		}

		nextURL := s.nextPageURL(doc, sess.currentPage)
		if nextURL == "" {
			log.Println("🏁 No next page found, ending scrape")
			return sess.results, scraper.ReasonNoNextPage, nil
		}

		if err := s.pageDelay(ctx); err != nil {
			return sess.results, scraper.ReasonFetchExhausted, err
		}

		currentURL = nextURL
		sess.currentPage++
	}
}

// extractWithRetries gives one detail page a few chances before the job is
// skipped. Retries here are local; they never restart the session.
func (s *Scraper) extractWithRetries(ctx context.Context, jobURL string) (*scraper.JobRecord, error) {
	var lastErr error
	for attempt := 0; attempt < detailRetries; attempt++ {
		record, err := s.extractor.ExtractDetails(ctx, jobURL)
		if err == nil {
			return record, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		log.Printf("⚠️ Job detail attempt %d failed: %v", attempt+1, err)
		if attempt < detailRetries-1 {
			if err := sleepCtx(ctx, s.DetailRetryPause); err != nil {
				return nil, err
			}
		}
	}
	return nil, lastErr
}

// nextPageURL locates the pagination link for the following page number.
func (s *Scraper) nextPageURL(doc *goquery.Document, currentPage int) string {
	sel := fmt.Sprintf(`[data-automation="page-%d"]`, currentPage+1)
	href, ok := doc.Find(sel).First().Attr("href")
	if !ok {
		return ""
	}
	return s.resolveURL(href)
}

// resolveURL joins a possibly-relative href against the site base.
func (s *Scraper) resolveURL(href string) string {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func (s *Scraper) pageDelay(ctx context.Context) error {
	delay := s.PageDelayMin
	if spread := s.PageDelayMax - s.PageDelayMin; spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread)))
	}
	if delay <= 0 {
		return ctx.Err()
	}
	return sleepCtx(ctx, delay)
}

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
