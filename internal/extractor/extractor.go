// Field extraction over a parsed job detail page
// Selector misses degrade to sentinels, never surface to the caller

package extractor

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-seek-scraper/internal/fetcher"
	"go-seek-scraper/internal/filter"
	"go-seek-scraper/internal/scraper"
)

// Sentinels stand in for fields the page did not yield. Downstream code
// branches on these values instead of handling missing keys.
const (
	TitleNotFound       = "Title not found"
	CompanyNotFound     = "Company not found"
	DescriptionNotFound = "Description not found"
	LocationNotFound    = "Location not found"
	PostingTimeNotFound = "Posting time not found"
	JobIDNotFound       = "Job ID not found"
)

type Extractor struct {
	fetcher fetcher.Fetcher
}

func New(f fetcher.Fetcher) *Extractor {
	return &Extractor{fetcher: f}
}

// ExtractDetails fetches a job's detail page and builds its record. It fails
// only when the underlying fetch fails; every field-level problem is absorbed
// into a sentinel value.
func (e *Extractor) ExtractDetails(ctx context.Context, jobURL string) (*scraper.JobRecord, error) {
	doc, err := e.fetcher.Fetch(ctx, jobURL)
	if err != nil {
		return nil, err
	}
	return e.buildRecord(jobURL, doc), nil
}

func (e *Extractor) buildRecord(jobURL string, doc *goquery.Document) *scraper.JobRecord {
	record := &scraper.JobRecord{
		URL:   jobURL,
		JobID: JobIDFromURL(jobURL),
	}

	// Attribute-based data-automation selectors first, brittle class names as
	// fallback: the site is not a stable API and presentational classes drift.
	record.Title = firstText(doc, TitleNotFound,
		`[data-automation="job-detail-title"]`, ".j1ww7nx7")
	record.Company = firstText(doc, CompanyNotFound,
		`[data-automation="advertiser-name"]`, ".y735df0")
	record.Description = firstText(doc, DescriptionNotFound,
		`[data-automation="jobAdDetails"]`, ".YCeva_0")
	record.Location = extractLocation(doc)
	record.PostingTime = extractPostingTime(doc)

	record.PostingAgeDays = scraper.AgeDays(filter.AgeInDays(record.PostingTime))
	record.JobType = filter.Classify(record.Title)

	return record
}

// JobIDFromURL extracts the path segment between "/job/" and the next "?".
func JobIDFromURL(url string) string {
	idx := strings.Index(url, "/job/")
	if idx == -1 {
		return JobIDNotFound
	}

	id := url[idx+len("/job/"):]
	if q := strings.Index(id, "?"); q != -1 {
		id = id[:q]
	}
	if id == "" {
		return JobIDNotFound
	}
	return id
}

// firstText walks a selector fallback chain and returns the first element's
// sanitized text, or the sentinel when the whole chain comes up empty.
func firstText(doc *goquery.Document, sentinel string, selectors ...string) string {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() > 0 {
			return Sanitize(strings.TrimSpace(node.Text()))
		}
	}
	return sentinel
}

// extractLocation reads the job-detail-location container, preferring the
// styled anchor inside it, then any anchor, then the container text, with a
// direct anchor lookup as the last resort.
func extractLocation(doc *goquery.Document) string {
	container := doc.Find(`[data-automation="job-detail-location"]`).First()
	if container.Length() > 0 {
		if link := container.Find(`a[class*="gepq850"]`).First(); link.Length() > 0 {
			return Sanitize(strings.TrimSpace(link.Text()))
		}
		if link := container.Find("a").First(); link.Length() > 0 {
			return Sanitize(strings.TrimSpace(link.Text()))
		}
		return Sanitize(strings.TrimSpace(container.Text()))
	}

	if link := doc.Find(`a[href*="/jobs/in-"][class*="gepq850"]`).First(); link.Length() > 0 {
		return Sanitize(strings.TrimSpace(link.Text()))
	}

	return LocationNotFound
}

// extractPostingTime scans the detail container's spans in document order and
// takes the first one that looks like a relative posting time.
func extractPostingTime(doc *goquery.Document) string {
	postingTime := PostingTimeNotFound

	doc.Find(`[data-automation="jobDetailsPage"] span`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if strings.Contains(text, "Posted") && containsAnyUnit(text) {
			postingTime = Sanitize(text)
			return false
		}
		return true
	})

	return postingTime
}

func containsAnyUnit(text string) bool {
	for _, unit := range []string{"ago", "h", "d", "m"} {
		if strings.Contains(text, unit) {
			return true
		}
	}
	return false
}
