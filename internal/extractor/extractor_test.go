package extractor

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-seek-scraper/internal/fetcher"
)

// docFetcher serves canned documents keyed by URL.
type docFetcher struct {
	pages map[string]string
}

func (f *docFetcher) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	html, ok := f.pages[url]
	if !ok {
		return nil, &fetcher.FetchError{URL: url, Attempts: 3, Err: fmt.Errorf("no such page")}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (f *docFetcher) Close() error { return nil }

const detailPage = `<html><body>
<div data-automation="jobDetailsPage">
  <h1 data-automation="job-detail-title">Senior Data Engineer</h1>
  <span data-automation="advertiser-name">Acme Analytics</span>
  <div data-automation="job-detail-location"><a class="gepq850x">Sydney NSW</a></div>
  <span>Full time</span>
  <span>Posted 3h ago</span>
  <div data-automation="jobAdDetails">Build pipelines.</div>
</div>
</body></html>`

func TestExtractDetails(t *testing.T) {
	url := "https://www.seek.com.au/job/12345678?type=standard"
	e := New(&docFetcher{pages: map[string]string{url: detailPage}})

	record, err := e.ExtractDetails(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, url, record.URL)
	assert.Equal(t, "12345678", record.JobID)
	assert.Equal(t, "Senior Data Engineer", record.Title)
	assert.Equal(t, "Acme Analytics", record.Company)
	assert.Equal(t, "Sydney NSW", record.Location)
	assert.Equal(t, "Build pipelines.", record.Description)
	assert.Equal(t, "Posted 3h ago", record.PostingTime)
	assert.InDelta(t, 3.0/24, float64(record.PostingAgeDays), 1e-9)
	assert.Equal(t, "Data Engineer", record.JobType)
}

func TestExtractDetailsAllSentinels(t *testing.T) {
	url := "https://www.seek.com.au/expired"
	e := New(&docFetcher{pages: map[string]string{url: `<html><body><p>Gone</p></body></html>`}})

	record, err := e.ExtractDetails(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, JobIDNotFound, record.JobID)
	assert.Equal(t, TitleNotFound, record.Title)
	assert.Equal(t, CompanyNotFound, record.Company)
	assert.Equal(t, LocationNotFound, record.Location)
	assert.Equal(t, DescriptionNotFound, record.Description)
	assert.Equal(t, PostingTimeNotFound, record.PostingTime)
	assert.True(t, math.IsInf(float64(record.PostingAgeDays), 1))
	assert.Equal(t, "unknown", record.JobType)
}

func TestExtractDetailsFetchFailure(t *testing.T) {
	e := New(&docFetcher{pages: map[string]string{}})

	_, err := e.ExtractDetails(context.Background(), "https://www.seek.com.au/job/1")
	require.Error(t, err)
}

func TestSelectorFallbackChain(t *testing.T) {
	// Only the brittle class selectors are present
	html := `<html><body>
	<h1 class="j1ww7nx7">Data Analyst</h1>
	<span class="y735df0">Fallback Co</span>
	<div class="YCeva_0">Analyze things.</div>
	</body></html>`
	url := "https://www.seek.com.au/job/99"
	e := New(&docFetcher{pages: map[string]string{url: html}})

	record, err := e.ExtractDetails(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, "Data Analyst", record.Title)
	assert.Equal(t, "Fallback Co", record.Company)
	assert.Equal(t, "Analyze things.", record.Description)
}

func TestExtractLocationFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			"container with plain anchor",
			`<div data-automation="job-detail-location"><a>Melbourne VIC</a></div>`,
			"Melbourne VIC",
		},
		{
			"container text only",
			`<div data-automation="job-detail-location">Brisbane QLD</div>`,
			"Brisbane QLD",
		},
		{
			"direct anchor without container",
			`<a href="/jobs/in-Perth" class="gepq850z">Perth WA</a>`,
			"Perth WA",
		},
		{
			"nothing at all",
			`<p>no location here</p>`,
			LocationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + tt.html + "</body></html>"))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, extractLocation(doc))
		})
	}
}

func TestExtractPostingTimeFirstMatchWins(t *testing.T) {
	html := `<html><body><div data-automation="jobDetailsPage">
	<span>Posted somewhere nice</span>
	<span>Posted 5d ago</span>
	<span>Posted 1d ago</span>
	</div></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	// Unit tokens are loose substrings ("somewhere" carries an "h"), so the
	// first span in document order qualifies and wins.
	assert.Equal(t, "Posted somewhere nice", extractPostingTime(doc))
}

func TestJobIDFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.seek.com.au/job/84211001?type=standout", "84211001"},
		{"https://www.seek.com.au/job/84211001", "84211001"},
		{"https://www.seek.com.au/jobs?keywords=data", JobIDNotFound},
		{"https://www.seek.com.au/job/", JobIDNotFound},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, JobIDFromURL(tt.url), tt.url)
	}
}

func TestSanitizeReplacesIllFormed(t *testing.T) {
	dirty := "Data Analyst \xff\xfe Sydney"
	clean := Sanitize(dirty)
	assert.True(t, utf8.ValidString(clean))
	// Replaced, not dropped
	assert.Contains(t, clean, "Data Analyst")
	assert.Contains(t, clean, "Sydney")
	assert.Equal(t, len([]rune(clean)), len([]rune("Data Analyst �� Sydney")))
}
