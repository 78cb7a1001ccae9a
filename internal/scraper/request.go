package scraper

import "errors"

var (
	ErrMissingSearchURL = errors.New("search_url is required")
	ErrInvalidLimit     = errors.New("max_pages and num_jobs must be positive")
)

// SearchRequest describes one scrape run. Immutable once the run starts.
// Binding tags drive gin's request validation in the API layer.
type SearchRequest struct {
	SearchURL       string `json:"search_url" binding:"required,url"`
	MaxPages        *int   `json:"max_pages,omitempty" binding:"omitempty,gt=0"`
	NumJobs         *int   `json:"num_jobs,omitempty" binding:"omitempty,gt=0"`
	PostedTimeLimit string `json:"posted_time_limit,omitempty"`
	JobTitleFilter  string `json:"job_title_filter,omitempty"`
}

// Validate rejects malformed requests before any fetch happens. The API layer
// already binds with the same rules; this guards direct library callers.
func (r SearchRequest) Validate() error {
	if r.SearchURL == "" {
		return ErrMissingSearchURL
	}
	if r.MaxPages != nil && *r.MaxPages <= 0 {
		return ErrInvalidLimit
	}
	if r.NumJobs != nil && *r.NumJobs <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// TerminationReason records why a scrape run stopped. Callers use it to tell
// complete result sets from partial ones.
type TerminationReason string

const (
	ReasonMaxJobsReached    TerminationReason = "max_jobs_reached"
	ReasonTimeLimitExceeded TerminationReason = "time_limit_exceeded"
	ReasonMaxPagesReached   TerminationReason = "max_pages_reached"
	ReasonNoNextPage        TerminationReason = "no_next_page"
	ReasonFetchExhausted    TerminationReason = "fetch_exhausted"
)
