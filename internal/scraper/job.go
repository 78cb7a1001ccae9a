// Shared data types for the scrape pipeline
// Records are created once by the extractor and immutable afterwards

package scraper

import (
	"math"
	"strconv"
)

// AgeDays is a posting age in day-equivalents. +Inf marks an unparseable or
// missing posting time, so it never passes a finite recency cutoff.
type AgeDays float64

func (a AgeDays) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(a), 1) {
		return []byte(`"inf"`), nil
	}
	return []byte(strconv.FormatFloat(float64(a), 'f', -1, 64)), nil
}

func (a *AgeDays) UnmarshalJSON(data []byte) error {
	if string(data) == `"inf"` {
		*a = AgeDays(math.Inf(1))
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*a = AgeDays(v)
	return nil
}

// JobRecord is one scraped job posting. Textual fields that could not be
// extracted carry a "<field> not found" sentinel, never an empty key.
type JobRecord struct {
	URL            string  `json:"url"`
	JobID          string  `json:"job_id"`
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	Location       string  `json:"location"`
	Description    string  `json:"description"`
	PostingTime    string  `json:"posting_time"`
	PostingAgeDays AgeDays `json:"posting_age_days"`
	JobType        string  `json:"job_type"`
}
