package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-seek-scraper/internal/scraper"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(t.TempDir())
	req := scraper.SearchRequest{SearchURL: "https://www.seek.com.au/data-analyst-jobs"}

	jobID := NewJobID()
	require.NoError(t, store.MarkProcessing(jobID, req))

	record, results, err := store.Get(jobID)
	require.NoError(t, err)
	assert.Equal(t, StateProcessing, record.Status)
	assert.Equal(t, req.SearchURL, record.Params.SearchURL)
	assert.NotEmpty(t, record.StartTime)
	assert.Nil(t, results)

	scraped := []scraper.JobRecord{
		{URL: "https://www.seek.com.au/job/1", JobID: "1", Title: "Data Analyst"},
		{URL: "https://www.seek.com.au/job/2", JobID: "2", Title: "Data Engineer"},
	}
	require.NoError(t, store.MarkCompleted(jobID, scraped))

	record, results, err = store.Get(jobID)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, record.Status)
	assert.Equal(t, 2, record.JobCount)
	assert.NotEmpty(t, record.EndTime)
	require.Len(t, results, 2)
	assert.Equal(t, "Data Analyst", results[0].Title)
}

func TestStoreMarkFailed(t *testing.T) {
	store := NewStore(t.TempDir())

	jobID := NewJobID()
	require.NoError(t, store.MarkProcessing(jobID, scraper.SearchRequest{SearchURL: "https://example.com"}))
	require.NoError(t, store.MarkFailed(jobID, fmt.Errorf("browser crashed")))

	record, results, err := store.Get(jobID)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, record.Status)
	assert.Equal(t, "browser crashed", record.Error)
	assert.Nil(t, results)
}

func TestStoreUnknownJob(t *testing.T) {
	store := NewStore(t.TempDir())

	_, _, err := store.Get("job_19700101000000")
	assert.True(t, errors.Is(err, ErrNotFound))
}
