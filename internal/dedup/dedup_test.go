package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-seek-scraper/internal/scraper"
)

func TestSeenCacheFiltersAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	records := []scraper.JobRecord{
		{URL: "https://www.seek.com.au/job/1", JobID: "1"},
		{URL: "https://www.seek.com.au/job/2", JobID: "2"},
	}

	cache := NewSeenCache(dir)
	fresh := cache.Unseen(records)
	require.Len(t, fresh, 2)
	cache.Add(fresh)

	// same run: nothing new
	assert.Empty(t, cache.Unseen(records))

	// a new cache instance reads the persisted file
	reloaded := NewSeenCache(dir)
	assert.Empty(t, reloaded.Unseen(records))

	more := append(records, scraper.JobRecord{URL: "https://www.seek.com.au/job/3", JobID: "3"})
	fresh = reloaded.Unseen(more)
	require.Len(t, fresh, 1)
	assert.Equal(t, "3", fresh[0].JobID)
}
