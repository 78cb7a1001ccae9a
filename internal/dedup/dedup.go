// Seen-job cache for the one-shot CLI flow
// Keeps notification noise down across repeated runs of the same search

package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-seek-scraper/internal/scraper"
)

const retention = 30 * 24 * time.Hour

type seenEntry struct {
	URL       string `json:"url"`
	JobID     string `json:"job_id"`
	Timestamp int64  `json:"timestamp"`
}

// SeenCache remembers which job URLs were already reported. Entries expire
// after 30 days so re-posted listings surface again.
type SeenCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]seenEntry
}

func NewSeenCache(cacheDir string) *SeenCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &SeenCache{
		filePath: filepath.Join(cacheDir, "seen_jobs.json"),
		seen:     make(map[string]seenEntry),
	}
	cache.load()
	return cache
}

// Unseen returns the records whose URL has not been reported before.
func (c *SeenCache) Unseen(records []scraper.JobRecord) []scraper.JobRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fresh []scraper.JobRecord
	for _, r := range records {
		if _, exists := c.seen[r.URL]; !exists {
			fresh = append(fresh, r)
		}
	}
	return fresh
}

// Add marks records as reported and persists the cache.
func (c *SeenCache) Add(records []scraper.JobRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, r := range records {
		if _, exists := c.seen[r.URL]; !exists {
			c.seen[r.URL] = seenEntry{URL: r.URL, JobID: r.JobID, Timestamp: now}
			changed = true
		}
	}

	if changed {
		c.save()
	}
}

func (c *SeenCache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read seen_jobs.json: %v", err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse seen_jobs.json: %v", err)
		return
	}

	cutoff := time.Now().Add(-retention).UnixMilli()
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.seen[e.URL] = e
		}
	}
}

func (c *SeenCache) save() {
	entries := make([]seenEntry, 0, len(c.seen))
	for _, e := range c.seen {
		entries = append(entries, e)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen jobs: %v", err)
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write seen_jobs.json: %v", err)
	}
}
