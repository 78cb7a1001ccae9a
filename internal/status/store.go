// File-backed status tracking for background scrape jobs
// The pipeline never touches this; only the API layer reports into it

package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-seek-scraper/internal/scraper"
)

var ErrNotFound = errors.New("job id not found")

const (
	StateProcessing = "processing"
	StateCompleted  = "completed"
	StateFailed     = "failed"
)

// Record is the persisted status of one background scrape job.
type Record struct {
	JobID     string                `json:"job_id"`
	Status    string                `json:"status"`
	StartTime string                `json:"start_time"`
	EndTime   string                `json:"end_time,omitempty"`
	Params    scraper.SearchRequest `json:"params"`
	JobCount  int                   `json:"job_count,omitempty"`
	Error     string                `json:"error,omitempty"`
	Message   string                `json:"message,omitempty"`
}

// Store keeps one status file and one results file per job id.
type Store struct {
	mu  sync.Mutex
	dir string
}

func NewStore(dir string) *Store {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create results directory: %v", err)
	}
	return &Store{dir: dir}
}

// NewJobID derives an opaque identifier from a monotonic timestamp.
func NewJobID() string {
	return "job_" + time.Now().Format("20060102150405")
}

func (s *Store) MarkProcessing(jobID string, req scraper.SearchRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeStatus(Record{
		JobID:     jobID,
		Status:    StateProcessing,
		StartTime: time.Now().Format(time.RFC3339),
		Params:    req,
		Message:   "Job scraping started in the background",
	})
}

func (s *Store) MarkCompleted(jobID string, results []scraper.JobRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.readStatus(jobID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(s.resultsPath(jobID), data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	record.Status = StateCompleted
	record.EndTime = time.Now().Format(time.RFC3339)
	record.JobCount = len(results)
	record.Message = "Scraping completed successfully"
	return s.writeStatus(*record)
}

func (s *Store) MarkFailed(jobID string, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.readStatus(jobID)
	if err != nil {
		return err
	}

	record.Status = StateFailed
	record.EndTime = time.Now().Format(time.RFC3339)
	record.Error = cause.Error()
	record.Message = "Scraping failed due to an error"
	return s.writeStatus(*record)
}

// Get returns a job's status record, plus its results when completed.
func (s *Store) Get(jobID string) (*Record, []scraper.JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.readStatus(jobID)
	if err != nil {
		return nil, nil, err
	}

	if record.Status != StateCompleted {
		return record, nil, nil
	}

	data, err := os.ReadFile(s.resultsPath(jobID))
	if err != nil {
		if os.IsNotExist(err) {
			return record, nil, nil
		}
		return nil, nil, err
	}

	var results []scraper.JobRecord
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, nil, fmt.Errorf("failed to parse results file: %w", err)
	}
	return record, results, nil
}

func (s *Store) readStatus(jobID string) (*Record, error) {
	data, err := os.ReadFile(s.statusPath(jobID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse status file: %w", err)
	}
	return &record, nil
}

func (s *Store) writeStatus(record Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	return os.WriteFile(s.statusPath(record.JobID), data, 0644)
}

func (s *Store) statusPath(jobID string) string {
	return filepath.Join(s.dir, jobID+"_status.json")
}

func (s *Store) resultsPath(jobID string) string {
	return filepath.Join(s.dir, jobID+"_results.json")
}
