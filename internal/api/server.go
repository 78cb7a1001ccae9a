// HTTP service layer: a thin caller of the scrape pipeline
// Sync scraping, background scraping with status files, health

package api

import (
	"context"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-seek-scraper/internal/config"
	"go-seek-scraper/internal/scraper"
	"go-seek-scraper/internal/scraper/seek"
	"go-seek-scraper/internal/status"
)

// backgroundTimeout bounds one background scrape run.
const backgroundTimeout = 10 * time.Minute

// RunFunc is the pipeline entry point; swapped for a stub in handler tests.
type RunFunc func(ctx context.Context, cfg *config.Config, req scraper.SearchRequest) ([]scraper.JobRecord, scraper.TerminationReason, error)

type Server struct {
	cfg   *config.Config
	store *status.Store
	run   RunFunc
}

func NewServer(cfg *config.Config) *Server {
	return &Server{
		cfg:   cfg,
		store: status.NewStore(cfg.ResultsDir),
		run:   seek.Run,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/", s.root)
	r.GET("/health", s.health)
	r.POST("/scrape", s.scrape)
	r.POST("/scrape/async", s.scrapeAsync)
	r.GET("/status/:job_id", s.jobStatus)
	return r
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Seek Job Scraper API",
		"endpoints": gin.H{
			"/scrape":         "POST - Scrape jobs and return results directly",
			"/scrape/async":   "POST - Start a background scrape, returns a job id",
			"/status/:job_id": "GET - Check a background scrape's status and results",
			"/health":         "GET - Check API health status",
		},
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// scrape runs the pipeline synchronously and returns its output as JSON.
func (s *Server) scrape(c *gin.Context) {
	var req scraper.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "failed",
			"error":  err.Error(),
		})
		return
	}

	start := time.Now()
	records, reason, err := s.run(c.Request.Context(), s.cfg, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "failed",
			"error":  "Scraping failed: " + err.Error(),
		})
		return
	}

	if records == nil {
		records = []scraper.JobRecord{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":                 "success",
		"job_count":              len(records),
		"execution_time_seconds": math.Round(time.Since(start).Seconds()*100) / 100,
		"termination_reason":     reason,
		"data":                   records,
	})
}

// scrapeAsync starts the pipeline in the background and hands back a job id
// the caller can poll.
func (s *Server) scrapeAsync(c *gin.Context) {
	var req scraper.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "failed",
			"error":  err.Error(),
		})
		return
	}

	jobID := status.NewJobID()
	if err := s.store.MarkProcessing(jobID, req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "failed",
			"error":  "Could not start background job: " + err.Error(),
		})
		return
	}

	go s.runBackground(jobID, req)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":           jobID,
		"status":           status.StateProcessing,
		"message":          "Job scraping started in the background",
		"check_status_url": "/status/" + jobID,
	})
}

func (s *Server) runBackground(jobID string, req scraper.SearchRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
	defer cancel()

	records, reason, err := s.run(ctx, s.cfg, req)
	if err != nil {
		log.Printf("❌ Background job %s failed: %v", jobID, err)
		if err := s.store.MarkFailed(jobID, err); err != nil {
			log.Printf("⚠️ Failed to record job failure: %v", err)
		}
		return
	}

	log.Printf("✅ Background job %s finished: %d jobs (%s)", jobID, len(records), reason)
	if err := s.store.MarkCompleted(jobID, records); err != nil {
		log.Printf("⚠️ Failed to record job completion: %v", err)
	}
}

func (s *Server) jobStatus(c *gin.Context) {
	jobID := c.Param("job_id")

	record, results, err := s.store.Get(jobID)
	if err != nil {
		if err == status.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job ID " + jobID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"job_id":     record.JobID,
		"status":     record.Status,
		"start_time": record.StartTime,
		"end_time":   record.EndTime,
		"params":     record.Params,
		"job_count":  record.JobCount,
		"message":    record.Message,
	}
	if record.Error != "" {
		resp["error"] = record.Error
	}
	if results != nil {
		resp["results"] = results
	}
	c.JSON(http.StatusOK, resp)
}
