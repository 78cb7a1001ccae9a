package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-seek-scraper/internal/config"
	"go-seek-scraper/internal/dedup"
	"go-seek-scraper/internal/scraper"
	"go-seek-scraper/internal/scraper/seek"
	"go-seek-scraper/internal/telegram"
)

func main() {
	searchURL := flag.String("url", "", "Seek search URL to scrape (required)")
	maxPages := flag.Int("pages", 0, "maximum number of result pages (0 = unlimited)")
	numJobs := flag.Int("jobs", 0, "maximum number of jobs (0 = unlimited)")
	postedLimit := flag.String("posted", "", `recency cutoff, e.g. "1d" or "12h"`)
	titleFilter := flag.String("title", "", "keyword filter applied to card titles")
	flag.Parse()

	if *searchURL == "" {
		flag.Usage()
		os.Exit(2)
	}

	//load config
	cfg := config.Load()
	log.Println("🔧 Config loaded.")

	req := scraper.SearchRequest{SearchURL: *searchURL}
	if *maxPages > 0 {
		req.MaxPages = maxPages
	}
	if *numJobs > 0 {
		req.NumJobs = numJobs
	}
	req.PostedTimeLimit = *postedLimit
	req.JobTitleFilter = *titleFilter

	//one run gets 10 minutes, browser waits included
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Println("🚀 Starting Seek scraper...")
	records, reason, err := seek.Run(ctx, cfg, req)
	if err != nil {
		log.Fatalf("❌ Scrape failed: %v", err)
	}
	log.Printf("📦 Scraped %d jobs (stopped: %s)", len(records), reason)

	//drop jobs we already reported in earlier runs
	cache := dedup.NewSeenCache(cfg.CachePath)
	fresh := cache.Unseen(records)
	cache.Add(fresh)
	log.Printf("🔍 Deduplication: %d total -> %d unseen jobs", len(records), len(fresh))

	//notify via telegram when configured
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 && len(fresh) > 0 {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram Bot: %v", err)
		} else {
			for _, job := range fresh {
				if err := bot.SendJob(job); err != nil {
					log.Printf("⚠️ Failed to send job to Telegram: %v", err)
				}
				//1 second delay to avoid 429
				time.Sleep(1 * time.Second)
			}
			statusMsg := fmt.Sprintf("✅ Found %d new jobs (run stopped: %s).", len(fresh), reason)
			if err := bot.SendStatus(statusMsg); err != nil {
				log.Printf("⚠️ Failed to send status to Telegram: %v", err)
			}
		}
	}

	saveResults(cfg.ResultsDir, records)
	log.Println("🏁 Execution finished.")
}

func saveResults(dir string, records []scraper.JobRecord) {
	if len(records) == 0 {
		log.Println("ℹ️ No jobs to save.")
		return
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create results directory: %v", err)
		return
	}

	filename := fmt.Sprintf("job-search-%s.json", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal jobs to JSON: %v", err)
		return
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write results file: %v", err)
		return
	}

	log.Printf("📁 Results saved to %s", path)
}
