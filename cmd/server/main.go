package main

import (
	"log"

	"go-seek-scraper/internal/api"
	"go-seek-scraper/internal/config"
)

func main() {
	cfg := config.Load()

	srv := api.NewServer(cfg)

	log.Printf("Server listening on port %s", cfg.Port)
	if err := srv.Router().Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
