// Load envs from .env
// Load YAML config
// Env vars override the file, defaults fill the rest

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Transport selection for the page fetcher
	UseBrowser bool `yaml:"use_browser"`
	Headless   bool `yaml:"headless"`

	// Paths
	CookiesPath string `yaml:"cookies_path"`
	ResultsDir  string `yaml:"results_dir"`
	CachePath   string `yaml:"cache_path"`

	// Optional Telegram notification for the CLI flow
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		UseBrowser: true,
		Headless:   true,
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if v := os.Getenv("USE_BROWSER"); v != "" {
		cfg.UseBrowser = v == "1" || v == "true"
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		cfg.Headless = v == "1" || v == "true"
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = "results"
	}
	if cfg.CachePath == "" {
		cfg.CachePath = ".cache"
	}

	return cfg
}
