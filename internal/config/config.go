package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// FirecrawlAPIKey maps to FIRECRAWL_API_KEY. Required for the crawl and
	// extraction endpoints; without it every scrape fails and records come
	// back flagged.
	FirecrawlAPIKey string `envconfig:"FIRECRAWL_API_KEY"`

	// OpenAIAPIKey maps to OPENAI_API_KEY. When missing, the URL generator
	// falls back to a small built-in list of well-known hotels.
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	// DatabaseURL maps to DB_URL. Optional: when set, collected records are
	// mirrored into Postgres in addition to the JSON result file.
	DatabaseURL string `envconfig:"DB_URL"`

	// StartURL is the hotel directory page the URL source crawls first.
	StartURL string `envconfig:"START_URL" default:"https://www.top10hotels.com/"`

	// Workers bounds concurrent scrape calls. 1 keeps the run fully
	// sequential; output order is preserved either way.
	Workers int `envconfig:"WORKERS" default:"1"`

	// ScrapeRetries is how many times a failed extraction is retried before
	// the record is flagged and kept as-is.
	ScrapeRetries int `envconfig:"SCRAPE_RETRIES" default:"1"`

	// RateLimit paces calls against the extraction API.
	RateLimit time.Duration `envconfig:"RATE_LIMIT" default:"2s"`

	// OutputDir is where result files are written.
	OutputDir string `envconfig:"OUTPUT_DIR" default:"."`

	// HeadlessScout renders the directory page in a headless browser before
	// extracting links, for JS-heavy listing sites.
	HeadlessScout bool `envconfig:"HEADLESS_SCOUT" default:"false"`
}

// Load processes environment variables and populates the Config struct.
func Load() (*Config, error) {
	// Try to load .env first. In production the vars are injected directly,
	// so a missing file is fine.
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("Warning: .env file found but could not be loaded: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
