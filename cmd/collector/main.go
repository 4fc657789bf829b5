package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThamuMnyulwa/multi-agent-data-collector/internal/collector"
	"github.com/ThamuMnyulwa/multi-agent-data-collector/internal/config"
	"github.com/ThamuMnyulwa/multi-agent-data-collector/internal/crew"
	"github.com/ThamuMnyulwa/multi-agent-data-collector/internal/firecrawl"
	"github.com/ThamuMnyulwa/multi-agent-data-collector/internal/llm"
	"github.com/ThamuMnyulwa/multi-agent-data-collector/internal/scout"
	"github.com/ThamuMnyulwa/multi-agent-data-collector/internal/storage"
	"github.com/ThamuMnyulwa/multi-agent-data-collector/pkg/models"
)

const userAgent = "HotelDataCollector/1.0"

func main() {
	crewMode := flag.Bool("crew", false, "Run the multi-agent (crew) pipeline instead of the standard one")
	location := flag.String("location", "worldwide", "Location to search for hotels (e.g. 'New York', 'Paris')")
	count := flag.Int("count", 10, "Maximum number of hotels to collect")
	useScrapedData := flag.Bool("use-scraped-data", false, "Reuse hotel URLs from a previous run's data file")
	dataFile := flag.String("data-file", "hotels.json", "JSON file containing pre-scraped hotel data")
	workers := flag.Int("workers", 0, "Concurrent scrape workers (overrides WORKERS env, 1 = sequential)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if cfg.FirecrawlAPIKey == "" {
		log.Println("WARNING: FIRECRAWL_API_KEY not set, scrape requests will fail")
	}

	// Cancel the run on Ctrl-C; whatever was collected so far is lost, the
	// collaborators all honor the context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Interrupted, shutting down...")
		cancel()
	}()

	// Collaborators.
	fc := firecrawl.NewClient(cfg.FirecrawlAPIKey, firecrawl.WithRateLimit(cfg.RateLimit))
	generator := llm.NewGenerator(cfg.OpenAIAPIKey)

	var fetcher scout.Fetcher = scout.NewStaticFetcher(userAgent)
	if cfg.HeadlessScout {
		fetcher = scout.NewHeadlessFetcher()
	}
	linkScout := scout.New(fetcher, scout.NewGate(userAgent, cfg.RateLimit))

	source := collector.NewURLSource(cfg.StartURL, fc, linkScout, generator)
	scraper := collector.NewScraper(fc, cfg.ScrapeRetries)

	// Optional Postgres mirror.
	var mirror collector.Sink
	if cfg.DatabaseURL != "" {
		db, err := storage.WaitForDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		mirror = storage.NewPostgresSink(db)
	}

	var preScraped []string
	if *useScrapedData {
		preScraped, err = storage.LoadPreScrapedURLs(*dataFile)
		if err != nil {
			log.Printf("Could not load pre-scraped data from %s: %v", *dataFile, err)
		} else {
			log.Printf("Loaded %d hotel URLs from %s", len(preScraped), *dataFile)
		}
	}

	fmt.Printf("Searching for hotels in: %s\n", *location)

	var result models.CollectionResult
	if *crewMode {
		log.Println("Running in crew mode...")
		sink := storage.NewJSONSink(cfg.OutputDir, storage.CrewPrefix)
		opts := []crew.Option{crew.WithMaxRestarts(cfg.ScrapeRetries)}
		if mirror != nil {
			opts = append(opts, crew.WithMirror(mirror))
		}
		result, err = crew.New(source, scraper, sink, opts...).Run(ctx, *location, *count, preScraped)
	} else {
		log.Println("Running in standard mode...")
		sink := storage.NewJSONSink(cfg.OutputDir, storage.StandardPrefix)
		opts := []collector.PipelineOption{collector.WithWorkers(cfg.Workers)}
		if mirror != nil {
			opts = append(opts, collector.WithMirror(mirror))
		}
		result, err = collector.NewPipeline(source, scraper, sink, opts...).Run(ctx, *location, *count, preScraped)
	}

	// Report whatever was collected even when the run ends in an error.
	printResults(result)

	if err != nil {
		if errors.Is(err, collector.ErrNoURLs) {
			log.Fatalf("No hotel URLs found. Try a different location or start URL: %v", err)
		}
		log.Fatalf("Collection failed: %v", err)
	}
	log.Printf("Collected %d hotels for %q", len(result.ValidatedHotels), result.Location)
}

func printResults(result models.CollectionResult) {
	if len(result.ValidatedHotels) == 0 {
		return
	}
	fmt.Println("\nData collection completed. Final Results:")
	for i, h := range result.ValidatedHotels {
		fmt.Printf("\nHotel %d:\n", i+1)
		fmt.Printf("  name: %s\n", h.Name)
		fmt.Printf("  url: %s\n", h.URL)
		fmt.Printf("  address: %s\n", h.Address)
		fmt.Printf("  price: %s\n", h.Price)
		fmt.Printf("  quality_score: %d\n", h.QualityScore)
		if h.Flag != "" {
			fmt.Printf("  flag: %s\n", h.Flag)
		}
	}
}
