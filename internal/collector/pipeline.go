// Package collector implements the hotel data collection pipeline:
// URL discovery, per-URL scraping with bounded retries, validation, and
// persistence, in that order.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/ThamuMnyulwa/multi-agent-data-collector/pkg/models"
)

// ErrNoURLs is returned when every discovery path came back empty; it is the
// only discovery-related error the pipeline surfaces.
var ErrNoURLs = errors.New("no hotel URLs could be discovered")

// Sink persists a finished collection result.
type Sink interface {
	Save(result models.CollectionResult) error
}

// Pipeline runs one collection end to end. Records come out in the exact
// order their URLs went in, and no URL is ever dropped: failures are flagged
// records, not gaps.
type Pipeline struct {
	source  *URLSource
	scraper *Scraper
	sink    Sink
	mirror  Sink
	workers int
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithWorkers bounds concurrent scrape calls. The default of 1 keeps the
// run sequential.
func WithWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithMirror adds a best-effort secondary sink (e.g. Postgres). Mirror
// failures are logged, not fatal.
func WithMirror(sink Sink) PipelineOption {
	return func(p *Pipeline) { p.mirror = sink }
}

func NewPipeline(source *URLSource, scraper *Scraper, sink Sink, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		source:  source,
		scraper: scraper,
		sink:    sink,
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline for a location. A per-URL scrape failure never
// aborts the run; only total URL-discovery failure or a persistence failure
// do. On persistence failure the in-memory result is still returned.
func (p *Pipeline) Run(ctx context.Context, location string, max int, preScraped []string) (models.CollectionResult, error) {
	// 1. Discover URLs.
	log.Println("Step 1: Collecting hotel URLs...")
	urls, err := p.source.CollectURLs(ctx, location, max, preScraped)
	if err != nil {
		return models.CollectionResult{}, fmt.Errorf("%w: %v", ErrNoURLs, err)
	}
	if len(urls) == 0 {
		return models.CollectionResult{}, ErrNoURLs
	}

	// 2. Scrape each URL, preserving batch order.
	log.Printf("Step 2: Scraping %d hotel pages...", len(urls))
	records := p.scrapeAll(ctx, urls)

	// 3. Validate everything.
	for i := range records {
		records[i] = Validate(records[i])
	}

	result := models.CollectionResult{
		Location:        location,
		ValidatedHotels: records,
	}

	// 4. Persist. The mirror is best-effort, the primary sink is not.
	if p.mirror != nil {
		if err := p.mirror.Save(result); err != nil {
			log.Printf("Warning: mirror save failed: %v", err)
		}
	}
	if p.sink != nil {
		if err := p.sink.Save(result); err != nil {
			return result, fmt.Errorf("saving results: %w", err)
		}
	}

	return result, nil
}

// scrapeAll fans the batch out over the worker pool. Each worker writes into
// its URL's slot by index, so output order always equals input order no
// matter how many workers run.
func (p *Pipeline) scrapeAll(ctx context.Context, urls []string) []models.HotelRecord {
	records := make([]models.HotelRecord, len(urls))

	workers := p.workers
	if workers < 1 {
		workers = 1
	}
	if workers == 1 {
		for i, u := range urls {
			records[i] = p.scraper.Scrape(ctx, u)
		}
		return records
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i] = p.scraper.Scrape(ctx, urls[i])
			}
		}()
	}
	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return records
}
