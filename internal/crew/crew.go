// Package crew is the multi-agent rendition of the collection pipeline. The
// original system handed role/goal descriptions to an agent-orchestration
// framework; here each agent is a named, stateless step with an explicit
// contract over the same collaborators: the URL collector gathers the batch,
// the scraper extracts records, the validator scores them, and a supervisor
// re-runs the scraper a bounded number of times for records that fail
// validation. The pipeline contract (ordering, no dropped URLs, error
// semantics) is identical to the standard mode.
package crew

import (
	"context"
	"fmt"
	"log"

	"github.com/ThamuMnyulwa/multi-agent-data-collector/internal/collector"
	"github.com/ThamuMnyulwa/multi-agent-data-collector/pkg/models"
)

// defaultMaxRestarts bounds how often the supervisor sends an incomplete
// record back to the scraper. Unbounded restarts against a flaky extraction
// service would never terminate.
const defaultMaxRestarts = 1

type Crew struct {
	source      *collector.URLSource
	scraper     *collector.Scraper
	sink        collector.Sink
	mirror      collector.Sink
	maxRestarts int
}

// Option configures a Crew.
type Option func(*Crew)

// WithMaxRestarts sets the supervisor's re-scrape bound.
func WithMaxRestarts(n int) Option {
	return func(c *Crew) {
		if n >= 0 {
			c.maxRestarts = n
		}
	}
}

// WithMirror adds a best-effort secondary sink.
func WithMirror(sink collector.Sink) Option {
	return func(c *Crew) { c.mirror = sink }
}

func New(source *collector.URLSource, scraper *collector.Scraper, sink collector.Sink, opts ...Option) *Crew {
	c := &Crew{
		source:      source,
		scraper:     scraper,
		sink:        sink,
		maxRestarts: defaultMaxRestarts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the crew for a location.
func (c *Crew) Run(ctx context.Context, location string, max int, preScraped []string) (models.CollectionResult, error) {
	// URL collector agent.
	log.Println("[URL Collector] Gathering hotel URLs...")
	urls, err := c.source.CollectURLs(ctx, location, max, preScraped)
	if err != nil {
		return models.CollectionResult{}, fmt.Errorf("%w: %v", collector.ErrNoURLs, err)
	}
	if len(urls) == 0 {
		return models.CollectionResult{}, collector.ErrNoURLs
	}

	// Scraper and validator agents, one URL at a time in batch order, with
	// the supervisor watching each validated record.
	records := make([]models.HotelRecord, len(urls))
	for i, u := range urls {
		log.Printf("[Scraper] Processing URL %d/%d: %s", i+1, len(urls), u)
		rec := collector.Validate(c.scraper.Scrape(ctx, u))
		records[i] = c.supervise(ctx, rec)
	}

	result := models.CollectionResult{
		Location:        location,
		ValidatedHotels: records,
	}

	if c.mirror != nil {
		if err := c.mirror.Save(result); err != nil {
			log.Printf("Warning: mirror save failed: %v", err)
		}
	}
	if c.sink != nil {
		if err := c.sink.Save(result); err != nil {
			return result, fmt.Errorf("saving results: %w", err)
		}
	}
	return result, nil
}

// supervise re-runs the scraper for a record that failed validation, keeping
// whichever attempt scored higher. At most maxRestarts restarts per record.
func (c *Crew) supervise(ctx context.Context, rec models.HotelRecord) models.HotelRecord {
	for restart := 0; restart < c.maxRestarts && rec.Flag != ""; restart++ {
		log.Printf("[Supervisor] Record for %s flagged %q, restarting scraper", rec.URL, rec.Flag)
		retry := collector.Validate(c.scraper.Scrape(ctx, rec.URL))
		if retry.QualityScore > rec.QualityScore {
			rec = retry
		}
	}
	return rec
}
