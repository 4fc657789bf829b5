package collector

import (
	"context"
	"log"
	"strings"

	"github.com/ThamuMnyulwa/multi-agent-data-collector/internal/scout"
)

// crawlLimit caps how many pages the crawl collaborator visits when looking
// for hotel links on the directory site.
const crawlLimit = 20

// Crawler is the external crawl collaborator (crawl a site, return its URLs).
type Crawler interface {
	CrawlURLs(ctx context.Context, startURL string, limit int) ([]string, error)
}

// LinkScout reads the directory page locally when the crawl API yields nothing.
type LinkScout interface {
	CollectHotelLinks(ctx context.Context, startURL string, limit int) ([]string, error)
}

// URLGenerator is the generative fallback collaborator.
type URLGenerator interface {
	GenerateHotelURLs(ctx context.Context, location string, count int) ([]string, error)
}

// URLSource produces the ordered batch of candidate hotel URLs for a run.
// Discovery falls through crawl -> local scout -> generator; a pre-supplied
// batch short-circuits all of it.
type URLSource struct {
	startURL  string
	crawler   Crawler
	scout     LinkScout
	generator URLGenerator
}

func NewURLSource(startURL string, crawler Crawler, linkScout LinkScout, generator URLGenerator) *URLSource {
	return &URLSource{
		startURL:  startURL,
		crawler:   crawler,
		scout:     linkScout,
		generator: generator,
	}
}

// CollectURLs returns at most max non-empty URLs. An empty result is not an
// error; the returned error is non-nil only when the generative fallback
// itself failed and nothing else produced URLs.
func (u *URLSource) CollectURLs(ctx context.Context, location string, max int, preScraped []string) ([]string, error) {
	// 1. Pre-supplied batch wins outright.
	if batch := cleanURLs(preScraped, max); len(batch) > 0 {
		log.Printf("Using %d pre-scraped hotel URLs", len(batch))
		return batch, nil
	}

	// 2. Crawl the directory site through the crawl collaborator.
	if u.crawler != nil && u.startURL != "" {
		urls, err := u.crawler.CrawlURLs(ctx, u.startURL, crawlLimit)
		if err != nil {
			log.Printf("Crawl failed for %s: %v", u.startURL, err)
		} else if batch := cleanURLs(filterHotelURLs(urls), max); len(batch) > 0 {
			log.Printf("Crawl found %d hotel URLs", len(batch))
			return batch, nil
		}
	}

	// 3. Read the directory page directly.
	if u.scout != nil && u.startURL != "" {
		urls, err := u.scout.CollectHotelLinks(ctx, u.startURL, max)
		if err != nil {
			log.Printf("Scout failed for %s: %v", u.startURL, err)
		} else if batch := cleanURLs(urls, max); len(batch) > 0 {
			return batch, nil
		}
	}

	// 4. Ask the model for well-known hotels in the location.
	if u.generator == nil {
		return nil, nil
	}
	log.Printf("No hotel URLs found, generating URLs for %q", location)
	urls, err := u.generator.GenerateHotelURLs(ctx, location, max)
	if err != nil {
		return nil, err
	}
	return cleanURLs(urls, max), nil
}

func filterHotelURLs(urls []string) []string {
	var out []string
	for _, link := range urls {
		if scout.IsHotelURL(link) {
			out = append(out, link)
		}
	}
	return out
}

func cleanURLs(urls []string, max int) []string {
	var out []string
	for _, link := range urls {
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}
		out = append(out, link)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}
