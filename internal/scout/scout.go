// Package scout discovers candidate hotel URLs by reading a directory page
// directly, for when the crawl API comes back empty. It fetches politely
// (robots.txt + per-domain rate limit) and can render JS-heavy pages in a
// headless browser.
package scout

import (
	"context"
	"fmt"
	"log"
)

type Scout struct {
	fetcher Fetcher
	gate    *Gate
}

func New(fetcher Fetcher, gate *Gate) *Scout {
	return &Scout{fetcher: fetcher, gate: gate}
}

// CollectHotelLinks fetches the directory page and returns up to limit
// hotel links found on it, in document order.
func (s *Scout) CollectHotelLinks(ctx context.Context, startURL string, limit int) ([]string, error) {
	if !s.gate.Allowed(startURL) {
		return nil, fmt.Errorf("scout: robots.txt disallows %s", startURL)
	}
	if err := s.gate.Wait(ctx, startURL); err != nil {
		return nil, err
	}

	rawHTML, err := s.fetcher.Fetch(ctx, startURL)
	if err != nil {
		return nil, fmt.Errorf("scout: %w", err)
	}

	all := ExtractLinks(rawHTML, startURL)

	var hotels []string
	for _, link := range all {
		if !IsHotelURL(link) {
			continue
		}
		hotels = append(hotels, link)
		if limit > 0 && len(hotels) >= limit {
			break
		}
	}

	log.Printf("Scout found %d hotel links on %s (of %d total)", len(hotels), startURL, len(all))
	return hotels, nil
}
