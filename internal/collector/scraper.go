package collector

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ThamuMnyulwa/multi-agent-data-collector/pkg/models"
)

// Extractor is the external content-extraction collaborator.
type Extractor interface {
	Extract(ctx context.Context, url string) (models.Extraction, error)
}

// Scraper turns one URL into one HotelRecord. A failed extraction is retried
// a bounded number of times; when every attempt fails the URL still produces
// a record, flagged so validation scores it down instead of dropping it.
type Scraper struct {
	extractor Extractor
	retries   int
	now       func() time.Time
}

func NewScraper(extractor Extractor, retries int) *Scraper {
	if retries < 0 {
		retries = 0
	}
	return &Scraper{extractor: extractor, retries: retries, now: time.Now}
}

// Scrape always returns a record for the URL, succeeded or flagged.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) models.HotelRecord {
	target := withStayDates(rawURL, s.now())

	var ext models.Extraction
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying scrape (%d/%d): %s", attempt, s.retries, rawURL)
		}
		ext, err = s.extractor.Extract(ctx, target)
		if err == nil {
			break
		}
		log.Printf("Error scraping %s: %v", rawURL, err)
	}
	if err != nil {
		return models.HotelRecord{URL: rawURL, Flag: models.FlagScrapeFailed}
	}

	rec := models.HotelRecord{
		URL:         rawURL,
		Name:        strings.TrimSpace(ext.Name),
		Address:     strings.TrimSpace(ext.Address),
		Price:       strings.TrimSpace(ext.Price),
		Description: collapseWhitespace(ext.Description),
	}

	// Structured extraction misses fields all the time; recover what we can
	// from the raw page content before giving up on them.
	if rec.Address == "" || rec.Price == "" {
		content := pageText(ext.Content)
		if rec.Address == "" {
			rec.Address = findAddress(content)
		}
		if rec.Price == "" {
			rec.Price = findPrice(content)
		}
	}
	if rec.Name == "" {
		rec.Name = titleFromURL(rawURL)
	}

	return rec
}

// withStayDates appends check-in/check-out parameters one month out to
// booking-style URLs that carry no query, to coax the page into showing a
// price.
func withStayDates(rawURL string, now time.Time) string {
	if strings.Contains(rawURL, "?") || !strings.Contains(rawURL, "booking.com") {
		return rawURL
	}
	checkin := now.AddDate(0, 0, 30).Format("2006-01-02")
	checkout := now.AddDate(0, 0, 31).Format("2006-01-02")
	return fmt.Sprintf("%s?checkin=%s&checkout=%s&group_adults=2&no_rooms=1&group_children=0",
		rawURL, checkin, checkout)
}
