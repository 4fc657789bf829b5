package models

// Flag codes attached by validation. Empty flag means the record is complete.
const (
	FlagMissingName        = "missing_name"
	FlagMissingAddress     = "missing_address"
	FlagMissingNameAddress = "missing_name_address"
	FlagScrapeFailed       = "scrape_failed"
)

// HotelRecord is one scraped hotel. The URL is always set; the other fields
// depend on what the extraction service could recover from the page.
// QualityScore and Flag are assigned exactly once by validation.
type HotelRecord struct {
	Name         string `json:"name,omitempty"`
	URL          string `json:"url"`
	Address      string `json:"address,omitempty"`
	Price        string `json:"price,omitempty"`
	Description  string `json:"description,omitempty"`
	QualityScore int    `json:"quality_score"`
	Flag         string `json:"flag,omitempty"`
}

// CollectionResult is the final output of one pipeline run.
type CollectionResult struct {
	Location        string        `json:"location"`
	ValidatedHotels []HotelRecord `json:"validated_hotels"`
}

// Extraction is the normalized response from the content-extraction service
// for a single page. Content carries the raw page text for fallback parsing
// when the structured fields come back empty.
type Extraction struct {
	Name        string
	Address     string
	Price       string
	Description string
	Content     string
}
