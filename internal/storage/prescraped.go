package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadPreScrapedURLs reads hotel URLs from a previously saved file. Prior
// runs and external tools write slightly different shapes, so both a bare
// JSON array (of records or plain URL strings) and an object wrapping one
// under "hotels" or "validated_hotels" are accepted. Order is preserved.
func LoadPreScrapedURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var wrapper struct {
			Hotels          []json.RawMessage `json:"hotels"`
			ValidatedHotels []json.RawMessage `json:"validated_hotels"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		items = wrapper.Hotels
		if len(items) == 0 {
			items = wrapper.ValidatedHotels
		}
	}

	var urls []string
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			if u := strings.TrimSpace(s); u != "" {
				urls = append(urls, u)
			}
			continue
		}
		var entry struct {
			URL string `json:"url"`
		}
		if json.Unmarshal(item, &entry) == nil {
			if u := strings.TrimSpace(entry.URL); u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls, nil
}
