// Package storage persists collection results: a JSON result file as the
// primary artifact, with an optional Postgres mirror.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/ThamuMnyulwa/multi-agent-data-collector/pkg/models"
)

// Mode prefixes for the result file name.
const (
	StandardPrefix = "standard_"
	CrewPrefix     = "crew_"
)

// Filename derives the result file name from the location, deterministically:
// every non-alphanumeric rune becomes an underscore.
func Filename(prefix, location string) string {
	sanitized := []rune(location)
	for i, r := range sanitized {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			sanitized[i] = '_'
		}
	}
	return prefix + string(sanitized) + "_hotels.json"
}

// JSONSink writes the collection result to a JSON file whose name is derived
// from the run's location.
type JSONSink struct {
	Dir    string
	Prefix string
}

func NewJSONSink(dir, prefix string) *JSONSink {
	if dir == "" {
		dir = "."
	}
	return &JSONSink{Dir: dir, Prefix: prefix}
}

// Path returns where the result for a location will be written.
func (s *JSONSink) Path(location string) string {
	return filepath.Join(s.Dir, Filename(s.Prefix, location))
}

func (s *JSONSink) Save(result models.CollectionResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	path := s.Path(result.Location)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
