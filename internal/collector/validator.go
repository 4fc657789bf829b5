package collector

import (
	"strings"

	"github.com/ThamuMnyulwa/multi-agent-data-collector/pkg/models"
)

const (
	maxQualityScore     = 10
	missingFieldPenalty = 5
)

// Validate scores a record on the presence of its required fields (name and
// address) and flags whatever is missing. Price is optional and never
// affects the score. Pure function: validating an already-validated record
// yields the identical record.
func Validate(rec models.HotelRecord) models.HotelRecord {
	missingName := strings.TrimSpace(rec.Name) == ""
	missingAddress := strings.TrimSpace(rec.Address) == ""

	score := maxQualityScore
	if missingName {
		score -= missingFieldPenalty
	}
	if missingAddress {
		score -= missingFieldPenalty
	}
	if score < 0 {
		score = 0
	}
	rec.QualityScore = score

	switch {
	case rec.Flag == models.FlagScrapeFailed:
		// The scrape-step failure marker outranks field-level flags.
	case missingName && missingAddress:
		rec.Flag = models.FlagMissingNameAddress
	case missingName:
		rec.Flag = models.FlagMissingName
	case missingAddress:
		rec.Flag = models.FlagMissingAddress
	default:
		rec.Flag = ""
	}

	return rec
}
