package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ThamuMnyulwa/multi-agent-data-collector/pkg/models"
)

func TestValidate_CompleteRecord(t *testing.T) {
	rec := Validate(models.HotelRecord{
		Name:    "The Silo Hotel",
		URL:     "https://www.booking.com/hotel/za/the-silo.html",
		Address: "Silo Square, V&A Waterfront, Cape Town",
		Price:   "$650",
	})

	assert.Equal(t, 10, rec.QualityScore)
	assert.Empty(t, rec.Flag)
}

func TestValidate_MissingPriceDoesNotAffectScore(t *testing.T) {
	rec := Validate(models.HotelRecord{
		Name:    "The Silo Hotel",
		URL:     "https://www.booking.com/hotel/za/the-silo.html",
		Address: "Silo Square, V&A Waterfront, Cape Town",
	})

	assert.Equal(t, 10, rec.QualityScore)
	assert.Empty(t, rec.Flag)
}

func TestValidate_MissingAddress(t *testing.T) {
	rec := Validate(models.HotelRecord{
		Name: "The Silo Hotel",
		URL:  "https://www.booking.com/hotel/za/the-silo.html",
	})

	assert.Equal(t, 5, rec.QualityScore)
	assert.Equal(t, models.FlagMissingAddress, rec.Flag)
}

func TestValidate_MissingName(t *testing.T) {
	rec := Validate(models.HotelRecord{
		URL:     "https://www.booking.com/hotel/za/the-silo.html",
		Address: "Silo Square, Cape Town",
	})

	assert.Equal(t, 5, rec.QualityScore)
	assert.Equal(t, models.FlagMissingName, rec.Flag)
}

func TestValidate_MissingEverything(t *testing.T) {
	rec := Validate(models.HotelRecord{URL: "https://www.booking.com/hotel/za/the-silo.html"})

	assert.Equal(t, 0, rec.QualityScore, "score must clamp at zero")
	assert.Equal(t, models.FlagMissingNameAddress, rec.Flag)
}

func TestValidate_WhitespaceCountsAsMissing(t *testing.T) {
	rec := Validate(models.HotelRecord{
		Name:    "  ",
		URL:     "https://example.com/hotel",
		Address: "\t",
	})

	assert.Equal(t, 0, rec.QualityScore)
	assert.Equal(t, models.FlagMissingNameAddress, rec.Flag)
}

func TestValidate_KeepsScrapeFailureFlag(t *testing.T) {
	rec := Validate(models.HotelRecord{
		URL:  "https://example.com/hotel",
		Flag: models.FlagScrapeFailed,
	})

	assert.Equal(t, models.FlagScrapeFailed, rec.Flag)
	assert.Less(t, rec.QualityScore, 10)
}

func TestValidate_Idempotent(t *testing.T) {
	cases := []models.HotelRecord{
		{Name: "A", URL: "https://a.example", Address: "1 Main St"},
		{Name: "B", URL: "https://b.example"},
		{URL: "https://c.example", Flag: models.FlagScrapeFailed},
		{URL: "https://d.example"},
	}

	for _, rec := range cases {
		once := Validate(rec)
		twice := Validate(once)
		assert.Equal(t, once, twice, "re-validating %q must not change the record", rec.URL)
	}
}
