package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThamuMnyulwa/multi-agent-data-collector/pkg/models"
)

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"Paris":                   "standard_Paris_hotels.json",
		"Cape Town, South Africa": "standard_Cape_Town__South_Africa_hotels.json",
		"worldwide":               "standard_worldwide_hotels.json",
		"São Paulo":               "standard_São_Paulo_hotels.json",
	}
	for location, want := range cases {
		assert.Equal(t, want, Filename(StandardPrefix, location))
	}
	assert.Equal(t, "crew_Paris_hotels.json", Filename(CrewPrefix, "Paris"))
}

func TestJSONSink_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	sink := NewJSONSink(dir, StandardPrefix)

	result := models.CollectionResult{
		Location: "Paris",
		ValidatedHotels: []models.HotelRecord{
			{Name: "Ritz Paris", URL: "https://www.booking.com/hotel/fr/ritz-paris.html", Address: "15 Place Vendôme", Price: "$1,200", QualityScore: 10},
			{URL: "https://www.booking.com/hotel/fr/down.html", Flag: models.FlagScrapeFailed},
		},
	}
	require.NoError(t, sink.Save(result))

	path := filepath.Join(dir, "standard_Paris_hotels.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got models.CollectionResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, result, got)

	// Empty fields on the failed record must not pollute the file.
	assert.NotContains(t, string(data), `"name": ""`)
}

func TestLoadPreScrapedURLs_RecordArray(t *testing.T) {
	path := writeTemp(t, `[
		{"name": "A", "url": "https://a.example/hotel"},
		{"name": "B", "url": "https://b.example/hotel"}
	]`)
	urls, err := LoadPreScrapedURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/hotel", "https://b.example/hotel"}, urls)
}

func TestLoadPreScrapedURLs_StringArray(t *testing.T) {
	path := writeTemp(t, `["https://a.example/hotel", " https://b.example/hotel ", ""]`)
	urls, err := LoadPreScrapedURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/hotel", "https://b.example/hotel"}, urls)
}

func TestLoadPreScrapedURLs_WrappedObject(t *testing.T) {
	path := writeTemp(t, `{
		"location": "Paris",
		"validated_hotels": [
			{"url": "https://a.example/hotel", "quality_score": 10}
		]
	}`)
	urls, err := LoadPreScrapedURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/hotel"}, urls)
}

func TestLoadPreScrapedURLs_Errors(t *testing.T) {
	_, err := LoadPreScrapedURLs(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeTemp(t, `not json at all`)
	_, err = LoadPreScrapedURLs(path)
	assert.Error(t, err)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotels.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
