package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCrawler struct {
	mock.Mock
}

func (m *MockCrawler) CrawlURLs(ctx context.Context, startURL string, limit int) ([]string, error) {
	args := m.Called(ctx, startURL, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockScout struct {
	mock.Mock
}

func (m *MockScout) CollectHotelLinks(ctx context.Context, startURL string, limit int) ([]string, error) {
	args := m.Called(ctx, startURL, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateHotelURLs(ctx context.Context, location string, count int) ([]string, error) {
	args := m.Called(ctx, location, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestCollectURLs_PreScrapedBatchWinsAndTruncates(t *testing.T) {
	crawler := new(MockCrawler)
	source := NewURLSource("https://directory.example", crawler, nil, nil)

	batch := []string{"https://a.example", "https://b.example", "https://c.example"}
	urls, err := source.CollectURLs(context.Background(), "Paris", 2, batch)

	assert.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, urls)
	crawler.AssertNotCalled(t, "CrawlURLs")
}

func TestCollectURLs_CrawlFiltersHotelLinks(t *testing.T) {
	crawler := new(MockCrawler)
	crawler.On("CrawlURLs", mock.Anything, "https://directory.example", crawlLimit).Return([]string{
		"https://directory.example/about",
		"https://directory.example/hotel/grand-palace",
		"https://directory.example/privacy",
		"https://directory.example/hotels/sea-view",
	}, nil).Once()

	source := NewURLSource("https://directory.example", crawler, nil, nil)
	urls, err := source.CollectURLs(context.Background(), "Paris", 10, nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{
		"https://directory.example/hotel/grand-palace",
		"https://directory.example/hotels/sea-view",
	}, urls)
	crawler.AssertExpectations(t)
}

func TestCollectURLs_FallsThroughToScoutThenGenerator(t *testing.T) {
	crawler := new(MockCrawler)
	crawler.On("CrawlURLs", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("crawl API down")).Once()

	linkScout := new(MockScout)
	linkScout.On("CollectHotelLinks", mock.Anything, mock.Anything, mock.Anything).
		Return([]string{}, nil).Once()

	generator := new(MockGenerator)
	generator.On("GenerateHotelURLs", mock.Anything, "Cape Town", 5).
		Return([]string{"https://www.booking.com/hotel/za/the-silo.html"}, nil).Once()

	source := NewURLSource("https://directory.example", crawler, linkScout, generator)
	urls, err := source.CollectURLs(context.Background(), "Cape Town", 5, nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{"https://www.booking.com/hotel/za/the-silo.html"}, urls)
	crawler.AssertExpectations(t)
	linkScout.AssertExpectations(t)
	generator.AssertExpectations(t)
}

func TestCollectURLs_GeneratorErrorPropagates(t *testing.T) {
	generator := new(MockGenerator)
	generator.On("GenerateHotelURLs", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("llm unavailable")).Once()

	source := NewURLSource("", nil, nil, generator)
	urls, err := source.CollectURLs(context.Background(), "Paris", 5, nil)

	assert.Error(t, err)
	assert.Empty(t, urls)
}

func TestCollectURLs_EverythingEmptyIsNotAnError(t *testing.T) {
	generator := new(MockGenerator)
	generator.On("GenerateHotelURLs", mock.Anything, mock.Anything, mock.Anything).
		Return([]string{}, nil).Once()

	source := NewURLSource("", nil, nil, generator)
	urls, err := source.CollectURLs(context.Background(), "Atlantis", 5, nil)

	assert.NoError(t, err)
	assert.Empty(t, urls)
}

func TestCollectURLs_EmptyPreScrapedFallsThrough(t *testing.T) {
	generator := new(MockGenerator)
	generator.On("GenerateHotelURLs", mock.Anything, "Paris", 3).
		Return([]string{"https://www.booking.com/hotel/fr/ritz-paris.html"}, nil).Once()

	source := NewURLSource("", nil, nil, generator)
	urls, err := source.CollectURLs(context.Background(), "Paris", 3, []string{})

	assert.NoError(t, err)
	assert.Len(t, urls, 1)
	generator.AssertExpectations(t)
}
