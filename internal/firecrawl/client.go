// Package firecrawl is a thin client for the Firecrawl v0 API: single-page
// extraction and asynchronous crawl jobs.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ThamuMnyulwa/multi-agent-data-collector/pkg/models"
)

const defaultBaseURL = "https://api.firecrawl.dev/v0"

// Crawl job polling bounds. A job that is still queued after maxPollRetries
// attempts is treated as failed.
const (
	maxPollRetries   = 20
	initialPollDelay = 2 * time.Second
	maxPollDelay     = 10 * time.Second
)

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRateLimit paces outgoing requests, one per interval.
func WithRateLimit(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.limiter = rate.NewLimiter(rate.Every(interval), 1)
		}
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one API request, waiting for the client-side limiter first and
// backing off on 429 responses, doubling the delay each time up to 30s.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}

	delay := 1 * time.Second
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
}

// extractSchema describes the fields the extraction endpoint should pull
// out of a hotel page.
var extractSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":        map[string]any{"type": "string", "description": "Name of the hotel"},
		"address":     map[string]any{"type": "string", "description": "Address of the hotel"},
		"price":       map[string]any{"type": "string", "description": "Price per night"},
		"description": map[string]any{"type": "string", "description": "Brief description of the hotel"},
	},
}

const extractPrompt = "Extract hotel name, address, price per night, and a brief description from the page."

// Extract scrapes a single page and returns the structured hotel fields plus
// the raw page text for downstream fallback parsing.
func (c *Client) Extract(ctx context.Context, pageURL string) (models.Extraction, error) {
	payload := map[string]any{
		"url":     pageURL,
		"formats": []string{"extract", "markdown"},
		"extract": map[string]any{
			"schema": extractSchema,
			"prompt": extractPrompt,
		},
	}

	resp, err := c.do(ctx, http.MethodPost, "/scrape", payload)
	if err != nil {
		return models.Extraction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Extraction{}, fmt.Errorf("firecrawl scrape http %d", resp.StatusCode)
	}

	var response struct {
		Data struct {
			Extract struct {
				Name        string `json:"name"`
				Address     string `json:"address"`
				Price       string `json:"price"`
				Description string `json:"description"`
			} `json:"extract"`
			Content  string `json:"content"`
			Markdown string `json:"markdown"`
			Text     string `json:"text"`
			Metadata struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"metadata"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return models.Extraction{}, fmt.Errorf("firecrawl scrape: decoding response: %w", err)
	}

	d := response.Data
	content := d.Content
	if content == "" {
		content = d.Markdown
	}
	if content == "" {
		content = d.Text
	}

	ext := models.Extraction{
		Name:        d.Extract.Name,
		Address:     d.Extract.Address,
		Price:       d.Extract.Price,
		Description: d.Extract.Description,
		Content:     content,
	}

	// The extraction block can come back empty while the page itself loaded
	// fine; fall back to page metadata so the caller still has something.
	if ext.Name == "" {
		ext.Name = d.Metadata.Title
	}
	if ext.Description == "" {
		ext.Description = d.Metadata.Description
	}

	if ext.Name == "" && ext.Address == "" && ext.Price == "" && content == "" {
		return models.Extraction{}, errors.New("firecrawl scrape: empty response")
	}
	return ext, nil
}

// CrawlURLs starts a crawl job at startURL, waits for it to finish, and
// returns the discovered page URLs (at most limit).
func (c *Client) CrawlURLs(ctx context.Context, startURL string, limit int) ([]string, error) {
	jobID, err := c.startCrawlJob(ctx, startURL, limit)
	if err != nil {
		return nil, err
	}
	return c.waitForCrawlJob(ctx, jobID, limit)
}

func (c *Client) startCrawlJob(ctx context.Context, startURL string, limit int) (string, error) {
	payload := map[string]any{
		"url":     startURL,
		"options": map[string]any{"limit": limit},
	}

	resp, err := c.do(ctx, http.MethodPost, "/crawl", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("firecrawl crawl http %d", resp.StatusCode)
	}

	var response struct {
		JobID string `json:"jobId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("firecrawl crawl: decoding response: %w", err)
	}
	if response.JobID == "" {
		return "", errors.New("firecrawl crawl: no job ID returned")
	}
	return response.JobID, nil
}

func (c *Client) waitForCrawlJob(ctx context.Context, jobID string, limit int) ([]string, error) {
	delay := initialPollDelay
	for attempt := 0; attempt < maxPollRetries; attempt++ {
		status, urls, err := c.crawlJobStatus(ctx, jobID)
		if err != nil {
			return nil, err
		}

		switch status {
		case "completed":
			if limit > 0 && len(urls) > limit {
				urls = urls[:limit]
			}
			return urls, nil
		case "failed":
			return nil, fmt.Errorf("firecrawl crawl job %s failed", jobID)
		case "processing", "queued", "scraping":
			// Still running; wait and poll again with a growing delay.
		default:
			return nil, fmt.Errorf("firecrawl crawl job %s: unknown status %q", jobID, status)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*3/2, maxPollDelay)
	}
	return nil, fmt.Errorf("firecrawl crawl job %s: timed out waiting for completion", jobID)
}

func (c *Client) crawlJobStatus(ctx context.Context, jobID string) (string, []string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/crawl/"+jobID, nil)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("firecrawl crawl status http %d", resp.StatusCode)
	}

	var response struct {
		Status string `json:"status"`
		Data   []struct {
			URL      string `json:"url"`
			Metadata struct {
				SourceURL string `json:"sourceURL"`
			} `json:"metadata"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", nil, fmt.Errorf("firecrawl crawl status: decoding response: %w", err)
	}

	var urls []string
	for _, page := range response.Data {
		u := page.URL
		if u == "" {
			u = page.Metadata.SourceURL
		}
		if u != "" {
			urls = append(urls, u)
		}
	}
	return response.Status, urls, nil
}
