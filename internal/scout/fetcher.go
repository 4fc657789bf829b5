package scout

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"
)

// Fetcher retrieves the raw HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (string, error)
}

// StaticFetcher does a plain GET with an identifying User-Agent.
type StaticFetcher struct {
	UserAgent string
	Client    *http.Client
}

func NewStaticFetcher(userAgent string) *StaticFetcher {
	return &StaticFetcher{
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", targetURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// HeadlessFetcher renders the page in headless Chrome before returning its
// HTML. Hotel directory pages often populate their listings with JS, so a
// static GET can miss every link.
type HeadlessFetcher struct {
	Timeout time.Duration
}

func NewHeadlessFetcher() *HeadlessFetcher {
	return &HeadlessFetcher{Timeout: 45 * time.Second}
}

func (f *HeadlessFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("headless fetch %s: %w", targetURL, err)
	}
	return html, nil
}
