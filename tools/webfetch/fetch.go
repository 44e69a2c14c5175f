// Package webfetch fetches a page over plain HTTP and extracts readable
// text so agents can pull source material without a browser.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// Result is the extracted page content.
type Result struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Fetcher retrieves pages with a bounded body size.
type Fetcher struct {
	client   *http.Client
	maxChars int
}

// NewFetcher builds a fetcher; zero values get sane defaults.
func NewFetcher(timeout time.Duration, maxChars int) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxChars <= 0 {
		maxChars = 12000
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxChars: maxChars,
	}
}

// Fetch downloads the page and extracts the main article text.
func (f *Fetcher) Fetch(ctx context.Context, link string) (Result, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return Result{}, fmt.Errorf("parse url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("fetch %s: unexpected status %d", link, resp.StatusCode)
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Result{}, err
	}

	page, err := readability.FromReader(strings.NewReader(string(html)), parsed)
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: %w", link, err)
	}

	text := strings.TrimSpace(page.TextContent)
	if runes := []rune(text); len(runes) > f.maxChars {
		text = string(runes[:f.maxChars])
	}
	return Result{URL: link, Title: page.Title, Text: text}, nil
}
