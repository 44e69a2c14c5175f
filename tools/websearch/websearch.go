// Package websearch provides web search clients agents can call as a tool.
package websearch

import (
	"context"
	"errors"
)

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher runs a query and returns up to k results.
type Searcher interface {
	Discover(ctx context.Context, q string, k int) ([]Result, error)
}

// Provider selects a search backend.
type Provider string

const (
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

// ErrUnsupportedProvider is returned for an unknown backend name.
var ErrUnsupportedProvider = errors.New("unsupported search provider")

// New builds a searcher for the given backend.
func New(provider Provider, apiKey string) (Searcher, error) {
	switch provider {
	case SerperProvider:
		return Serper{APIKey: apiKey}, nil
	case BraveProvider:
		return Brave{APIKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
