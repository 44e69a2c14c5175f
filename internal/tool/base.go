package tool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/renatus-madrigal/article-assistant/tools/webfetch"
	"github.com/renatus-madrigal/article-assistant/tools/websearch"
)

type webSearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type webFetchRequest struct {
	URL string `json:"url"`
}

// BaseTools are capabilities every agent gets regardless of role.
func BaseTools() []Tool {
	return []Tool{
		{
			Name:        "current_date",
			Description: "Get the current date in YYYY-MM-DD format.",
			Parameters:  objectSchema(map[string]any{}),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				return time.Now().Format("2006-01-02"), nil
			},
		},
	}
}

// SearchTool exposes web search to agents. The client is fixed at agent
// construction, not resolved from per-call dependencies.
func SearchTool(searcher websearch.Searcher) Tool {
	return Tool{
		Name:        "web_search",
		Description: "Search the web and return result titles, URLs and snippets.",
		Parameters: objectSchema(map[string]any{
			"query":       map[string]any{"type": "string", "description": "The search query."},
			"max_results": map[string]any{"type": "integer", "description": "Maximum number of results, default 5."},
		}, "query"),
		Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
			var req webSearchRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			if req.MaxResults <= 0 {
				req.MaxResults = 5
			}
			return searcher.Discover(ctx, req.Query, req.MaxResults)
		},
	}
}

// FetchTool exposes readable-text page fetching to agents.
func FetchTool(fetcher *webfetch.Fetcher) Tool {
	return Tool{
		Name:        "web_fetch",
		Description: "Fetch a URL and return the readable text of the page.",
		Parameters: objectSchema(map[string]any{
			"url": map[string]any{"type": "string", "description": "The URL to fetch."},
		}, "url"),
		Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
			var req webFetchRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			return fetcher.Fetch(ctx, req.URL)
		},
	}
}
