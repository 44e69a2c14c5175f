package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/renatus-madrigal/article-assistant/internal/article"
)

type setStyleGuideRequest struct {
	StyleGuide article.StyleGuide `json:"style_guide"`
}

var styleGuideSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"main_language":          map[string]any{"type": "string", "description": "The main language of the article."},
		"tone":                   map[string]any{"type": "string", "description": "The tone of the article (e.g. formal, informal)."},
		"voice":                  map[string]any{"type": "string", "description": "The voice of the article (e.g. active, passive)."},
		"target_audience":        map[string]any{"type": "string", "description": "The target audience for the article."},
		"formatting_preferences": map[string]any{"type": "string", "description": "Any specific formatting preferences."},
	},
	"required": []string{"main_language", "tone", "voice", "target_audience"},
}

func requireStyle(deps *Deps) (*article.StyleManager, error) {
	if deps == nil || deps.Style == nil {
		return nil, fmt.Errorf("style manager: %w", ErrDependencyMissing)
	}
	return deps.Style, nil
}

// StyleTools exposes the StyleManager operations to the model.
func StyleTools() []Tool {
	return []Tool{
		{
			Name:        "StyleManager_set_style_guide",
			Description: "Sets the article style guide.",
			Parameters:  objectSchema(map[string]any{"style_guide": styleGuideSchema}, "style_guide"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStyle(deps)
				if err != nil {
					return nil, err
				}
				var req setStyleGuideRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				sm.SetStyleGuide(req.StyleGuide)
				return nil, nil
			},
		},
		{
			Name:        "StyleManager_get_style_guide",
			Description: "Retrieves the current article style guide.",
			Parameters:  objectSchema(map[string]any{}),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStyle(deps)
				if err != nil {
					return nil, err
				}
				return sm.StyleGuide(), nil
			},
		},
	}
}
