package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/renatus-madrigal/article-assistant/internal/article"
)

// Request/response messages for the structure operations. Keeping them as
// explicit types pins the wire contract per operation instead of passing
// duck-typed maps through to the stores.
type setOutlineRequest struct {
	Outline article.Outline `json:"outline"`
}

type sectionIndexRequest struct {
	SectionIndex int `json:"section_index"`
}

type addSectionRequest struct {
	Section article.SectionInfo `json:"section"`
}

type modifySectionRequest struct {
	SectionIndex int    `json:"section_index"`
	NewContent   string `json:"new_content"`
}

type setTitleRequest struct {
	Title string `json:"title"`
}

type setKeywordsRequest struct {
	Keywords []string `json:"keywords"`
}

var outlineItemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":               map[string]any{"type": "string", "description": "The title of the outline item."},
		"purpose":             map[string]any{"type": "string", "description": "The purpose of this outline item in the article."},
		"argument":            map[string]any{"type": "string", "description": "The main point associated with this outline item."},
		"expected_conclusion": map[string]any{"type": "string", "description": "The expected takeaway from this outline item."},
		"expected_length":     map[string]any{"type": "integer", "description": "The expected length in words."},
	},
	"required": []string{"title", "purpose", "argument", "expected_conclusion", "expected_length"},
}

var outlineSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"outline_items": map[string]any{"type": "array", "items": outlineItemSchema},
	},
	"required": []string{"outline_items"},
}

var sectionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"section_index": map[string]any{"type": "integer", "description": "The index of the section in the article."},
		"heading":       map[string]any{"type": "string", "description": "The heading of the section."},
		"contents":      map[string]any{"type": "string", "description": "The main contents of the section."},
		"summary":       map[string]any{"type": "string", "description": "A brief summary of the section."},
	},
	"required": []string{"section_index", "heading", "contents", "summary"},
}

func requireStructure(deps *Deps) (*article.StructureManager, error) {
	if deps == nil || deps.Structure == nil {
		return nil, fmt.Errorf("structure manager: %w", ErrDependencyMissing)
	}
	return deps.Structure, nil
}

// StructureTools exposes the StructureManager operations to the model.
func StructureTools() []Tool {
	return []Tool{
		{
			Name:        "StructureManager_set_outline",
			Description: "Sets the article outline.",
			Parameters:  objectSchema(map[string]any{"outline": outlineSchema}, "outline"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				var req setOutlineRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				sm.SetOutline(req.Outline)
				return nil, nil
			},
		},
		{
			Name:        "StructureManager_list_outline_items",
			Description: "Lists all outline items in the article outline.",
			Parameters:  objectSchema(map[string]any{}),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				return sm.OutlineItems(), nil
			},
		},
		{
			Name:        "StructureManager_get_section_plan",
			Description: "Retrieves the plan for a specific section based on its index.",
			Parameters:  objectSchema(map[string]any{"section_index": map[string]any{"type": "integer"}}, "section_index"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				var req sectionIndexRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				return sm.SectionPlan(req.SectionIndex)
			},
		},
		{
			Name:        "StructureManager_get_context_summary",
			Description: "Generates a summary of the sections written before the given index.",
			Parameters:  objectSchema(map[string]any{"section_index": map[string]any{"type": "integer"}}, "section_index"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				var req sectionIndexRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				return sm.ContextSummary(req.SectionIndex), nil
			},
		},
		{
			Name:        "StructureManager_add_section",
			Description: "Adds a new section to the article structure. Adding an index twice is a no-op.",
			Parameters:  objectSchema(map[string]any{"section": sectionSchema}, "section"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				var req addSectionRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				sm.AddSection(req.Section)
				return nil, nil
			},
		},
		{
			Name:        "StructureManager_modify_section",
			Description: "Modifies the content of an existing section.",
			Parameters: objectSchema(map[string]any{
				"section_index": map[string]any{"type": "integer"},
				"new_content":   map[string]any{"type": "string"},
			}, "section_index", "new_content"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				var req modifySectionRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				if err := sm.ModifySection(req.SectionIndex, req.NewContent); err != nil {
					return nil, err
				}
				return nil, nil
			},
		},
		{
			Name:        "StructureManager_get_section",
			Description: "Retrieves a section by its index.",
			Parameters:  objectSchema(map[string]any{"section_index": map[string]any{"type": "integer"}}, "section_index"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				var req sectionIndexRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				return sm.Section(req.SectionIndex)
			},
		},
		{
			Name:        "StructureManager_set_title",
			Description: "Sets the title of the article.",
			Parameters:  objectSchema(map[string]any{"title": map[string]any{"type": "string"}}, "title"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				var req setTitleRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				sm.SetTitle(req.Title)
				return nil, nil
			},
		},
		{
			Name:        "StructureManager_get_title",
			Description: "Retrieves the title of the article.",
			Parameters:  objectSchema(map[string]any{}),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				return sm.Title(), nil
			},
		},
		{
			Name:        "StructureManager_set_keywords",
			Description: "Sets the keywords of the article.",
			Parameters: objectSchema(map[string]any{
				"keywords": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			}, "keywords"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				var req setKeywordsRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				sm.SetKeywords(req.Keywords)
				return nil, nil
			},
		},
		{
			Name:        "StructureManager_get_keywords",
			Description: "Retrieves the keywords of the article.",
			Parameters:  objectSchema(map[string]any{}),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				sm, err := requireStructure(deps)
				if err != nil {
					return nil, err
				}
				return sm.Keywords(), nil
			},
		},
	}
}
