package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/renatus-madrigal/article-assistant/internal/article"
)

type addConceptRequest struct {
	Concept article.ConceptInfo `json:"concept"`
}

type conceptNameRequest struct {
	Name string `json:"name"`
}

var conceptSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":       map[string]any{"type": "string", "description": "The name of the concept."},
		"definition": map[string]any{"type": "string", "description": "The definition of the concept."},
		"relevance":  map[string]any{"type": "string", "description": "The relevance of the concept to the article topic."},
	},
	"required": []string{"name", "definition", "relevance"},
}

func requireKnowledge(deps *Deps) (*article.KnowledgeBase, error) {
	if deps == nil || deps.Knowledge == nil {
		return nil, fmt.Errorf("knowledge base: %w", ErrDependencyMissing)
	}
	return deps.Knowledge, nil
}

// KnowledgeTools exposes the KnowledgeBase operations to the model.
func KnowledgeTools() []Tool {
	return []Tool{
		{
			Name:        "KnowledgeBase_get_concept",
			Description: "Retrieve a concept by name from the knowledge base.",
			Parameters:  objectSchema(map[string]any{"name": map[string]any{"type": "string"}}, "name"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				kb, err := requireKnowledge(deps)
				if err != nil {
					return nil, err
				}
				var req conceptNameRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				concept, ok := kb.Lookup(req.Name)
				if !ok {
					// Absence is information for the model, not a failure.
					return fmt.Sprintf("concept %q not found", req.Name), nil
				}
				return concept, nil
			},
		},
		{
			Name:        "KnowledgeBase_add_concept",
			Description: "Add a new concept to the knowledge base.",
			Parameters:  objectSchema(map[string]any{"concept": conceptSchema}, "concept"),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				kb, err := requireKnowledge(deps)
				if err != nil {
					return nil, err
				}
				var req addConceptRequest
				if err := decodeArgs(args, &req); err != nil {
					return nil, err
				}
				kb.AddConcept(req.Concept)
				return nil, nil
			},
		},
		{
			Name:        "KnowledgeBase_list_concepts",
			Description: "List all concept names in the knowledge base.",
			Parameters:  objectSchema(map[string]any{}),
			Handler: func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error) {
				kb, err := requireKnowledge(deps)
				if err != nil {
					return nil, err
				}
				return kb.Names(), nil
			},
		},
	}
}
