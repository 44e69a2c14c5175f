// Package tool exposes store operations as named, schema-described
// operations the model may invoke mid-generation. Every handler validates
// its dependency before delegating, so a misbound agent fails fast with no
// partial side effects.
package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/renatus-madrigal/article-assistant/internal/article"
	"github.com/renatus-madrigal/article-assistant/provider"
)

var (
	// ErrDependencyMissing means a tool was invoked without its required
	// store bound on the call's dependency struct.
	ErrDependencyMissing = errors.New("tool dependency missing")

	// ErrUnknownTool means the model asked for an operation that was not
	// part of the agent's tool set.
	ErrUnknownTool = errors.New("unknown tool")
)

// Deps is the typed per-call dependency struct handed to every handler.
// Each agent role binds only the stores it owns for the run; handlers check
// for nil before touching anything.
type Deps struct {
	Structure *article.StructureManager
	Style     *article.StyleManager
	Knowledge *article.KnowledgeBase
}

// Handler executes one operation against the bound stores. Arguments
// arrive as the raw JSON the model produced and decode into an explicit
// request type per operation.
type Handler func(ctx context.Context, deps *Deps, args json.RawMessage) (any, error)

// Tool is one callable operation with a stable name and a JSON-schema
// parameter object.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Handler     Handler
}

// Defs converts a tool set into provider tool definitions.
func Defs(tools []Tool) []provider.ToolDef {
	defs := make([]provider.ToolDef, len(tools))
	for i, t := range tools {
		defs[i] = provider.ToolDef{Name: t.Name, Description: t.Description, Parameters: t.Parameters}
	}
	return defs
}

// Dispatch routes a model tool call to its handler and renders the result
// as the text fed back to the model.
func Dispatch(ctx context.Context, tools []Tool, deps *Deps, call provider.ToolCall) (string, error) {
	for _, t := range tools {
		if t.Name != call.Name {
			continue
		}
		result, err := t.Handler(ctx, deps, call.Arguments)
		if err != nil {
			return "", fmt.Errorf("tool %s: %w", call.Name, err)
		}
		return renderResult(result)
	}
	return "", fmt.Errorf("tool %s: %w", call.Name, ErrUnknownTool)
}

func renderResult(result any) (string, error) {
	switch v := result.(type) {
	case nil:
		return "ok", nil
	case string:
		return v, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode tool result: %w", err)
		}
		return string(raw), nil
	}
}

func decodeArgs(args json.RawMessage, into any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, into); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
