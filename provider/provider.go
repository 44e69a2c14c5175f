// Package provider abstracts the language-model collaborator. The core
// pipeline only ever sees one chat round at a time: it hands the provider a
// prompt plus tool definitions and gets back either tool calls to satisfy
// or final content.
package provider

import (
	"context"
	"encoding/json"
	"errors"
)

// Message roles on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ErrEmptyCompletion is returned when the model produced neither content
// nor tool calls.
var ErrEmptyCompletion = errors.New("model returned empty completion")

// ToolDef describes one callable operation exposed to the model. The
// parameter schema is a JSON-schema object.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolCall is a model-initiated invocation of an exposed operation.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Message is one turn of the conversation handed to the provider.
// Assistant messages that triggered tool execution carry the calls they
// made, so the next round can replay them ahead of their results.
// Tool-result messages carry the ID of the call they answer.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// Request is a single chat round.
type Request struct {
	Model       string
	System      string
	Messages    []Message
	Tools       []ToolDef
	Temperature float64
	MaxTokens   int
}

// Response is the model's answer to one round: either final content or a
// batch of tool calls to execute.
type Response struct {
	Content      string
	ToolCalls    []ToolCall
	InputTokens  int64
	OutputTokens int64
}

// ModelInfo describes a model the provider can route to.
type ModelInfo struct {
	Name            string
	Provider        string
	MaxTokens       int
	CostPer1KInput  float64
	CostPer1KOutput float64
}

// Provider is the contract for LLM backends.
type Provider interface {
	// Complete performs one chat round.
	Complete(ctx context.Context, req Request) (Response, error)

	// AvailableModels returns the models this provider can serve.
	AvailableModels() []string

	// ModelInfo returns information about a specific model.
	ModelInfo(model string) (ModelInfo, error)

	// CalculateCost estimates the dollar cost of a call.
	CalculateCost(inputTokens, outputTokens int64, model string) float64
}
