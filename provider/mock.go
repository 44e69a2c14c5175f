package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// ScriptedStep is one pre-recorded provider answer.
type ScriptedStep struct {
	Response Response
	Err      error
}

// Scripted is an offline Provider that replays a fixed sequence of
// responses. Tests use it to drive agent runs without a network.
type Scripted struct {
	mu       sync.Mutex
	steps    []ScriptedStep
	next     int
	Requests []Request
}

// NewScripted builds a scripted provider from the given steps.
func NewScripted(steps ...ScriptedStep) *Scripted {
	return &Scripted{steps: steps}
}

// Complete replays the next scripted step and records the request.
func (s *Scripted) Complete(_ context.Context, req Request) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests = append(s.Requests, req)
	if s.next >= len(s.steps) {
		return Response{}, fmt.Errorf("scripted provider exhausted after %d calls", len(s.steps))
	}
	step := s.steps[s.next]
	s.next++
	return step.Response, step.Err
}

// AvailableModels returns a single fake model.
func (s *Scripted) AvailableModels() []string { return []string{"scripted"} }

// ModelInfo returns a zero-cost fake model.
func (s *Scripted) ModelInfo(model string) (ModelInfo, error) {
	return ModelInfo{Name: model, Provider: "scripted"}, nil
}

// CalculateCost always reports zero.
func (s *Scripted) CalculateCost(inputTokens, outputTokens int64, model string) float64 {
	return 0
}

// ContentStep scripts a final-content answer.
func ContentStep(content string) ScriptedStep {
	return ScriptedStep{Response: Response{Content: content}}
}

// JSONStep scripts a final answer whose content is the JSON encoding of v.
func JSONStep(v any) ScriptedStep {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return ScriptedStep{Response: Response{Content: string(raw)}}
}

// ToolCallStep scripts a single tool invocation.
func ToolCallStep(id, name string, args any) ScriptedStep {
	raw, err := json.Marshal(args)
	if err != nil {
		panic(err)
	}
	return ScriptedStep{Response: Response{ToolCalls: []ToolCall{{ID: id, Name: name, Arguments: raw}}}}
}
