// Package openai implements the provider contract on top of the official
// openai-go SDK using the Responses API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/renatus-madrigal/article-assistant/provider"
)

// Config carries everything needed to construct a client.
type Config struct {
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// Provider talks to the OpenAI API.
type Provider struct {
	client *openai.Client
	config Config
	models map[string]provider.ModelInfo
}

// New builds a provider from config.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	return &Provider{
		client: &client,
		config: cfg,
		models: defaultModels(),
	}, nil
}

func defaultModels() map[string]provider.ModelInfo {
	return map[string]provider.ModelInfo{
		"gpt-4o": {
			Name: "gpt-4o", Provider: "openai", MaxTokens: 16384,
			CostPer1KInput: 0.0025, CostPer1KOutput: 0.01,
		},
		"gpt-4o-mini": {
			Name: "gpt-4o-mini", Provider: "openai", MaxTokens: 16384,
			CostPer1KInput: 0.00015, CostPer1KOutput: 0.0006,
		},
		"o3-mini": {
			Name: "o3-mini", Provider: "openai", MaxTokens: 65536,
			CostPer1KInput: 0.0011, CostPer1KOutput: 0.0044,
		},
	}
}

// Complete performs one chat round, mapping tool definitions out and any
// tool calls back.
func (p *Provider) Complete(ctx context.Context, req provider.Request) (provider.Response, error) {
	params := p.buildParams(req)

	result, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return provider.Response{}, fmt.Errorf("openai complete: %w", err)
	}

	resp := provider.Response{
		Content:      result.OutputText(),
		ToolCalls:    extractToolCalls(result),
		InputTokens:  result.Usage.InputTokens,
		OutputTokens: result.Usage.OutputTokens,
	}
	if resp.Content == "" && len(resp.ToolCalls) == 0 {
		return provider.Response{}, provider.ErrEmptyCompletion
	}
	return resp, nil
}

func (p *Provider) buildParams(req provider.Request) responses.ResponseNewParams {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(req.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: convertMessages(req.Messages, req.System),
		},
	}
	if maxTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(maxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	} else if p.config.Temperature > 0 {
		params.Temperature = openai.Float(p.config.Temperature)
	}
	if len(req.Tools) > 0 {
		params.Tools = convertTools(req.Tools)
	}
	return params
}

func convertMessages(messages []provider.Message, system string) responses.ResponseInputParam {
	items := make(responses.ResponseInputParam, 0, len(messages)+1)
	if system != "" {
		items = append(items, responses.ResponseInputItemParamOfMessage(system, responses.EasyInputMessageRoleSystem))
	}
	for _, msg := range messages {
		switch msg.Role {
		case provider.RoleUser:
			items = append(items, responses.ResponseInputItemParamOfMessage(msg.Content, responses.EasyInputMessageRoleUser))
		case provider.RoleAssistant:
			if msg.Content != "" {
				items = append(items, responses.ResponseInputItemParamOfMessage(msg.Content, responses.EasyInputMessageRoleAssistant))
			}
			// Each function_call_output must be preceded by the
			// function_call item it answers.
			for _, call := range msg.ToolCalls {
				items = append(items, responses.ResponseInputItemParamOfFunctionCall(string(call.Arguments), call.ID, call.Name))
			}
		case provider.RoleTool:
			items = append(items, responses.ResponseInputItemParamOfFunctionCallOutput(msg.ToolCallID, msg.Content))
		}
	}
	return items
}

func convertTools(tools []provider.ToolDef) []responses.ToolUnionParam {
	out := make([]responses.ToolUnionParam, len(tools))
	for i, tool := range tools {
		out[i] = responses.ToolParamOfFunction(tool.Name, ensureObjectType(tool.Parameters), false)
		if tool.Description != "" {
			fn := out[i].OfFunction
			fn.Description = openai.String(tool.Description)
			out[i].OfFunction = fn
		}
	}
	return out
}

func extractToolCalls(result *responses.Response) []provider.ToolCall {
	var calls []provider.ToolCall
	for _, item := range result.Output {
		if item.Type != "function_call" {
			continue
		}
		calls = append(calls, provider.ToolCall{
			ID:        item.CallID,
			Name:      item.Name,
			Arguments: json.RawMessage(item.Arguments),
		})
	}
	return calls
}

func ensureObjectType(params map[string]any) map[string]any {
	if params == nil {
		return map[string]any{"type": "object"}
	}
	if _, ok := params["type"]; !ok {
		params["type"] = "object"
	}
	return params
}

// AvailableModels returns the models this provider knows pricing for.
func (p *Provider) AvailableModels() []string {
	names := make([]string, 0, len(p.models))
	for name := range p.models {
		names = append(names, name)
	}
	return names
}

// ModelInfo returns information about a specific model.
func (p *Provider) ModelInfo(model string) (provider.ModelInfo, error) {
	info, ok := p.models[model]
	if !ok {
		return provider.ModelInfo{}, fmt.Errorf("unknown model: %s", model)
	}
	return info, nil
}

// CalculateCost estimates the dollar cost of a call. Unknown models cost
// zero rather than erroring; cost tracking is advisory.
func (p *Provider) CalculateCost(inputTokens, outputTokens int64, model string) float64 {
	info, ok := p.models[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1000*info.CostPer1KInput + float64(outputTokens)/1000*info.CostPer1KOutput
}
