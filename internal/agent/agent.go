// Package agent wraps the model collaborator into role-bound units. An
// agent is stateless beyond its configuration: a fixed system prompt, a
// fixed output shape and a fixed tool set, chosen at construction.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/renatus-madrigal/article-assistant/internal/telemetry"
	"github.com/renatus-madrigal/article-assistant/internal/tool"
	"github.com/renatus-madrigal/article-assistant/provider"
)

var agentTracer trace.Tracer = otel.Tracer("article-assistant/internal/agent")

// maxToolRounds bounds the model/tool loop so a misbehaving model cannot
// spin forever.
const maxToolRounds = 16

// Agent is one model-calling unit.
type Agent struct {
	role      string
	model     string
	system    string
	tools     []tool.Tool
	provider  provider.Provider
	telemetry *telemetry.Telemetry
	logger    *log.Logger
}

// Options carries the shared collaborators for agent construction.
type Options struct {
	Provider  provider.Provider
	Telemetry *telemetry.Telemetry
	Logger    *log.Logger
}

func newAgent(role, model, system string, tools []tool.Tool, opts Options) *Agent {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), fmt.Sprintf("[%s] ", strings.ToUpper(role)), log.LstdFlags)
	}
	return &Agent{
		role:      role,
		model:     model,
		system:    system,
		tools:     tools,
		provider:  opts.Provider,
		telemetry: opts.Telemetry,
		logger:    logger,
	}
}

// run drives the model/tool loop for one invocation: call the provider,
// execute any tool calls it returns against the bound stores, feed the
// results back, and repeat until the model produces final content.
func (a *Agent) run(ctx context.Context, prompt string, deps *tool.Deps) (string, error) {
	ctx, span := agentTracer.Start(ctx, "agent.run",
		trace.WithAttributes(
			attribute.String("agent.role", a.role),
			attribute.String("agent.model", a.model),
		))
	defer span.End()

	start := time.Now()
	var inputTokens, outputTokens int64
	messages := []provider.Message{{Role: provider.RoleUser, Content: prompt}}

	finish := func(err error) {
		success := err == nil
		if !success {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		if a.telemetry != nil {
			a.telemetry.RecordAgentEvent(telemetry.AgentEvent{
				Agent:        a.role,
				Model:        a.model,
				Duration:     time.Since(start),
				Success:      success,
				InputTokens:  inputTokens,
				OutputTokens: outputTokens,
				Cost:         a.provider.CalculateCost(inputTokens, outputTokens, a.model),
			})
		}
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.provider.Complete(ctx, provider.Request{
			Model:    a.model,
			System:   a.system,
			Messages: messages,
			Tools:    tool.Defs(a.tools),
		})
		if err != nil {
			finish(err)
			return "", fmt.Errorf("%s agent: %w", a.role, err)
		}
		inputTokens += resp.InputTokens
		outputTokens += resp.OutputTokens

		if len(resp.ToolCalls) == 0 {
			if resp.Content == "" {
				err := fmt.Errorf("%s agent: %w", a.role, provider.ErrEmptyCompletion)
				finish(err)
				return "", err
			}
			finish(nil)
			return resp.Content, nil
		}

		// Echo the assistant turn, calls included, ahead of the results
		// so the next round carries a well-formed history.
		messages = append(messages, provider.Message{
			Role:      provider.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			a.logger.Printf("tool call %s(%s)", call.Name, string(call.Arguments))
			result, err := tool.Dispatch(ctx, a.tools, deps, call)
			if err != nil {
				finish(err)
				return "", fmt.Errorf("%s agent: %w", a.role, err)
			}
			messages = append(messages, provider.Message{
				Role:       provider.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	err := fmt.Errorf("%s agent: tool loop did not converge after %d rounds", a.role, maxToolRounds)
	finish(err)
	return "", err
}

// decodeOutput parses a typed result out of the model's final content,
// tolerating a markdown code fence around the JSON.
func decodeOutput[T any](content string) (T, error) {
	var out T
	trimmed := stripFence(content)
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return out, fmt.Errorf("decode model output: %w", err)
	}
	return out, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
