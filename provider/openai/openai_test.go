package openai

import (
	"encoding/json"
	"testing"

	"github.com/renatus-madrigal/article-assistant/provider"
)

func TestConvertMessagesPairsFunctionCallsWithOutputs(t *testing.T) {
	messages := []provider.Message{
		{Role: provider.RoleUser, Content: "write the section"},
		{
			Role: provider.RoleAssistant,
			ToolCalls: []provider.ToolCall{{
				ID:        "call-123",
				Name:      "StructureManager_set_title",
				Arguments: json.RawMessage(`{"title":"Tides"}`),
			}},
		},
		{Role: provider.RoleTool, Content: "ok", ToolCallID: "call-123"},
	}

	items := convertMessages(messages, "system prompt")

	callAt, outputAt := -1, -1
	for i, item := range items {
		if fc := item.OfFunctionCall; fc != nil && fc.CallID == "call-123" {
			callAt = i
			if fc.Name != "StructureManager_set_title" {
				t.Fatalf("unexpected function_call name %q", fc.Name)
			}
			if fc.Arguments != `{"title":"Tides"}` {
				t.Fatalf("unexpected function_call arguments %q", fc.Arguments)
			}
		}
		if out := item.OfFunctionCallOutput; out != nil && out.CallID == "call-123" {
			outputAt = i
		}
	}
	if callAt < 0 {
		t.Fatalf("function_call item missing from input")
	}
	if outputAt < 0 {
		t.Fatalf("function_call_output item missing from input")
	}
	if callAt >= outputAt {
		t.Fatalf("function_call at %d must precede its output at %d", callAt, outputAt)
	}
}

func TestConvertMessagesSkipsEmptyAssistantContent(t *testing.T) {
	messages := []provider.Message{
		{
			Role: provider.RoleAssistant,
			ToolCalls: []provider.ToolCall{{
				ID: "call-1", Name: "current_date", Arguments: json.RawMessage(`{}`),
			}},
		},
	}

	items := convertMessages(messages, "")
	if len(items) != 1 {
		t.Fatalf("expected only the function_call item, got %d items", len(items))
	}
	if items[0].OfFunctionCall == nil {
		t.Fatalf("expected a function_call item, got %+v", items[0])
	}
}
