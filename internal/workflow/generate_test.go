package workflow

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/renatus-madrigal/article-assistant/config"
	"github.com/renatus-madrigal/article-assistant/internal/article"
	"github.com/renatus-madrigal/article-assistant/internal/telemetry"
	"github.com/renatus-madrigal/article-assistant/provider"
)

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			Provider: "openai",
			Routing:  config.RoutingConfig{Fallback: "gpt-4o-mini"},
		},
		Article: config.ArticleConfig{
			TargetLanguage: "English",
			TargetAudience: "general readers",
			BodySections:   2,
		},
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func sectionStep(index int, heading, contents string) provider.ScriptedStep {
	return provider.JSONStep(article.SectionInfo{
		SectionIndex: index,
		Heading:      heading,
		Contents:     contents,
		Summary:      heading + " in brief",
	})
}

func TestGenerateRunsAllStagesInOrder(t *testing.T) {
	outline := article.Outline{Items: []article.OutlineItem{
		{Title: "Introduction", Purpose: "open the article"},
		{Title: "How Tides Form", Purpose: "explain the mechanism"},
		{Title: "Tides and Coastlines", Purpose: "show the effects"},
		{Title: "Conclusion", Purpose: "close the article"},
	}}
	guide := article.StyleGuide{
		MainLanguage:   "English",
		Tone:           "curious",
		Voice:          "active",
		TargetAudience: "general readers",
	}

	scripted := provider.NewScripted(
		provider.JSONStep(outline),
		provider.JSONStep(guide),
		sectionStep(1, "How Tides Form", "The moon pulls the ocean."),
		sectionStep(2, "Tides and Coastlines", "Coastlines shift twice a day."),
		sectionStep(0, "Introduction", "Tides shape every shore."),
		sectionStep(3, "Conclusion", "The pull never stops."),
		provider.ToolCallStep("call-title", "StructureManager_set_title", map[string]any{"title": "The Pull of the Moon"}),
		provider.ToolCallStep("call-keywords", "StructureManager_set_keywords", map[string]any{"keywords": []string{"tides", "moon"}}),
		provider.ContentStep("Reviewed. Title and keywords set."),
	)

	w := New(testConfig(), scripted, nil, nil, quietLogger())
	result, err := w.Generate(context.Background(), Request{Topic: "ocean tides"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if result.RunID == "" {
		t.Fatalf("missing run id")
	}
	if result.Title != "The Pull of the Moon" {
		t.Fatalf("unexpected title %q", result.Title)
	}
	if len(result.Keywords) != 2 || result.Keywords[0] != "tides" {
		t.Fatalf("unexpected keywords %v", result.Keywords)
	}
	if result.Sections != 4 {
		t.Fatalf("expected 4 sections, got %d", result.Sections)
	}
	if result.Words == 0 {
		t.Fatalf("expected a non-zero word count")
	}

	if !strings.HasPrefix(result.Markdown, "# The Pull of the Moon\n") {
		t.Fatalf("markdown should start with the title heading:\n%s", result.Markdown)
	}
	// Sections must come out in index order regardless of write order.
	intro := strings.Index(result.Markdown, "## Introduction")
	body := strings.Index(result.Markdown, "## How Tides Form")
	concl := strings.Index(result.Markdown, "## Conclusion")
	if intro < 0 || body < 0 || concl < 0 || !(intro < body && body < concl) {
		t.Fatalf("sections out of order:\n%s", result.Markdown)
	}

	// 9 scripted steps, all consumed in stage order.
	if len(scripted.Requests) != 9 {
		t.Fatalf("expected 9 provider calls, got %d", len(scripted.Requests))
	}
}

func withTokens(step provider.ScriptedStep, in, out int64) provider.ScriptedStep {
	step.Response.InputTokens = in
	step.Response.OutputTokens = out
	return step
}

func TestGenerateReportsPerRunUsage(t *testing.T) {
	outline := article.Outline{Items: []article.OutlineItem{
		{Title: "Introduction"},
		{Title: "Conclusion"},
	}}
	runSteps := func() []provider.ScriptedStep {
		return []provider.ScriptedStep{
			withTokens(provider.JSONStep(outline), 300, 200),
			provider.JSONStep(article.DefaultStyleGuide()),
			sectionStep(0, "Introduction", "Opening."),
			sectionStep(1, "Conclusion", "Closing."),
			provider.ContentStep("Reviewed."),
		}
	}
	scripted := provider.NewScripted(append(runSteps(), runSteps()...)...)

	cfg := testConfig()
	tel := telemetry.New(config.TelemetryConfig{Enabled: true})
	w := New(cfg, scripted, tel, nil, quietLogger())

	first, err := w.Generate(context.Background(), Request{Topic: "ocean tides"})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := w.Generate(context.Background(), Request{Topic: "ocean tides"})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.Tokens != 500 {
		t.Fatalf("first run should report 500 tokens, got %d", first.Tokens)
	}
	if second.Tokens != 500 {
		t.Fatalf("second run should report its own 500 tokens, got %d", second.Tokens)
	}
}

func TestGenerateRejectsShortOutline(t *testing.T) {
	scripted := provider.NewScripted(
		provider.JSONStep(article.Outline{Items: []article.OutlineItem{{Title: "Only"}}}),
	)
	w := New(testConfig(), scripted, nil, nil, quietLogger())
	_, err := w.Generate(context.Background(), Request{Topic: "ocean tides"})
	if err == nil || !strings.Contains(err.Error(), "outline stage") {
		t.Fatalf("expected outline stage error, got %v", err)
	}
}

func TestGenerateStopsOnStageFailure(t *testing.T) {
	outline := article.Outline{Items: []article.OutlineItem{
		{Title: "Introduction"},
		{Title: "Body"},
		{Title: "Conclusion"},
	}}
	scripted := provider.NewScripted(
		provider.JSONStep(outline),
		provider.JSONStep(article.DefaultStyleGuide()),
		provider.ContentStep("not json"),
	)
	w := New(testConfig(), scripted, nil, nil, quietLogger())
	_, err := w.Generate(context.Background(), Request{Topic: "ocean tides"})
	if err == nil || !strings.Contains(err.Error(), "body stage") {
		t.Fatalf("expected body stage error, got %v", err)
	}
	// No further provider calls after the failing stage.
	if len(scripted.Requests) != 3 {
		t.Fatalf("expected 3 provider calls, got %d", len(scripted.Requests))
	}
}
