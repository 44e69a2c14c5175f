// Package workflow sequences the agents into a full article generation
// run. Stages are strictly ordered: outline, style guide, body sections,
// introduction and conclusion, review, assembly. Each stage failure stops
// the run with an error naming the stage.
package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/renatus-madrigal/article-assistant/config"
	"github.com/renatus-madrigal/article-assistant/internal/agent"
	"github.com/renatus-madrigal/article-assistant/internal/article"
	"github.com/renatus-madrigal/article-assistant/internal/telemetry"
	"github.com/renatus-madrigal/article-assistant/internal/tool"
	"github.com/renatus-madrigal/article-assistant/provider"
)

var workflowTracer trace.Tracer = otel.Tracer("article-assistant/internal/workflow")

// Request describes one generation run.
type Request struct {
	Topic    string
	Language string
	Audience string
}

// Result is the finished article plus run accounting.
type Result struct {
	RunID    string
	Topic    string
	Title    string
	Keywords []string
	Markdown string
	Sections int
	Words    int
	Review   string
	Duration time.Duration
	Cost     float64
	Tokens   int64
}

// Workflow owns the agents and per-run store construction.
type Workflow struct {
	cfg       *config.Config
	provider  provider.Provider
	telemetry *telemetry.Telemetry
	extra     []tool.Tool
	logger    *log.Logger
}

// New builds a workflow. extra tools (web search, web fetch, current date)
// are handed to every agent on top of its store tools.
func New(cfg *config.Config, p provider.Provider, tel *telemetry.Telemetry, extra []tool.Tool, logger *log.Logger) *Workflow {
	if logger == nil {
		logger = log.New(log.Writer(), "[WORKFLOW] ", log.LstdFlags)
	}
	return &Workflow{cfg: cfg, provider: p, telemetry: tel, extra: extra, logger: logger}
}

// Generate runs the whole pipeline for one topic and returns the article.
func (w *Workflow) Generate(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.New().String()
	language := req.Language
	if language == "" {
		language = w.cfg.Article.TargetLanguage
	}
	audience := req.Audience
	if audience == "" {
		audience = w.cfg.Article.TargetAudience
	}

	ctx, span := workflowTracer.Start(ctx, "workflow.generate",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.topic", req.Topic),
			attribute.String("run.language", language),
		))
	defer span.End()

	start := time.Now()
	// Telemetry totals are process-cumulative; snapshot them so this run
	// reports only its own usage.
	var costBefore float64
	var tokensBefore int64
	if w.telemetry != nil {
		costBefore = w.telemetry.TotalCost()
		tokensBefore = w.telemetry.TotalTokens()
	}
	deps := &tool.Deps{
		Structure: article.NewStructureManager(w.logger),
		Style:     article.NewStyleManager(article.DefaultStyleGuide()),
		Knowledge: article.NewKnowledgeBase(w.logger),
	}

	result, err := w.generate(ctx, runID, req.Topic, language, audience, deps)
	duration := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if w.telemetry != nil {
		event := telemetry.RunEvent{
			RunID:    runID,
			Topic:    req.Topic,
			Duration: duration,
			Success:  err == nil,
			Cost:     w.telemetry.TotalCost() - costBefore,
			Tokens:   w.telemetry.TotalTokens() - tokensBefore,
		}
		if result != nil {
			event.Sections = result.Sections
			event.Words = result.Words
		}
		w.telemetry.RecordRunEvent(event)
	}
	if err != nil {
		return nil, err
	}
	result.Duration = duration
	if w.telemetry != nil {
		result.Cost = w.telemetry.TotalCost() - costBefore
		result.Tokens = w.telemetry.TotalTokens() - tokensBefore
	}
	return result, nil
}

func (w *Workflow) generate(ctx context.Context, runID, topic, language, audience string, deps *tool.Deps) (*Result, error) {
	opts := agent.Options{Provider: w.provider, Telemetry: w.telemetry}
	routing := w.cfg.LLM.Routing

	architect := agent.NewArchitect(routing.ModelFor("architect"), language, w.extra, opts)
	stylist := agent.NewStylist(routing.ModelFor("stylist"), language, w.extra, opts)
	scriber := agent.NewScriber(routing.ModelFor("scriber"), w.extra, opts)
	reviewer := agent.NewReviewer(routing.ModelFor("reviewer"), w.extra, opts)

	// Stage 1: outline. Introduction is the first item, conclusion the
	// last; everything between is body.
	w.logger.Printf("run %s: creating outline for %q", runID, topic)
	outline, err := architect.CreateOutline(ctx, topic, w.cfg.Article.BodySections, deps)
	if err != nil {
		return nil, fmt.Errorf("outline stage: %w", err)
	}
	if len(outline.Items) < 2 {
		return nil, fmt.Errorf("outline stage: got %d items, need at least introduction and conclusion", len(outline.Items))
	}
	deps.Structure.SetOutline(outline)

	// Stage 2: style guide. The guide replaces the default wholesale.
	w.logger.Printf("run %s: creating style guide", runID)
	guide, err := stylist.CreateStyleGuide(ctx, topic, audience)
	if err != nil {
		return nil, fmt.Errorf("style stage: %w", err)
	}
	deps.Style.SetStyleGuide(guide)

	// Stage 3: body sections, in outline order.
	last := len(outline.Items) - 1
	for i := 1; i < last; i++ {
		w.logger.Printf("run %s: writing section %d of %d", runID, i, last)
		section, err := scriber.WriteSection(ctx, i, outline.Items[i], language, deps)
		if err != nil {
			return nil, fmt.Errorf("body stage, section %d: %w", i, err)
		}
		deps.Structure.AddSection(section)
	}

	// Stage 4: introduction and conclusion, written after the body so
	// they can reflect what the article actually says.
	for _, i := range []int{0, last} {
		w.logger.Printf("run %s: writing section %d of %d", runID, i, last)
		section, err := scriber.WriteSection(ctx, i, outline.Items[i], language, deps)
		if err != nil {
			return nil, fmt.Errorf("bookend stage, section %d: %w", i, err)
		}
		deps.Structure.AddSection(section)
	}

	// Stage 5: review. The reviewer edits sections and sets title and
	// keywords through its tools.
	w.logger.Printf("run %s: reviewing article", runID)
	review, err := reviewer.Review(ctx, deps)
	if err != nil {
		return nil, fmt.Errorf("review stage: %w", err)
	}

	// Stage 6: assembly.
	markdown := deps.Structure.Markdown()
	result := &Result{
		RunID:    runID,
		Topic:    topic,
		Title:    deps.Structure.Title(),
		Keywords: deps.Structure.Keywords(),
		Markdown: markdown,
		Sections: len(deps.Structure.Sections()),
		Words:    deps.Structure.TotalWordCount(),
		Review:   review,
	}
	w.logger.Printf("run %s: done, %d sections, %d words", runID, result.Sections, result.Words)
	return result, nil
}
