package tool

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/renatus-madrigal/article-assistant/internal/article"
	"github.com/renatus-madrigal/article-assistant/provider"
)

func testDeps() *Deps {
	logger := log.New(io.Discard, "", 0)
	return &Deps{
		Structure: article.NewStructureManager(logger),
		Style:     article.NewStyleManager(article.DefaultStyleGuide()),
		Knowledge: article.NewKnowledgeBase(logger),
	}
}

func dispatch(t *testing.T, tools []Tool, deps *Deps, name string, args any) (string, error) {
	t.Helper()
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshal args: %v", err)
	}
	return Dispatch(context.Background(), tools, deps, provider.ToolCall{ID: "call-1", Name: name, Arguments: raw})
}

func TestDependencyValidationPrecedesMutation(t *testing.T) {
	deps := &Deps{} // nothing bound
	section := map[string]any{"section": map[string]any{"section_index": 0, "heading": "h", "contents": "c", "summary": "s"}}

	_, err := dispatch(t, StructureTools(), deps, "StructureManager_add_section", section)
	if !errors.Is(err, ErrDependencyMissing) {
		t.Fatalf("expected ErrDependencyMissing, got %v", err)
	}

	_, err = dispatch(t, StyleTools(), deps, "StyleManager_get_style_guide", map[string]any{})
	if !errors.Is(err, ErrDependencyMissing) {
		t.Fatalf("style tools: expected ErrDependencyMissing, got %v", err)
	}

	_, err = dispatch(t, KnowledgeTools(), deps, "KnowledgeBase_list_concepts", map[string]any{})
	if !errors.Is(err, ErrDependencyMissing) {
		t.Fatalf("knowledge tools: expected ErrDependencyMissing, got %v", err)
	}
}

func TestUnknownToolRejected(t *testing.T) {
	_, err := dispatch(t, StructureTools(), testDeps(), "StructureManager_drop_everything", map[string]any{})
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}

func TestAddSectionToolIsIdempotent(t *testing.T) {
	deps := testDeps()
	section := map[string]any{"section": map[string]any{"section_index": 2, "heading": "Body", "contents": "text", "summary": "sum"}}

	if _, err := dispatch(t, StructureTools(), deps, "StructureManager_add_section", section); err != nil {
		t.Fatalf("first add: %v", err)
	}
	// A model retrying the same call must not corrupt the document.
	if _, err := dispatch(t, StructureTools(), deps, "StructureManager_add_section", section); err != nil {
		t.Fatalf("duplicate add should be a no-op, got %v", err)
	}
	if got := len(deps.Structure.Sections()); got != 1 {
		t.Fatalf("expected 1 section, got %d", got)
	}
}

func TestModifySectionToolNotFound(t *testing.T) {
	deps := testDeps()
	_, err := dispatch(t, StructureTools(), deps, "StructureManager_modify_section",
		map[string]any{"section_index": 7, "new_content": "x"})
	if !errors.Is(err, article.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestSetStyleGuideTool(t *testing.T) {
	deps := testDeps()
	guide := map[string]any{"style_guide": map[string]any{
		"main_language": "English", "tone": "playful", "voice": "active", "target_audience": "kids",
	}}
	if _, err := dispatch(t, StyleTools(), deps, "StyleManager_set_style_guide", guide); err != nil {
		t.Fatalf("set style guide: %v", err)
	}
	if got := deps.Style.StyleGuide().Tone; got != "playful" {
		t.Fatalf("style guide not replaced, tone=%q", got)
	}
}

func TestKnowledgeToolsRoundTrip(t *testing.T) {
	deps := testDeps()
	concept := map[string]any{"concept": map[string]any{"name": "HNSW", "definition": "graph index", "relevance": "retrieval"}}
	if _, err := dispatch(t, KnowledgeTools(), deps, "KnowledgeBase_add_concept", concept); err != nil {
		t.Fatalf("add concept: %v", err)
	}

	out, err := dispatch(t, KnowledgeTools(), deps, "KnowledgeBase_get_concept", map[string]any{"name": "HNSW"})
	if err != nil {
		t.Fatalf("get concept: %v", err)
	}
	if !strings.Contains(out, "graph index") {
		t.Fatalf("unexpected concept payload: %q", out)
	}

	missing, err := dispatch(t, KnowledgeTools(), deps, "KnowledgeBase_get_concept", map[string]any{"name": "nope"})
	if err != nil {
		t.Fatalf("absent concept should not error: %v", err)
	}
	if !strings.Contains(missing, "not found") {
		t.Fatalf("expected not-found sentinel text, got %q", missing)
	}
}

func TestToolResultRendering(t *testing.T) {
	deps := testDeps()
	deps.Structure.SetTitle("My Title")

	out, err := dispatch(t, StructureTools(), deps, "StructureManager_get_title", map[string]any{})
	if err != nil {
		t.Fatalf("get title: %v", err)
	}
	if out != "My Title" {
		t.Fatalf("expected plain string result, got %q", out)
	}

	ok, err := dispatch(t, StructureTools(), deps, "StructureManager_set_title", map[string]any{"title": "New"})
	if err != nil {
		t.Fatalf("set title: %v", err)
	}
	if ok != "ok" {
		t.Fatalf("void operations should ack with ok, got %q", ok)
	}
}

func TestCurrentDateTool(t *testing.T) {
	out, err := dispatch(t, BaseTools(), nil, "current_date", map[string]any{})
	if err != nil {
		t.Fatalf("current_date: %v", err)
	}
	if len(out) != len("2006-01-02") {
		t.Fatalf("unexpected date format: %q", out)
	}
}
