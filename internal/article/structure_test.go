package article

import (
	"errors"
	"io"
	"log"
	"strings"
	"testing"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAddSectionIsIdempotentByIndex(t *testing.T) {
	m := NewStructureManager(quietLogger())
	first := SectionInfo{SectionIndex: 1, Heading: "Background", Contents: "original"}
	m.AddSection(first)
	m.AddSection(SectionInfo{SectionIndex: 1, Heading: "Background", Contents: "duplicate"})

	sections := m.Sections()
	if len(sections) != 1 {
		t.Fatalf("expected 1 section after duplicate add, got %d", len(sections))
	}
	if sections[0].Contents != "original" {
		t.Fatalf("duplicate add overwrote contents: %q", sections[0].Contents)
	}
}

func TestMarkdownSortsSectionsByIndex(t *testing.T) {
	m := NewStructureManager(quietLogger())
	m.SetTitle("Test Article")
	m.SetKeywords([]string{"alpha", "beta"})
	m.AddSection(SectionInfo{SectionIndex: 2, Heading: "Conclusion", Contents: "end"})
	m.AddSection(SectionInfo{SectionIndex: 0, Heading: "Introduction", Contents: "start"})
	m.AddSection(SectionInfo{SectionIndex: 1, Heading: "Body", Contents: "middle"})

	md := m.Markdown()
	if !strings.HasPrefix(md, "# Test Article\n\nKeywords: alpha, beta\n\n") {
		t.Fatalf("unexpected document head: %q", md[:min(len(md), 60)])
	}
	intro := strings.Index(md, "## Introduction")
	body := strings.Index(md, "## Body")
	concl := strings.Index(md, "## Conclusion")
	if intro == -1 || body == -1 || concl == -1 {
		t.Fatalf("missing section headings in markdown:\n%s", md)
	}
	if !(intro < body && body < concl) {
		t.Fatalf("sections out of order: intro=%d body=%d conclusion=%d", intro, body, concl)
	}
}

func TestModifySectionReplacesContents(t *testing.T) {
	m := NewStructureManager(quietLogger())
	m.AddSection(SectionInfo{SectionIndex: 0, Heading: "Intro", Contents: "draft"})

	if err := m.ModifySection(0, "final"); err != nil {
		t.Fatalf("modify existing section: %v", err)
	}
	section, err := m.Section(0)
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if section.Contents != "final" {
		t.Fatalf("expected modified contents, got %q", section.Contents)
	}

	if err := m.ModifySection(9, "nope"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestSectionPlanOutOfRange(t *testing.T) {
	m := NewStructureManager(quietLogger())
	m.SetOutline(Outline{Items: []OutlineItem{{Title: "Intro"}}})

	if _, err := m.SectionPlan(0); err != nil {
		t.Fatalf("plan 0 should exist: %v", err)
	}
	if _, err := m.SectionPlan(1); !errors.Is(err, ErrPlanOutOfRange) {
		t.Fatalf("expected ErrPlanOutOfRange, got %v", err)
	}
	if _, err := m.SectionPlan(-1); !errors.Is(err, ErrPlanOutOfRange) {
		t.Fatalf("expected ErrPlanOutOfRange for negative index, got %v", err)
	}
}

func TestContextSummaryBoundary(t *testing.T) {
	m := NewStructureManager(quietLogger())
	m.AddSection(SectionInfo{SectionIndex: 0, Heading: "Intro", Contents: "intro text"})
	m.AddSection(SectionInfo{SectionIndex: 1, Heading: "Body", Contents: "body text"})
	m.AddSection(SectionInfo{SectionIndex: 2, Heading: "Conclusion", Contents: "closing text"})

	empty := m.ContextSummary(0)
	if strings.Contains(empty, "- ") {
		t.Fatalf("summary at index 0 should list no sections: %q", empty)
	}

	partial := m.ContextSummary(2)
	if !strings.Contains(partial, "Intro") || !strings.Contains(partial, "Body") {
		t.Fatalf("summary at index 2 should cover earlier sections: %q", partial)
	}
	if strings.Contains(partial, "Conclusion") {
		t.Fatalf("summary at index 2 must not include section 2: %q", partial)
	}
}

func TestContextSummaryTruncatesContents(t *testing.T) {
	m := NewStructureManager(quietLogger())
	long := strings.Repeat("x", 500)
	m.AddSection(SectionInfo{SectionIndex: 0, Heading: "Intro", Contents: long})

	summary := m.ContextSummary(1)
	if strings.Contains(summary, long) {
		t.Fatalf("summary should truncate long contents")
	}
	if !strings.Contains(summary, strings.Repeat("x", contextSnippetLen)+"...") {
		t.Fatalf("summary missing truncated prefix: %q", summary)
	}
}

func TestTotalWordCount(t *testing.T) {
	m := NewStructureManager(quietLogger())
	m.AddSection(SectionInfo{SectionIndex: 0, Contents: "hello world"})
	m.AddSection(SectionInfo{SectionIndex: 1, Contents: "one two three"})

	if got := m.TotalWordCount(); got != 5 {
		t.Fatalf("expected total word count 5, got %d", got)
	}
}
