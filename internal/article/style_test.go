package article

import (
	"strings"
	"testing"
)

func TestStyleGuideWholeValueReplace(t *testing.T) {
	m := NewStyleManager(StyleGuide{
		MainLanguage:          "English",
		Tone:                  "formal",
		Voice:                 "active",
		TargetAudience:        "engineers",
		FormattingPreferences: "short paragraphs",
	})
	m.SetStyleGuide(StyleGuide{
		MainLanguage:   "Simplified Chinese",
		Tone:           "informal",
		Voice:          "passive",
		TargetAudience: "students",
	})

	guide := m.StyleGuide()
	if guide.MainLanguage != "Simplified Chinese" || guide.Tone != "informal" {
		t.Fatalf("second guide not retrievable: %+v", guide)
	}
	// No merge: the first guide's formatting must not survive the replace.
	if guide.FormattingPreferences != "" {
		t.Fatalf("formatting preferences leaked across replace: %q", guide.FormattingPreferences)
	}
}

func TestPromptBlockOmitsEmptyFormatting(t *testing.T) {
	m := NewStyleManager(DefaultStyleGuide())
	block := m.PromptBlock()
	if strings.Contains(block, "Formatting Preferences") {
		t.Fatalf("empty formatting line should be omitted: %q", block)
	}
	for _, want := range []string{"Main Language: English", "Tone: formal", "Voice: active", "Target Audience: general"} {
		if !strings.Contains(block, want) {
			t.Fatalf("prompt block missing %q: %q", want, block)
		}
	}

	m.SetStyleGuide(StyleGuide{MainLanguage: "English", Tone: "formal", Voice: "active", TargetAudience: "general", FormattingPreferences: "use bullet lists"})
	if !strings.Contains(m.PromptBlock(), "Formatting Preferences: use bullet lists") {
		t.Fatalf("formatting line missing when set")
	}
}
