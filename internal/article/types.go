package article

import (
	"strings"
)

// OutlineItem is a planned section descriptor produced by the architect
// before any prose is written.
type OutlineItem struct {
	Title              string `json:"title"`
	Purpose            string `json:"purpose"`
	Argument           string `json:"argument"`
	ExpectedConclusion string `json:"expected_conclusion"`
	ExpectedLength     int    `json:"expected_length"` // words
}

// Outline is the ordered plan for the whole article. By convention the
// first item is the introduction and the last is the conclusion; that rule
// lives in the architect prompt and is not validated here.
type Outline struct {
	Items []OutlineItem `json:"outline_items"`
}

// StyleGuide is the single active set of tone/voice/audience constraints
// shared across writing stages.
type StyleGuide struct {
	MainLanguage          string `json:"main_language"`
	Tone                  string `json:"tone"`
	Voice                 string `json:"voice"`
	TargetAudience        string `json:"target_audience"`
	FormattingPreferences string `json:"formatting_preferences,omitempty"`
}

// DefaultStyleGuide mirrors the defaults a fresh guide carries before the
// stylist has run.
func DefaultStyleGuide() StyleGuide {
	return StyleGuide{
		MainLanguage:   "English",
		Tone:           "formal",
		Voice:          "active",
		TargetAudience: "general",
	}
}

// SectionInfo is a realized, written unit of the final document, keyed by
// its position index.
type SectionInfo struct {
	SectionIndex int    `json:"section_index"`
	Heading      string `json:"heading"`
	Contents     string `json:"contents"`
	Summary      string `json:"summary"`
}

// WordCount counts whitespace-delimited tokens plus each CJK ideograph as
// one additional word, so mixed-language contents are approximated fairly.
func (s SectionInfo) WordCount() int {
	count := len(strings.Fields(s.Contents))
	for _, r := range s.Contents {
		// CJK Unified Ideographs block
		if r >= 0x4E00 && r <= 0x9FFF {
			count++
		}
	}
	return count
}

// ConceptInfo is a named concept recorded in the knowledge base.
type ConceptInfo struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Relevance  string `json:"relevance"`
}
