package article

import (
	"fmt"
	"strings"
	"sync"
)

// StyleManager holds exactly one active style guide. Updates replace the
// whole value; there is no field-level merge.
type StyleManager struct {
	mu    sync.Mutex
	guide StyleGuide
}

// NewStyleManager returns a manager holding the given guide.
func NewStyleManager(guide StyleGuide) *StyleManager {
	return &StyleManager{guide: guide}
}

// SetStyleGuide replaces the active guide.
func (m *StyleManager) SetStyleGuide(guide StyleGuide) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guide = guide
}

// StyleGuide returns the active guide.
func (m *StyleManager) StyleGuide() StyleGuide {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.guide
}

// PromptBlock renders the guide as a flat field list for inclusion in a
// model prompt. The formatting line is omitted entirely when empty so the
// model is not prompted on an empty constraint.
func (m *StyleManager) PromptBlock() string {
	m.mu.Lock()
	guide := m.guide
	m.mu.Unlock()

	parts := []string{
		fmt.Sprintf("Main Language: %s", guide.MainLanguage),
		fmt.Sprintf("Tone: %s", guide.Tone),
		fmt.Sprintf("Voice: %s", guide.Voice),
		fmt.Sprintf("Target Audience: %s", guide.TargetAudience),
	}
	if guide.FormattingPreferences != "" {
		parts = append(parts, fmt.Sprintf("Formatting Preferences: %s", guide.FormattingPreferences))
	}
	return strings.Join(parts, "\n")
}
