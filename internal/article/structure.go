package article

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

// Errors surfaced by store lookups. Callers are expected to treat them as
// hard failures; nothing in the stores retries.
var (
	ErrPlanOutOfRange  = errors.New("outline index out of range")
	ErrSectionNotFound = errors.New("section not found")
)

// contextSnippetLen bounds how much of each earlier section is replayed
// into a later section's prompt.
const contextSnippetLen = 100

// StructureManager owns the article structure for one workflow run: the
// outline, the written sections, the title and the keywords. It is the
// aggregate root for the document; nothing else holds an owning reference
// to its sections.
type StructureManager struct {
	mu       sync.Mutex
	outline  Outline
	sections []SectionInfo
	existing map[int]struct{}
	title    string
	keywords []string
	logger   *log.Logger
}

// NewStructureManager returns an empty manager. A nil logger falls back to
// a default one.
func NewStructureManager(logger *log.Logger) *StructureManager {
	if logger == nil {
		logger = log.New(log.Writer(), "[STRUCT] ", log.LstdFlags)
	}
	return &StructureManager{
		existing: make(map[int]struct{}),
		logger:   logger,
	}
}

// SetOutline replaces the outline wholesale. No validation of item count
// or boundary roles happens here; that is the caller's responsibility.
func (m *StructureManager) SetOutline(outline Outline) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outline = outline
}

// OutlineItems returns the full outline in its original order.
func (m *StructureManager) OutlineItems() []OutlineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]OutlineItem, len(m.outline.Items))
	copy(items, m.outline.Items)
	return items
}

// SectionPlan returns the outline item at the given index.
func (m *StructureManager) SectionPlan(index int) (OutlineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.outline.Items) {
		return OutlineItem{}, fmt.Errorf("plan for section %d: %w", index, ErrPlanOutOfRange)
	}
	return m.outline.Items[index], nil
}

// AddSection appends a section. The insert is idempotent by section index:
// if a section with that index was already added the call logs and returns
// without touching state. Retried or duplicated tool calls must never
// double-insert or overwrite a section.
func (m *StructureManager) AddSection(section SectionInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.existing[section.SectionIndex]; ok {
		m.logger.Printf("section %d already exists, skipping add", section.SectionIndex)
		return
	}
	m.sections = append(m.sections, section)
	m.existing[section.SectionIndex] = struct{}{}
}

// ModifySection replaces the contents of an existing section in place.
// Unlike AddSection this is not idempotency-guarded: repeated calls apply
// repeatedly. It is the intended path for correcting a written section.
func (m *StructureManager) ModifySection(index int, contents string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sections {
		if m.sections[i].SectionIndex == index {
			m.sections[i].Contents = contents
			return nil
		}
	}
	return fmt.Errorf("modify section %d: %w", index, ErrSectionNotFound)
}

// Section returns the section with the given index.
func (m *StructureManager) Section(index int) (SectionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, section := range m.sections {
		if section.SectionIndex == index {
			return section, nil
		}
	}
	return SectionInfo{}, fmt.Errorf("section %d: %w", index, ErrSectionNotFound)
}

// ContextSummary digests every section with index strictly below the given
// one into a bulleted list, each truncated to a bounded prefix. Later
// sections get awareness of earlier ones without replaying full text.
func (m *StructureManager) ContextSummary(index int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var b strings.Builder
	b.WriteString("Previous Sections Summary:\n")
	for _, section := range m.sections {
		if section.SectionIndex >= index {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %s...\n", section.Heading, truncateRunes(section.Contents, contextSnippetLen)))
	}
	return b.String()
}

// TotalWordCount sums the word counts of all written sections.
func (m *StructureManager) TotalWordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, section := range m.sections {
		total += section.WordCount()
	}
	return total
}

// Markdown assembles the final document: title, keyword line, then each
// section as a heading+body block. Sections are sorted by index ascending
// first; the sort reorders internal state as a side effect.
func (m *StructureManager) Markdown() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	sort.SliceStable(m.sections, func(i, j int) bool {
		return m.sections[i].SectionIndex < m.sections[j].SectionIndex
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n", m.title))
	b.WriteString(fmt.Sprintf("Keywords: %s\n\n", strings.Join(m.keywords, ", ")))
	blocks := make([]string, 0, len(m.sections))
	for _, section := range m.sections {
		blocks = append(blocks, fmt.Sprintf("## %s\n\n%s", section.Heading, section.Contents))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))
	return b.String()
}

// SetTitle sets the article title.
func (m *StructureManager) SetTitle(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.title = title
}

// Title returns the article title.
func (m *StructureManager) Title() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.title
}

// SetKeywords sets the article keywords.
func (m *StructureManager) SetKeywords(keywords []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keywords = append([]string(nil), keywords...)
}

// Keywords returns the article keywords.
func (m *StructureManager) Keywords() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.keywords...)
}

// Sections returns the written sections in their current internal order.
func (m *StructureManager) Sections() []SectionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SectionInfo, len(m.sections))
	copy(out, m.sections)
	return out
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
