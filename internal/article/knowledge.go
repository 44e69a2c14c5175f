package article

import (
	"log"
	"sync"
)

// KnowledgeBase is an append-only store of named concepts discovered while
// writing. Duplicate names are not deduplicated; lookups return the first
// match, so earlier definitions win.
type KnowledgeBase struct {
	mu       sync.Mutex
	concepts []ConceptInfo
	logger   *log.Logger
}

// NewKnowledgeBase returns an empty knowledge base.
func NewKnowledgeBase(logger *log.Logger) *KnowledgeBase {
	if logger == nil {
		logger = log.New(log.Writer(), "[KB] ", log.LstdFlags)
	}
	return &KnowledgeBase{logger: logger}
}

// AddConcept appends a concept unconditionally.
func (kb *KnowledgeBase) AddConcept(concept ConceptInfo) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.logger.Printf("adding concept %q", concept.Name)
	kb.concepts = append(kb.concepts, concept)
}

// Lookup returns the first concept with the given name. The second return
// reports whether one was found; an absent concept is not an error here.
func (kb *KnowledgeBase) Lookup(name string) (ConceptInfo, bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	for _, concept := range kb.concepts {
		if concept.Name == name {
			return concept, true
		}
	}
	return ConceptInfo{}, false
}

// Names lists all concept names in insertion order.
func (kb *KnowledgeBase) Names() []string {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	names := make([]string, 0, len(kb.concepts))
	for _, concept := range kb.concepts {
		names = append(names, concept.Name)
	}
	return names
}
