package lexicon

import (
	"text2phenotype.com/nlg/morphology"
	"text2phenotype.com/nlg/types"
	"sync"
)

// MemoryLexicon indexes entries by base form, id and inflected variant.
type MemoryLexicon struct {
	mu        sync.RWMutex
	rules     *morphology.MorphologicalRules
	entries   []*types.WordEntry
	byBase    map[string][]*types.WordEntry
	byID      map[string]*types.WordEntry
	byVariant map[string][]*types.WordEntry
}

func NewMemoryLexicon(rules *morphology.MorphologicalRules, entries ...*types.WordEntry) *MemoryLexicon {
	if rules == nil {
		rules = morphology.DefaultRules()
	}
	lex := &MemoryLexicon{
		rules:     rules,
		byBase:    make(map[string][]*types.WordEntry),
		byID:      make(map[string]*types.WordEntry),
		byVariant: make(map[string][]*types.WordEntry),
	}
	lex.Add(entries...)
	return lex
}

// Add indexes entries. An entry without an id gets one from EntryID.
func (lex *MemoryLexicon) Add(entries ...*types.WordEntry) {
	lex.mu.Lock()
	defer lex.mu.Unlock()

	for _, entry := range entries {
		if entry == nil || entry.BaseForm == "" {
			continue
		}
		entry.ID = EntryID(entry)
		if _, ok := lex.byID[entry.ID]; ok {
			continue
		}
		lex.entries = append(lex.entries, entry)
		lex.byID[entry.ID] = entry

		base := key(entry.BaseForm)
		lex.byBase[base] = append(lex.byBase[base], entry)
		for _, variant := range lex.rules.Variants(entry) {
			k := key(variant)
			lex.byVariant[k] = append(lex.byVariant[k], entry)
		}
	}
}

func (lex *MemoryLexicon) FindByBase(term string, category types.LexicalCategory) ([]*types.WordEntry, error) {
	lex.mu.RLock()
	defer lex.mu.RUnlock()
	return filter(lex.byBase[key(term)], category), nil
}

func (lex *MemoryLexicon) FindByID(id string) (*types.WordEntry, error) {
	lex.mu.RLock()
	defer lex.mu.RUnlock()
	if entry, ok := lex.byID[id]; ok {
		return entry, nil
	}
	return nil, ErrNotFound
}

func (lex *MemoryLexicon) FindByVariant(term string, category types.LexicalCategory) ([]*types.WordEntry, error) {
	lex.mu.RLock()
	defer lex.mu.RUnlock()
	k := key(term)
	found := filter(lex.byBase[k], category)
	for _, entry := range filter(lex.byVariant[k], category) {
		if !contains(found, entry) {
			found = append(found, entry)
		}
	}
	return found, nil
}

// Entries returns every entry in insertion order.
func (lex *MemoryLexicon) Entries() []*types.WordEntry {
	lex.mu.RLock()
	defer lex.mu.RUnlock()
	return append([]*types.WordEntry(nil), lex.entries...)
}

func contains(entries []*types.WordEntry, entry *types.WordEntry) bool {
	for _, e := range entries {
		if e == entry {
			return true
		}
	}
	return false
}
