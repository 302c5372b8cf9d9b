package lexicon

import (
	"errors"
	"fmt"
	"text2phenotype.com/nlg/types"
	"strings"
)

var ErrNotFound = errors.New("word not found")

// Lexicon finds word entries. Category types.CategoryAny matches every
// category. Implementations must be safe for concurrent reads.
type Lexicon interface {
	FindByBase(term string, category types.LexicalCategory) ([]*types.WordEntry, error)
	FindByID(id string) (*types.WordEntry, error)
	// FindByVariant finds entries having term as an inflected form (or as
	// their base form).
	FindByVariant(term string, category types.LexicalCategory) ([]*types.WordEntry, error)
}

// LookupWord resolves term as a base form, then as an id, then as an inflected
// variant. When nothing matches it returns a new entry that belongs to no
// lexicon.
func LookupWord(lex Lexicon, term string, category types.LexicalCategory) (*types.WordEntry, error) {
	if lex == nil {
		return types.NewWordEntry(term, category), nil
	}

	entries, err := lex.FindByBase(term, category)
	if err != nil {
		return nil, fmt.Errorf("lookup %q by base form: %w", term, err)
	}
	if len(entries) > 0 {
		return pick(entries, term), nil
	}

	entry, err := lex.FindByID(term)
	switch {
	case err == nil && category.Matches(entry.Category):
		return entry, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("lookup %q by id: %w", term, err)
	}

	entries, err = lex.FindByVariant(term, category)
	if err != nil {
		return nil, fmt.Errorf("lookup %q by variant: %w", term, err)
	}
	if len(entries) > 0 {
		return pick(entries, term), nil
	}
	return types.NewWordEntry(term, category), nil
}

// pick prefers an entry whose base form matches term exactly, so that "I"
// is not resolved to a lower-cased homograph.
func pick(entries []*types.WordEntry, term string) *types.WordEntry {
	for _, entry := range entries {
		if entry.BaseForm == term {
			return entry
		}
	}
	return entries[0]
}

// EntryID returns the id of entry, deriving one from its base form and
// category when it has none.
func EntryID(entry *types.WordEntry) string {
	if entry.ID != "" {
		return entry.ID
	}
	return strings.ReplaceAll(strings.ToLower(entry.BaseForm), " ", "_") + "_" + entry.Category.String()
}

func key(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func filter(entries []*types.WordEntry, category types.LexicalCategory) []*types.WordEntry {
	var result []*types.WordEntry
	for _, entry := range entries {
		if category.Matches(entry.Category) {
			result = append(result, entry)
		}
	}
	return result
}
