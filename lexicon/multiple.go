package lexicon

import (
	"errors"
	"text2phenotype.com/nlg/types"
)

// MultipleLexicon queries several lexicons in order. The first lexicon with a
// result wins unless SearchAll is set, in which case results are merged and
// de-duplicated by id.
type MultipleLexicon struct {
	Lexicons  []Lexicon
	SearchAll bool
}

func NewMultipleLexicon(searchAll bool, lexicons ...Lexicon) *MultipleLexicon {
	return &MultipleLexicon{Lexicons: lexicons, SearchAll: searchAll}
}

func (m *MultipleLexicon) FindByBase(term string, category types.LexicalCategory) ([]*types.WordEntry, error) {
	return m.collect(func(lex Lexicon) ([]*types.WordEntry, error) {
		return lex.FindByBase(term, category)
	})
}

func (m *MultipleLexicon) FindByVariant(term string, category types.LexicalCategory) ([]*types.WordEntry, error) {
	return m.collect(func(lex Lexicon) ([]*types.WordEntry, error) {
		return lex.FindByVariant(term, category)
	})
}

func (m *MultipleLexicon) FindByID(id string) (*types.WordEntry, error) {
	for _, lex := range m.Lexicons {
		entry, err := lex.FindByID(id)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

func (m *MultipleLexicon) collect(find func(lex Lexicon) ([]*types.WordEntry, error)) ([]*types.WordEntry, error) {
	var result []*types.WordEntry
	seen := make(map[string]bool)
	for _, lex := range m.Lexicons {
		entries, err := find(lex)
		if err != nil {
			return nil, err
		}
		if !m.SearchAll && len(entries) > 0 {
			return entries, nil
		}
		for _, entry := range entries {
			id := EntryID(entry)
			if !seen[id] {
				seen[id] = true
				result = append(result, entry)
			}
		}
	}
	return result, nil
}
