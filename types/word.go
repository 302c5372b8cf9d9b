package types

// WordEntry is a lexicon record. Lexicons own entries; elements point at them.
type WordEntry struct {
	BaseForm string
	Category LexicalCategory
	ID       string
	Features FeatureSet
}

func NewWordEntry(base string, category LexicalCategory) *WordEntry {
	return &WordEntry{BaseForm: base, Category: category, Features: FeatureSet{}}
}

// Form returns the irregular form stored under an inflection feature, if any.
func (entry *WordEntry) Form(feature string) string {
	if entry == nil {
		return ""
	}
	return entry.Features.Text(feature)
}

func (entry *WordEntry) Flag(feature string) bool {
	if entry == nil {
		return false
	}
	return entry.Features.Bool(feature)
}

func (entry *WordEntry) SetForm(feature string, form string) {
	if entry.Features == nil {
		entry.Features = FeatureSet{}
	}
	entry.Features[feature] = Text(form)
}

func (entry *WordEntry) SetFlag(feature string) {
	if entry.Features == nil {
		entry.Features = FeatureSet{}
	}
	entry.Features[feature] = Bool(true)
}

// WordElement is a word in an input tree. Entry is nil when the word was not
// found in a lexicon; inflection then falls back to the base form.
type WordElement struct {
	node
	Entry    *WordEntry
	BaseForm string
	Category LexicalCategory
}

func NewWord(base string, category LexicalCategory) *WordElement {
	return &WordElement{node: node{features: FeatureSet{}}, BaseForm: base, Category: category}
}

func NewWordFromEntry(entry *WordEntry) *WordElement {
	return &WordElement{
		node:     node{features: FeatureSet{}},
		Entry:    entry,
		BaseForm: entry.BaseForm,
		Category: entry.Category,
	}
}

// InflectedWordElement is a word after syntactic realisation: it carries the
// features morphology needs to pick a surface form.
type InflectedWordElement struct {
	node
	Entry    *WordEntry
	BaseForm string
	Category LexicalCategory
}

// Inflect builds an inflected word from w, copying its features.
func Inflect(w *WordElement) *InflectedWordElement {
	return &InflectedWordElement{
		node:     node{features: w.features.Copy()},
		Entry:    w.Entry,
		BaseForm: w.BaseForm,
		Category: w.Category,
	}
}

func NewInflectedWord(entry *WordEntry, base string, category LexicalCategory) *InflectedWordElement {
	return &InflectedWordElement{node: node{features: FeatureSet{}}, Entry: entry, BaseForm: base, Category: category}
}

// Flag reads a lexical flag from the element first, then from its entry.
func (w *InflectedWordElement) Flag(feature string) bool {
	return w.features.Bool(feature) || w.Entry.Flag(feature)
}

// StringElement is canned text.
type StringElement struct {
	node
}

func NewStringElement(text string) *StringElement {
	return &StringElement{node: node{features: FeatureSet{}, realisation: text}}
}
