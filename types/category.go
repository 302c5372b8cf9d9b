package types

type LexicalCategory int

const (
	CategoryAny LexicalCategory = iota
	CategorySymbol
	CategoryNoun
	CategoryAdjective
	CategoryAdverb
	CategoryVerb
	CategoryDeterminer
	CategoryPronoun
	CategoryConjunction
	CategoryPreposition
	CategoryComplementiser
	CategoryModal
	CategoryAuxiliary
)

var lexicalCategoryNames = []string{
	"any", "symbol", "noun", "adjective", "adverb", "verb", "determiner", "pronoun", "conjunction",
	"preposition", "complementiser", "modal", "auxiliary",
}

func (c LexicalCategory) String() string {
	return enumName(lexicalCategoryNames, int(c))
}

// Matches reports whether a word of category other satisfies a lookup for c.
func (c LexicalCategory) Matches(other LexicalCategory) bool {
	return c == CategoryAny || other == CategoryAny || c == other
}

func ParseLexicalCategory(s string) (LexicalCategory, bool) {
	i, ok := parseEnum(lexicalCategoryNames, s)
	return LexicalCategory(i), ok
}

type PhraseCategory int

const (
	PhraseClause PhraseCategory = iota
	PhraseAdjective
	PhraseAdverb
	PhraseNoun
	PhrasePrepositional
	PhraseVerb
	PhraseCannedText
)

var phraseCategoryNames = []string{
	"clause", "adjective_phrase", "adverb_phrase", "noun_phrase", "prepositional_phrase", "verb_phrase",
	"canned_text",
}

func (c PhraseCategory) String() string {
	return enumName(phraseCategoryNames, int(c))
}

func ParsePhraseCategory(s string) (PhraseCategory, bool) {
	i, ok := parseEnum(phraseCategoryNames, s)
	return PhraseCategory(i), ok
}

type DocumentCategory int

const (
	DocumentRoot DocumentCategory = iota
	DocumentSection
	DocumentParagraph
	DocumentSentence
	DocumentList
	DocumentListItem
)

var documentCategoryNames = []string{"document", "section", "paragraph", "sentence", "list", "list_item"}

func (c DocumentCategory) String() string {
	return enumName(documentCategoryNames, int(c))
}

func ParseDocumentCategory(s string) (DocumentCategory, bool) {
	i, ok := parseEnum(documentCategoryNames, s)
	return DocumentCategory(i), ok
}

// CanContain reports whether a component of category child may sit directly
// inside a container of category c.
func (c DocumentCategory) CanContain(child DocumentCategory) bool {
	switch c {
	case DocumentRoot:
		return child != DocumentRoot && child != DocumentListItem
	case DocumentSection:
		return child == DocumentSection || child == DocumentParagraph
	case DocumentParagraph:
		return child == DocumentSentence || child == DocumentList
	case DocumentList:
		return child == DocumentListItem
	case DocumentListItem:
		return child == DocumentSentence
	}
	return false
}

// HoldsPhrases reports whether phrases and words may sit directly inside c.
func (c DocumentCategory) HoldsPhrases() bool {
	return c == DocumentSentence || c == DocumentListItem
}
