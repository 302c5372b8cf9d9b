package types

// PhraseElement is a phrase or clause. Its slots are the source of truth;
// realisation order comes from the syntax rules for its category.
//
// Clauses keep the verb phrase in Head and use the clause-only slots
// (Subjects, FrontModifiers, CuePhrase, Complementiser). Verb phrases keep
// their objects in Objects and IndirectObjects.
type PhraseElement struct {
	node
	Category PhraseCategory

	Specifier     Element
	PreModifiers  []Element
	Head          Element
	Complements   []Element
	PostModifiers []Element

	Objects         []Element
	IndirectObjects []Element

	Subjects       []Element
	FrontModifiers []Element
	CuePhrase      Element
	Complementiser Element
}

func NewPhrase(category PhraseCategory) *PhraseElement {
	return &PhraseElement{node: node{features: FeatureSet{}}, Category: category}
}

// VerbPhrase returns the verb phrase of a clause, or nil.
func (p *PhraseElement) VerbPhrase() *PhraseElement {
	if vp, ok := p.Head.(*PhraseElement); ok && vp.Category == PhraseVerb {
		return vp
	}
	return nil
}

// CoordinatedPhraseElement joins coordinates with a conjunction ("and" unless
// the conjunction feature says otherwise).
type CoordinatedPhraseElement struct {
	node
	Coordinates   []Element
	PreModifiers  []Element
	Complements   []Element
	PostModifiers []Element
}

func NewCoordinatedPhrase(coordinates ...Element) *CoordinatedPhraseElement {
	return &CoordinatedPhraseElement{node: node{features: FeatureSet{}}, Coordinates: coordinates}
}

func (c *CoordinatedPhraseElement) Conjunction() string {
	if !c.features.Has(FeatureConjunction) {
		return "and"
	}
	return c.features.Text(FeatureConjunction)
}

// ListElement is a flat sequence of realised elements, the output shape of
// every pipeline stage.
type ListElement struct {
	node
	Children []Element
}

func NewList(children ...Element) *ListElement {
	return &ListElement{node: node{features: FeatureSet{}}, Children: children}
}

// Add appends el unless it is nil.
func (l *ListElement) Add(el Element) {
	if el != nil {
		l.Children = append(l.Children, el)
	}
}

// DocumentElement is a document, section, paragraph, sentence, list or list item.
type DocumentElement struct {
	node
	Category   DocumentCategory
	Title      string
	Components []Element
}

func NewDocumentElement(category DocumentCategory, title string) *DocumentElement {
	return &DocumentElement{node: node{features: FeatureSet{}}, Category: category, Title: title}
}

// AddComponent appends el, wrapping it in an intermediate container when the
// category of d cannot hold it directly (a section holds paragraphs, so a
// sentence added to a section lands in a new paragraph).
func (d *DocumentElement) AddComponent(el Element) {
	if el == nil {
		return
	}
	child, isDoc := el.(*DocumentElement)
	switch {
	case isDoc && d.Category.CanContain(child.Category):
	case !isDoc && d.Category.HoldsPhrases():
	case !isDoc && d.Category.CanContain(DocumentSentence):
		sentence := NewDocumentElement(DocumentSentence, "")
		sentence.Components = []Element{el}
		el = sentence
	case d.Category.CanContain(DocumentParagraph):
		paragraph := NewDocumentElement(DocumentParagraph, "")
		paragraph.AddComponent(el)
		el = paragraph
	}
	d.Components = append(d.Components, el)
}
