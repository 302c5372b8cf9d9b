package builder

import (
	"fmt"
	"text2phenotype.com/nlg/lexicon"
	"text2phenotype.com/nlg/morphology"
	"text2phenotype.com/nlg/types"
	"strings"
)

// determiners open a noun phrase given as a single string ("the man").
var determiners = map[string]bool{
	"a": true, "an": true, "the": true, "some": true, "this": true, "that": true, "these": true,
	"those": true, "every": true, "each": true, "any": true, "no": true, "my": true, "your": true,
	"his": true, "her": true, "its": true, "our": true, "their": true,
}

// Factory builds element trees. Words are left unresolved: syntax looks
// them up in its own lexicon. The factory lexicon is only consulted to
// place modifiers.
//
// Arguments typed interface{} accept a string, a *types.WordEntry or a
// types.Element.
type Factory struct {
	Lexicon lexicon.Lexicon
}

func NewFactory(lex lexicon.Lexicon) *Factory {
	return &Factory{Lexicon: lex}
}

func (f *Factory) Word(base string, category types.LexicalCategory) *types.WordElement {
	return types.NewWord(base, category)
}

// NewNounPhrase builds a noun phrase. A noun string that starts with a
// determiner is split into specifier and head; a personal pronoun becomes a
// pronoun head.
func (f *Factory) NewNounPhrase(specifier interface{}, noun interface{}) *types.PhraseElement {
	if np, ok := noun.(*types.PhraseElement); ok && np.Category == types.PhraseNoun {
		if specifier != nil {
			np.Specifier = f.specifier(specifier)
		}
		return np
	}
	np := types.NewPhrase(types.PhraseNoun)
	np.Specifier = f.specifier(specifier)

	text, ok := noun.(string)
	if !ok {
		np.Head = f.element(noun, types.CategoryNoun)
		return np
	}
	tokens := strings.Fields(text)
	switch {
	case len(tokens) == 0:
	case len(tokens) > 1 && np.Specifier == nil && determiners[strings.ToLower(tokens[0])]:
		np.Specifier = types.NewWord(tokens[0], types.CategoryDeterminer)
		np.Head = types.NewWord(strings.Join(tokens[1:], " "), types.CategoryNoun)
	case len(tokens) == 1 && isPronoun(tokens[0]):
		np.Head = types.NewWord(tokens[0], types.CategoryPronoun)
	default:
		np.Head = types.NewWord(text, types.CategoryNoun)
	}
	return np
}

func isPronoun(token string) bool {
	_, _, _, ok := morphology.PronounFeatures(token)
	return ok
}

func (f *Factory) specifier(v interface{}) types.Element {
	if text, ok := v.(string); ok {
		if text == "" {
			return nil
		}
		return types.NewWord(text, types.CategoryDeterminer)
	}
	return f.element(v, types.CategoryDeterminer)
}

func (f *Factory) NewVerbPhrase(verb interface{}) *types.PhraseElement {
	if vp, ok := verb.(*types.PhraseElement); ok && vp.Category == types.PhraseVerb {
		return vp
	}
	vp := types.NewPhrase(types.PhraseVerb)
	vp.Head = f.element(verb, types.CategoryVerb)
	return vp
}

// NewClause builds subject-verb-object clauses. Any argument may be nil.
func (f *Factory) NewClause(subject, verb, object interface{}) *types.PhraseElement {
	c := types.NewPhrase(types.PhraseClause)
	vp := f.NewVerbPhrase(verb)
	c.Head = vp
	if subject != nil {
		c.Subjects = []types.Element{f.argument(subject)}
	}
	if object != nil {
		vp.Objects = []types.Element{f.argument(object)}
	}
	return c
}

func (f *Factory) NewPrepositionalPhrase(preposition interface{}, object interface{}) *types.PhraseElement {
	pp := types.NewPhrase(types.PhrasePrepositional)
	pp.Head = f.element(preposition, types.CategoryPreposition)
	if object != nil {
		pp.Complements = []types.Element{f.argument(object)}
	}
	return pp
}

func (f *Factory) NewAdjectivePhrase(adjective interface{}) *types.PhraseElement {
	ap := types.NewPhrase(types.PhraseAdjective)
	ap.Head = f.element(adjective, types.CategoryAdjective)
	return ap
}

func (f *Factory) NewAdverbPhrase(adverb interface{}) *types.PhraseElement {
	ap := types.NewPhrase(types.PhraseAdverb)
	ap.Head = f.element(adverb, types.CategoryAdverb)
	return ap
}

// NewCoordination joins the coordinates with "and". Strings are read as
// noun phrases.
func (f *Factory) NewCoordination(coordinates ...interface{}) *types.CoordinatedPhraseElement {
	c := types.NewCoordinatedPhrase()
	for _, coord := range coordinates {
		if coord != nil {
			c.Coordinates = append(c.Coordinates, f.argument(coord))
		}
	}
	return c
}

func (f *Factory) NewSentence(components ...interface{}) *types.DocumentElement {
	return f.document(types.DocumentSentence, "", components)
}

func (f *Factory) NewParagraph(components ...interface{}) *types.DocumentElement {
	return f.document(types.DocumentParagraph, "", components)
}

func (f *Factory) NewSection(title string, components ...interface{}) *types.DocumentElement {
	return f.document(types.DocumentSection, title, components)
}

func (f *Factory) NewDocument(title string, components ...interface{}) *types.DocumentElement {
	return f.document(types.DocumentRoot, title, components)
}

func (f *Factory) NewList(items ...interface{}) *types.DocumentElement {
	list := types.NewDocumentElement(types.DocumentList, "")
	for _, item := range items {
		if doc, ok := item.(*types.DocumentElement); ok && doc.Category == types.DocumentListItem {
			list.AddComponent(doc)
			continue
		}
		list.AddComponent(f.NewListItem(item))
	}
	return list
}

func (f *Factory) NewListItem(components ...interface{}) *types.DocumentElement {
	return f.document(types.DocumentListItem, "", components)
}

func (f *Factory) document(category types.DocumentCategory, title string, components []interface{}) *types.DocumentElement {
	doc := types.NewDocumentElement(category, title)
	for _, c := range components {
		if text, ok := c.(string); ok {
			doc.AddComponent(types.NewStringElement(text))
			continue
		}
		doc.AddComponent(f.element(c, types.CategoryAny))
	}
	return doc
}

// AddModifier places modifier in the slot its kind calls for. On clauses and
// verb phrases, sentence-modifying adverbs go to the front, other adverbs
// before the verb and everything else after it. On noun phrases adjectives
// go before the head. Strings that are not single adverbs or adjectives in
// the lexicon are added as canned post-modifiers.
func (f *Factory) AddModifier(ph *types.PhraseElement, modifier interface{}) error {
	mod, err := f.modifier(modifier)
	if err != nil {
		return err
	}
	if mod == nil {
		return nil
	}

	switch ph.Category {
	case types.PhraseClause:
		if vp := ph.VerbPhrase(); vp != nil && !isSentenceModifier(mod) && isAdverbial(mod) {
			vp.PreModifiers = append(vp.PreModifiers, mod)
			return nil
		}
		switch {
		case isSentenceModifier(mod):
			ph.FrontModifiers = append(ph.FrontModifiers, mod)
		case isAdverbial(mod):
			ph.PreModifiers = append(ph.PreModifiers, mod)
		default:
			ph.PostModifiers = append(ph.PostModifiers, mod)
		}
	case types.PhraseVerb, types.PhraseAdjective, types.PhraseAdverb:
		if isAdverbial(mod) {
			ph.PreModifiers = append(ph.PreModifiers, mod)
		} else {
			ph.PostModifiers = append(ph.PostModifiers, mod)
		}
	case types.PhraseNoun:
		if isAdjectival(mod) {
			ph.PreModifiers = append(ph.PreModifiers, mod)
		} else {
			ph.PostModifiers = append(ph.PostModifiers, mod)
		}
	default:
		ph.PostModifiers = append(ph.PostModifiers, mod)
	}
	return nil
}

// modifier resolves a string modifier to an adverb or adjective word when
// the lexicon knows it as one.
func (f *Factory) modifier(v interface{}) (types.Element, error) {
	text, ok := v.(string)
	if !ok {
		return f.element(v, types.CategoryAny), nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if f.Lexicon == nil || strings.ContainsRune(text, ' ') {
		return types.NewStringElement(text), nil
	}
	entries, err := f.Lexicon.FindByBase(text, types.CategoryAny)
	if err != nil {
		return nil, fmt.Errorf("looking up modifier %q: %w", text, err)
	}
	for _, want := range []types.LexicalCategory{types.CategoryAdverb, types.CategoryAdjective} {
		for _, entry := range entries {
			if entry.Category == want {
				return types.NewWordFromEntry(entry), nil
			}
		}
	}
	return types.NewStringElement(text), nil
}

func isSentenceModifier(el types.Element) bool {
	w, ok := el.(*types.WordElement)
	return ok && w.Category == types.CategoryAdverb && w.Entry.Flag(types.FeatureSentenceModifier)
}

func isAdverbial(el types.Element) bool {
	switch e := el.(type) {
	case *types.WordElement:
		return e.Category == types.CategoryAdverb
	case *types.PhraseElement:
		return e.Category == types.PhraseAdverb
	}
	return false
}

func isAdjectival(el types.Element) bool {
	switch e := el.(type) {
	case *types.WordElement:
		return e.Category == types.CategoryAdjective
	case *types.PhraseElement:
		return e.Category == types.PhraseAdjective
	}
	return false
}

// argument converts subjects, objects and complements: strings become
// noun phrases.
func (f *Factory) argument(v interface{}) types.Element {
	if text, ok := v.(string); ok {
		return f.NewNounPhrase(nil, text)
	}
	return f.element(v, types.CategoryNoun)
}

func (f *Factory) element(v interface{}, category types.LexicalCategory) types.Element {
	switch e := v.(type) {
	case nil:
		return nil
	case string:
		if e == "" {
			return nil
		}
		return types.NewWord(e, category)
	case *types.WordEntry:
		return types.NewWordFromEntry(e)
	case types.Element:
		return e
	}
	return types.NewStringElement(fmt.Sprint(v))
}
