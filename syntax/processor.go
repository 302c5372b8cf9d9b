package syntax

import (
	"text2phenotype.com/nlg/lexicon"
	"text2phenotype.com/nlg/types"
)

// Realise rewrites a phrase tree into nested lists of inflectable words, each
// tagged with its discourse function. The input tree is left untouched. The
// only error is a failing lexicon lookup.
func Realise(lex lexicon.Lexicon, el types.Element) (types.Element, error) {
	p := &processor{lex: lex}
	out := p.realise(el)
	if p.err != nil {
		return nil, p.err
	}
	return out, nil
}

// processor keeps the first lookup error of one realisation. Rule code keeps
// going after an error; the result is discarded.
type processor struct {
	lex lexicon.Lexicon
	err error
}

func (p *processor) realise(el types.Element) types.Element {
	switch e := el.(type) {
	case nil:
		return nil
	case *types.WordElement:
		return p.word(e)
	case *types.PhraseElement:
		switch e.Category {
		case types.PhraseClause:
			return p.clause(e)
		case types.PhraseNoun:
			return p.nounPhrase(e)
		case types.PhraseVerb:
			return p.verbPhraseAlone(e)
		}
		return p.phrase(e)
	case *types.CoordinatedPhraseElement:
		return p.coordination(e)
	case *types.ListElement:
		out := types.ShallowCopy(e).(*types.ListElement)
		for i, child := range out.Children {
			out.Children[i] = p.realise(child)
		}
		return out
	case *types.DocumentElement:
		out := types.ShallowCopy(e).(*types.DocumentElement)
		for i, child := range out.Components {
			out.Components[i] = p.realise(child)
		}
		return out
	}
	// inflected words, canned text and anything unknown pass through
	return types.ShallowCopy(el)
}

func (p *processor) lookup(term string, category types.LexicalCategory) *types.WordEntry {
	entry, err := lexicon.LookupWord(p.lex, term, category)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return types.NewWordEntry(term, category)
	}
	return entry
}

// word resolves the lexicon entry of w and returns its inflectable copy. A
// word given by an inflected form ("are") takes the base form of its entry.
func (p *processor) word(w *types.WordElement) *types.InflectedWordElement {
	out := types.Inflect(w)
	if out.Entry == nil {
		out.Entry = p.lookup(w.BaseForm, w.Category)
	}
	if out.Entry.BaseForm != "" && out.Entry.Category.Matches(out.Category) {
		out.BaseForm = out.Entry.BaseForm
		if out.Category == types.CategoryAny {
			out.Category = out.Entry.Category
		}
	}
	return out
}

// newWord builds a word the realiser inserts on its own ("do", "not", "by").
func (p *processor) newWord(base string, category types.LexicalCategory) *types.InflectedWordElement {
	return p.word(types.NewWord(base, category))
}

// newList starts the output of src, carrying its features.
func newList(src types.Element) *types.ListElement {
	out := types.NewList()
	for name, value := range src.Features() {
		out.SetFeature(name, value)
	}
	return out
}

// add realises el with the given discourse function and appends the result.
func (p *processor) add(list *types.ListElement, el types.Element, fn types.DiscourseFunction) {
	if el == nil {
		return
	}
	list.Add(p.realise(withFunction(el, fn)))
}

func (p *processor) addAll(list *types.ListElement, els []types.Element, fn types.DiscourseFunction) {
	for _, el := range els {
		p.add(list, el, fn)
	}
}

func withFunction(el types.Element, fn types.DiscourseFunction) types.Element {
	if fn == types.FunctionNone {
		return el
	}
	return types.WithFeatures(el, types.FeatureSet{types.FeatureDiscourseFunction: fn})
}

// joined coordinates several elements with "and"; a single element is
// returned as it is.
func joined(els []types.Element) types.Element {
	switch len(els) {
	case 0:
		return nil
	case 1:
		return els[0]
	}
	return types.NewCoordinatedPhrase(els...)
}

// phrase realises adjective, adverb, prepositional and canned-text phrases.
func (p *processor) phrase(ph *types.PhraseElement) types.Element {
	out := newList(ph)
	p.addAll(out, ph.PreModifiers, types.FunctionPreModifier)

	if ph.Head != nil {
		overrides := types.FeatureSet{types.FeatureDiscourseFunction: types.FunctionHead}
		for _, name := range []string{types.FeatureComparative, types.FeatureSuperlative} {
			if ph.Features().Has(name) {
				overrides[name] = ph.Features()[name]
			}
		}
		out.Add(p.realise(types.WithFeatures(ph.Head, overrides)))
	}

	p.add(out, joined(ph.Complements), types.FunctionComplement)
	p.addAll(out, ph.PostModifiers, types.FunctionPostModifier)
	if ph.Features().Bool(types.FeaturePossessive) {
		markPossessive(out)
	}
	return out
}

// markPossessive puts the possessive marker on the last word that produces
// text.
func markPossessive(el types.Element) bool {
	if types.IsElided(el) {
		return false
	}
	switch e := el.(type) {
	case *types.ListElement:
		for i := len(e.Children) - 1; i >= 0; i-- {
			if markPossessive(e.Children[i]) {
				return true
			}
		}
		return false
	case *types.InflectedWordElement, *types.StringElement:
		e.SetFeature(types.FeaturePossessive, types.Bool(true))
		return true
	}
	return false
}
