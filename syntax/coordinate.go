package syntax

import (
	"text2phenotype.com/nlg/types"
	"strings"
)

// inherited are the features a coordination hands down to every coordinate.
var inherited = []string{
	types.FeatureTense,
	types.FeatureForm,
	types.FeatureNegated,
	types.FeatureModal,
	types.FeaturePerfect,
	types.FeatureProgressive,
	types.FeaturePassive,
	types.FeatureClauseStatus,
	types.FeatureSuppressedComplementiser,
	types.FeatureDiscourseFunction,
}

// coordination realises "A, B and C" as A conj B conj C; orthography later
// turns all but the last conjunction into commas.
func (p *processor) coordination(c *types.CoordinatedPhraseElement) types.Element {
	fs := c.Features()
	out := newList(c)
	out.SetFeature(types.FeatureCoordinated, types.Bool(true))
	p.addAll(out, c.PreModifiers, types.FunctionPreModifier)

	last := -1
	for i, coord := range c.Coordinates {
		if coord != nil {
			last = i
		}
	}
	raise := fs.Bool(types.FeatureRaiseSpecifier) && sharedSpecifier(c.Coordinates)
	conjunction := c.Conjunction()

	first := true
	for i, coord := range c.Coordinates {
		if coord == nil {
			continue
		}
		overrides := types.FeatureSet{}
		for _, name := range inherited {
			if fs.Has(name) {
				overrides[name] = fs[name]
			}
		}
		if !isNominal(coord) {
			for _, name := range []string{types.FeaturePerson, types.FeatureNumber} {
				if fs.Has(name) {
					overrides[name] = fs[name]
				}
			}
		}
		if raise && !first {
			overrides[types.FeatureRaised] = types.Bool(true)
		}
		if i == last && fs.Bool(types.FeaturePossessive) {
			overrides[types.FeaturePossessive] = types.Bool(true)
		}

		if !types.IsElided(coord) {
			if !first && conjunction != "" {
				conj := p.newWord(conjunction, types.CategoryConjunction)
				conj.SetFeature(types.FeatureDiscourseFunction, types.FunctionConjunction)
				out.Add(conj)
			}
			first = false
		}
		out.Add(p.realise(types.WithFeatures(coord, overrides)))
	}

	p.addAll(out, c.Complements, types.FunctionComplement)
	p.addAll(out, c.PostModifiers, types.FunctionPostModifier)
	return out
}

// sharedSpecifier reports whether every coordinate is a noun phrase with the
// same specifier word, which can then be said once ("the dog and woman").
func sharedSpecifier(coordinates []types.Element) bool {
	shared := ""
	for _, coord := range coordinates {
		np, ok := coord.(*types.PhraseElement)
		if !ok || np.Category != types.PhraseNoun || np.Specifier == nil {
			return false
		}
		spec := strings.ToLower(surface(np.Specifier))
		if spec == "" || (shared != "" && spec != shared) {
			return false
		}
		shared = spec
	}
	return shared != ""
}

func surface(el types.Element) string {
	switch e := el.(type) {
	case *types.WordElement:
		return e.BaseForm
	case *types.InflectedWordElement:
		return e.BaseForm
	}
	return el.Realisation()
}

// isNominal reports coordinates that keep their own person and number.
func isNominal(el types.Element) bool {
	switch e := el.(type) {
	case *types.PhraseElement:
		return e.Category == types.PhraseNoun
	case *types.WordElement:
		return e.Category == types.CategoryNoun || e.Category == types.CategoryPronoun
	case *types.CoordinatedPhraseElement:
		for _, coord := range e.Coordinates {
			if coord != nil {
				return isNominal(coord)
			}
		}
	}
	return false
}
