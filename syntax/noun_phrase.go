package syntax

import (
	"text2phenotype.com/nlg/morphology"
	"text2phenotype.com/nlg/types"
	"sort"
)

func (p *processor) nounPhrase(np *types.PhraseElement) types.Element {
	fs := np.Features()
	out := newList(np)

	if fs.Bool(types.FeaturePronominal) {
		out.Add(p.pronoun(np))
		return out
	}

	number, hasNumber := fs.Number(), fs.Has(types.FeatureNumber)
	if !hasNumber {
		if w, ok := np.Head.(*types.WordElement); ok && w.Features().Has(types.FeatureNumber) {
			number, hasNumber = w.Features().Number(), true
		}
	}

	if np.Specifier != nil && !fs.Bool(types.FeatureRaised) {
		overrides := types.FeatureSet{types.FeatureDiscourseFunction: types.FunctionSpecifier}
		if hasNumber && isDeterminer(np.Specifier) {
			overrides[types.FeatureNumber] = number
		}
		out.Add(p.realise(types.WithFeatures(np.Specifier, overrides)))
	}

	out.Children = append(out.Children, p.preModifiers(np)...)

	if np.Head != nil {
		overrides := types.FeatureSet{types.FeatureDiscourseFunction: types.FunctionHead}
		if isPronoun(np.Head) {
			// pronoun case follows the function of the whole phrase
			overrides[types.FeatureDiscourseFunction] = fs.DiscourseFunction()
		} else if hasNumber {
			overrides[types.FeatureNumber] = number
		}
		out.Add(p.realise(types.WithFeatures(np.Head, overrides)))
	}

	p.addAll(out, np.Complements, types.FunctionComplement)
	p.addAll(out, np.PostModifiers, types.FunctionPostModifier)

	if fs.Bool(types.FeaturePossessive) {
		markPossessive(out)
	}
	return out
}

// pronoun replaces a pronominalised phrase with a personal pronoun. Gender
// comes from the phrase, else from the head noun; neuter by default.
func (p *processor) pronoun(np *types.PhraseElement) types.Element {
	fs := np.Features()
	gender := fs.Gender()
	if !fs.Has(types.FeatureGender) {
		if w, ok := np.Head.(*types.WordElement); ok {
			gender = w.Features().Gender()
			if !w.Features().Has(types.FeatureGender) && w.Entry != nil {
				gender = w.Entry.Features.Gender()
			}
		}
	}
	number := fs.Number()
	if number == types.NumberBoth {
		number = types.NumberPlural
	}

	word := p.newWord(morphology.Pronoun(fs.Person(), number, gender), types.CategoryPronoun)
	word.SetFeature(types.FeatureDiscourseFunction, fs.DiscourseFunction())
	if fs.Bool(types.FeaturePossessive) {
		word.SetFeature(types.FeaturePossessive, types.Bool(true))
	}
	if types.IsElided(np) {
		word.SetFeature(types.FeatureElided, types.Bool(true))
	}
	return word
}

// preModifiers realises the pre-modifiers of np. Unless adjective ordering
// is switched off, qualitative adjectives come first, then colour, then
// classifying adjectives, then nouns.
func (p *processor) preModifiers(np *types.PhraseElement) []types.Element {
	var realised []types.Element
	for _, mod := range np.PreModifiers {
		if mod == nil {
			continue
		}
		realised = append(realised, p.realise(withFunction(mod, types.FunctionPreModifier)))
	}

	ordering := np.Features()[types.FeatureAdjectiveOrdering]
	if ordering == nil || ordering == types.Bool(true) {
		sort.SliceStable(realised, func(i, j int) bool {
			return modifierRank(realised[i]) < modifierRank(realised[j])
		})
	}
	return realised
}

func modifierRank(el types.Element) int {
	w, ok := el.(*types.InflectedWordElement)
	if !ok {
		return 0
	}
	switch {
	case w.Category == types.CategoryNoun:
		return 3
	case w.Category != types.CategoryAdjective:
		return 0
	case w.Flag(types.FeatureClassifying):
		return 2
	case w.Flag(types.FeatureColour):
		return 1
	}
	return 0
}

func isDeterminer(el types.Element) bool {
	switch w := el.(type) {
	case *types.WordElement:
		return w.Category == types.CategoryDeterminer
	case *types.InflectedWordElement:
		return w.Category == types.CategoryDeterminer
	}
	return false
}

func isPronoun(el types.Element) bool {
	switch w := el.(type) {
	case *types.WordElement:
		return w.Category == types.CategoryPronoun
	case *types.InflectedWordElement:
		return w.Category == types.CategoryPronoun
	}
	return false
}
