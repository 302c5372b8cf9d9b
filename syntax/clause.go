package syntax

import (
	"text2phenotype.com/nlg/types"
)

var whWords = map[types.InterrogativeType][]string{
	types.InterrogativeWhatObject:        {"what"},
	types.InterrogativeWhoObject:         {"who"},
	types.InterrogativeWhoSubject:        {"who"},
	types.InterrogativeWhoIndirectObject: {"who"},
	types.InterrogativeWhere:             {"where"},
	types.InterrogativeWhy:               {"why"},
	types.InterrogativeHow:               {"how"},
	types.InterrogativeHowMany:           {"how", "many"},
}

var whCategories = map[string]types.LexicalCategory{
	"what":  types.CategoryPronoun,
	"who":   types.CategoryPronoun,
	"where": types.CategoryAdverb,
	"why":   types.CategoryAdverb,
	"how":   types.CategoryAdverb,
	"many":  types.CategoryDeterminer,
}

// clause realises a clause. Features of the clause take precedence over the
// ones on its verb phrase.
func (p *processor) clause(c *types.PhraseElement) types.Element {
	vp := c.VerbPhrase()
	if vp == nil {
		vp = types.NewPhrase(types.PhraseVerb)
		vp.Head = c.Head
	}
	settings := vp.Features().Copy()
	settings.Merge(c.Features())

	form := settings.Form()
	question := settings.InterrogativeType()
	if !form.Finite() {
		question = types.InterrogativeNone
	}

	subjects := nonNil(c.Subjects)
	objects := nonNil(vp.Objects)
	indirect := nonNil(vp.IndirectObjects)
	switch question {
	case types.InterrogativeWhatObject, types.InterrogativeWhoObject:
		objects = nil
	case types.InterrogativeWhoIndirectObject:
		indirect = nil
	case types.InterrogativeWhoSubject:
		subjects = nil
	}

	// a passive who-subject question asks for the agent: "who is the cat
	// chased by"
	agentQuestion := question == types.InterrogativeWhoSubject && settings.Bool(types.FeaturePassive)

	var agent types.Element
	if settings.Bool(types.FeaturePassive) {
		switch {
		case agentQuestion:
			agent = types.NewWord("by", types.CategoryPreposition)
		case len(visible(subjects)) > 0:
			by := types.NewPhrase(types.PhrasePrepositional)
			by.Head = types.NewWord("by", types.CategoryPreposition)
			by.Complements = []types.Element{withFunction(joined(subjects), types.FunctionObject)}
			agent = by
		}
		subjects, objects = objects, nil
	}

	subjectQuestion := question == types.InterrogativeWhoSubject && !agentQuestion
	agr := clauseAgreement(settings, visible(subjects), vp.Objects, subjectQuestion)
	invert := question != types.InterrogativeNone && question != types.InterrogativeHowMany && !subjectQuestion

	// an elided verb phrase keeps its place in the tree but every word it
	// contributes is suppressed
	vpElided := types.IsElided(vp)
	fromVP := func(el types.Element) types.Element {
		if !vpElided || el == nil {
			return el
		}
		return types.WithFeatures(el, types.FeatureSet{types.FeatureElided: types.Bool(true)})
	}

	var premods []types.Element
	for _, mod := range vp.PreModifiers {
		if mod != nil {
			premods = append(premods, p.realise(withFunction(fromVP(mod), types.FunctionPreModifier)))
		}
	}
	for _, mod := range c.PreModifiers {
		if mod != nil {
			premods = append(premods, p.realise(withFunction(mod, types.FunctionPreModifier)))
		}
	}
	verbs := p.verbGroup(vp, settings, agr, invert, premods)
	if vpElided {
		for _, v := range verbs {
			if !contains(premods, v) {
				v.SetFeature(types.FeatureElided, types.Bool(true))
			}
		}
	}

	out := newList(c)
	if settings.ClauseStatus() == types.ClauseSubordinate && form.Finite() &&
		!settings.Bool(types.FeatureSuppressedComplementiser) {
		complementiser := c.Complementiser
		if complementiser == nil {
			complementiser = types.NewWord("that", types.CategoryComplementiser)
		}
		p.add(out, complementiser, types.FunctionComplementiser)
	}
	p.add(out, c.CuePhrase, types.FunctionCuePhrase)
	p.addAll(out, c.FrontModifiers, types.FunctionFrontModifier)

	if question != types.InterrogativeNone {
		out.SetFeature(types.FeatureInterrogative, types.Bool(true))
		for _, wh := range whWords[question] {
			out.Add(p.newWord(wh, whCategories[wh]))
		}
		if invert && len(verbs) > 0 {
			out.Add(verbs[0])
			verbs = verbs[1:]
		}
	}

	if form != types.FormImperative {
		p.addArgument(out, joined(subjects), types.FunctionSubject)
	}
	out.Children = append(out.Children, verbs...)

	p.addArgument(out, fromVP(joined(indirect)), types.FunctionIndirectObject)
	p.addArgument(out, fromVP(joined(objects)), types.FunctionObject)
	for _, complement := range vp.Complements {
		p.addArgument(out, fromVP(complement), types.FunctionComplement)
	}
	for _, complement := range c.Complements {
		p.addArgument(out, complement, types.FunctionComplement)
	}
	if question == types.InterrogativeWhoIndirectObject {
		p.add(out, fromVP(types.NewWord("to", types.CategoryPreposition)), types.FunctionNone)
	}
	p.add(out, agent, types.FunctionComplement)

	for _, mod := range vp.PostModifiers {
		p.add(out, fromVP(mod), types.FunctionPostModifier)
	}
	p.addAll(out, c.PostModifiers, types.FunctionPostModifier)
	return out
}

// verbPhraseAlone realises a verb phrase that is not the head of a clause,
// such as a coordinate of a coordinated predicate.
func (p *processor) verbPhraseAlone(vp *types.PhraseElement) types.Element {
	c := types.NewPhrase(types.PhraseClause)
	c.Head = vp
	c.SetFeature(types.FeatureClauseStatus, types.ClauseMatrix)
	c.SetFeature(types.FeatureInterrogativeType, types.InterrogativeNone)
	if fn := types.FunctionOf(vp); fn != types.FunctionNone {
		c.SetFeature(types.FeatureDiscourseFunction, fn)
	}
	return p.clause(c)
}

// addArgument adds a subject, object or complement. An embedded clause in
// one of these positions is subordinate.
func (p *processor) addArgument(list *types.ListElement, el types.Element, fn types.DiscourseFunction) {
	if ph, ok := el.(*types.PhraseElement); ok && ph.Category == types.PhraseClause {
		el = types.WithFeatures(el, types.FeatureSet{types.FeatureClauseStatus: types.ClauseSubordinate})
	}
	p.add(list, el, fn)
}

func clauseAgreement(settings types.FeatureSet, subjects, objects []types.Element,
	subjectQuestion bool) agreement {
	result := thirdSingular
	switch {
	case subjectQuestion || len(subjects) == 0:
	case len(subjects) > 1:
		result = coordinationAgreement(types.NewCoordinatedPhrase(subjects...))
	case isExpletive(subjects[0]) && len(visible(objects)) > 0:
		result = agreementOf(visible(objects)[0])
	default:
		result = agreementOf(subjects[0])
	}
	if settings.Has(types.FeatureNumber) {
		result.number = plural(settings.Number())
	}
	if settings.Has(types.FeaturePerson) {
		result.person = settings.Person()
	}
	return result
}

func nonNil(els []types.Element) []types.Element {
	var out []types.Element
	for _, el := range els {
		if el != nil {
			out = append(out, el)
		}
	}
	return out
}

func visible(els []types.Element) []types.Element {
	var out []types.Element
	for _, el := range els {
		if el != nil && !types.IsElided(el) {
			out = append(out, el)
		}
	}
	return out
}

func contains(els []types.Element, el types.Element) bool {
	for _, e := range els {
		if e == el {
			return true
		}
	}
	return false
}
