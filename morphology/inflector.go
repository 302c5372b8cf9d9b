package morphology

import (
	"text2phenotype.com/nlg/types"
	"strings"
)

// Inflector returns the surface form of a single word.
type Inflector func(word *types.InflectedWordElement) string

func NewInflector(rules *MorphologicalRules) Inflector {
	return func(word *types.InflectedWordElement) string {
		if word == nil || types.IsElided(word) {
			return ""
		}
		if word.Features().Bool(types.FeatureNonMorph) {
			return word.BaseForm
		}

		var form string
		switch word.Category {
		case types.CategoryNoun:
			form = rules.noun(word)
		case types.CategoryVerb, types.CategoryAuxiliary:
			form = rules.verb(word)
		case types.CategoryAdjective:
			form = rules.adjective(word)
		case types.CategoryAdverb:
			form = rules.adverb(word)
		case types.CategoryDeterminer:
			return rules.determinerForm(word)
		case types.CategoryPronoun:
			return pronounForm(word)
		default:
			form = word.BaseForm
		}

		if word.Features().Bool(types.FeaturePossessive) {
			form = Possessive(form)
		}
		return form
	}
}

// Possessive appends the possessive marker: "'s", or a bare apostrophe after
// a final s.
func Possessive(form string) string {
	if form == "" {
		return form
	}
	if strings.HasSuffix(form, "s") {
		return form + "'"
	}
	return form + "'s"
}

func (rules *MorphologicalRules) noun(word *types.InflectedWordElement) string {
	fs := word.Features()
	if fs.Number() != types.NumberPlural {
		return word.BaseForm
	}
	if word.Flag(types.FeatureNonCount) || word.Flag(types.FeatureProper) {
		return word.BaseForm
	}
	if word.Entry != nil && word.Entry.Features.Number() == types.NumberBoth {
		return word.BaseForm
	}
	if form, ok := rules.irregular(word, types.FeaturePlural); ok {
		return form
	}
	if pattern(word) == types.PatternGrecoLatinRegular {
		return rules.GrecoLatinPlural(word.BaseForm)
	}
	base := word.BaseForm
	// consonant + o: potato -> potatoes
	if n := len(base); n > 1 && base[n-1] == 'o' && !isVowel(base[n-2]) && isLetter(base[n-2]) {
		return base + "es"
	}
	return AddSuffix(base, "s", false)
}

func (rules *MorphologicalRules) verb(word *types.InflectedWordElement) string {
	fs := word.Features()
	if strings.EqualFold(word.BaseForm, "be") {
		return be(fs)
	}

	switch fs.Form() {
	case types.FormBareInfinitive, types.FormInfinitive, types.FormImperative:
		return word.BaseForm
	case types.FormGerund, types.FormPresentParticiple:
		return rules.verbForm(word, types.FeaturePresentParticiple)
	case types.FormPastParticiple:
		return rules.verbForm(word, types.FeaturePastParticiple)
	}

	switch fs.Tense() {
	case types.TensePast:
		return rules.verbForm(word, types.FeaturePast)
	case types.TensePresent:
		if fs.Person() == types.PersonThird && fs.Number() == types.NumberSingular {
			return rules.verbForm(word, types.FeaturePresent3S)
		}
	}
	return word.BaseForm
}

func (rules *MorphologicalRules) verbForm(word *types.InflectedWordElement, feature string) string {
	if form, ok := rules.irregular(word, feature); ok {
		return form
	}
	base := word.BaseForm
	head, particle := splitPhrasal(base)
	double := doublesConsonant(word)

	var form string
	switch feature {
	case types.FeaturePast:
		form = AddSuffix(head, "ed", double)
	case types.FeaturePastParticiple:
		if past, ok := rules.irregular(word, types.FeaturePast); ok {
			return past
		}
		form = AddSuffix(head, "ed", double)
	case types.FeaturePresentParticiple:
		form = AddSuffix(head, "ing", double)
	case types.FeaturePresent3S:
		if n := len(head); n > 1 && head[n-1] == 'o' && !isVowel(head[n-2]) {
			form = head + "es"
		} else {
			form = AddSuffix(head, "s", false)
		}
	default:
		return base
	}
	return form + particle
}

// splitPhrasal splits "look up" into "look" and " up" so that only the verb
// is inflected.
func splitPhrasal(base string) (string, string) {
	if i := strings.IndexByte(base, ' '); i > 0 {
		return base[:i], base[i:]
	}
	return base, ""
}

func be(fs types.FeatureSet) string {
	switch fs.Form() {
	case types.FormBareInfinitive, types.FormInfinitive, types.FormImperative:
		return "be"
	case types.FormGerund, types.FormPresentParticiple:
		return "being"
	case types.FormPastParticiple:
		return "been"
	}
	plural := fs.Number() == types.NumberPlural || fs.Number() == types.NumberBoth
	switch fs.Tense() {
	case types.TensePast:
		if plural || fs.Person() == types.PersonSecond {
			return "were"
		}
		return "was"
	case types.TenseFuture:
		return "be"
	}
	switch {
	case plural || fs.Person() == types.PersonSecond:
		return "are"
	case fs.Person() == types.PersonFirst:
		return "am"
	}
	return "is"
}

func (rules *MorphologicalRules) adjective(word *types.InflectedWordElement) string {
	return rules.graded(word, false)
}

func (rules *MorphologicalRules) adverb(word *types.InflectedWordElement) string {
	return rules.graded(word, true)
}

func (rules *MorphologicalRules) graded(word *types.InflectedWordElement, adverb bool) string {
	fs := word.Features()
	var feature, suffix, periphrastic string
	switch {
	case fs.Bool(types.FeatureSuperlative):
		feature, suffix, periphrastic = types.FeatureSuperlativeForm, "est", "most "
	case fs.Bool(types.FeatureComparative):
		feature, suffix, periphrastic = types.FeatureComparativeForm, "er", "more "
	default:
		return word.BaseForm
	}
	if form, ok := rules.irregular(word, feature); ok {
		return form
	}
	base := word.BaseForm
	if long(base) || (adverb && strings.HasSuffix(base, "ly")) {
		return periphrastic + base
	}
	return AddSuffix(base, suffix, doublesConsonant(word))
}

// long reports words of three or more syllables, and two-syllable words not
// ending in y, which take "more"/"most".
func long(word string) bool {
	syllables := 0
	inVowel := false
	for i := 0; i < len(word); i++ {
		v := isVowel(word[i]) || (word[i] == 'y' && i > 0)
		if v && !inVowel {
			syllables++
		}
		inVowel = v
	}
	// silent final e
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && syllables > 1 {
		syllables--
	}
	if syllables > 2 {
		return true
	}
	return syllables == 2 && !strings.HasSuffix(word, "y") && !strings.HasSuffix(word, "le") &&
		!strings.HasSuffix(word, "er") && !strings.HasSuffix(word, "ow")
}

func pattern(word *types.InflectedWordElement) types.Pattern {
	p := word.Features().Pattern()
	if p == types.PatternUnspecified && word.Entry != nil {
		p = word.Entry.Features.Pattern()
	}
	return p
}
