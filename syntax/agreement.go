package syntax

import (
	"text2phenotype.com/nlg/morphology"
	"text2phenotype.com/nlg/types"
	"strings"
)

type agreement struct {
	person types.Person
	number types.NumberAgreement
}

var thirdSingular = agreement{person: types.PersonThird, number: types.NumberSingular}

// agreementOf resolves the person and number a verb takes from subject.
func agreementOf(subject types.Element) agreement {
	switch s := subject.(type) {
	case *types.CoordinatedPhraseElement:
		return coordinationAgreement(s)
	case *types.PhraseElement:
		if s.Category != types.PhraseNoun {
			return thirdSingular
		}
		return nounPhraseAgreement(s)
	case *types.WordElement:
		return wordAgreement(s.BaseForm, s.Category, s.Features())
	case *types.InflectedWordElement:
		return wordAgreement(s.BaseForm, s.Category, s.Features())
	}
	return thirdSingular
}

// coordinationAgreement: an explicit number wins; "or" and "nor" agree with
// the last coordinate; anything else is plural. The person is the lowest one
// among the coordinates ("you and I" is first person).
func coordinationAgreement(c *types.CoordinatedPhraseElement) agreement {
	var coordinates []types.Element
	for _, coord := range c.Coordinates {
		if coord != nil && !types.IsElided(coord) {
			coordinates = append(coordinates, coord)
		}
	}
	if len(coordinates) == 0 {
		return thirdSingular
	}
	if len(coordinates) == 1 {
		return agreementOf(coordinates[0])
	}

	result := agreement{person: types.PersonThird, number: types.NumberPlural}
	for _, coord := range coordinates {
		switch agreementOf(coord).person {
		case types.PersonFirst:
			result.person = types.PersonFirst
		case types.PersonSecond:
			if result.person != types.PersonFirst {
				result.person = types.PersonSecond
			}
		}
	}

	fs := c.Features()
	switch conj := strings.ToLower(c.Conjunction()); {
	case fs.Has(types.FeatureNumber):
		result.number = plural(fs.Number())
	case conj == "or" || conj == "nor":
		last := agreementOf(coordinates[len(coordinates)-1])
		result = last
	}
	return result
}

func nounPhraseAgreement(np *types.PhraseElement) agreement {
	fs := np.Features()
	if fs.Bool(types.FeaturePronominal) {
		return agreement{person: fs.Person(), number: plural(fs.Number())}
	}
	result := thirdSingular
	if np.Head != nil {
		result = agreementOf(np.Head)
	}
	if fs.Has(types.FeatureNumber) {
		result.number = plural(fs.Number())
	}
	if fs.Has(types.FeaturePerson) {
		result.person = fs.Person()
	}
	return result
}

func wordAgreement(base string, category types.LexicalCategory, fs types.FeatureSet) agreement {
	result := thirdSingular
	if category == types.CategoryPronoun || category == types.CategoryAny {
		if person, number, _, ok := morphology.PronounFeatures(base); ok {
			result = agreement{person: person, number: number}
		}
	}
	if fs.Has(types.FeatureNumber) {
		result.number = plural(fs.Number())
	}
	return result
}

// plural folds the invariant number into the two agreement values: a phrase
// explicitly marked BOTH agrees as a plural.
func plural(n types.NumberAgreement) types.NumberAgreement {
	if n == types.NumberBoth {
		return types.NumberPlural
	}
	return n
}

// isExpletive reports a "there" subject, whose verb agrees with the object.
func isExpletive(subject types.Element) bool {
	switch s := subject.(type) {
	case *types.PhraseElement:
		if s.Category == types.PhraseNoun && s.Specifier == nil && len(s.PreModifiers) == 0 {
			return isExpletive(s.Head)
		}
	case *types.WordElement:
		return strings.EqualFold(s.BaseForm, "there") || s.Entry.Flag(types.FeatureExpletiveSubject) ||
			s.Features().Bool(types.FeatureExpletiveSubject)
	case *types.StringElement:
		return strings.EqualFold(s.Realisation(), "there")
	}
	return false
}
