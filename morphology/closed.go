package morphology

import (
	"text2phenotype.com/nlg/types"
	"strings"
	"unicode"
)

type pronounKey struct {
	person types.Person
	number types.NumberAgreement
	gender types.Gender
}

type pronounForms struct {
	nominative string
	accusative string
	possessive string
}

var pronounTable = map[pronounKey]pronounForms{
	{types.PersonFirst, types.NumberSingular, types.GenderNeuter}:    {"I", "me", "my"},
	{types.PersonFirst, types.NumberPlural, types.GenderNeuter}:      {"we", "us", "our"},
	{types.PersonSecond, types.NumberSingular, types.GenderNeuter}:   {"you", "you", "your"},
	{types.PersonSecond, types.NumberPlural, types.GenderNeuter}:     {"you", "you", "your"},
	{types.PersonThird, types.NumberSingular, types.GenderMasculine}: {"he", "him", "his"},
	{types.PersonThird, types.NumberSingular, types.GenderFeminine}:  {"she", "her", "her"},
	{types.PersonThird, types.NumberSingular, types.GenderNeuter}:    {"it", "it", "its"},
	{types.PersonThird, types.NumberPlural, types.GenderNeuter}:      {"they", "them", "their"},
}

// pronounIndex maps every known pronoun form to its key.
var pronounIndex = func() map[string]pronounKey {
	index := make(map[string]pronounKey)
	// nominative forms win over the others when a form is shared ("her")
	for key, forms := range pronounTable {
		for _, f := range []string{forms.possessive, forms.accusative} {
			if _, ok := index[strings.ToLower(f)]; !ok {
				index[strings.ToLower(f)] = key
			}
		}
	}
	for key, forms := range pronounTable {
		index[strings.ToLower(forms.nominative)] = key
	}
	// "you" is ambiguous for number; singular is the default reading
	index["you"] = pronounKey{types.PersonSecond, types.NumberSingular, types.GenderNeuter}
	return index
}()

// Pronoun returns the nominative personal pronoun for the given features.
// Gender only matters in the third person singular; neuter is the default.
func Pronoun(person types.Person, number types.NumberAgreement, gender types.Gender) string {
	if number == types.NumberBoth {
		number = types.NumberPlural
	}
	if person != types.PersonThird || number == types.NumberPlural {
		gender = types.GenderNeuter
	}
	return pronounTable[pronounKey{person, number, gender}].nominative
}

// PronounFeatures reports the person, number and gender of a personal pronoun.
func PronounFeatures(form string) (types.Person, types.NumberAgreement, types.Gender, bool) {
	key, ok := pronounIndex[strings.ToLower(form)]
	return key.person, key.number, key.gender, ok
}

func pronounForm(word *types.InflectedWordElement) string {
	key, ok := pronounIndex[strings.ToLower(word.BaseForm)]
	if !ok {
		return word.BaseForm
	}
	forms := pronounTable[key]
	fs := word.Features()
	if fs.Bool(types.FeaturePossessive) {
		return forms.possessive
	}
	switch fs.DiscourseFunction() {
	case types.FunctionSubject:
		return forms.nominative
	case types.FunctionObject, types.FunctionIndirectObject, types.FunctionComplement:
		return forms.accusative
	}
	return word.BaseForm
}

func (rules *MorphologicalRules) determinerForm(word *types.InflectedWordElement) string {
	if word.Features().Number() != types.NumberPlural {
		return word.BaseForm
	}
	if plural, ok := rules.DetExc[strings.ToLower(word.BaseForm)]; ok {
		return plural
	}
	return word.BaseForm
}

var anPrefixes = []string{"hour", "honest", "honour", "honor", "heir"}
var aPrefixes = []string{"one", "once", "uni", "use", "usu", "usa", "uti", "ubi", "eu", "ewe"}

// RequiresAn reports whether the indefinite article before word is "an".
func RequiresAn(word string) bool {
	word = strings.TrimLeft(word, "\"'([")
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	if word == "" {
		return false
	}
	if isAcronym(word) {
		return strings.ContainsRune("AEFHILMNORSX", rune(word[0]))
	}
	if word[0] >= '0' && word[0] <= '9' {
		return numberRequiresAn(word)
	}
	lower := strings.ToLower(word)
	for _, p := range anPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	for _, p := range aPrefixes {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}
	return isVowel(lower[0])
}

func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		switch {
		case unicode.IsUpper(r):
			letters++
		case unicode.IsDigit(r) || r == '-':
		default:
			return false
		}
	}
	return letters > 1 || (letters == 1 && len(word) == 1)
}

// eight, eleven, eighteen and their thousands take "an".
func numberRequiresAn(word string) bool {
	digits := 0
	for digits < len(word) && word[digits] >= '0' && word[digits] <= '9' {
		digits++
	}
	if word[0] == '8' {
		return true
	}
	if strings.HasPrefix(word, "11") || strings.HasPrefix(word, "18") {
		return digits == 2 || digits == 5
	}
	return false
}
