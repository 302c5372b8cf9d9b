package types

import "strings"

// Value is anything that can be stored in a FeatureSet.
type Value interface {
	isValue()
}

type Bool bool
type Text string
type ElementList []Element

func (Bool) isValue()        {}
func (Text) isValue()        {}
func (ElementList) isValue() {}

type Tense int

const (
	TensePresent Tense = iota
	TensePast
	TenseFuture
)

var tenseNames = []string{"present", "past", "future"}

type NumberAgreement int

const (
	NumberSingular NumberAgreement = iota
	NumberPlural
	// NumberBoth marks nouns whose plural is the same as the singular.
	NumberBoth
)

var numberNames = []string{"singular", "plural", "both"}

type Person int

const (
	PersonThird Person = iota
	PersonFirst
	PersonSecond
)

var personNames = []string{"third", "first", "second"}

type Gender int

const (
	GenderNeuter Gender = iota
	GenderMasculine
	GenderFeminine
)

var genderNames = []string{"neuter", "masculine", "feminine"}

type Form int

const (
	FormNormal Form = iota
	FormBareInfinitive
	FormGerund
	FormImperative
	FormInfinitive
	FormPastParticiple
	FormPresentParticiple
)

var formNames = []string{
	"normal", "bare_infinitive", "gerund", "imperative", "infinitive", "past_participle", "present_participle",
}

// Finite reports whether a clause in this form carries tense and agreement.
func (f Form) Finite() bool {
	return f == FormNormal
}

type InterrogativeType int

const (
	InterrogativeNone InterrogativeType = iota
	InterrogativeHow
	InterrogativeWhatObject
	InterrogativeWhere
	InterrogativeWhoIndirectObject
	InterrogativeWhoObject
	InterrogativeWhoSubject
	InterrogativeWhy
	InterrogativeYesNo
	InterrogativeHowMany
)

var interrogativeNames = []string{
	"", "how", "what_object", "where", "who_indirect_object", "who_object", "who_subject", "why", "yes_no",
	"how_many",
}

// IsObject reports whether the questioned constituent is an object of the verb.
func (t InterrogativeType) IsObject() bool {
	return t == InterrogativeWhatObject || t == InterrogativeWhoObject || t == InterrogativeWhoIndirectObject
}

type DiscourseFunction int

const (
	FunctionNone DiscourseFunction = iota
	FunctionAuxiliary
	FunctionComplement
	FunctionConjunction
	FunctionCuePhrase
	FunctionFrontModifier
	FunctionHead
	FunctionIndirectObject
	FunctionObject
	FunctionPreModifier
	FunctionPostModifier
	FunctionSpecifier
	FunctionSubject
	FunctionVerbPhrase
	FunctionComplementiser
)

var functionNames = []string{
	"", "auxiliary", "complement", "conjunction", "cue_phrase", "front_modifier", "head", "indirect_object",
	"object", "pre_modifier", "post_modifier", "specifier", "subject", "verb_phrase", "complementiser",
}

type ClauseStatus int

const (
	ClauseMatrix ClauseStatus = iota
	ClauseSubordinate
)

var clauseStatusNames = []string{"matrix", "subordinate"}

// Pattern is the inflection pattern of a word.
type Pattern int

const (
	PatternUnspecified Pattern = iota
	PatternRegular
	PatternRegularDouble
	PatternGrecoLatinRegular
	PatternIrregular
)

var patternNames = []string{"", "regular", "regular_double", "greco_latin_regular", "irregular"}

func (Tense) isValue()             {}
func (NumberAgreement) isValue()   {}
func (Person) isValue()            {}
func (Gender) isValue()            {}
func (Form) isValue()              {}
func (InterrogativeType) isValue() {}
func (DiscourseFunction) isValue() {}
func (ClauseStatus) isValue()      {}
func (Pattern) isValue()           {}

func (t Tense) String() string             { return enumName(tenseNames, int(t)) }
func (n NumberAgreement) String() string   { return enumName(numberNames, int(n)) }
func (p Person) String() string            { return enumName(personNames, int(p)) }
func (g Gender) String() string            { return enumName(genderNames, int(g)) }
func (f Form) String() string              { return enumName(formNames, int(f)) }
func (t InterrogativeType) String() string { return enumName(interrogativeNames, int(t)) }
func (d DiscourseFunction) String() string { return enumName(functionNames, int(d)) }
func (s ClauseStatus) String() string      { return enumName(clauseStatusNames, int(s)) }
func (p Pattern) String() string           { return enumName(patternNames, int(p)) }

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

func parseEnum(names []string, s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	for i, name := range names {
		if name == s {
			return i, true
		}
	}
	return 0, false
}

// ParseValue converts the textual form of an enum feature into its typed value.
// Names of features without an enum type come back as Text.
func ParseValue(feature string, s string) (Value, bool) {
	var i int
	var ok bool
	switch feature {
	case FeatureTense:
		if i, ok = parseEnum(tenseNames, s); ok {
			return Tense(i), true
		}
	case FeatureNumber:
		if i, ok = parseEnum(numberNames, s); ok {
			return NumberAgreement(i), true
		}
	case FeaturePerson:
		if i, ok = parseEnum(personNames, s); ok {
			return Person(i), true
		}
	case FeatureGender:
		if i, ok = parseEnum(genderNames, s); ok {
			return Gender(i), true
		}
	case FeatureForm:
		if i, ok = parseEnum(formNames, s); ok {
			return Form(i), true
		}
	case FeatureInterrogativeType:
		if i, ok = parseEnum(interrogativeNames, s); ok {
			return InterrogativeType(i), true
		}
	case FeatureDiscourseFunction:
		if i, ok = parseEnum(functionNames, s); ok {
			return DiscourseFunction(i), true
		}
	case FeatureClauseStatus:
		if i, ok = parseEnum(clauseStatusNames, s); ok {
			return ClauseStatus(i), true
		}
	case FeaturePattern:
		if i, ok = parseEnum(patternNames, s); ok {
			return Pattern(i), true
		}
	default:
		return Text(s), true
	}
	return nil, false
}
