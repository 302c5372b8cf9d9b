package types

// Grammatical features set by whoever builds a tree.
const (
	FeatureAdjectiveOrdering        = "adjective_ordering"
	FeatureClauseStatus             = "clause_status"
	FeatureComparative              = "is_comparative"
	FeatureConjunction              = "conjunction"
	FeatureElided                   = "elided"
	FeatureForm                     = "form"
	FeatureGender                   = "gender"
	FeatureInterrogativeType        = "interrogative_type"
	FeatureModal                    = "modal"
	FeatureNegated                  = "negated"
	FeatureNumber                   = "number"
	FeatureParticle                 = "particle"
	FeaturePassive                  = "passive"
	FeaturePerfect                  = "perfect"
	FeaturePerson                   = "person"
	FeaturePossessive               = "possessive"
	FeatureProgressive              = "progressive"
	FeaturePronominal               = "pronominal"
	FeatureRaiseSpecifier           = "raise_specifier"
	FeatureSuperlative              = "is_superlative"
	FeatureSuppressedComplementiser = "suppressed_complementiser"
	FeatureTense                    = "tense"
)

// Internal features. The realisers set these on the trees they produce.
const (
	FeatureCoordinated       = "coordinated"
	FeatureDiscourseFunction = "discourse_function"
	FeatureFinite            = "finite"
	FeatureInterrogative     = "interrogative"
	FeatureNonMorph          = "non_morph"
	FeatureRaised            = "raised"
)

// Lexical features live on WordEntry feature sets. An element may carry the
// inflection ones too, in which case they override the lexicon.
const (
	FeaturePlural            = "plural"
	FeaturePast              = "past"
	FeaturePastParticiple    = "past_participle"
	FeaturePresentParticiple = "present_participle"
	FeaturePresent3S         = "present3s"
	FeatureComparativeForm   = "comparative"
	FeatureSuperlativeForm   = "superlative"
	FeaturePattern           = "pattern"

	FeatureQualitative      = "qualitative"
	FeatureColour           = "colour"
	FeatureClassifying      = "classifying"
	FeaturePredicative      = "predicative"
	FeatureVerbModifier     = "verb_modifier"
	FeatureSentenceModifier = "sentence_modifier"
	FeatureIntensifier      = "intensifier"
	FeatureNonCount         = "non_count"
	FeatureProper           = "proper"
	FeatureIntransitive     = "intransitive"
	FeatureTransitive       = "transitive"
	FeatureDitransitive     = "ditransitive"
	FeatureAcronymOf        = "acronym_of"
	FeatureExpletiveSubject = "expletive_subject"
)

// InflectionFeatures are the lexical features holding irregular surface forms.
var InflectionFeatures = []string{
	FeaturePlural, FeaturePast, FeaturePastParticiple, FeaturePresentParticiple, FeaturePresent3S,
	FeatureComparativeForm, FeatureSuperlativeForm,
}

// BooleanLexicalFeatures are the classificatory flags a lexicon entry may carry.
var BooleanLexicalFeatures = []string{
	FeatureQualitative, FeatureColour, FeatureClassifying, FeaturePredicative, FeatureVerbModifier,
	FeatureSentenceModifier, FeatureIntensifier, FeatureNonCount, FeatureProper, FeatureIntransitive,
	FeatureTransitive, FeatureDitransitive, FeatureExpletiveSubject,
}
