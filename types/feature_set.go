package types

// FeatureSet maps feature names to values. Accessors never fail: an absent
// feature, or one holding a value of the wrong type, reads as the default.
type FeatureSet map[string]Value

func (fs FeatureSet) Has(name string) bool {
	_, ok := fs[name]
	return ok
}

func (fs FeatureSet) Bool(name string) bool {
	v, _ := fs[name].(Bool)
	return bool(v)
}

func (fs FeatureSet) Text(name string) string {
	v, _ := fs[name].(Text)
	return string(v)
}

func (fs FeatureSet) Element(name string) Element {
	v, _ := fs[name].(Element)
	return v
}

func (fs FeatureSet) Elements(name string) []Element {
	switch v := fs[name].(type) {
	case ElementList:
		return v
	case Element:
		return []Element{v}
	}
	return nil
}

// Enum reads a typed enum feature, returning def when absent or mistyped.
func Enum[T Value](fs FeatureSet, name string, def T) T {
	if v, ok := fs[name].(T); ok {
		return v
	}
	return def
}

func (fs FeatureSet) Tense() Tense {
	return Enum(fs, FeatureTense, TensePresent)
}

func (fs FeatureSet) Number() NumberAgreement {
	return Enum(fs, FeatureNumber, NumberSingular)
}

func (fs FeatureSet) Person() Person {
	return Enum(fs, FeaturePerson, PersonThird)
}

func (fs FeatureSet) Gender() Gender {
	return Enum(fs, FeatureGender, GenderNeuter)
}

func (fs FeatureSet) Form() Form {
	return Enum(fs, FeatureForm, FormNormal)
}

func (fs FeatureSet) InterrogativeType() InterrogativeType {
	return Enum(fs, FeatureInterrogativeType, InterrogativeNone)
}

func (fs FeatureSet) DiscourseFunction() DiscourseFunction {
	return Enum(fs, FeatureDiscourseFunction, FunctionNone)
}

func (fs FeatureSet) ClauseStatus() ClauseStatus {
	return Enum(fs, FeatureClauseStatus, ClauseMatrix)
}

func (fs FeatureSet) Pattern() Pattern {
	return Enum(fs, FeaturePattern, PatternUnspecified)
}

// Copy returns a new set with the same values. Element values are shared.
func (fs FeatureSet) Copy() FeatureSet {
	out := make(FeatureSet, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// Merge copies every value of other into fs, overwriting existing ones.
func (fs FeatureSet) Merge(other FeatureSet) {
	for k, v := range other {
		fs[k] = v
	}
}
