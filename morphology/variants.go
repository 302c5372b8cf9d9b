package morphology

import (
	"text2phenotype.com/nlg/types"
	"sort"
	"strings"
)

// Variants lists every inflected form the built-in rules produce for entry,
// irregular ones included. Lexicons index entries by these forms.
func Variants(entry *types.WordEntry) []string {
	return DefaultRules().Variants(entry)
}

func (rules *MorphologicalRules) Variants(entry *types.WordEntry) []string {
	inflect := NewInflector(rules)
	forms := make(map[string]bool)
	add := func(features types.FeatureSet) {
		word := types.NewInflectedWord(entry, entry.BaseForm, entry.Category)
		word.Features().Merge(features)
		if form := inflect(word); form != "" && form != entry.BaseForm && !strings.Contains(form, " ") {
			forms[form] = true
		}
	}

	switch entry.Category {
	case types.CategoryNoun:
		add(types.FeatureSet{types.FeatureNumber: types.NumberPlural})
	case types.CategoryVerb, types.CategoryAuxiliary:
		add(types.FeatureSet{types.FeatureTense: types.TensePast})
		add(types.FeatureSet{types.FeatureForm: types.FormPastParticiple})
		add(types.FeatureSet{types.FeatureForm: types.FormPresentParticiple})
		add(types.FeatureSet{})
		if entry.BaseForm == "be" {
			add(types.FeatureSet{types.FeaturePerson: types.PersonFirst})
			add(types.FeatureSet{types.FeatureNumber: types.NumberPlural})
			add(types.FeatureSet{types.FeatureTense: types.TensePast, types.FeatureNumber: types.NumberPlural})
		}
	case types.CategoryAdjective, types.CategoryAdverb:
		add(types.FeatureSet{types.FeatureComparative: types.Bool(true)})
		add(types.FeatureSet{types.FeatureSuperlative: types.Bool(true)})
	case types.CategoryModal:
		if past := entry.Form(types.FeaturePast); past != "" {
			forms[past] = true
		}
	}

	result := make([]string, 0, len(forms))
	for form := range forms {
		result = append(result, form)
	}
	sort.Strings(result)
	return result
}
