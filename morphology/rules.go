package morphology

import (
	"text2phenotype.com/nlg/types"
	"text2phenotype.com/nlg/utils"
	"fmt"
	"os"
	"path"
	"strings"
)

// MorphologicalRules holds the irregular forms known without a lexicon and
// the suffix rules for Greco-Latin plurals. Exception maps are keyed by base
// form.
type MorphologicalRules struct {
	NounExc map[string]string
	VerbExc map[string]VerbForms
	AdjExc  map[string][2]string
	AdvExc  map[string][2]string
	DetExc  map[string]string

	// GrecoLatinRule pairs are singular suffix -> plural suffix, tried in order.
	GrecoLatinRule [][]string
}

type VerbForms struct {
	Past              string
	PastParticiple    string
	PresentParticiple string
	Present3S         string
}

// DefaultRules returns the closed-class tables every realiser needs.
func DefaultRules() *MorphologicalRules {
	return &MorphologicalRules{
		NounExc: map[string]string{
			"child": "children", "man": "men", "woman": "women", "person": "people", "foot": "feet",
			"tooth": "teeth", "mouse": "mice", "goose": "geese", "ox": "oxen",
		},
		VerbExc: map[string]VerbForms{
			"be":   {Past: "was", PastParticiple: "been", PresentParticiple: "being", Present3S: "is"},
			"have": {Past: "had", PastParticiple: "had", PresentParticiple: "having", Present3S: "has"},
			"do":   {Past: "did", PastParticiple: "done", PresentParticiple: "doing", Present3S: "does"},
			"go":   {Past: "went", PastParticiple: "gone", PresentParticiple: "going", Present3S: "goes"},
		},
		AdjExc: map[string][2]string{
			"good": {"better", "best"}, "bad": {"worse", "worst"}, "far": {"further", "furthest"},
			"little": {"less", "least"}, "many": {"more", "most"}, "much": {"more", "most"},
		},
		AdvExc: map[string][2]string{
			"well": {"better", "best"}, "badly": {"worse", "worst"}, "far": {"further", "furthest"},
		},
		DetExc: map[string]string{
			"a": "some", "an": "some", "this": "these", "that": "those",
		},
		GrecoLatinRule: [][]string{
			{"us", "i"}, {"ma", "mata"}, {"a", "ae"}, {"um", "a"}, {"is", "es"}, {"on", "a"},
			{"ex", "ices"}, {"ix", "ices"},
		},
	}
}

// LoadRules reads rule files from dir on top of DefaultRules. Every file is
// optional:
//
//	noun_exc.bsv        base|plural
//	verb_exc.bsv        base|past|past participle|present participle|present3s
//	adj_exc.bsv         base|comparative|superlative
//	adv_exc.bsv         base|comparative|superlative
//	det_exc.bsv         singular|plural
//	greco_latin_rule.bsv singular suffix|plural suffix
func LoadRules(dir string) (*MorphologicalRules, error) {
	rules := DefaultRules()
	if dir == "" {
		return rules, nil
	}

	var err error
	if err = mergeMap(path.Join(dir, "noun_exc.bsv"), rules.NounExc); err != nil {
		return nil, err
	}
	if err = mergeMap(path.Join(dir, "det_exc.bsv"), rules.DetExc); err != nil {
		return nil, err
	}
	if err = mergeGraded(path.Join(dir, "adj_exc.bsv"), rules.AdjExc); err != nil {
		return nil, err
	}
	if err = mergeGraded(path.Join(dir, "adv_exc.bsv"), rules.AdvExc); err != nil {
		return nil, err
	}
	if err = mergeVerbs(path.Join(dir, "verb_exc.bsv"), rules.VerbExc); err != nil {
		return nil, err
	}
	grecoPath := path.Join(dir, "greco_latin_rule.bsv")
	if exists(grecoPath) {
		if rules.GrecoLatinRule, err = ReadRuleList(grecoPath); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

func exists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

func mergeMap(filePath string, into map[string]string) error {
	if !exists(filePath) {
		return nil
	}
	m, err := utils.ReadMap(filePath)
	if err != nil {
		return err
	}
	for k, v := range m {
		into[k] = v
	}
	return nil
}

func mergeGraded(filePath string, into map[string][2]string) error {
	if !exists(filePath) {
		return nil
	}
	rows, err := ReadRuleList(filePath, 3)
	if err != nil {
		return err
	}
	for _, row := range rows {
		into[row[0]] = [2]string{row[1], row[2]}
	}
	return nil
}

func mergeVerbs(filePath string, into map[string]VerbForms) error {
	if !exists(filePath) {
		return nil
	}
	rows, err := utils.NewBSVReader(filePath, utils.HashColumns)
	if err != nil {
		return err
	}
	var bad []string
	for columns := range rows {
		if len(columns) != 5 {
			bad = append(bad, strings.Join(columns, "|"))
			continue
		}
		into[columns[0]] = VerbForms{
			Past:              columns[1],
			PastParticiple:    columns[2],
			PresentParticiple: columns[3],
			Present3S:         columns[4],
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%s: verb rows should have 5 columns: %q", filePath, bad)
	}
	return nil
}

// ReadRuleList reads "|"-separated rows with the given number of columns
// (2 when omitted).
func ReadRuleList(filePath string, columns ...int) ([][]string, error) {
	want := 2
	if len(columns) > 0 {
		want = columns[0]
	}
	lines, err := utils.ReadList(filePath)
	if err != nil {
		return nil, err
	}
	result := make([][]string, 0, len(lines))
	for _, line := range lines {
		p := strings.Split(line, "|")
		if len(p) != want {
			return nil, fmt.Errorf("rule should have %d columns: %q", want, line)
		}
		result = append(result, p)
	}
	return result, nil
}

// irregular returns the stored form for an inflection feature, trying the
// element, then the lexicon entry, then these rule tables.
func (rules *MorphologicalRules) irregular(word *types.InflectedWordElement, feature string) (string, bool) {
	if form := word.Features().Text(feature); form != "" {
		return form, true
	}
	if form := word.Entry.Form(feature); form != "" {
		return form, true
	}
	base := strings.ToLower(word.BaseForm)
	switch word.Category {
	case types.CategoryNoun:
		if feature == types.FeaturePlural {
			form, ok := rules.NounExc[base]
			return form, ok
		}
	case types.CategoryVerb, types.CategoryAuxiliary:
		forms, ok := rules.VerbExc[base]
		if !ok {
			return "", false
		}
		switch feature {
		case types.FeaturePast:
			return forms.Past, forms.Past != ""
		case types.FeaturePastParticiple:
			return forms.PastParticiple, forms.PastParticiple != ""
		case types.FeaturePresentParticiple:
			return forms.PresentParticiple, forms.PresentParticiple != ""
		case types.FeaturePresent3S:
			return forms.Present3S, forms.Present3S != ""
		}
	case types.CategoryAdjective:
		return graded(rules.AdjExc, base, feature)
	case types.CategoryAdverb:
		return graded(rules.AdvExc, base, feature)
	}
	return "", false
}

func graded(exc map[string][2]string, base string, feature string) (string, bool) {
	forms, ok := exc[base]
	if !ok {
		return "", false
	}
	switch feature {
	case types.FeatureComparativeForm:
		return forms[0], true
	case types.FeatureSuperlativeForm:
		return forms[1], true
	}
	return "", false
}
