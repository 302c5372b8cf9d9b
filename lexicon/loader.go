package lexicon

import (
	"text2phenotype.com/nlg/morphology"
	"text2phenotype.com/nlg/types"
	"text2phenotype.com/nlg/utils"
	"fmt"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"sort"
	"strings"
)

// Record is the file representation of a word entry.
//
//	- base: good
//	  category: adjective
//	  id: E0030654
//	  forms: {comparative: better, superlative: best}
//	  flags: [qualitative, predicative]
//	  features: {pattern: regular_double}
type Record struct {
	Base     string            `yaml:"base" json:"base"`
	Category string            `yaml:"category" json:"category"`
	ID       string            `yaml:"id,omitempty" json:"id,omitempty"`
	Forms    map[string]string `yaml:"forms,omitempty" json:"forms,omitempty"`
	Flags    []string          `yaml:"flags,omitempty" json:"flags,omitempty"`
	Features map[string]string `yaml:"features,omitempty" json:"features,omitempty"`
}

type lexiconFile struct {
	Words []Record `yaml:"words"`
}

// Entry converts a record into a word entry.
func (r Record) Entry() (*types.WordEntry, error) {
	category, ok := types.ParseLexicalCategory(r.Category)
	if !ok {
		return nil, fmt.Errorf("word %q: unknown category %q", r.Base, r.Category)
	}
	entry := types.NewWordEntry(r.Base, category)
	entry.ID = r.ID
	for name, form := range r.Forms {
		entry.SetForm(name, form)
	}
	for _, flag := range r.Flags {
		entry.SetFlag(flag)
	}
	for name, text := range r.Features {
		value, ok := FeatureValue(name, text)
		if !ok {
			return nil, fmt.Errorf("word %q: bad value %q for %s", r.Base, text, name)
		}
		entry.Features[name] = value
	}
	return entry, nil
}

// NewRecord is the inverse of Record.Entry.
func NewRecord(entry *types.WordEntry) Record {
	r := Record{Base: entry.BaseForm, Category: entry.Category.String(), ID: entry.ID}
	for name, value := range entry.Features {
		switch v := value.(type) {
		case types.Bool:
			if v {
				r.Flags = append(r.Flags, name)
			}
		case types.Text:
			if r.Forms == nil {
				r.Forms = make(map[string]string)
			}
			r.Forms[name] = string(v)
		case fmt.Stringer:
			if r.Features == nil {
				r.Features = make(map[string]string)
			}
			r.Features[name] = v.String()
		}
	}
	sort.Strings(r.Flags)
	return r
}

// FeatureValue parses the stored text of a lexical feature.
func FeatureValue(name string, text string) (types.Value, bool) {
	for _, flag := range types.BooleanLexicalFeatures {
		if flag == name {
			return types.Bool(text == "true" || text == "yes" || text == "1"), true
		}
	}
	return types.ParseValue(name, text)
}

// ParseYAML reads a lexicon document with a top-level "words" list.
func ParseYAML(data []byte) ([]*types.WordEntry, error) {
	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	entries := make([]*types.WordEntry, 0, len(file.Words))
	for _, r := range file.Words {
		entry, err := r.Entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func LoadYAML(filePath string, rules *morphology.MorphologicalRules) (*MemoryLexicon, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	entries, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return NewMemoryLexicon(rules, entries...), nil
}

// LoadBSV reads one entry per line:
//
//	base|category|id|name=value;name=value;flag
//
// A name listed in types.InflectionFeatures holds a form, a bare name is a
// flag, anything else is parsed as an enum feature.
func LoadBSV(filePath string, rules *morphology.MorphologicalRules) (*MemoryLexicon, error) {
	rows, err := utils.NewBSVReader(filePath, utils.HashColumns)
	if err != nil {
		return nil, err
	}

	var entries []*types.WordEntry
	var bad []string
	for columns := range rows {
		entry, err := parseBSV(columns)
		if err != nil {
			bad = append(bad, err.Error())
			continue
		}
		entries = append(entries, entry)
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("%s: %s", filePath, strings.Join(bad, "; "))
	}
	return NewMemoryLexicon(rules, entries...), nil
}

func parseBSV(columns []string) (*types.WordEntry, error) {
	if len(columns) < 2 || len(columns) > 4 {
		return nil, fmt.Errorf("expected 2 to 4 columns in %q", strings.Join(columns, "|"))
	}
	r := Record{Base: columns[0], Category: columns[1]}
	if len(columns) > 2 {
		r.ID = columns[2]
	}
	if len(columns) > 3 {
		for _, feature := range strings.Split(columns[3], ";") {
			feature = strings.TrimSpace(feature)
			if feature == "" {
				continue
			}
			p := strings.SplitN(feature, "=", 2)
			switch {
			case len(p) == 1:
				r.Flags = append(r.Flags, p[0])
			case isInflection(p[0]):
				if r.Forms == nil {
					r.Forms = make(map[string]string)
				}
				r.Forms[p[0]] = p[1]
			default:
				if r.Features == nil {
					r.Features = make(map[string]string)
				}
				r.Features[p[0]] = p[1]
			}
		}
	}
	return r.Entry()
}

func isInflection(name string) bool {
	for _, f := range types.InflectionFeatures {
		if f == name {
			return true
		}
	}
	return name == types.FeatureAcronymOf
}
