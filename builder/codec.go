package builder

import (
	"encoding/json"
	"fmt"
	"text2phenotype.com/nlg/types"
	"gopkg.in/yaml.v3"
	"strings"
)

// Spec is the wire form of an element tree. A node written as a bare
// string is read according to the slot holding it: a noun phrase for
// subjects, objects and coordinates, a verb for "verb", canned text for
// modifiers.
type Spec struct {
	Type     string                 `json:"type,omitempty" yaml:"type,omitempty"`
	Text     string                 `json:"text,omitempty" yaml:"text,omitempty"`
	Category string                 `json:"category,omitempty" yaml:"category,omitempty"`
	Title    string                 `json:"title,omitempty" yaml:"title,omitempty"`
	Features map[string]interface{} `json:"features,omitempty" yaml:"features,omitempty"`

	Specifier      *Spec   `json:"specifier,omitempty" yaml:"specifier,omitempty"`
	Head           *Spec   `json:"head,omitempty" yaml:"head,omitempty"`
	Verb           *Spec   `json:"verb,omitempty" yaml:"verb,omitempty"`
	PreModifiers   []*Spec `json:"pre_modifiers,omitempty" yaml:"pre_modifiers,omitempty"`
	PostModifiers  []*Spec `json:"post_modifiers,omitempty" yaml:"post_modifiers,omitempty"`
	FrontModifiers []*Spec `json:"front_modifiers,omitempty" yaml:"front_modifiers,omitempty"`
	Modifiers      []*Spec `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Complements    []*Spec `json:"complements,omitempty" yaml:"complements,omitempty"`
	Subjects       []*Spec `json:"subjects,omitempty" yaml:"subjects,omitempty"`
	Objects        []*Spec `json:"objects,omitempty" yaml:"objects,omitempty"`
	IndirectObject []*Spec `json:"indirect_objects,omitempty" yaml:"indirect_objects,omitempty"`
	CuePhrase      *Spec   `json:"cue_phrase,omitempty" yaml:"cue_phrase,omitempty"`
	Complementiser *Spec   `json:"complementiser,omitempty" yaml:"complementiser,omitempty"`
	Coordinates    []*Spec `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	Components     []*Spec `json:"components,omitempty" yaml:"components,omitempty"`
}

// spec is Spec without its unmarshal methods.
type spec Spec

func (s *Spec) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = Spec{Text: text}
		return nil
	}
	return json.Unmarshal(data, (*spec)(s))
}

func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*s = Spec{Text: value.Value}
		return nil
	}
	return value.Decode((*spec)(s))
}

// Decode reads a JSON tree spec.
func Decode(data []byte) (types.Element, error) {
	return NewFactory(nil).Decode(data)
}

// DecodeYAML reads a YAML tree spec.
func DecodeYAML(data []byte) (types.Element, error) {
	return NewFactory(nil).DecodeYAML(data)
}

func (f *Factory) Decode(data []byte) (types.Element, error) {
	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding tree spec: %w", err)
	}
	return f.Build(&s)
}

func (f *Factory) DecodeYAML(data []byte) (types.Element, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding tree spec: %w", err)
	}
	return f.Build(&s)
}

type slot int

const (
	slotNominal slot = iota
	slotVerb
	slotCanned
	slotWord
)

// Build converts a spec into an element tree.
func (f *Factory) Build(s *Spec) (types.Element, error) {
	return f.build(s, slotCanned)
}

func (f *Factory) build(s *Spec, context slot) (types.Element, error) {
	if s == nil {
		return nil, nil
	}
	el, err := f.node(s, context)
	if err != nil || el == nil {
		return el, err
	}
	if err = setFeatures(el, s.Features); err != nil {
		return nil, err
	}
	return el, nil
}

func (f *Factory) node(s *Spec, context slot) (types.Element, error) {
	switch strings.ToLower(s.Type) {
	case "":
		return f.bare(s, context)
	case "word":
		category := types.CategoryAny
		if s.Category != "" {
			var ok bool
			if category, ok = types.ParseLexicalCategory(s.Category); !ok {
				return nil, fmt.Errorf("unknown lexical category %q", s.Category)
			}
		}
		return types.NewWord(s.Text, category), nil
	case "string", "canned_text":
		return types.NewStringElement(s.Text), nil
	case "clause":
		return f.clause(s)
	case "noun_phrase":
		np := f.NewNounPhrase(nil, s.Text)
		return np, f.phraseSlots(s, np)
	case "verb_phrase":
		vp := f.NewVerbPhrase(s.Text)
		return vp, f.phraseSlots(s, vp)
	case "prepositional_phrase":
		pp := f.NewPrepositionalPhrase(s.Text, nil)
		return pp, f.phraseSlots(s, pp)
	case "adjective_phrase":
		ap := f.NewAdjectivePhrase(s.Text)
		return ap, f.phraseSlots(s, ap)
	case "adverb_phrase":
		ap := f.NewAdverbPhrase(s.Text)
		return ap, f.phraseSlots(s, ap)
	case "coordination":
		return f.coordination(s)
	}
	if category, ok := types.ParseDocumentCategory(s.Type); ok {
		return f.documentSpec(s, category)
	}
	return nil, fmt.Errorf("unknown element type %q", s.Type)
}

// bare reads a node given only by text.
func (f *Factory) bare(s *Spec, context slot) (types.Element, error) {
	if s.Text == "" {
		return nil, nil
	}
	switch context {
	case slotNominal:
		return f.NewNounPhrase(nil, s.Text), nil
	case slotVerb:
		return types.NewWord(s.Text, types.CategoryVerb), nil
	case slotWord:
		return types.NewWord(s.Text, types.CategoryAny), nil
	}
	return types.NewStringElement(s.Text), nil
}

func (f *Factory) clause(s *Spec) (types.Element, error) {
	verb, err := f.build(s.Verb, slotVerb)
	if err != nil {
		return nil, err
	}
	c := f.NewClause(nil, verb, nil)
	vp := c.VerbPhrase()

	if c.Subjects, err = f.buildAll(s.Subjects, slotNominal); err != nil {
		return nil, err
	}
	if vp.Objects, err = f.buildAll(s.Objects, slotNominal); err != nil {
		return nil, err
	}
	if vp.IndirectObjects, err = f.buildAll(s.IndirectObject, slotNominal); err != nil {
		return nil, err
	}
	if c.FrontModifiers, err = f.buildAll(s.FrontModifiers, slotCanned); err != nil {
		return nil, err
	}
	if c.CuePhrase, err = f.build(s.CuePhrase, slotCanned); err != nil {
		return nil, err
	}
	if c.Complementiser, err = f.build(s.Complementiser, slotWord); err != nil {
		return nil, err
	}
	return c, f.phraseSlots(s, c)
}

// phraseSlots fills the slots every phrase has.
func (f *Factory) phraseSlots(s *Spec, ph *types.PhraseElement) error {
	var err error
	if s.Specifier != nil {
		if ph.Specifier, err = f.build(s.Specifier, slotWord); err != nil {
			return err
		}
	}
	if s.Head != nil {
		if ph.Head, err = f.build(s.Head, slotWord); err != nil {
			return err
		}
	}
	pre, err := f.buildAll(s.PreModifiers, slotCanned)
	if err != nil {
		return err
	}
	ph.PreModifiers = append(ph.PreModifiers, pre...)

	context := slotCanned
	if ph.Category == types.PhrasePrepositional {
		context = slotNominal
	}
	complements, err := f.buildAll(s.Complements, context)
	if err != nil {
		return err
	}
	ph.Complements = append(ph.Complements, complements...)

	post, err := f.buildAll(s.PostModifiers, slotCanned)
	if err != nil {
		return err
	}
	ph.PostModifiers = append(ph.PostModifiers, post...)

	for _, m := range s.Modifiers {
		// bare text is placed by what the lexicon knows about it
		var mod interface{} = m.Text
		if m.Type != "" {
			if mod, err = f.build(m, slotCanned); err != nil {
				return err
			}
		}
		if err = f.AddModifier(ph, mod); err != nil {
			return err
		}
	}
	return nil
}

func (f *Factory) coordination(s *Spec) (types.Element, error) {
	c := f.NewCoordination()
	var err error
	if c.Coordinates, err = f.buildAll(s.Coordinates, slotNominal); err != nil {
		return nil, err
	}
	if c.PreModifiers, err = f.buildAll(s.PreModifiers, slotCanned); err != nil {
		return nil, err
	}
	if c.Complements, err = f.buildAll(s.Complements, slotCanned); err != nil {
		return nil, err
	}
	if c.PostModifiers, err = f.buildAll(s.PostModifiers, slotCanned); err != nil {
		return nil, err
	}
	return c, nil
}

func (f *Factory) documentSpec(s *Spec, category types.DocumentCategory) (types.Element, error) {
	doc := types.NewDocumentElement(category, s.Title)
	for _, component := range s.Components {
		el, err := f.build(component, slotCanned)
		if err != nil {
			return nil, err
		}
		if category == types.DocumentList {
			if item, ok := el.(*types.DocumentElement); !ok || item.Category != types.DocumentListItem {
				el = f.NewListItem(el)
			}
		}
		doc.AddComponent(el)
	}
	return doc, nil
}

func (f *Factory) buildAll(specs []*Spec, context slot) ([]types.Element, error) {
	var out []types.Element
	for _, s := range specs {
		el, err := f.build(s, context)
		if err != nil {
			return nil, err
		}
		if el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

// setFeatures copies wire features onto el. Booleans stay booleans; strings
// are parsed as enum values for enum features and kept as text otherwise.
func setFeatures(el types.Element, features map[string]interface{}) error {
	for name, raw := range features {
		switch v := raw.(type) {
		case bool:
			el.SetFeature(name, types.Bool(v))
		case string:
			value, ok := types.ParseValue(name, v)
			if !ok {
				return fmt.Errorf("invalid value %q for feature %q", v, name)
			}
			el.SetFeature(name, value)
		default:
			return fmt.Errorf("unsupported value %v for feature %q", raw, name)
		}
	}
	return nil
}
