package types

// Element is a node of a realisation tree.
type Element interface {
	Value
	Features() FeatureSet
	SetFeature(name string, value Value)
	Realisation() string
	SetRealisation(text string)
}

type node struct {
	features    FeatureSet
	realisation string
}

func (*node) isValue() {}

func (n *node) Features() FeatureSet {
	return n.features
}

func (n *node) SetFeature(name string, value Value) {
	if n.features == nil {
		n.features = FeatureSet{}
	}
	if value == nil {
		delete(n.features, name)
		return
	}
	n.features[name] = value
}

func (n *node) Realisation() string {
	return n.realisation
}

func (n *node) SetRealisation(text string) {
	n.realisation = text
}

func (n *node) copyNode() node {
	return node{features: n.features.Copy(), realisation: n.realisation}
}

// IsElided is the single check every stage uses to decide whether an element
// contributes surface text. Elided elements stay in the tree.
func IsElided(el Element) bool {
	return el == nil || el.Features().Bool(FeatureElided)
}

// FunctionOf returns the discourse function assigned to el during realisation.
func FunctionOf(el Element) DiscourseFunction {
	if el == nil {
		return FunctionNone
	}
	return el.Features().DiscourseFunction()
}

// ShallowCopy returns a copy of el with its own feature set. Child elements
// are shared with the original.
func ShallowCopy(el Element) Element {
	switch e := el.(type) {
	case *WordElement:
		c := *e
		c.node = e.copyNode()
		return &c
	case *InflectedWordElement:
		c := *e
		c.node = e.copyNode()
		return &c
	case *StringElement:
		c := *e
		c.node = e.copyNode()
		return &c
	case *ListElement:
		c := *e
		c.node = e.copyNode()
		c.Children = append([]Element(nil), e.Children...)
		return &c
	case *PhraseElement:
		c := *e
		c.node = e.copyNode()
		return &c
	case *CoordinatedPhraseElement:
		c := *e
		c.node = e.copyNode()
		return &c
	case *DocumentElement:
		c := *e
		c.node = e.copyNode()
		c.Components = append([]Element(nil), e.Components...)
		return &c
	}
	return el
}

// WithFeatures returns a shallow copy of el carrying the given feature
// values on top of its own. el itself is left untouched.
func WithFeatures(el Element, overrides FeatureSet) Element {
	if el == nil || len(overrides) == 0 {
		return el
	}
	c := ShallowCopy(el)
	for name, value := range overrides {
		c.SetFeature(name, value)
	}
	return c
}
