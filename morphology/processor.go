package morphology

import (
	"text2phenotype.com/nlg/types"
	"strings"
)

// Realiser rewrites the output of syntactic realisation into a tree whose
// words carry their surface forms. The input tree is not modified.
type Realiser func(el types.Element) types.Element

func NewRealiser(rules *MorphologicalRules) Realiser {
	inflect := NewInflector(rules)

	var realise func(el types.Element) types.Element
	realise = func(el types.Element) types.Element {
		switch e := el.(type) {
		case nil:
			return nil
		case *types.WordElement:
			word := types.Inflect(e)
			word.SetRealisation(inflect(word))
			return word
		case *types.InflectedWordElement:
			word := types.ShallowCopy(e).(*types.InflectedWordElement)
			word.SetRealisation(inflect(word))
			return word
		case *types.ListElement:
			list := types.ShallowCopy(e).(*types.ListElement)
			for i, child := range list.Children {
				list.Children[i] = realise(child)
			}
			return list
		case *types.DocumentElement:
			doc := types.ShallowCopy(e).(*types.DocumentElement)
			for i, child := range doc.Components {
				doc.Components[i] = realise(child)
			}
			return doc
		case *types.StringElement:
			text := types.ShallowCopy(e)
			if e.Features().Bool(types.FeaturePossessive) && !types.IsElided(e) {
				text.SetRealisation(Possessive(e.Realisation()))
			}
			return text
		}
		return types.ShallowCopy(el)
	}

	return func(el types.Element) types.Element {
		out := realise(el)
		fixArticles(leaves(out, nil))
		return out
	}
}

var defaultRealiser = NewRealiser(DefaultRules())
var defaultInflector = NewInflector(DefaultRules())

// Realise runs morphology with the built-in rule tables.
func Realise(el types.Element) types.Element {
	return defaultRealiser(el)
}

// Inflect returns the surface form of word using the built-in rule tables.
func Inflect(word *types.InflectedWordElement) string {
	return defaultInflector(word)
}

// leaves collects the words and canned strings of a realised tree in surface
// order, skipping the ones that produce no text.
func leaves(el types.Element, into []types.Element) []types.Element {
	if types.IsElided(el) {
		return into
	}
	switch e := el.(type) {
	case *types.ListElement:
		for _, child := range e.Children {
			into = leaves(child, into)
		}
	case *types.DocumentElement:
		for _, child := range e.Components {
			into = leaves(child, into)
		}
	case *types.InflectedWordElement, *types.StringElement:
		if e.Realisation() != "" {
			into = append(into, e)
		}
	}
	return into
}

// fixArticles picks "a" or "an" from the word that follows the article.
func fixArticles(words []types.Element) {
	for i := 0; i+1 < len(words); i++ {
		word, ok := words[i].(*types.InflectedWordElement)
		if !ok || word.Category != types.CategoryDeterminer {
			continue
		}
		article := word.Realisation()
		if !strings.EqualFold(article, "a") && !strings.EqualFold(article, "an") {
			continue
		}
		chosen := "a"
		if RequiresAn(words[i+1].Realisation()) {
			chosen = "an"
		}
		if article[0] == 'A' {
			chosen = strings.ToUpper(chosen[:1]) + chosen[1:]
		}
		word.SetRealisation(chosen)
	}
}
