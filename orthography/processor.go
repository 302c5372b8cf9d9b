package orthography

import (
	"text2phenotype.com/nlg/types"
	"strings"
	"unicode"
)

// ListItemMarker prefixes the text of every list item.
const ListItemMarker = "* "

// Realise turns the output of morphology into text. Lists collapse into
// string elements; document elements are copied with their realisation
// set. The input tree is not modified.
func Realise(el types.Element) types.Element {
	switch e := el.(type) {
	case nil:
		return nil
	case *types.DocumentElement:
		return document(e)
	case *types.ListElement:
		return text(e, list(e))
	case *types.PhraseElement, *types.CoordinatedPhraseElement:
		// never realised by syntax; nothing to show
		return text(e, "")
	}
	return text(el, leaf(el))
}

func document(d *types.DocumentElement) *types.DocumentElement {
	out := types.ShallowCopy(d).(*types.DocumentElement)
	parts := make([]string, 0, len(out.Components))
	for i, child := range out.Components {
		out.Components[i] = Realise(child)
		if out.Components[i] != nil && !types.IsElided(out.Components[i]) {
			parts = append(parts, out.Components[i].Realisation())
		}
	}

	switch d.Category {
	case types.DocumentSentence:
		out.SetRealisation(Sentence(join(parts), interrogative(d)))
	case types.DocumentListItem:
		out.SetRealisation(ListItemMarker + join(parts))
	case types.DocumentParagraph:
		out.SetRealisation(join(parts))
	default:
		out.SetRealisation(strings.Join(nonEmpty(parts), "\n"))
	}
	return out
}

// Sentence capitalises text and closes it with "?" or ".", unless it already
// ends in terminal punctuation.
func Sentence(text string, question bool) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	text = capitalise(text)
	switch text[len(text)-1] {
	case '.', '?', '!':
		return text
	}
	if question {
		return text + "?"
	}
	return text + "."
}

func capitalise(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		if unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			return string(runes)
		}
	}
	return text
}

// interrogative reports a question sentence: the flag is set on the sentence
// itself or on one of its components.
func interrogative(d *types.DocumentElement) bool {
	if d.Features().Bool(types.FeatureInterrogative) {
		return true
	}
	for _, c := range d.Components {
		if c != nil && c.Features().Bool(types.FeatureInterrogative) {
			return true
		}
	}
	return false
}

// list joins the children of a realised phrase. In a coordination every
// conjunction but the last becomes a comma.
func list(l *types.ListElement) string {
	if types.IsElided(l) {
		return ""
	}
	lastConjunction := -1
	coordinated := l.Features().Bool(types.FeatureCoordinated)
	if coordinated {
		for i, child := range l.Children {
			if isConjunction(child) {
				lastConjunction = i
			}
		}
	}

	parts := make([]string, 0, len(l.Children))
	for i, child := range l.Children {
		if child == nil {
			continue
		}
		if coordinated && isConjunction(child) && i != lastConjunction {
			parts = append(parts, ",")
			continue
		}
		parts = append(parts, Realise(child).Realisation())
	}
	return strings.ReplaceAll(join(parts), " ,", ",")
}

func isConjunction(el types.Element) bool {
	return el != nil && !types.IsElided(el) && types.FunctionOf(el) == types.FunctionConjunction
}

func leaf(el types.Element) string {
	if types.IsElided(el) {
		return ""
	}
	if w, ok := el.(*types.WordElement); ok && w.Realisation() == "" {
		return w.BaseForm
	}
	return el.Realisation()
}

// text returns a string element holding s and the features of src.
func text(src types.Element, s string) *types.StringElement {
	out := types.NewStringElement(s)
	for name, value := range src.Features() {
		out.SetFeature(name, value)
	}
	return out
}

// join concatenates the non-empty parts with single spaces.
func join(parts []string) string {
	return strings.Join(nonEmpty(parts), " ")
}

func nonEmpty(parts []string) []string {
	out := parts[:0:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
