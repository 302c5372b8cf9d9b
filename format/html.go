package format

import (
	"text2phenotype.com/nlg/orthography"
	"text2phenotype.com/nlg/types"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
	"strings"
)

// HTML renders a realised document as HTML nodes.
func HTML(el types.Element) g.Node {
	if el == nil || types.IsElided(el) {
		return g.Group(nil)
	}
	doc, ok := el.(*types.DocumentElement)
	if !ok {
		return g.Text(el.Realisation())
	}

	switch doc.Category {
	case types.DocumentSentence:
		return g.Text(doc.Realisation())
	case types.DocumentListItem:
		return h.Li(g.Text(strings.TrimPrefix(doc.Realisation(), orthography.ListItemMarker)))
	case types.DocumentParagraph:
		var nodes []g.Node
		var sentences []string
		flush := func() {
			if len(sentences) > 0 {
				nodes = append(nodes, h.P(g.Text(strings.Join(sentences, " "))))
				sentences = nil
			}
		}
		for _, c := range doc.Components {
			switch {
			case c == nil || types.IsElided(c):
			case isList(c):
				flush()
				nodes = append(nodes, HTML(c))
			case c.Realisation() != "":
				sentences = append(sentences, c.Realisation())
			}
		}
		flush()
		return g.Group(nodes)
	case types.DocumentList:
		return h.Ul(children(doc)...)
	case types.DocumentSection:
		nodes := []g.Node{h.Class("section")}
		if doc.Title != "" {
			nodes = append(nodes, h.H2(g.Text(doc.Title)))
		}
		return h.Section(append(nodes, children(doc)...)...)
	}
	nodes := []g.Node{h.Class("document")}
	if doc.Title != "" {
		nodes = append(nodes, h.H1(g.Text(doc.Title)))
	}
	return h.Div(append(nodes, children(doc)...)...)
}

func children(doc *types.DocumentElement) []g.Node {
	nodes := make([]g.Node, 0, len(doc.Components))
	for _, c := range doc.Components {
		nodes = append(nodes, HTML(c))
	}
	return nodes
}

// HTMLString renders el to an HTML string.
func HTMLString(el types.Element) (string, error) {
	var sb strings.Builder
	if err := HTML(el).Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
