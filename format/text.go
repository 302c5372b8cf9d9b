package format

import (
	"text2phenotype.com/nlg/types"
	"strings"
)

// Text renders a realised document as plain text. Titles sit on a line of
// their own, paragraphs end with a blank line and list items with a newline.
// Elements outside a document render as their realisation.
func Text(el types.Element) string {
	var sb strings.Builder
	writeText(&sb, el)
	return sb.String()
}

func writeText(sb *strings.Builder, el types.Element) {
	if el == nil || types.IsElided(el) {
		return
	}
	doc, ok := el.(*types.DocumentElement)
	if !ok {
		sb.WriteString(el.Realisation())
		return
	}

	switch doc.Category {
	case types.DocumentSentence:
		sb.WriteString(doc.Realisation())
	case types.DocumentListItem:
		sb.WriteString(doc.Realisation())
		sb.WriteString("\n")
	case types.DocumentParagraph:
		// sentences run on in one line; a list starts on a line of its own
		inLine := false
		for _, c := range doc.Components {
			if c == nil || types.IsElided(c) {
				continue
			}
			if isList(c) {
				if inLine {
					sb.WriteString("\n")
				}
				writeText(sb, c)
				inLine = false
				continue
			}
			if inLine {
				sb.WriteString(" ")
			}
			writeText(sb, c)
			inLine = true
		}
		if inLine {
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	default:
		if doc.Title != "" {
			sb.WriteString(doc.Title)
			sb.WriteString("\n")
		}
		for _, c := range doc.Components {
			writeText(sb, c)
		}
	}
}

func isList(el types.Element) bool {
	doc, ok := el.(*types.DocumentElement)
	return ok && doc.Category == types.DocumentList
}
