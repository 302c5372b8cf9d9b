package types

import (
	"fmt"
	"sort"
	"strings"
)

// PrintTree renders el as an indented outline, one node per line.
func PrintTree(el Element) string {
	var sb strings.Builder
	printNode(&sb, "", "", el)
	return sb.String()
}

func printNode(sb *strings.Builder, indent string, slot string, el Element) {
	if el == nil {
		return
	}
	sb.WriteString(indent)
	if slot != "" {
		sb.WriteString(slot)
		sb.WriteString(": ")
	}
	sb.WriteString(describe(el))
	if fs := featureSummary(el.Features()); fs != "" {
		sb.WriteString(" {")
		sb.WriteString(fs)
		sb.WriteString("}")
	}
	sb.WriteString("\n")

	next := indent + "  "
	switch e := el.(type) {
	case *PhraseElement:
		printNode(sb, next, "complementiser", e.Complementiser)
		printNode(sb, next, "cue", e.CuePhrase)
		printSlot(sb, next, "front", e.FrontModifiers)
		printSlot(sb, next, "subject", e.Subjects)
		printNode(sb, next, "specifier", e.Specifier)
		printSlot(sb, next, "pre", e.PreModifiers)
		printNode(sb, next, "head", e.Head)
		printSlot(sb, next, "indirect", e.IndirectObjects)
		printSlot(sb, next, "object", e.Objects)
		printSlot(sb, next, "complement", e.Complements)
		printSlot(sb, next, "post", e.PostModifiers)
	case *CoordinatedPhraseElement:
		printSlot(sb, next, "pre", e.PreModifiers)
		printSlot(sb, next, "coordinate", e.Coordinates)
		printSlot(sb, next, "complement", e.Complements)
		printSlot(sb, next, "post", e.PostModifiers)
	case *ListElement:
		printSlot(sb, next, "", e.Children)
	case *DocumentElement:
		printSlot(sb, next, "", e.Components)
	}
}

func printSlot(sb *strings.Builder, indent string, slot string, elements []Element) {
	for _, el := range elements {
		printNode(sb, indent, slot, el)
	}
}

func describe(el Element) string {
	switch e := el.(type) {
	case *WordElement:
		return fmt.Sprintf("word %s %q", e.Category, e.BaseForm)
	case *InflectedWordElement:
		return fmt.Sprintf("inflected %s %q", e.Category, e.BaseForm)
	case *StringElement:
		return fmt.Sprintf("string %q", e.Realisation())
	case *ListElement:
		if e.Realisation() != "" {
			return fmt.Sprintf("list %q", e.Realisation())
		}
		return "list"
	case *PhraseElement:
		return e.Category.String()
	case *CoordinatedPhraseElement:
		return fmt.Sprintf("coordination %q", e.Conjunction())
	case *DocumentElement:
		if e.Title != "" {
			return fmt.Sprintf("%s %q", e.Category, e.Title)
		}
		return e.Category.String()
	}
	return fmt.Sprintf("%T", el)
}

func featureSummary(fs FeatureSet) string {
	parts := make([]string, 0, len(fs))
	for name, value := range fs {
		switch v := value.(type) {
		case Element, ElementList:
			continue
		case Bool:
			if v {
				parts = append(parts, name)
			}
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", name, v))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
