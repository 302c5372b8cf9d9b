package format

import (
	"text2phenotype.com/nlg/orthography"
	"text2phenotype.com/nlg/types"
	"github.com/stretchr/testify/require"
	"testing"
)

func document(category types.DocumentCategory, title string, components ...types.Element) *types.DocumentElement {
	doc := types.NewDocumentElement(category, title)
	for _, c := range components {
		doc.AddComponent(c)
	}
	return doc
}

func sentence(text string) *types.DocumentElement {
	return document(types.DocumentSentence, "", types.NewStringElement(text))
}

func item(text string) *types.DocumentElement {
	return document(types.DocumentListItem, "", types.NewStringElement(text))
}

// report is a realised document with a section holding a paragraph and a
// list.
func report() types.Element {
	return orthography.Realise(document(types.DocumentRoot, "Report",
		document(types.DocumentSection, "Findings",
			document(types.DocumentParagraph, "", sentence("the dog barks"), sentence("the cat sleeps")),
			document(types.DocumentList, "", item("apples"), item("pears & plums")),
		),
	))
}

func TestText(t *testing.T) {
	t.Run("document", func(t *testing.T) {
		expected := "Report\n" +
			"Findings\n" +
			"The dog barks. The cat sleeps.\n\n" +
			"* apples\n" +
			"* pears & plums\n\n"
		require.Equal(t, expected, Text(report()))
	})

	t.Run("single sentence", func(t *testing.T) {
		require.Equal(t, "The dog barks.", Text(orthography.Realise(sentence("the dog barks"))))
	})

	t.Run("not a document", func(t *testing.T) {
		require.Equal(t, "the dog", Text(types.NewStringElement("the dog")))
		require.Equal(t, "", Text(nil))
	})

	t.Run("elided components", func(t *testing.T) {
		hidden := sentence("the cat sleeps")
		hidden.SetFeature(types.FeatureElided, types.Bool(true))
		p := orthography.Realise(document(types.DocumentParagraph, "", sentence("the dog barks"), hidden))
		require.Equal(t, "The dog barks.\n\n", Text(p))
	})
}

func TestHTML(t *testing.T) {
	t.Run("document", func(t *testing.T) {
		expected := `<div class="document"><h1>Report</h1>` +
			`<section class="section"><h2>Findings</h2>` +
			`<p>The dog barks. The cat sleeps.</p>` +
			`<ul><li>apples</li><li>pears &amp; plums</li></ul>` +
			`</section></div>`
		html, err := HTMLString(report())
		require.NoError(t, err)
		require.Equal(t, expected, html)
	})

	t.Run("untitled section", func(t *testing.T) {
		html, err := HTMLString(orthography.Realise(document(types.DocumentSection, "", sentence("hello"))))
		require.NoError(t, err)
		require.Equal(t, `<section class="section"><p>Hello.</p></section>`, html)
	})
}

func TestForName(t *testing.T) {
	for _, name := range []string{"", "text", "TEXT", "html"} {
		t.Run("known "+name, func(t *testing.T) {
			formatter, err := ForName(name)
			require.NoError(t, err)
			out, err := formatter(orthography.Realise(sentence("the dog barks")))
			require.NoError(t, err)
			require.Equal(t, "The dog barks.", out)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ForName("pdf")
		require.Error(t, err)
	})
}
