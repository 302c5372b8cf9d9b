package types

import (
	"github.com/stretchr/testify/require"
	"os"
	"path"
	"testing"
)

func TestFeatureSet(t *testing.T) {
	fs := FeatureSet{
		FeatureNegated: Bool(true),
		FeatureModal:   Text("can"),
		FeatureTense:   TensePast,
		FeatureNumber:  Text("plural"),
	}

	t.Run("typed reads", func(t *testing.T) {
		require.True(t, fs.Bool(FeatureNegated))
		require.Equal(t, "can", fs.Text(FeatureModal))
		require.Equal(t, TensePast, fs.Tense())
	})

	t.Run("absent features read as defaults", func(t *testing.T) {
		require.False(t, fs.Bool(FeaturePassive))
		require.Equal(t, "", fs.Text(FeatureParticle))
		require.Equal(t, PersonThird, fs.Person())
		require.Equal(t, InterrogativeNone, fs.InterrogativeType())
		require.Nil(t, fs.Element(FeatureConjunction))
	})

	t.Run("mistyped features read as defaults", func(t *testing.T) {
		require.Equal(t, NumberSingular, fs.Number())
		require.False(t, fs.Bool(FeatureModal))
		require.Equal(t, "", fs.Text(FeatureNegated))
	})

	t.Run("elements", func(t *testing.T) {
		word := NewWord("dog", CategoryNoun)
		single := FeatureSet{FeatureConjunction: word}
		require.Equal(t, []Element{word}, single.Elements(FeatureConjunction))
		list := FeatureSet{FeatureConjunction: ElementList{word, word}}
		require.Len(t, list.Elements(FeatureConjunction), 2)
	})

	t.Run("copy is independent", func(t *testing.T) {
		c := fs.Copy()
		c[FeatureNegated] = Bool(false)
		require.True(t, fs.Bool(FeatureNegated))

		c.Merge(FeatureSet{FeatureTense: TenseFuture, FeaturePassive: Bool(true)})
		require.Equal(t, TenseFuture, c.Tense())
		require.True(t, c.Bool(FeaturePassive))
		require.Equal(t, TensePast, fs.Tense())
	})
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		feature  string
		text     string
		expected Value
	}{
		{FeatureTense, "past", TensePast},
		{FeatureTense, " FUTURE ", TenseFuture},
		{FeatureNumber, "plural", NumberPlural},
		{FeatureGender, "feminine", GenderFeminine},
		{FeatureInterrogativeType, "who_subject", InterrogativeWhoSubject},
		{FeatureModal, "must", Text("must")},
	}
	for _, c := range cases {
		t.Run(c.feature+" "+c.text, func(t *testing.T) {
			v, ok := ParseValue(c.feature, c.text)
			require.True(t, ok)
			require.Equal(t, c.expected, v)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		for _, text := range []string{"someday", ""} {
			_, ok := ParseValue(FeatureTense, text)
			require.False(t, ok)
		}
		_, ok := ParseValue(FeatureInterrogativeType, "")
		require.False(t, ok)
	})

	t.Run("names round trip", func(t *testing.T) {
		v, ok := ParseValue(FeatureInterrogativeType, InterrogativeWhoIndirectObject.String())
		require.True(t, ok)
		require.Equal(t, InterrogativeWhoIndirectObject, v)
		require.Equal(t, "unknown", Tense(42).String())
	})
}

func TestCategories(t *testing.T) {
	c, ok := ParseLexicalCategory("Noun")
	require.True(t, ok)
	require.Equal(t, CategoryNoun, c)
	require.True(t, CategoryAny.Matches(CategoryVerb))
	require.False(t, CategoryNoun.Matches(CategoryVerb))

	_, ok = ParsePhraseCategory("sentence_phrase")
	require.False(t, ok)

	require.True(t, DocumentParagraph.CanContain(DocumentList))
	require.False(t, DocumentSection.CanContain(DocumentSentence))
	require.False(t, DocumentRoot.CanContain(DocumentListItem))
	require.True(t, DocumentListItem.HoldsPhrases())
}

func TestAddComponent(t *testing.T) {
	t.Run("phrase in document becomes a sentence", func(t *testing.T) {
		doc := NewDocumentElement(DocumentRoot, "")
		doc.AddComponent(NewPhrase(PhraseClause))
		require.Len(t, doc.Components, 1)
		require.Equal(t, DocumentSentence, doc.Components[0].(*DocumentElement).Category)
	})

	t.Run("sentence in section gets a paragraph", func(t *testing.T) {
		section := NewDocumentElement(DocumentSection, "Findings")
		sentence := NewDocumentElement(DocumentSentence, "")
		section.AddComponent(sentence)
		paragraph := section.Components[0].(*DocumentElement)
		require.Equal(t, DocumentParagraph, paragraph.Category)
		require.True(t, paragraph.Components[0] == sentence)
	})

	t.Run("phrase in section gets a paragraph and a sentence", func(t *testing.T) {
		section := NewDocumentElement(DocumentSection, "")
		section.AddComponent(NewStringElement("hello"))
		paragraph := section.Components[0].(*DocumentElement)
		sentence := paragraph.Components[0].(*DocumentElement)
		require.Equal(t, DocumentSentence, sentence.Category)
		require.Equal(t, "hello", sentence.Components[0].Realisation())
	})

	t.Run("list items hold phrases", func(t *testing.T) {
		item := NewDocumentElement(DocumentListItem, "")
		item.AddComponent(NewStringElement("apples"))
		item.AddComponent(nil)
		require.Len(t, item.Components, 1)
		_, isString := item.Components[0].(*StringElement)
		require.True(t, isString)
	})
}

func TestWithFeatures(t *testing.T) {
	word := NewWord("dog", CategoryNoun)
	word.SetFeature(FeatureNumber, NumberSingular)

	plural := WithFeatures(word, FeatureSet{FeatureNumber: NumberPlural}).(*WordElement)
	require.Equal(t, NumberPlural, plural.Features().Number())
	require.Equal(t, NumberSingular, word.Features().Number())
	require.Equal(t, "dog", plural.BaseForm)

	require.True(t, WithFeatures(word, nil) == word)
	require.Nil(t, WithFeatures(nil, FeatureSet{FeatureElided: Bool(true)}))

	list := NewList(word)
	c := ShallowCopy(list).(*ListElement)
	c.Add(NewStringElement("barks"))
	c.Add(nil)
	require.Len(t, list.Children, 1)
	require.Len(t, c.Children, 2)

	word.SetFeature(FeatureNumber, nil)
	require.False(t, word.Features().Has(FeatureNumber))
	require.True(t, IsElided(nil))
}

func TestLexiconSources(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		src, err := ParseLexiconSource("SQLite:/data/lexicon.db")
		require.NoError(t, err)
		require.Equal(t, LexiconSource{Kind: LexiconSQLite, Path: "/data/lexicon.db"}, src)

		_, err = ParseLexiconSource("yaml")
		require.Error(t, err)
		_, err = ParseLexiconSource("csv:words.csv")
		require.Error(t, err)
	})

	t.Run("relative paths follow the configuration file", func(t *testing.T) {
		cfg := Configuration{FilePath: "/etc/nlg/html.yaml", Lexicons: []string{"bsv:words.bsv", "default"}}
		sources, err := cfg.LexiconSources()
		require.NoError(t, err)
		require.Equal(t, []LexiconSource{
			{Kind: LexiconBSV, Path: "/etc/nlg/words.bsv"},
			{Kind: LexiconDefault},
		}, sources)
	})

	t.Run("empty list means the default lexicon", func(t *testing.T) {
		sources, err := Configuration{}.LexiconSources()
		require.NoError(t, err)
		require.Equal(t, []LexiconSource{{Kind: LexiconDefault}}, sources)
	})
}

func TestLoadConfigurations(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"html.yaml":   "request_params:\n  format: html\nlexicons: [default]\n",
		"plain.yaml":  "request_params:\n  trace: true\n",
		"broken.yaml": "request_params:\n  format: pdf\n",
		"notes.txt":   "not a configuration",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(path.Join(dir, name), []byte(content), 0644))
	}
	require.NoError(t, os.Mkdir(path.Join(dir, "nested.yaml"), 0755))

	configs, err := LoadConfigurations(dir)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	require.Equal(t, "html", configs[0].Name)
	require.Equal(t, FormatHTML, configs[0].RequestParams.Format)
	require.Equal(t, "plain", configs[1].Name)
	require.True(t, configs[1].RequestParams.Trace)

	_, err = LoadConfiguration(path.Join(dir, "broken.yaml"))
	require.Error(t, err)

	_, err = LoadConfigurations(path.Join(dir, "missing"))
	require.Error(t, err)

	require.Equal(t, RequestParams{}.GetHashCode(), RequestParams{Format: "TEXT"}.GetHashCode())
	require.NotEqual(t, RequestParams{}.GetHashCode(), RequestParams{Trace: true}.GetHashCode())
}
