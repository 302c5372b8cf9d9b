package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"text2phenotype.com/nlg/builder"
	"text2phenotype.com/nlg/format"
	"text2phenotype.com/nlg/lexicon"
	"text2phenotype.com/nlg/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"path"
	"strings"
	"testing"
)

func newRealiser(t *testing.T, formatter format.Formatter, opts Options) (*Realiser, *builder.Factory) {
	lex, err := lexicon.Default()
	require.NoError(t, err)
	return NewRealiser(lex, nil, formatter, opts), builder.NewFactory(lex)
}

type brokenLexicon struct{}

var errBroken = errors.New("lexicon unavailable")

func (brokenLexicon) FindByBase(string, types.LexicalCategory) ([]*types.WordEntry, error) {
	return nil, errBroken
}

func (brokenLexicon) FindByID(string) (*types.WordEntry, error) {
	return nil, errBroken
}

func (brokenLexicon) FindByVariant(string, types.LexicalCategory) ([]*types.WordEntry, error) {
	return nil, errBroken
}

func TestRealiser(t *testing.T) {
	ctx := context.Background()

	t.Run("sentence", func(t *testing.T) {
		r, f := newRealiser(t, nil, Options{})
		res, err := r.RealiseSentence(ctx, f.NewClause("Mary", "chase", "George"))
		require.NoError(t, err)
		require.Equal(t, "Mary chases George.", res.Text)
		require.Empty(t, res.Trace)
		require.Equal(t, "Mary chases George.", res.Tree.Realisation())
	})

	t.Run("sentences end to end", func(t *testing.T) {
		r, f := newRealiser(t, nil, Options{})
		kissed := f.NewClause("John", "kiss", "Mary")
		kissed.SetFeature(types.FeatureTense, types.TensePast)
		wolf := f.NewClause("a wolf", "eat", nil)
		wolf.SetFeature(types.FeatureInterrogativeType, types.InterrogativeWhatObject)
		happy := f.NewSentence(f.NewClause("the man", "be", "happy"))
		happy.SetFeature(types.FeatureInterrogative, types.Bool(true))
		pets := f.NewClause(f.NewCoordination("the dog", "the cat", "the bird"), "sleep", nil)

		for expected, el := range map[string]types.Element{
			"John kissed Mary.":                    kissed,
			"What does a wolf eat?":                wolf,
			"The man is happy?":                    happy,
			"The dog, the cat and the bird sleep.": pets,
		} {
			t.Run(expected, func(t *testing.T) {
				res, err := r.RealiseSentence(ctx, el)
				require.NoError(t, err)
				require.Equal(t, expected, res.Text)
			})
		}
	})

	t.Run("phrase", func(t *testing.T) {
		r, f := newRealiser(t, nil, Options{})
		res, err := r.Realise(ctx, f.NewClause("Mary", "chase", "George"))
		require.NoError(t, err)
		require.Equal(t, "Mary chases George", res.Text)
	})

	t.Run("trace", func(t *testing.T) {
		r, f := newRealiser(t, nil, Options{Trace: true})
		res, err := r.RealiseSentence(ctx, f.NewClause("Mary", "chase", "George"))
		require.NoError(t, err)

		var stages []string
		for _, stage := range res.Trace {
			stages = append(stages, stage.Stage)
			require.NotEmpty(t, stage.Dump)
			require.NotNil(t, stage.Tree)
		}
		if diff := cmp.Diff([]string{StageSyntax, StageMorphology, StageOrthography}, stages); diff != "" {
			t.Errorf("unexpected stages (-want +got):\n%s", diff)
		}
	})

	t.Run("html", func(t *testing.T) {
		r, f := newRealiser(t, format.HTMLString, Options{})
		res, err := r.Realise(ctx, f.NewDocument("News", f.NewClause("the dog", "chase", "the cat")))
		require.NoError(t, err)
		require.Equal(t, `<div class="document"><h1>News</h1>The dog chases the cat.</div>`, res.Text)
	})

	t.Run("cancelled", func(t *testing.T) {
		r, f := newRealiser(t, nil, Options{})
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := r.RealiseSentence(cancelled, f.NewClause("Mary", "chase", "George"))
		require.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("lexicon failure", func(t *testing.T) {
		r := NewRealiser(brokenLexicon{}, nil, nil, Options{})
		_, err := r.RealiseSentence(ctx, builder.NewFactory(nil).NewClause("Mary", "chase", "George"))
		require.True(t, errors.Is(err, errBroken))
	})
}

func realiseRequest(t *testing.T, cfg types.Configuration, spec string) Response {
	ppln, err := New(Params{Configuration: cfg})
	require.NoError(t, err)

	var response Response
	require.NoError(t, json.Unmarshal([]byte(<-ppln(Request{Tid: "t-1", Spec: json.RawMessage(spec)})), &response))
	return response
}

const reportSpec = `{
	"type": "document",
	"title": "Report",
	"components": [
		{"type": "paragraph", "components": [
			{"type": "clause", "subjects": ["the dog"], "verb": "chase", "objects": ["the cat"]},
			{"type": "clause", "subjects": ["Mary"], "verb": "chase", "objects": ["George"],
				"features": {"interrogative_type": "yes_no"}}
		]},
		{"type": "list", "components": ["apples", "pears"]}
	]
}`

func TestPipeline(t *testing.T) {
	t.Run("document", func(t *testing.T) {
		expected := Response{
			Tid:  "t-1",
			Text: "Report\nThe dog chases the cat. Does Mary chase George?\n\n* apples\n* pears\n",
			Sentences: []string{
				"The dog chases the cat.",
				"Does Mary chase George?",
				"* apples",
				"* pears",
			},
		}
		received := realiseRequest(t, types.DefaultConfiguration(), reportSpec)
		if diff := cmp.Diff(expected, received); diff != "" {
			t.Errorf("unexpected response (-want +got):\n%s", diff)
		}
	})

	t.Run("html", func(t *testing.T) {
		cfg := types.DefaultConfiguration()
		cfg.RequestParams.Format = types.FormatHTML
		received := realiseRequest(t, cfg, reportSpec)
		require.Equal(t, `<div class="document"><h1>Report</h1>`+
			`<p>The dog chases the cat. Does Mary chase George?</p>`+
			`<ul><li>apples</li><li>pears</li></ul></div>`, received.Text)
	})

	t.Run("single clause with trace", func(t *testing.T) {
		cfg := types.DefaultConfiguration()
		cfg.RequestParams.Trace = true
		received := realiseRequest(t, cfg, `{"type": "clause", "subjects": ["John"], "verb": "eat"}`)
		require.Equal(t, "John eats.", received.Text)
		require.Len(t, received.Trace, 3)
		require.True(t, strings.HasPrefix(received.Trace[0], StageSyntax+"\n"))
		require.Empty(t, received.Error)
	})

	t.Run("invalid spec", func(t *testing.T) {
		received := realiseRequest(t, types.DefaultConfiguration(), `{"type": "nonsense"}`)
		expected := Response{Tid: "t-1", Error: `unknown element type "nonsense"`}
		if diff := cmp.Diff(expected, received); diff != "" {
			t.Errorf("unexpected response (-want +got):\n%s", diff)
		}
	})

	t.Run("bad configuration", func(t *testing.T) {
		cfg := types.DefaultConfiguration()
		cfg.Lexicons = []string{"yaml"}
		_, err := New(Params{Configuration: cfg})
		require.Error(t, err)
	})
}

func TestNewLexicon(t *testing.T) {
	dir := t.TempDir()
	words := path.Join(dir, "words.yaml")
	require.NoError(t, ioutil.WriteFile(words, []byte("words:\n  - {base: wug, category: noun, forms: {plural: wugses}}\n"), 0644))

	cfg := types.DefaultConfiguration()
	cfg.Lexicons = []string{"yaml:" + words, types.LexiconDefault}
	lex, err := NewLexicon(cfg, nil)
	require.NoError(t, err)

	wug, err := lexicon.LookupWord(lex, "wug", types.CategoryNoun)
	require.NoError(t, err)
	require.Equal(t, "wugses", wug.Form(types.FeaturePlural))

	dog, err := lexicon.LookupWord(lex, "dog", types.CategoryNoun)
	require.NoError(t, err)
	require.Equal(t, "dog", dog.BaseForm)

	cfg.Lexicons = []string{"bsv:" + path.Join(dir, "missing.bsv")}
	_, err = NewLexicon(cfg, nil)
	require.Error(t, err)
}
