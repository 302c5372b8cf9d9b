package pipeline

import (
	"context"
	"text2phenotype.com/nlg/format"
	"text2phenotype.com/nlg/lexicon"
	"text2phenotype.com/nlg/logger"
	"text2phenotype.com/nlg/morphology"
	"text2phenotype.com/nlg/orthography"
	"text2phenotype.com/nlg/syntax"
	"text2phenotype.com/nlg/types"
	"github.com/rs/zerolog"
	"time"
)

const (
	StageSyntax      = "syntax"
	StageMorphology  = "morphology"
	StageOrthography = "orthography"
)

type Options struct {
	// Trace keeps the intermediate tree of every stage in the result.
	Trace bool
}

// StageTrace is the output of one stage, as a tree and as its printed form.
type StageTrace struct {
	Stage string        `json:"stage"`
	Tree  types.Element `json:"-"`
	Dump  string        `json:"dump"`
}

type Trace []StageTrace

type Result struct {
	Text  string
	Tree  types.Element
	Trace Trace
}

// Realiser runs syntax, morphology and orthography over a tree. It keeps no
// per-call state, so one Realiser may serve concurrent calls as long as its
// lexicon does.
type Realiser struct {
	Lexicon lexicon.Lexicon
	Options Options

	morphology morphology.Realiser
	format     format.Formatter
	nlgLogger  zerolog.Logger
}

func NewRealiser(lex lexicon.Lexicon, rules *morphology.MorphologicalRules, formatter format.Formatter,
	opts Options) *Realiser {
	if rules == nil {
		rules = morphology.DefaultRules()
	}
	if formatter == nil {
		formatter, _ = format.ForName(types.FormatText)
	}
	return &Realiser{
		Lexicon:    lex,
		Options:    opts,
		morphology: morphology.NewRealiser(rules),
		format:     formatter,
		nlgLogger:  logger.NewLogger("Realiser"),
	}
}

// Realise realises el and lays the result out with the realiser's formatter.
func (r *Realiser) Realise(ctx context.Context, el types.Element) (Result, error) {
	var result Result
	tree, err := r.stages(ctx, el, &result)
	if err != nil {
		return result, err
	}
	result.Tree = tree
	if result.Text, err = r.format(tree); err != nil {
		return result, err
	}
	return result, nil
}

// RealiseSentence realises el as a sentence, wrapping it in one unless it is
// already a document element.
func (r *Realiser) RealiseSentence(ctx context.Context, el types.Element) (Result, error) {
	if _, ok := el.(*types.DocumentElement); !ok && el != nil {
		sentence := types.NewDocumentElement(types.DocumentSentence, "")
		sentence.AddComponent(el)
		el = sentence
	}
	return r.Realise(ctx, el)
}

func (r *Realiser) stages(ctx context.Context, el types.Element, result *Result) (types.Element, error) {
	tree := el
	var err error
	for _, stage := range []struct {
		name string
		run  func(types.Element) (types.Element, error)
	}{
		{StageSyntax, func(in types.Element) (types.Element, error) { return syntax.Realise(r.Lexicon, in) }},
		{StageMorphology, func(in types.Element) (types.Element, error) { return r.morphology(in), nil }},
		{StageOrthography, func(in types.Element) (types.Element, error) { return orthography.Realise(in), nil }},
	} {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		if tree, err = stage.run(tree); err != nil {
			r.nlgLogger.Err(err).Str("stage", stage.name).Msg("Stage failed")
			return nil, err
		}
		r.nlgLogger.Debug().
			Str("stage", stage.name).
			Dur("elapsed", time.Since(start)).
			Msg("Finished stage")
		if r.Options.Trace {
			result.Trace = append(result.Trace, StageTrace{Stage: stage.name, Tree: tree, Dump: types.PrintTree(tree)})
		}
	}
	return tree, nil
}
