package pipeline

import (
	"context"
	"encoding/json"
	"text2phenotype.com/nlg/builder"
	"text2phenotype.com/nlg/format"
	"text2phenotype.com/nlg/logger"
	"text2phenotype.com/nlg/morphology"
	"text2phenotype.com/nlg/orthography"
	"text2phenotype.com/nlg/types"
	"text2phenotype.com/nlg/utils"
	"sync"
)

// Pipeline realises a request and sends one JSON Response.
type Pipeline func(request Request) <-chan string

type Params struct {
	Configuration types.Configuration `json:"configuration"`
}

// job travels through the stages of the batch pipeline.
type job struct {
	request   Request
	tree      types.Element
	units     []types.Element
	realised  []Result
	text      string
	sentences []string
	trace     []string
	err       error
}

func New(params Params) (Pipeline, error) {
	nlgLogger := logger.NewLogger("Batch pipeline")
	cfg := params.Configuration
	nlgLogger.Info().
		Interface("params", params).
		Msg("Starting batch pipeline (see parameters in 'params' field)")

	rules, err := morphology.LoadRules(cfg.RulesPath)
	if err != nil {
		nlgLogger.Err(err).Str("rules_path", cfg.RulesPath).Msg("Failed to load morphology rules")
		return nil, err
	}
	lex, err := NewLexicon(cfg, rules)
	if err != nil {
		nlgLogger.Err(err).Strs("lexicons", cfg.Lexicons).Msg("Failed to open lexicons")
		return nil, err
	}
	formatter, err := format.ForName(cfg.RequestParams.Format)
	if err != nil {
		return nil, err
	}

	realiser := NewRealiser(lex, rules, formatter, Options{Trace: cfg.RequestParams.Trace})
	decoder := newDecoder(builder.NewFactory(lex))
	sentenceRealiser := newSentenceRealiser(realiser)
	layout := newLayout(formatter)

	return func(request Request) <-chan string {
		responseChan := make(chan string, 1)
		pplnLog := nlgLogger.With().Str("tid", request.Tid).Logger()
		pplnLog.Info().Msg("Started batch pipeline")

		go func() {
			defer close(responseChan)
			in := make(chan *job)
			out := layout(sentenceRealiser(decoder(in)))

			in <- &job{request: request}
			close(in)
			j := <-out

			response := Response{Tid: request.Tid, Text: j.text, Sentences: j.sentences, Trace: j.trace}
			if j.err != nil {
				errLogger := pplnLog.With().Caller().Logger()
				errLogger.Err(j.err).Msg("Failed to realise request")
				response.Error = j.err.Error()
			}
			buf, err := json.Marshal(response)
			if err != nil {
				pplnLog.Err(err).Msg("Failed to marshall response")
			}
			pplnLog.Info().Int("sentences", len(j.sentences)).Msg("Finished batch pipeline")
			responseChan <- string(buf)
		}()
		return responseChan
	}, nil
}

func newDecoder(factory *builder.Factory) func(in <-chan *job) <-chan *job {
	return func(in <-chan *job) <-chan *job {
		out := make(chan *job)
		go func() {
			defer close(out)
			for j := range in {
				j.tree, j.err = factory.Decode(j.request.Spec)
				if j.err == nil {
					j.units = sentences(j.tree)
				}
				out <- j
			}
		}()
		return out
	}
}

// newSentenceRealiser realises the sentences of a job in parallel.
func newSentenceRealiser(realiser *Realiser) func(in <-chan *job) <-chan *job {
	return func(in <-chan *job) <-chan *job {
		out := make(chan *job)
		go func() {
			defer close(out)
			for j := range in {
				if j.err == nil {
					j.realised, j.err = realiseAll(realiser, j.units)
				}
				out <- j
			}
		}()
		return out
	}
}

func realiseAll(realiser *Realiser, units []types.Element) ([]Result, error) {
	results := make([]Result, len(units))
	errs := make([]error, len(units))
	var wg sync.WaitGroup
	for i, unit := range units {
		wg.Add(1)
		go func(i int, unit types.Element) {
			defer wg.Done()
			defer utils.RecoverWithError(&errs[i])
			results[i], errs[i] = realiser.RealiseSentence(context.Background(), unit)
		}(i, unit)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// newLayout puts realised sentences back into their document and formats it.
func newLayout(formatter format.Formatter) func(in <-chan *job) <-chan *job {
	return func(in <-chan *job) <-chan *job {
		out := make(chan *job)
		go func() {
			defer close(out)
			for j := range in {
				if j.err == nil {
					layoutJob(j, formatter)
				}
				out <- j
			}
		}()
		return out
	}
}

func layoutJob(j *job, formatter format.Formatter) {
	realised := make(map[types.Element]types.Element, len(j.units))
	for i, unit := range j.units {
		res := j.realised[i]
		realised[unit] = res.Tree
		j.sentences = append(j.sentences, res.Tree.Realisation())
		for _, stage := range res.Trace {
			j.trace = append(j.trace, stage.Stage+"\n"+stage.Dump)
		}
	}
	doc := orthography.Realise(assemble(j.tree, realised))
	j.text, j.err = formatter(doc)
}

// sentences returns the parts of a tree that are realised on their own:
// sentences and list items, or the whole tree when it is not a document.
func sentences(el types.Element) []types.Element {
	doc, ok := el.(*types.DocumentElement)
	if !ok {
		if el == nil {
			return nil
		}
		return []types.Element{el}
	}
	if doc.Category == types.DocumentSentence || doc.Category == types.DocumentListItem {
		return []types.Element{doc}
	}
	var units []types.Element
	for _, c := range doc.Components {
		units = append(units, sentences(c)...)
	}
	return units
}

// assemble copies the document tree el, replacing realised parts.
func assemble(el types.Element, realised map[types.Element]types.Element) types.Element {
	if r, ok := realised[el]; ok {
		return r
	}
	doc, ok := el.(*types.DocumentElement)
	if !ok {
		return el
	}
	out := types.ShallowCopy(doc).(*types.DocumentElement)
	for i, c := range out.Components {
		out.Components[i] = assemble(c, realised)
	}
	return out
}
