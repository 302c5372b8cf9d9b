package pipeline

import (
	"fmt"
	"text2phenotype.com/nlg/lexicon"
	"text2phenotype.com/nlg/morphology"
	"text2phenotype.com/nlg/types"
)

// NewLexicon opens the lexicon sources of a configuration. Several sources
// are searched in order.
func NewLexicon(cfg types.Configuration, rules *morphology.MorphologicalRules) (lexicon.Lexicon, error) {
	sources, err := cfg.LexiconSources()
	if err != nil {
		return nil, err
	}
	lexicons := make([]lexicon.Lexicon, 0, len(sources))
	for _, src := range sources {
		var lex lexicon.Lexicon
		switch src.Kind {
		case types.LexiconDefault:
			lex, err = lexicon.Default()
		case types.LexiconYAML:
			lex, err = lexicon.LoadYAML(src.Path, rules)
		case types.LexiconBSV:
			lex, err = lexicon.LoadBSV(src.Path, rules)
		case types.LexiconSQLite:
			lex, err = lexicon.OpenSQLite(src.Path, rules)
		default:
			err = fmt.Errorf("unknown lexicon source %q", src.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("configuration %s: %w", cfg.Name, err)
		}
		lexicons = append(lexicons, lex)
	}
	if len(lexicons) == 1 {
		return lexicons[0], nil
	}
	return lexicon.NewMultipleLexicon(cfg.SearchAll, lexicons...), nil
}
