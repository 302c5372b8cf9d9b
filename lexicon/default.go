package lexicon

import (
	_ "embed"
	"text2phenotype.com/nlg/morphology"
	"sync"
)

//go:embed resources/default_lexicon.yaml
var defaultLexiconYAML []byte

var (
	defaultOnce    sync.Once
	defaultLexicon *MemoryLexicon
	defaultErr     error
)

// Default returns the built-in lexicon. It is loaded once and shared.
func Default() (*MemoryLexicon, error) {
	defaultOnce.Do(func() {
		entries, err := ParseYAML(defaultLexiconYAML)
		if err != nil {
			defaultErr = err
			return
		}
		defaultLexicon = NewMemoryLexicon(morphology.DefaultRules(), entries...)
	})
	return defaultLexicon, defaultErr
}
