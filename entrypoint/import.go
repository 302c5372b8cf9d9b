package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"path"
	"strings"
	"text2phenotype.com/nlg/lexicon"
	"text2phenotype.com/nlg/logger"
	"text2phenotype.com/nlg/morphology"
	"text2phenotype.com/nlg/types"
)

type importOptions struct {
	input     string
	output    string
	rulesPath string
}

func importLexiconCmd() *commander.Command {
	opts := &importOptions{}
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			return opts.run(context.Background())
		},
		UsageLine: "import-lexicon -i <lexicon file> -o <database>",
		Short:     "imports a YAML or BSV lexicon into SQLite",
		Long: `
imports a YAML or BSV lexicon into an SQLite lexicon database, which is
created if needed

	$ nlg import-lexicon -i words.yaml -o lexicon.db [-r <morphology rules dir>]

`,
		Flag: *flag.NewFlagSet("import-lexicon", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&opts.input, "i", "", "Lexicon file (.yaml, .yml or .bsv)")
	cmd.Flag.StringVar(&opts.output, "o", "", "SQLite database file")
	cmd.Flag.StringVar(&opts.rulesPath, "r", "", "Morphology rules directory")
	return cmd
}

func (opts *importOptions) run(ctx context.Context) error {
	nlgLogger := logger.NewLogger("Import lexicon")
	if opts.input == "" || opts.output == "" {
		return errors.New("both -i and -o are required")
	}
	rules, err := morphology.LoadRules(opts.rulesPath)
	if err != nil {
		return err
	}
	entries, err := readLexicon(opts.input, rules)
	if err != nil {
		return err
	}
	db, err := lexicon.OpenSQLite(opts.output, rules)
	if err != nil {
		return err
	}
	defer db.Close()
	if err = db.Import(ctx, entries); err != nil {
		return fmt.Errorf("import into %s: %w", opts.output, err)
	}
	nlgLogger.Info().Int("entries", len(entries)).Str("db", opts.output).Msg("Imported lexicon")
	return nil
}

func readLexicon(filePath string, rules *morphology.MorphologicalRules) ([]*types.WordEntry, error) {
	var lex *lexicon.MemoryLexicon
	var err error
	switch strings.ToLower(path.Ext(filePath)) {
	case ".yaml", ".yml":
		lex, err = lexicon.LoadYAML(filePath, rules)
	case ".bsv":
		lex, err = lexicon.LoadBSV(filePath, rules)
	default:
		return nil, fmt.Errorf("%s: unknown lexicon file type", filePath)
	}
	if err != nil {
		return nil, err
	}
	return lex.Entries(), nil
}
