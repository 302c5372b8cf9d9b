package main

import (
	"fmt"
	"github.com/gonuts/commander"
	"os"
	"text2phenotype.com/nlg/logger"
)

func commands() *commander.Command {
	return &commander.Command{
		UsageLine: "nlg <command> [options]",
		Short:     "English surface realiser",
		Subcommands: []*commander.Command{
			realiseCmd(),
			serveCmd(),
			importLexiconCmd(),
		},
	}
}

func main() {
	logger.SetupLogging()
	if err := commands().Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "nlg: %v\n", err)
		os.Exit(1)
	}
}
