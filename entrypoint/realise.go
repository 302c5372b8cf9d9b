package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"gopkg.in/yaml.v3"
	"io"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"text2phenotype.com/nlg/pipeline"
	"text2phenotype.com/nlg/types"
)

type realiseOptions struct {
	input      string
	configPath string
	format     string
	trace      bool
	asJSON     bool
}

func realiseCmd() *commander.Command {
	opts := &realiseOptions{}
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			return opts.run(os.Stdout)
		},
		UsageLine: "realise -i <spec file> [-c <configuration>] [options]",
		Short:     "realises a tree spec file",
		Long: `
realises a JSON or YAML tree spec and prints the text

	$ nlg realise -i report.json [-c configs/html.yaml] [-f html] [-trace] [-json]

`,
		Flag: *flag.NewFlagSet("realise", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&opts.input, "i", "", "Tree spec file (.json, .yaml or .yml)")
	cmd.Flag.StringVar(&opts.configPath, "c", "", "Realiser configuration file")
	cmd.Flag.StringVar(&opts.format, "f", "", "Output format: text or html")
	cmd.Flag.BoolVar(&opts.trace, "trace", false, "Print the tree after every stage")
	cmd.Flag.BoolVar(&opts.asJSON, "json", false, "Print the whole JSON response")
	return cmd
}

func (opts *realiseOptions) run(out io.Writer) error {
	if opts.input == "" {
		return errors.New("missing spec file (-i)")
	}
	cfg, err := loadConfiguration(opts.configPath)
	if err != nil {
		return err
	}
	if opts.format != "" {
		cfg.RequestParams.Format = opts.format
	}
	cfg.RequestParams.Trace = cfg.RequestParams.Trace || opts.trace

	spec, err := readSpec(opts.input)
	if err != nil {
		return err
	}
	ppln, err := pipeline.New(pipeline.Params{Configuration: cfg})
	if err != nil {
		return err
	}
	_, tid := path.Split(opts.input)
	resp, ok := <-ppln(pipeline.Request{Tid: tid, Spec: spec})
	if !ok {
		return errors.New("pipeline returned no response")
	}
	if opts.asJSON {
		_, err = fmt.Fprintln(out, resp)
		return err
	}

	var response pipeline.Response
	if err = json.Unmarshal([]byte(resp), &response); err != nil {
		return err
	}
	if response.Error != "" {
		return fmt.Errorf("%s: %s", opts.input, response.Error)
	}
	for _, stage := range response.Trace {
		if _, err = fmt.Fprintf(out, "%s\n", stage); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(out, strings.TrimRight(response.Text, "\n"))
	return err
}

// loadConfiguration reads a configuration file, or returns the default one
// for an empty path.
func loadConfiguration(filePath string) (types.Configuration, error) {
	if filePath == "" {
		return types.DefaultConfiguration(), nil
	}
	return types.LoadConfiguration(filePath)
}

// readSpec returns a spec file as JSON. YAML files are converted.
func readSpec(filePath string) ([]byte, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(path.Ext(filePath)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err = yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}
		return json.Marshal(doc)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: not a JSON document", filePath)
	}
	return data, nil
}
