package main

import (
	"fmt"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/kelseyhightower/envconfig"
	"net/http"
	"os"
	"text2phenotype.com/nlg/api"
	"text2phenotype.com/nlg/logger"
	"text2phenotype.com/nlg/pipeline"
	"text2phenotype.com/nlg/types"
	"text2phenotype.com/nlg/worker"
	"time"
)

type Config struct {
	ConfigPath    string   `envconfig:"NLG_CONFIG_PATH" default:""`
	Configuration string   `envconfig:"NLG_CONFIGURATION" default:"default"`
	LexiconPath   string   `envconfig:"NLG_LEXICON_PATH" default:""`
	RestAPIActive bool     `envconfig:"NLG_REST_API_ACTIVE" default:"false"`
	RestAPIPort   string   `envconfig:"NLG_REST_API_PORT" default:"10000"`
	CORSOrigins   []string `envconfig:"NLG_CORS_ORIGINS"`
	WorkerActive  bool     `envconfig:"NLG_WORKER_ACTIVE" default:"true"`
}

const pipelineStartMaxRetries = 5

func serveCmd() *commander.Command {
	return &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			return serve()
		},
		UsageLine: "serve",
		Short:     "runs the queue worker and the REST API",
		Long: `
runs the queue worker and, with NLG_REST_API_ACTIVE=true, the REST API

	$ NLG_CONFIG_PATH=configs nlg serve

`,
		Flag: *flag.NewFlagSet("serve", flag.ExitOnError),
	}
}

// selectConfiguration picks the named configuration from a directory. An
// empty directory path gives the default configuration; a lexicon path is
// searched before the configured lexicons.
func selectConfiguration(config Config) (types.Configuration, error) {
	cfg := types.DefaultConfiguration()
	if config.ConfigPath != "" {
		cfgs, err := types.LoadConfigurations(config.ConfigPath)
		if err != nil {
			return cfg, err
		}
		found := false
		for _, c := range cfgs {
			if c.Name == config.Configuration {
				cfg, found = c, true
				break
			}
		}
		if !found && config.Configuration != cfg.Name {
			return cfg, fmt.Errorf("configuration %q not found in %s", config.Configuration, config.ConfigPath)
		}
	}
	if config.LexiconPath != "" {
		cfg.Lexicons = append([]string{types.LexiconSQLite + ":" + config.LexiconPath}, cfg.Lexicons...)
	}
	return cfg, nil
}

// cacheScope names a configuration and its output options in cache keys.
func cacheScope(cfg types.Configuration) string {
	return fmt.Sprintf("%s/%016x", cfg.Name, cfg.RequestParams.GetHashCode())
}

func serve() error {
	nlgLogger := logger.NewLogger("Main")
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		nlgLogger.Err(err).Msg("Failed to read environment")
		return err
	}

	var ppln pipeline.Pipeline
	var cfg types.Configuration
	var err error
	for retry := 0; retry < pipelineStartMaxRetries; retry++ {
		if cfg, err = selectConfiguration(config); err == nil {
			nlgLogger.Info().Str("configuration", cfg.Name).Msg("Starting pipeline loading")
			if ppln, err = pipeline.New(pipeline.Params{Configuration: cfg}); err == nil {
				break
			}
		}
		nlgLogger.Err(err).Msg("Failed to start pipeline. Retrying in 5 sec")
		time.Sleep(5 * time.Second)
	}
	if ppln == nil {
		return fmt.Errorf("could not start pipeline after %d retries: %w", pipelineStartMaxRetries, err)
	}
	nlgLogger.Info().Msg("Pipeline loaded")

	if config.RestAPIActive {
		go func() {
			apiRequest := &api.Request{
				Pipeline:       ppln,
				AllowedOrigins: config.CORSOrigins,
			}
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			nlgLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, apiRequest.Handler())
			nlgLogger.Fatal().Caller().Err(err).Msg("REST API stopped with error")
		}()
	}

	if !config.WorkerActive {
		select {}
	}
	nlgLogger.Info().Msg("Start NLG Worker")
	for {
		rmqWorker, err := worker.New(ppln, cacheScope(cfg))
		if err != nil {
			nlgLogger.Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			nlgLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}
