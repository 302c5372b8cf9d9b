package types

import (
	"text2phenotype.com/nlg/logger"
	"text2phenotype.com/nlg/utils"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
)

const (
	// output formats
	FormatText = "text"
	FormatHTML = "html"

	// lexicon sources
	LexiconDefault = "default"
	LexiconYAML    = "yaml"
	LexiconBSV     = "bsv"
	LexiconSQLite  = "sqlite"
)

type RequestParams struct {
	Format string `yaml:"format" json:"format"`
	Trace  bool   `yaml:"trace" json:"trace"`
}

// GetHashCode identifies the output options; equal options hash equally.
func (rParams RequestParams) GetHashCode() uint64 {
	if rParams.Format == "" {
		rParams.Format = FormatText
	}
	return utils.HashString(fmt.Sprintf("%s_%t", strings.ToLower(rParams.Format), rParams.Trace))
}

// LexiconSource names one lexicon backend, written as "kind" or "kind:path"
// in configuration files.
type LexiconSource struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

func ParseLexiconSource(s string) (LexiconSource, error) {
	kind, p, _ := strings.Cut(strings.TrimSpace(s), ":")
	src := LexiconSource{Kind: strings.ToLower(kind), Path: p}
	switch src.Kind {
	case LexiconDefault:
		return src, nil
	case LexiconYAML, LexiconBSV, LexiconSQLite:
		if src.Path == "" {
			return src, fmt.Errorf("lexicon source %q needs a path", s)
		}
		return src, nil
	}
	return src, fmt.Errorf("unknown lexicon source %q", s)
}

type Configuration struct {
	Name          string        `json:"name"`
	FilePath      string        `json:"file_path"`
	RequestParams RequestParams `yaml:"request_params" json:"request_params"`
	Lexicons      []string      `yaml:"lexicons" json:"lexicons"`
	SearchAll     bool          `yaml:"search_all" json:"search_all"`
	RulesPath     string        `yaml:"morphology_rules" json:"morphology_rules"`
}

// DefaultConfiguration realises plain text with the embedded lexicon.
func DefaultConfiguration() Configuration {
	return Configuration{
		Name:          "default",
		RequestParams: RequestParams{Format: FormatText},
		Lexicons:      []string{LexiconDefault},
	}
}

func (cfg Configuration) LexiconSources() ([]LexiconSource, error) {
	if len(cfg.Lexicons) == 0 {
		return []LexiconSource{{Kind: LexiconDefault}}, nil
	}
	sources := make([]LexiconSource, 0, len(cfg.Lexicons))
	for _, s := range cfg.Lexicons {
		src, err := ParseLexiconSource(s)
		if err != nil {
			return nil, err
		}
		if src.Path != "" && !path.IsAbs(src.Path) && cfg.FilePath != "" {
			src.Path = path.Join(path.Dir(cfg.FilePath), src.Path)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func (cfg Configuration) Validate() error {
	switch cfg.RequestParams.Format {
	case "", FormatText, FormatHTML:
	default:
		return fmt.Errorf("configuration %s: unknown format %q", cfg.Name, cfg.RequestParams.Format)
	}
	_, err := cfg.LexiconSources()
	return err
}

func LoadConfiguration(filePath string) (Configuration, error) {
	_, fileName := path.Split(filePath)
	cfg := Configuration{
		Name:     strings.TrimSuffix(fileName, ".yaml"),
		FilePath: filePath,
	}
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("configuration %s: %w", fileName, err)
	}
	return cfg, cfg.Validate()
}

func LoadConfigurations(dirPath string) ([]Configuration, error) {
	nlgLogger := logger.NewLogger("LoadConfigurations")

	files, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan Configuration, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(file os.DirEntry) {
			defer wg.Done()
			cfg, err := LoadConfiguration(path.Join(dirPath, file.Name()))
			if err != nil {
				nlgLogger.Err(err).Str("file", file.Name()).Msg("Skipping configuration")
				return
			}
			configChan <- cfg
		}(f)
	}

	go func() {
		wg.Wait()
		close(configChan)
	}()

	configs := make([]Configuration, 0, len(configChan))
	for cfg := range configChan {
		configs = append(configs, cfg)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].Name < configs[j].Name })
	return configs, nil
}
