package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections mirror
// the flag namespace (-index.url, -archive.url, -max.records, ...). Durations
// are strings in time.ParseDuration syntax ("1s", "250ms").
type FileConfig struct {
	Index struct {
		URL  string `yaml:"url" json:"url"`
		Name string `yaml:"name" json:"name"`
		File string `yaml:"file" json:"file"`
	} `yaml:"index" json:"index"`

	Archive struct {
		URL string `yaml:"url" json:"url"`
	} `yaml:"archive" json:"archive"`

	Groups []QueryGroup `yaml:"groups" json:"groups"`

	Max struct {
		Records int `yaml:"records" json:"records"`
	} `yaml:"max" json:"max"`

	ExcerptChars  int    `yaml:"excerptChars" json:"excerptChars"`
	FetchInterval string `yaml:"fetchInterval" json:"fetchInterval"`
	Timeout       string `yaml:"timeout" json:"timeout"`

	UserAgent        string `yaml:"ua" json:"ua"`
	NormalizeQueries bool   `yaml:"normalizeQueries" json:"normalizeQueries"`

	DryRun  bool `yaml:"dryRun" json:"dryRun"`
	Plain   bool `yaml:"plain" json:"plain"`
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any field that
// is still unset or at its built-in default. Flags and environment should
// already have been applied; this lets file config supply the remaining
// settings without clobbering explicit ones.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}

	if (cfg.IndexURL == "" || cfg.IndexURL == DefaultIndexURL) && fc.Index.URL != "" {
		cfg.IndexURL = fc.Index.URL
	}
	if (cfg.IndexName == "" || cfg.IndexName == DefaultIndexName) && fc.Index.Name != "" {
		cfg.IndexName = fc.Index.Name
	}
	if cfg.IndexFile == "" && fc.Index.File != "" {
		cfg.IndexFile = fc.Index.File
	}
	if (cfg.ArchiveURL == "" || cfg.ArchiveURL == DefaultArchiveURL) && fc.Archive.URL != "" {
		cfg.ArchiveURL = fc.Archive.URL
	}
	if (cfg.UserAgent == "" || cfg.UserAgent == DefaultUserAgent) && fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}

	if len(cfg.Groups) == 0 && len(fc.Groups) > 0 {
		cfg.Groups = append([]QueryGroup(nil), fc.Groups...)
	}

	if (cfg.MaxRecords == 0 || cfg.MaxRecords == DefaultMaxRecords) && fc.Max.Records > 0 {
		cfg.MaxRecords = fc.Max.Records
	}
	if (cfg.ExcerptChars == 0 || cfg.ExcerptChars == DefaultExcerptChars) && fc.ExcerptChars > 0 {
		cfg.ExcerptChars = fc.ExcerptChars
	}
	if cfg.FetchInterval == 0 || cfg.FetchInterval == DefaultFetchInterval {
		if d, err := time.ParseDuration(strings.TrimSpace(fc.FetchInterval)); err == nil && d > 0 {
			cfg.FetchInterval = d
		}
	}
	if cfg.Timeout == 0 || cfg.Timeout == DefaultTimeout {
		if d, err := time.ParseDuration(strings.TrimSpace(fc.Timeout)); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if !cfg.NormalizeQueries && fc.NormalizeQueries {
		cfg.NormalizeQueries = true
	}
	if !cfg.DryRun && fc.DryRun {
		cfg.DryRun = true
	}
	if !cfg.Plain && fc.Plain {
		cfg.Plain = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation of a resolved Config.
// Zero limits are not defaulted here; New applies defaults before running.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.IndexFile) == "" {
		if strings.TrimSpace(cfg.IndexURL) == "" {
			return errors.New("config: index url is required")
		}
		if strings.TrimSpace(cfg.IndexName) == "" {
			return errors.New("config: index name is required (or set CCSEARCH_INDEX_NAME)")
		}
	}
	if !cfg.DryRun && strings.TrimSpace(cfg.ArchiveURL) == "" {
		return errors.New("config: archive url is required")
	}
	if cfg.MaxRecords <= 0 {
		return errors.New("config: max records must be positive")
	}
	if cfg.ExcerptChars <= 0 {
		return errors.New("config: excerpt chars must be positive")
	}
	if cfg.FetchInterval < 0 {
		return errors.New("config: fetch interval must not be negative")
	}
	if cfg.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	for _, g := range cfg.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return errors.New("config: query group without a name")
		}
		if len(g.Queries) == 0 {
			return fmt.Errorf("config: query group %q has no queries", g.Name)
		}
	}
	return nil
}
