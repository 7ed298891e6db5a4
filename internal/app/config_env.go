package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// The CCSEARCH_* environment family mirrors the flag namespace:
//
//	CCSEARCH_INDEX_URL, CCSEARCH_INDEX_NAME, CCSEARCH_INDEX_FILE,
//	CCSEARCH_ARCHIVE_URL, CCSEARCH_QUERIES, CCSEARCH_MAX_RECORDS,
//	CCSEARCH_EXCERPT_CHARS, CCSEARCH_FETCH_INTERVAL, CCSEARCH_TIMEOUT,
//	CCSEARCH_UA, CCSEARCH_NORMALIZE_QUERIES, CCSEARCH_DRY_RUN,
//	CCSEARCH_PLAIN, CCSEARCH_VERBOSE
//
// ApplyEnvToConfig fills only unset fields; ApplyEnvOverrides forces any
// field whose variable is present.

// ApplyEnvToConfig populates unset fields of cfg from the environment.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.IndexURL == "" {
		cfg.IndexURL = envValue("CCSEARCH_INDEX_URL")
	}
	if cfg.IndexName == "" {
		cfg.IndexName = envValue("CCSEARCH_INDEX_NAME")
	}
	if cfg.IndexFile == "" {
		cfg.IndexFile = envValue("CCSEARCH_INDEX_FILE")
	}
	if cfg.ArchiveURL == "" {
		cfg.ArchiveURL = envValue("CCSEARCH_ARCHIVE_URL")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = envValue("CCSEARCH_UA")
	}

	if len(cfg.Groups) == 0 {
		if spec := envValue("CCSEARCH_QUERIES"); spec != "" {
			cfg.Groups = ParseGroupSpec(spec)
		}
	}

	if cfg.MaxRecords == 0 {
		if n, err := strconv.Atoi(envValue("CCSEARCH_MAX_RECORDS")); err == nil && n > 0 {
			cfg.MaxRecords = n
		}
	}
	if cfg.ExcerptChars == 0 {
		if n, err := strconv.Atoi(envValue("CCSEARCH_EXCERPT_CHARS")); err == nil && n > 0 {
			cfg.ExcerptChars = n
		}
	}
	if cfg.FetchInterval == 0 {
		if d, err := time.ParseDuration(envValue("CCSEARCH_FETCH_INTERVAL")); err == nil && d > 0 {
			cfg.FetchInterval = d
		}
	}
	if cfg.Timeout == 0 {
		if d, err := time.ParseDuration(envValue("CCSEARCH_TIMEOUT")); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Booleans flip to true only; a false default stays false unless the
	// variable is truthy.
	fill := func(dst *bool, key string) {
		if *dst {
			return
		}
		if v, ok := envBoolValue(key); ok && v {
			*dst = true
		}
	}
	fill(&cfg.NormalizeQueries, "CCSEARCH_NORMALIZE_QUERIES")
	fill(&cfg.DryRun, "CCSEARCH_DRY_RUN")
	fill(&cfg.Plain, "CCSEARCH_PLAIN")
	fill(&cfg.Verbose, "CCSEARCH_VERBOSE")
}

// ApplyEnvOverrides forcefully overrides cfg fields for every CCSEARCH_*
// variable that is set. Use it when the environment must win over values
// already loaded from a config file.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := envValue("CCSEARCH_INDEX_URL"); v != "" {
		cfg.IndexURL = v
	}
	if v := envValue("CCSEARCH_INDEX_NAME"); v != "" {
		cfg.IndexName = v
	}
	if v := envValue("CCSEARCH_INDEX_FILE"); v != "" {
		cfg.IndexFile = v
	}
	if v := envValue("CCSEARCH_ARCHIVE_URL"); v != "" {
		cfg.ArchiveURL = v
	}
	if v := envValue("CCSEARCH_UA"); v != "" {
		cfg.UserAgent = v
	}

	if spec := envValue("CCSEARCH_QUERIES"); spec != "" {
		if groups := ParseGroupSpec(spec); len(groups) > 0 {
			cfg.Groups = groups
		}
	}

	if n, err := strconv.Atoi(envValue("CCSEARCH_MAX_RECORDS")); err == nil && n > 0 {
		cfg.MaxRecords = n
	}
	if n, err := strconv.Atoi(envValue("CCSEARCH_EXCERPT_CHARS")); err == nil && n > 0 {
		cfg.ExcerptChars = n
	}
	if d, err := time.ParseDuration(envValue("CCSEARCH_FETCH_INTERVAL")); err == nil && d > 0 {
		cfg.FetchInterval = d
	}
	if d, err := time.ParseDuration(envValue("CCSEARCH_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	force := func(dst *bool, key string) {
		if v, ok := envBoolValue(key); ok {
			*dst = v
		}
	}
	force(&cfg.NormalizeQueries, "CCSEARCH_NORMALIZE_QUERIES")
	force(&cfg.DryRun, "CCSEARCH_DRY_RUN")
	force(&cfg.Plain, "CCSEARCH_PLAIN")
	force(&cfg.Verbose, "CCSEARCH_VERBOSE")
}

func envValue(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// envBoolValue reports the boolean value of an environment variable and
// whether it held one at all.
func envBoolValue(key string) (value, ok bool) {
	switch strings.ToLower(envValue(key)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
