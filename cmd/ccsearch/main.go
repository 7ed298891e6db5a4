package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/ccsearch/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Dotenv before flag definitions so its values can feed flag defaults.
	if err := app.LoadEnvFiles(".env", ".env.local"); err != nil {
		log.Warn().Err(err).Msg("dotenv load failed")
	}

	var (
		configPath    string
		indexURL      string
		indexName     string
		indexFile     string
		archiveURL    string
		queries       string
		maxRecords    int
		excerptChars  int
		fetchInterval time.Duration
		timeout       time.Duration
		userAgent     string
		normalize     bool
		dryRun        bool
		plain         bool
		verbose       bool
		showVersion   bool
	)

	flag.StringVar(&configPath, "config", envStr("CCSEARCH_CONFIG", ""), "Path to YAML or JSON config file")
	flag.StringVar(&indexURL, "index.url", envStr("CCSEARCH_INDEX_URL", app.DefaultIndexURL), "Index server base URL")
	flag.StringVar(&indexName, "index.name", envStr("CCSEARCH_INDEX_NAME", app.DefaultIndexName), "Crawl collection to query, e.g. CC-MAIN-2024-33")
	flag.StringVar(&indexFile, "index.file", envStr("CCSEARCH_INDEX_FILE", ""), "Path to JSON file serving index records offline")
	flag.StringVar(&archiveURL, "archive.url", envStr("CCSEARCH_ARCHIVE_URL", app.DefaultArchiveURL), "Archive data store base URL")
	flag.StringVar(&queries, "queries", envStr("CCSEARCH_QUERIES", ""), "Inline query groups, e.g. 'Universities: msu.ru, mipt.ru; pstu.ru'")
	flag.IntVar(&maxRecords, "max.records", envInt("CCSEARCH_MAX_RECORDS", app.DefaultMaxRecords), "Maximum records fetched per query")
	flag.IntVar(&excerptChars, "excerpt.chars", envInt("CCSEARCH_EXCERPT_CHARS", app.DefaultExcerptChars), "Printed excerpt cap in characters")
	flag.DurationVar(&fetchInterval, "fetch.interval", envDur("CCSEARCH_FETCH_INTERVAL", app.DefaultFetchInterval), "Minimum interval between record fetches")
	flag.DurationVar(&timeout, "timeout", envDur("CCSEARCH_TIMEOUT", app.DefaultTimeout), "Per-request timeout")
	flag.StringVar(&userAgent, "ua", envStr("CCSEARCH_UA", app.DefaultUserAgent), "User-Agent for index and archive requests")
	flag.BoolVar(&normalize, "normalize", envBool("CCSEARCH_NORMALIZE_QUERIES", false), "Reduce URL-shaped queries to their registrable domain")
	flag.BoolVar(&dryRun, "dry-run", envBool("CCSEARCH_DRY_RUN", false), "Print the resolved plan without any network call")
	flag.BoolVar(&plain, "plain", envBool("CCSEARCH_PLAIN", false), "Disable console styling")
	flag.BoolVar(&verbose, "v", envBool("CCSEARCH_VERBOSE", false), "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(app.VersionString())
		return
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		IndexURL:         indexURL,
		IndexName:        indexName,
		IndexFile:        indexFile,
		ArchiveURL:       archiveURL,
		MaxRecords:       maxRecords,
		ExcerptChars:     excerptChars,
		FetchInterval:    fetchInterval,
		Timeout:          timeout,
		UserAgent:        userAgent,
		NormalizeQueries: normalize,
		DryRun:           dryRun,
		Plain:            plain,
		Verbose:          verbose,
	}
	if strings.TrimSpace(queries) != "" {
		cfg.Groups = app.ParseGroupSpec(queries)
	}

	// File config fills whatever flags and env left at defaults.
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file load failed")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
		if cfg.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return n
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key))); err == nil {
		return d
	}
	return def
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
