package app

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hyperifyio/ccsearch/internal/archive"
	"github.com/hyperifyio/ccsearch/internal/extract"
	"github.com/hyperifyio/ccsearch/internal/index"
	"github.com/hyperifyio/ccsearch/internal/report"
)

// App wires the index provider, archive client, and report printer into one
// sequential batch run: group by group, query by query, record by record.
type App struct {
	cfg        Config
	provider   index.Provider
	archive    *archive.Client
	printer    *report.Printer
	limiter    *rate.Limiter
	httpClient *http.Client
}

// New builds an App from cfg. Unset fields fall back to the package
// defaults; an invalid resolved configuration is rejected here instead of
// surfacing mid-run.
func New(cfg Config) (*App, error) {
	cfg = cfg.withDefaults()
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	httpClient := newHTTPClient(cfg.Timeout)

	var provider index.Provider
	if cfg.IndexFile != "" {
		provider = &index.FileProvider{Path: cfg.IndexFile}
	} else {
		provider = &index.CommonCrawl{
			ServerURL:  cfg.IndexURL,
			IndexName:  cfg.IndexName,
			HTTPClient: httpClient,
			UserAgent:  cfg.UserAgent,
		}
	}

	return &App{
		cfg:      cfg,
		provider: provider,
		archive: &archive.Client{
			BaseURL:    cfg.ArchiveURL,
			HTTPClient: httpClient,
			UserAgent:  cfg.UserAgent,
		},
		printer:    report.New(os.Stdout, cfg.Plain),
		limiter:    rate.NewLimiter(rate.Every(cfg.FetchInterval), 1),
		httpClient: httpClient,
	}, nil
}

// Close releases idle network resources.
func (a *App) Close() {
	if a.httpClient != nil {
		a.httpClient.CloseIdleConnections()
	}
}

// Run executes the batch: every group, every query, up to MaxRecords
// records per query. Lookup and per-record failures never abort the run;
// they are logged, surfaced on the console, and the loop moves on. Context
// cancellation is the only early exit.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.DryRun {
		a.printPlan()
		return nil
	}
	for _, group := range a.cfg.Groups {
		a.printer.GroupStart(group.Name)
		for _, query := range group.Queries {
			if err := a.runQuery(ctx, query); err != nil {
				return err
			}
		}
		a.printer.GroupEnd(group.Name)
	}
	return nil
}

// runQuery handles one query end to end. The only error it returns is
// context cancellation; everything else degrades to a console notice.
func (a *App) runQuery(ctx context.Context, query string) error {
	query = a.resolveQuery(query)
	a.printer.QueryStart(query)

	records, err := a.provider.Lookup(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Str("query", query).Str("provider", a.provider.Name()).Msg("index lookup failed")
		a.printer.LookupFailed(query, err)
		return nil
	}
	if len(records) == 0 {
		a.printer.NoResults(query)
		return nil
	}
	a.printer.Found(query, len(records))

	if len(records) > a.cfg.MaxRecords {
		records = records[:a.cfg.MaxRecords]
	}
	for _, rec := range records {
		// One token per FetchInterval keeps record fetches paced across
		// queries and groups, not just within one query.
		if err := a.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := a.processRecord(ctx, query, rec); err != nil {
			return err
		}
	}
	return nil
}

// processRecord fetches one capture and prints its extracted content. A
// record that cannot be located, fetched, or unwrapped is reported and
// skipped.
func (a *App) processRecord(ctx context.Context, query string, rec index.Record) error {
	filename, offset, length, err := rec.Location()
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("skipping incomplete record")
		a.printer.SkippedIncomplete(err)
		return nil
	}

	log.Debug().Str("filename", filename).Int64("offset", offset).Int64("length", length).Msg("fetching record")
	content, err := a.archive.FetchPage(ctx, filename, offset, length)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Str("filename", filename).Str("query", query).Msg("record fetch failed")
		a.printer.FetchFailed(rec.URL, err)
		return nil
	}

	page := extract.FromHTML([]byte(content))
	a.printer.Result(report.Result{
		Query:   query,
		Title:   page.Title,
		URL:     page.CanonicalURL,
		Excerpt: report.Excerpt(page.Text, a.cfg.ExcerptChars),
	})
	return nil
}

// resolveQuery applies optional query normalization. Failures fall back to
// the raw query so a malformed term degrades to a no-result search instead
// of stopping the batch.
func (a *App) resolveQuery(q string) string {
	if !a.cfg.NormalizeQueries {
		return q
	}
	root, err := index.RootDomain(q)
	if err != nil {
		log.Debug().Err(err).Str("query", q).Msg("query normalization failed; using raw query")
		return q
	}
	if root != q {
		log.Debug().Str("query", q).Str("normalized", root).Msg("query normalized")
	}
	return root
}

// printPlan writes the resolved run plan. Dry runs stop here, before any
// network call.
func (a *App) printPlan() {
	p := a.printer
	p.Line("ccsearch plan (dry run)")
	p.Line("Provider: %s", a.provider.Name())
	if a.cfg.IndexFile != "" {
		p.Line("Index file: %s", a.cfg.IndexFile)
	} else {
		p.Line("Index: %s at %s", a.cfg.IndexName, a.cfg.IndexURL)
	}
	p.Line("Archive: %s", a.cfg.ArchiveURL)
	p.Line("Limits: %d records per query, %d excerpt chars, %s between fetches, %s timeout",
		a.cfg.MaxRecords, a.cfg.ExcerptChars, a.cfg.FetchInterval, a.cfg.Timeout)
	for _, g := range a.cfg.Groups {
		p.Line("Group %s:", g.Name)
		for _, q := range g.Queries {
			p.Line("  %s", a.resolveQuery(q))
		}
	}
}
