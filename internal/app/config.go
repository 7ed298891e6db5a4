package app

import (
	"fmt"
	"strings"
	"time"
)

// Defaults reproduce the behavior of a bare `ccsearch` invocation with no
// flags, environment, or config file: the public Common Crawl endpoints and
// the limits the tool was originally written around.
const (
	DefaultIndexURL      = "http://index.commoncrawl.org/"
	DefaultIndexName     = "CC-MAIN-2024-33"
	DefaultArchiveURL    = "https://data.commoncrawl.org/"
	DefaultUserAgent     = "ccsearch/1.0 (+https://github.com/hyperifyio/ccsearch)"
	DefaultMaxRecords    = 5
	DefaultExcerptChars  = 1000
	DefaultFetchInterval = time.Second
	DefaultTimeout       = 30 * time.Second
)

// QueryGroup is a named batch of search terms, processed in order.
type QueryGroup struct {
	Name    string   `yaml:"name" json:"name"`
	Queries []string `yaml:"queries" json:"queries"`
}

// Config holds runtime configuration for the application.
type Config struct {
	// Index service
	IndexURL  string // index server base URL
	IndexName string // crawl collection, e.g. CC-MAIN-2024-33
	IndexFile string // optional offline records file; replaces the HTTP provider

	// Archive store
	ArchiveURL string

	// Queries
	Groups           []QueryGroup // empty means DefaultGroups()
	NormalizeQueries bool         // reduce URL-shaped queries to their registrable domain

	// Limits
	MaxRecords    int           // records fetched per query
	ExcerptChars  int           // rune cap on the printed excerpt
	FetchInterval time.Duration // minimum interval between record fetches
	Timeout       time.Duration // per-request timeout

	UserAgent string

	// Behavior
	DryRun  bool // print the resolved plan without any network call
	Plain   bool // suppress console styling
	Verbose bool
}

// DefaultGroups returns the embedded query groups used when neither flags,
// environment, nor config file supply any.
func DefaultGroups() []QueryGroup {
	return []QueryGroup{
		{Name: "Perm Polytechnic", Queries: []string{"pstu.ru", "perm.ru"}},
		{Name: "Moscow universities", Queries: []string{"msu.ru", "mipt.ru"}},
		{Name: "Pasternak museum", Queries: []string{"pasternakmuseum.ru"}},
	}
}

// withDefaults fills every unset field so the rest of the app never has to
// re-check. Zero limits mean "use the default", not "disable".
func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.IndexURL) == "" {
		c.IndexURL = DefaultIndexURL
	}
	if strings.TrimSpace(c.IndexName) == "" {
		c.IndexName = DefaultIndexName
	}
	if strings.TrimSpace(c.ArchiveURL) == "" {
		c.ArchiveURL = DefaultArchiveURL
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.MaxRecords == 0 {
		c.MaxRecords = DefaultMaxRecords
	}
	if c.ExcerptChars == 0 {
		c.ExcerptChars = DefaultExcerptChars
	}
	if c.FetchInterval == 0 {
		c.FetchInterval = DefaultFetchInterval
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if len(c.Groups) == 0 {
		c.Groups = DefaultGroups()
	}
	return c
}

// ParseGroupSpec parses an inline query-group list of the form
// "Universities: msu.ru, mipt.ru; Perm: pstu.ru". Groups are separated by
// ';', queries within a group by ','. The "name:" prefix is optional;
// unnamed groups get a positional label. A colon that starts a URL scheme
// ("http://...") is not treated as a name separator.
func ParseGroupSpec(spec string) []QueryGroup {
	var groups []QueryGroup
	for _, seg := range strings.Split(spec, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		name := ""
		rest := seg
		if i := strings.Index(seg, ":"); i >= 0 && !strings.HasPrefix(seg[i:], "://") {
			name = strings.TrimSpace(seg[:i])
			rest = seg[i+1:]
		}
		var queries []string
		for _, q := range strings.Split(rest, ",") {
			if q = strings.TrimSpace(q); q != "" {
				queries = append(queries, q)
			}
		}
		if len(queries) == 0 {
			continue
		}
		if name == "" {
			name = fmt.Sprintf("group %d", len(groups)+1)
		}
		groups = append(groups, QueryGroup{Name: name, Queries: queries})
	}
	return groups
}
