package index

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Record is one capture returned by the index service per search hit. The
// index serves offset and length as decimal strings; Location parses and
// validates them before any archive fetch.
type Record struct {
	URLKey    string `json:"urlkey"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Mime      string `json:"mime"`
	Status    string `json:"status"`
	Digest    string `json:"digest"`
	Length    string `json:"length"`
	Offset    string `json:"offset"`
	Filename  string `json:"filename"`
}

// Location returns the archive coordinates of the record. A zero offset is
// a legal position in the archive file; length must be positive.
func (r Record) Location() (string, int64, int64, error) {
	if strings.TrimSpace(r.Filename) == "" {
		return "", 0, 0, fmt.Errorf("record for %q has no filename", r.URL)
	}
	offset, err := strconv.ParseInt(strings.TrimSpace(r.Offset), 10, 64)
	if err != nil || offset < 0 {
		return "", 0, 0, fmt.Errorf("record for %q has bad offset %q", r.URL, r.Offset)
	}
	length, err := strconv.ParseInt(strings.TrimSpace(r.Length), 10, 64)
	if err != nil || length <= 0 {
		return "", 0, 0, fmt.Errorf("record for %q has bad length %q", r.URL, r.Length)
	}
	return r.Filename, offset, length, nil
}

// Provider is a minimal interface for capture index lookups.
type Provider interface {
	Lookup(ctx context.Context, query string) ([]Record, error)
	Name() string
}

// RootDomain reduces a query that looks like a URL or hostname to its
// registrable domain ("https://a.b.example.co.uk/x" -> "example.co.uk").
// Queries without a dot are returned unchanged so free-text terms survive
// normalization.
func RootDomain(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", fmt.Errorf("empty query")
	}
	if strings.Contains(q, "://") {
		u, err := url.Parse(q)
		if err != nil {
			return "", fmt.Errorf("parse query url: %w", err)
		}
		q = u.Hostname()
	}
	q = strings.TrimSuffix(q, ".")
	if !strings.Contains(q, ".") {
		return q, nil
	}
	root, err := publicsuffix.EffectiveTLDPlusOne(q)
	if err != nil {
		return "", fmt.Errorf("derive root domain: %w", err)
	}
	return root, nil
}
