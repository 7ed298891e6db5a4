package index

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxIndexLine bounds a single newline-delimited index record; lines for
// long URLs run well past bufio's default token size.
const maxIndexLine = 1 << 20

// CommonCrawl implements Provider against a Common Crawl style index
// endpoint: {server}{index}-index?url=<query>&output=json, answering with
// one JSON record per line.
type CommonCrawl struct {
	ServerURL  string // e.g. http://index.commoncrawl.org/
	IndexName  string // e.g. CC-MAIN-2024-33
	HTTPClient *http.Client
	UserAgent  string // optional custom UA
}

func (c *CommonCrawl) Name() string { return "commoncrawl" }

// Lookup runs one index query and returns the matching capture records in
// server order. Any transport failure, non-2xx status, or malformed record
// line fails the whole lookup; callers decide how to degrade.
func (c *CommonCrawl) Lookup(ctx context.Context, query string) ([]Record, error) {
	if c.ServerURL == "" {
		return nil, fmt.Errorf("missing index server url")
	}
	if c.IndexName == "" {
		return nil, fmt.Errorf("missing index name")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return nil, err
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + c.IndexName + "-index"
	q := u.Query()
	q.Set("url", query)
	q.Set("output", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("index status: %d", resp.StatusCode)
	}

	var out []Record
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 64*1024), maxIndexLine)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parse index record: %w", err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read index response: %w", err)
	}
	return out, nil
}
