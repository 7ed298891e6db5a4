package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hyperifyio/ccsearch/internal/app"
	"github.com/hyperifyio/ccsearch/internal/index"
)

// debugindex runs one raw index lookup and dumps the records, development
// aid for poking at collections and query syntax.
func main() {
	var cfg app.Config
	app.ApplyEnvToConfig(&cfg)
	if cfg.IndexURL == "" {
		cfg.IndexURL = app.DefaultIndexURL
	}
	if cfg.IndexName == "" {
		cfg.IndexName = app.DefaultIndexName
	}

	q := "pstu.ru"
	if len(os.Args) > 1 {
		q = os.Args[1]
	}

	prov := &index.CommonCrawl{
		ServerURL:  cfg.IndexURL,
		IndexName:  cfg.IndexName,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		UserAgent:  "debugindex/1.0",
	}
	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
	defer cancel()
	records, err := prov.Lookup(ctx, q)
	fmt.Println("err:", err)
	for i, r := range records {
		fmt.Printf("%d. %s %s status=%s mime=%s\n", i+1, r.Timestamp, r.URL, r.Status, r.Mime)
		fmt.Printf("   %s @ %s+%s\n", r.Filename, r.Offset, r.Length)
	}
}
