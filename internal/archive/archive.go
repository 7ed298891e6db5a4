// Package archive retrieves single captures from a web archive data store
// via ranged HTTP requests and unwraps them down to the archived page body.
package archive

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/hyperifyio/ccsearch/internal/warc"
)

var (
	// ErrUnexpectedStatus reports that the data store answered a ranged
	// request with anything but 206 Partial Content.
	ErrUnexpectedStatus = errors.New("unexpected archive status")
	// ErrNoResponseRecord reports a capture slice that held no WARC
	// response record.
	ErrNoResponseRecord = errors.New("no response record in capture")
)

// Client fetches capture slices from an archive data store. Paths returned
// by the index are resolved relative to BaseURL.
type Client struct {
	BaseURL    string // e.g. https://data.commoncrawl.org/
	HTTPClient *http.Client
	UserAgent  string // optional custom UA
}

// FetchPage retrieves the capture identified by filename, offset, and
// length, scans the slice for its response record, and returns the archived
// page body decoded to UTF-8.
func (c *Client) FetchPage(ctx context.Context, filename string, offset, length int64) (string, error) {
	if c.BaseURL == "" {
		return "", fmt.Errorf("missing archive base url")
	}
	if strings.TrimSpace(filename) == "" {
		return "", fmt.Errorf("missing capture filename")
	}
	target := strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(filename, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	// Range ends are inclusive, so the last byte sits at offset+length-1.
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", offset, offset+length-1))
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusPartialContent {
		return "", fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, target)
	}

	rec, err := firstResponseRecord(resp.Body)
	if err != nil {
		return "", err
	}
	payload, err := rec.HTTPPayload()
	if err != nil {
		return "", fmt.Errorf("parse archived response: %w", err)
	}
	return decodeBody(payload), nil
}

// firstResponseRecord walks the WARC slice and returns its first response
// record. Ranged captures usually hold exactly one, but request and
// metadata records may precede it.
func firstResponseRecord(r io.Reader) (*warc.Record, error) {
	wr, err := warc.NewReader(r)
	if err != nil {
		return nil, err
	}
	for {
		rec, err := wr.Next()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoResponseRecord
		}
		if err != nil {
			return nil, fmt.Errorf("scan capture: %w", err)
		}
		if rec.Type() == warc.TypeResponse {
			return rec, nil
		}
	}
}

// decodeBody converts an archived page body to UTF-8. Bodies are stored as
// they went over the wire, so the HTTP framing comes off first: chunked
// transfer encoding is stripped, then the Content-Encoding is inflated, then
// the bytes are converted using the charset declared in the archived
// Content-Type. Every step is best effort: bytes that fail a step pass
// through unchanged.
func decodeBody(p *warc.Payload) string {
	body := p.Body
	if strings.Contains(strings.ToLower(p.Header.Get("Transfer-Encoding")), "chunked") {
		// Captures stored pre-decoded may still carry the header; framing
		// that does not parse stays raw.
		if dechunked, err := io.ReadAll(httputil.NewChunkedReader(bytes.NewReader(body))); err == nil {
			body = dechunked
		}
	}
	body = inflate(body, strings.ToLower(p.Header.Get("Content-Encoding")))
	cr, err := charset.NewReader(bytes.NewReader(body), p.ContentType())
	if err != nil {
		return string(body)
	}
	decoded, err := io.ReadAll(cr)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}

// inflate undoes the archived Content-Encoding. Servers label both
// zlib-wrapped and raw streams "deflate", so both shapes are tried.
func inflate(body []byte, enc string) []byte {
	switch {
	case strings.Contains(enc, "gzip") || hasGzipMagic(body):
		if gz, err := gzip.NewReader(bytes.NewReader(body)); err == nil {
			if inflated, rerr := io.ReadAll(gz); rerr == nil {
				return inflated
			}
		}
	case strings.Contains(enc, "deflate"):
		if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			inflated, rerr := io.ReadAll(zr)
			zr.Close()
			if rerr == nil {
				return inflated
			}
		}
		fr := flate.NewReader(bytes.NewReader(body))
		inflated, err := io.ReadAll(fr)
		fr.Close()
		if err == nil {
			return inflated
		}
	}
	return body
}

func hasGzipMagic(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b
}
