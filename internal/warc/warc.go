package warc

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"
)

// TypeResponse marks records that carry an archived HTTP response. Other
// common types ("request", "metadata", "warcinfo") are skipped by callers
// interested in page content.
const TypeResponse = "response"

// maxRecordContent bounds a record's declared content block. Ranged capture
// slices run a few MiB at most, so a length beyond this is corrupt input,
// not data to allocate for.
const maxRecordContent = 64 << 20

// Record is a single WARC record: the named header fields and the raw
// content block that follows them.
type Record struct {
	Header  textproto.MIMEHeader
	Content []byte
}

// Type returns the WARC-Type header value.
func (r *Record) Type() string { return r.Header.Get("WARC-Type") }

// TargetURI returns the WARC-Target-URI header value.
func (r *Record) TargetURI() string { return r.Header.Get("WARC-Target-URI") }

// Payload is the archived HTTP message carried by a response record, split
// into its status line, header section, and body.
type Payload struct {
	StatusLine string
	Header     textproto.MIMEHeader
	Body       []byte
}

// ContentType returns the archived Content-Type header, if any.
func (p *Payload) ContentType() string { return p.Header.Get("Content-Type") }

// HTTPPayload splits the record's content block into the archived HTTP
// status line, headers, and body. Header parsing is lenient: captures with
// unparseable header sections fall back to a bare split on the first blank
// line so the body is still recovered.
func (r *Record) HTTPPayload() (*Payload, error) {
	br := bufio.NewReader(bytes.NewReader(r.Content))
	statusLine, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("warc: read status line: %w", err)
	}
	statusLine = strings.TrimRight(statusLine, "\r\n")

	hdr, err := textproto.NewReader(br).ReadMIMEHeader()
	if err == nil {
		body, rerr := io.ReadAll(br)
		if rerr != nil {
			return nil, fmt.Errorf("warc: read payload body: %w", rerr)
		}
		return &Payload{StatusLine: statusLine, Header: hdr, Body: body}, nil
	}

	// Fall back to locating the header/body separator directly.
	sep := []byte("\r\n\r\n")
	idx := bytes.Index(r.Content, sep)
	if idx < 0 {
		sep = []byte("\n\n")
		idx = bytes.Index(r.Content, sep)
	}
	if idx < 0 {
		return nil, fmt.Errorf("warc: payload has no header/body separator")
	}
	return &Payload{
		StatusLine: statusLine,
		Header:     textproto.MIMEHeader{},
		Body:       r.Content[idx+len(sep):],
	}, nil
}

// Reader iterates the records of a WARC container stream.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r, transparently decompressing gzip containers. Archive
// stores serve ranged WARC slices as concatenated gzip members, one per
// record; plain WARC bytes are accepted unchanged.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("warc: open gzip container: %w", err)
		}
		return &Reader{br: bufio.NewReader(gz)}, nil
	}
	return &Reader{br: br}, nil
}

// Next returns the next record in the container, or io.EOF after the last
// one. Record separators and padding between records are tolerated.
func (r *Reader) Next() (*Record, error) {
	version, err := r.readVersionLine()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(version, "WARC/") {
		return nil, fmt.Errorf("warc: malformed version line %q", version)
	}

	hdr, err := textproto.NewReader(r.br).ReadMIMEHeader()
	if err != nil {
		return nil, fmt.Errorf("warc: read record header: %w", err)
	}
	n, err := strconv.ParseInt(hdr.Get("Content-Length"), 10, 64)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("warc: bad record Content-Length %q", hdr.Get("Content-Length"))
	}
	if n > maxRecordContent {
		return nil, fmt.Errorf("warc: record Content-Length %d exceeds %d byte cap", n, maxRecordContent)
	}

	content := make([]byte, n)
	if _, err := io.ReadFull(r.br, content); err != nil {
		return nil, fmt.Errorf("warc: read record content: %w", err)
	}
	return &Record{Header: hdr, Content: content}, nil
}

// readVersionLine skips blank separator lines and returns the first
// non-empty line. io.EOF is returned verbatim when the stream ends cleanly.
func (r *Reader) readVersionLine() (string, error) {
	for {
		line, err := r.br.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if err == io.EOF {
			if trimmed == "" {
				return "", io.EOF
			}
			return trimmed, nil
		}
		if err != nil {
			return "", fmt.Errorf("warc: read version line: %w", err)
		}
		if trimmed == "" {
			continue
		}
		return trimmed, nil
	}
}
