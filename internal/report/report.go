// Package report renders search results as console output. The report is
// the program's product and goes to stdout; diagnostics belong to the
// logger on stderr.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Fallback labels for captures that carry no usable metadata.
const (
	NoTitle    = "no title"
	UnknownURL = "unknown"
)

var (
	// Color palette
	pink   = lipgloss.Color("205")
	cyan   = lipgloss.Color("86")
	green  = lipgloss.Color("82")
	yellow = lipgloss.Color("220")
	red    = lipgloss.Color("203")
	purple = lipgloss.Color("99")
	blue   = lipgloss.Color("39")

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(pink)

	queryStyle = lipgloss.NewStyle().
			Foreground(cyan)

	foundStyle = lipgloss.NewStyle().
			Foreground(green)

	warnStyle = lipgloss.NewStyle().
			Foreground(yellow)

	failStyle = lipgloss.NewStyle().
			Foreground(red)

	markerStyle = lipgloss.NewStyle().
			Foreground(purple)

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(blue).
			Underline(true)
)

// Result is one fully processed capture ready for printing.
type Result struct {
	Query   string
	Title   string // empty prints as NoTitle
	URL     string // empty prints as UnknownURL
	Excerpt string
}

// Printer writes the console report. The zero value prints styled output
// to stdout; set Plain to suppress all styling.
type Printer struct {
	Out   io.Writer
	Plain bool
}

// New returns a Printer writing to out. A nil out falls back to stdout.
func New(out io.Writer, plain bool) *Printer {
	return &Printer{Out: out, Plain: plain}
}

func (p *Printer) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

func (p *Printer) render(st lipgloss.Style, s string) string {
	if p.Plain {
		return s
	}
	return st.Render(s)
}

// GroupStart opens a query group section.
func (p *Printer) GroupStart(name string) {
	fmt.Fprintf(p.out(), "\n%s\n\n", p.render(bannerStyle, fmt.Sprintf("=== Searching group: %s ===", name)))
}

// GroupEnd closes a query group section.
func (p *Printer) GroupEnd(name string) {
	fmt.Fprintf(p.out(), "\n%s\n", p.render(bannerStyle, fmt.Sprintf("=== Finished group: %s ===", name)))
}

// QueryStart announces the next query of a group.
func (p *Printer) QueryStart(query string) {
	fmt.Fprintf(p.out(), "\n%s\n", p.render(queryStyle, fmt.Sprintf("Searching for: %s", query)))
}

// Found reports how many index records a query matched.
func (p *Printer) Found(query string, n int) {
	fmt.Fprintf(p.out(), "%s\n", p.render(foundStyle, fmt.Sprintf("Found %d records for %s", n, query)))
}

// NoResults reports a query that matched nothing.
func (p *Printer) NoResults(query string) {
	fmt.Fprintf(p.out(), "%s\n", p.render(warnStyle, fmt.Sprintf("No results found for %s", query)))
}

// LookupFailed reports a query whose index lookup failed outright.
func (p *Printer) LookupFailed(query string, err error) {
	fmt.Fprintf(p.out(), "%s\n", p.render(failStyle, fmt.Sprintf("Search failed for %s: %v", query, err)))
}

// SkippedIncomplete reports an index record that lacked the coordinates
// needed to fetch its capture. The error names the record.
func (p *Printer) SkippedIncomplete(err error) {
	fmt.Fprintf(p.out(), "%s\n", p.render(warnStyle, fmt.Sprintf("Not enough data to fetch record: %v", err)))
}

// FetchFailed reports a capture that could not be retrieved or unwrapped.
func (p *Printer) FetchFailed(url string, err error) {
	if url == "" {
		url = UnknownURL
	}
	fmt.Fprintf(p.out(), "%s\n", p.render(failStyle, fmt.Sprintf("Could not fetch content for %s: %v", url, err)))
}

// Line writes one unstyled line, printf style. Used for plan output and
// other narration that needs no decoration.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out(), format+"\n", args...)
}

// Result prints one processed capture as a block: header, title, URL, and
// the excerpt between begin/end markers.
func (p *Printer) Result(res Result) {
	title := res.Title
	if title == "" {
		title = NoTitle
	}
	url := res.URL
	if url == "" {
		url = UnknownURL
	}
	w := p.out()
	fmt.Fprintf(w, "\n%s\n", p.render(markerStyle, fmt.Sprintf("--- Result for query: %s ---", res.Query)))
	fmt.Fprintf(w, "Page title: %s\n", p.render(titleStyle, title))
	fmt.Fprintf(w, "URL: %s\n", p.render(linkStyle, url))
	fmt.Fprintf(w, "%s\n", p.render(markerStyle, "--- Begin page content ---"))
	fmt.Fprintln(w, res.Excerpt)
	fmt.Fprintf(w, "%s\n\n", p.render(markerStyle, "--- End page content ---"))
}

// Excerpt caps s at max characters, counted in runes so multibyte text is
// never cut mid-character.
func Excerpt(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
