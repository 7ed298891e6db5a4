package report

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPrinter_Result_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	p.Result(Result{
		Query:   "pstu.ru",
		Title:   "Test",
		URL:     "http://x",
		Excerpt: "Hello world",
	})

	out := buf.String()
	for _, want := range []string{
		"--- Result for query: pstu.ru ---",
		"Page title: Test",
		"URL: http://x",
		"--- Begin page content ---",
		"Hello world",
		"--- End page content ---",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_Result_Fallbacks(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	p.Result(Result{Query: "pstu.ru"})

	out := buf.String()
	if !strings.Contains(out, "Page title: no title") {
		t.Fatalf("expected title fallback, got:\n%s", out)
	}
	if !strings.Contains(out, "URL: unknown") {
		t.Fatalf("expected url fallback, got:\n%s", out)
	}
}

func TestPrinter_GroupAndQueryLines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	p.GroupStart("Universities")
	p.QueryStart("msu.ru")
	p.Found("msu.ru", 7)
	p.QueryStart("mipt.ru")
	p.NoResults("mipt.ru")
	p.GroupEnd("Universities")

	out := buf.String()
	for _, want := range []string{
		"=== Searching group: Universities ===",
		"Searching for: msu.ru",
		"Found 7 records for msu.ru",
		"Searching for: mipt.ru",
		"No results found for mipt.ru",
		"=== Finished group: Universities ===",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_StyledOutputKeepsContent(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)
	p.Found("pstu.ru", 3)
	if !strings.Contains(buf.String(), "Found 3 records for pstu.ru") {
		t.Fatalf("styled output lost line content: %q", buf.String())
	}
}

func TestExcerpt_CapsRunes(t *testing.T) {
	long := strings.Repeat("д", 1500)
	got := Excerpt(long, 1000)
	if utf8.RuneCountInString(got) != 1000 {
		t.Fatalf("expected 1000 runes, got %d", utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt is not valid UTF-8")
	}
}

func TestExcerpt_ShortTextUnchanged(t *testing.T) {
	if got := Excerpt("short", 1000); got != "short" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestExcerpt_NonPositiveMax(t *testing.T) {
	if got := Excerpt("anything", 0); got != "" {
		t.Fatalf("expected empty excerpt, got %q", got)
	}
}
