package extract

import (
	"strings"
	"testing"
)

func TestFromHTML_PrefersMainOverBody(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <head><title>Test Page</title></head>
	  <body>
	    <nav>Nav should be ignored</nav>
	    <main>
	      <h1>Main Heading</h1>
	      <p>This is the main content paragraph.</p>
	    </main>
	    <footer>Footer text</footer>
	  </body>
	</html>`

	page := FromHTML([]byte(html))
	if page.Title != "Test Page" {
		t.Fatalf("expected title 'Test Page', got %q", page.Title)
	}
	if !strings.Contains(page.Text, "Main Heading") {
		t.Fatalf("expected to contain main heading")
	}
	if !strings.Contains(page.Text, "This is the main content paragraph.") {
		t.Fatalf("expected to contain main paragraph")
	}
	if strings.Contains(page.Text, "Nav should be ignored") {
		t.Fatalf("did not expect nav text in extracted content")
	}
	if strings.Contains(page.Text, "Footer text") {
		t.Fatalf("did not expect footer text in extracted content")
	}
}

func TestFromHTML_FallbackToBody(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <head><title>No Main</title></head>
	  <body>
	    <h2>Body Heading</h2>
	    <p>Body paragraph</p>
	  </body>
	</html>`

	page := FromHTML([]byte(html))
	if page.Title != "No Main" {
		t.Fatalf("expected title 'No Main', got %q", page.Title)
	}
	if !strings.Contains(page.Text, "Body Heading") {
		t.Fatalf("expected to contain body heading")
	}
	if !strings.Contains(page.Text, "Body paragraph") {
		t.Fatalf("expected to contain body paragraph")
	}
}

func TestFromHTML_CanonicalURL(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <head>
	    <title>Test</title>
	    <meta property="og:url" content="http://x" />
	  </head>
	  <body><p>Hello world</p></body>
	</html>`

	page := FromHTML([]byte(html))
	if page.CanonicalURL != "http://x" {
		t.Fatalf("expected canonical url 'http://x', got %q", page.CanonicalURL)
	}
}

func TestFromHTML_MissingPieces(t *testing.T) {
	page := FromHTML([]byte(`<html><body><p>only body text</p></body></html>`))
	if page.Title != "" {
		t.Fatalf("expected empty title, got %q", page.Title)
	}
	if page.CanonicalURL != "" {
		t.Fatalf("expected empty canonical url, got %q", page.CanonicalURL)
	}
	if !strings.Contains(page.Text, "only body text") {
		t.Fatalf("expected body text, got %q", page.Text)
	}
}

func TestFromHTML_MultilineTitleCollapsed(t *testing.T) {
	page := FromHTML([]byte("<html><head><title>A\n\t  Long   Title</title></head><body></body></html>"))
	if page.Title != "A Long Title" {
		t.Fatalf("expected collapsed title, got %q", page.Title)
	}
}

func TestFromHTML_MalformedMarkupDegrades(t *testing.T) {
	page := FromHTML([]byte(`<html><body><div><p>still here<p>and here`))
	if !strings.Contains(page.Text, "still here") || !strings.Contains(page.Text, "and here") {
		t.Fatalf("expected recoverable text from malformed markup, got %q", page.Text)
	}
}

func TestFromHTML_TableCellsStaySeparated(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <head><title>Contacts</title></head>
	  <body>
	    <table>
	      <tr><td>Room</td><td>214</td></tr>
	      <tr><th>Dean</th><td>Ivanov</td></tr>
	    </table>
	  </body>
	</html>`

	page := FromHTML([]byte(html))
	if strings.Contains(page.Text, "Room214") {
		t.Fatalf("adjacent cells fused: %q", page.Text)
	}
	if !strings.Contains(page.Text, "Room 214") {
		t.Fatalf("expected separated cells, got %q", page.Text)
	}
	if !strings.Contains(page.Text, "Dean Ivanov") {
		t.Fatalf("expected separated header cell, got %q", page.Text)
	}
}

func TestFromHTML_SkipsScriptsAndConsentBanners(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <head><title>Scripted</title></head>
	  <body>
	    <script>var hidden = "script payload";</script>
	    <style>.x { color: red }</style>
	    <div class="cookie-consent">We use cookies</div>
	    <p>visible text</p>
	  </body>
	</html>`

	page := FromHTML([]byte(html))
	if strings.Contains(page.Text, "script payload") || strings.Contains(page.Text, "color: red") {
		t.Fatalf("expected script/style content skipped, got %q", page.Text)
	}
	if strings.Contains(page.Text, "We use cookies") {
		t.Fatalf("expected consent banner skipped, got %q", page.Text)
	}
	if !strings.Contains(page.Text, "visible text") {
		t.Fatalf("expected visible text kept, got %q", page.Text)
	}
}
