package executors

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/thanhauco/scrapeflow/internal/journal"
)

func TestExtractLinksResolvesRelativeHrefs(t *testing.T) {
	rc, dir := newRunContext(t)
	status := journal.New("g", map[string]any{"url": "http://example.com/page"})
	status.SetExecutorOutput(scraperName, map[string]any{
		"response_headers": map[string]any{"Content-Type": "text/html; charset=utf-8"},
	})

	html := `<html><body><a href="/a">a</a><a href="http://other.com/b">b</a></body></html>`
	if err := os.WriteFile(filepath.Join(dir, "g.scrape"), []byte(html), 0644); err != nil {
		t.Fatal(err)
	}

	patch, _, err := ExtractLinks().Run(context.Background(), rc, "g", status)
	if err != nil {
		t.Fatal(err)
	}
	p := patch.(map[string]any)
	links := p["links"].([]string)
	if len(links) != 2 {
		t.Fatalf("links = %v, want 2 entries", links)
	}
	if links[0] != "http://example.com/a" {
		t.Errorf("links[0] = %q, want resolved absolute URL", links[0])
	}
	if links[1] != "http://other.com/b" {
		t.Errorf("links[1] = %q", links[1])
	}
}

func TestExtractLinksSkipsNonHTMLContentType(t *testing.T) {
	rc, dir := newRunContext(t)
	status := journal.New("g", map[string]any{"url": "http://example.com/data.json"})
	status.SetExecutorOutput(scraperName, map[string]any{
		"response_headers": map[string]any{"Content-Type": "application/json"},
	})

	if err := os.WriteFile(filepath.Join(dir, "g.scrape"), []byte(`{"a":1}`), 0644); err != nil {
		t.Fatal(err)
	}

	patch, _, err := ExtractLinks().Run(context.Background(), rc, "g", status)
	if err != nil {
		t.Fatal(err)
	}
	p := patch.(map[string]any)
	if p["count"] != 0 {
		t.Errorf("count = %v, want 0 for a non-HTML body", p["count"])
	}
}
