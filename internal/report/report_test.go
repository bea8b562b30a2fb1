package report

import (
	"strings"
	"testing"

	"github.com/thanhauco/scrapeflow/internal/journal"
)

func entry(key, scraperStatus string) journal.StatusData {
	s := journal.New(key, map[string]any{"url": "http://x/"})
	if scraperStatus != "" {
		s.SetExecutorStatus("scraper", scraperStatus)
	}
	return s
}

func TestHistogramCountsByStatus(t *testing.T) {
	entries := []journal.StatusData{
		entry("a", "SUCCESS"),
		entry("b", "SUCCESS"),
		entry("c", "ERROR RuntimeError::HTTP response 500"),
		entry("d", ""),
	}

	got := Histogram(entries, "scraper")
	if got["SUCCESS"] != 2 {
		t.Errorf("SUCCESS = %d, want 2", got["SUCCESS"])
	}
	if got["ERROR RuntimeError::HTTP response 500"] != 1 {
		t.Errorf("error count = %d, want 1", got["ERROR RuntimeError::HTTP response 500"])
	}
	if _, ok := got[""]; ok {
		t.Errorf("never-run executor should not contribute an empty-string bucket")
	}
}

func TestTableIncludesEveryKeyAndColumn(t *testing.T) {
	entries := []journal.StatusData{
		entry("b", "SUCCESS"),
		entry("a", "SKIPPED"),
	}

	out := Table(entries)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), out)
	}
	if lines[0] != "key\tscraper_status" {
		t.Errorf("header = %q", lines[0])
	}
	// Rows sorted by key: "a" before "b".
	if !strings.HasPrefix(lines[1], "a\t") || !strings.HasPrefix(lines[2], "b\t") {
		t.Errorf("rows not sorted by key: %v", lines[1:])
	}
}
