package executors

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/thanhauco/scrapeflow/internal/journal"
)

func TestContentHashDetectsCorruption(t *testing.T) {
	rc, dir := newRunContext(t)
	status := journal.New("g", map[string]any{"url": "http://x/"})
	status.SetExecutorOutput(scraperName, map[string]any{
		"size":    1,
		"content": "b2f5ff47436671b6e533d8dc3614845d", // md5("X") spelled wrong on purpose
	})

	if err := os.WriteFile(filepath.Join(dir, "g.scrape"), []byte("X"), 0644); err != nil {
		t.Fatal(err)
	}

	patch, _, err := ContentHash().Run(context.Background(), rc, "g", status)
	if err != nil {
		t.Fatal(err)
	}
	p := patch.(map[string]any)
	if p["verified"] != false {
		t.Errorf("verified = %v, want false for a mismatched digest", p["verified"])
	}
}

func TestContentHashVerifiesMatchingDigest(t *testing.T) {
	rc, dir := newRunContext(t)
	status := journal.New("g", map[string]any{"url": "http://x/"})
	status.SetExecutorOutput(scraperName, map[string]any{
		"size":    1,
		"content": "02129bb861061d1a052c592e2dc6b383", // md5("X")
	})

	if err := os.WriteFile(filepath.Join(dir, "g.scrape"), []byte("X"), 0644); err != nil {
		t.Fatal(err)
	}

	patch, _, err := ContentHash().Run(context.Background(), rc, "g", status)
	if err != nil {
		t.Fatal(err)
	}
	p := patch.(map[string]any)
	if p["verified"] != true {
		t.Errorf("verified = %v, want true for a matching digest", p["verified"])
	}
}

func TestContentHashMissingScraperOutputIsRecoverable(t *testing.T) {
	rc, _ := newRunContext(t)
	status := journal.New("g", map[string]any{"url": "http://x/"})

	_, _, err := ContentHash().Run(context.Background(), rc, "g", status)
	if err == nil {
		t.Fatal("expected a recoverable error when scraper never ran")
	}
}
