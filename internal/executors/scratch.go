package executors

import (
	"fmt"
	"os"
	"path/filepath"
)

// scrapeSuffix names the raw-body scratch file scrape-style executors write
// alongside the journal, per the external-interface scratch-output
// convention ("<key>.scrape").
const scrapeSuffix = ".scrape"

func scrapePath(dir, key string) string {
	return filepath.Join(dir, key+scrapeSuffix)
}

func writeScrapeFile(dir, key string, body []byte) error {
	if err := os.WriteFile(scrapePath(dir, key), body, 0644); err != nil {
		return fmt.Errorf("write scrape file for %s: %w", key, err)
	}
	return nil
}

func removeScrapeFile(dir, key string) {
	os.Remove(scrapePath(dir, key))
}
