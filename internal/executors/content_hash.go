package executors

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"os"

	"github.com/thanhauco/scrapeflow/internal/engine"
	"github.com/thanhauco/scrapeflow/internal/journal"
)

// ContentHash re-reads "<key>.scrape" and verifies its MD5 against the
// content the scraper executor recorded, catching silent scratch-file
// corruption between runs. Missing-scratch-file is a recoverable error
// rather than fatal, since it can legitimately happen if scraper never ran.
func ContentHash() engine.Executor {
	return engine.Taskify("content_hash", func(ctx context.Context, rc *engine.RunContext, key string, status journal.StatusData) (any, error) {
		scraped, _ := status.ExecutorOutput(scraperName).(map[string]any)
		expected, _ := scraped["content"].(string)
		if expected == "" {
			return nil, engine.Recoverable("no scraper output recorded for %s", key)
		}

		body, err := os.ReadFile(scrapePath(rc.Dir, key))
		if err != nil {
			return nil, engine.Recoverable("read scrape file for %s: %v", key, err)
		}

		sum := md5.Sum(body)
		actual := hex.EncodeToString(sum[:])
		return map[string]any{
			"verified": actual == expected,
			"content":  actual,
		}, nil
	})
}
