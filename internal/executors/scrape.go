// Package executors provides the domain-stack Executor implementations:
// Scrape and ScrapeWithValidation (both recorded under the "scraper" name)
// as the external-interface baseline,
// plus content_hash, extract_links, and geo_tag rounding out a complete
// scrape pipeline.
package executors

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"resty.dev/v3"

	"github.com/thanhauco/scrapeflow/internal/engine"
	"github.com/thanhauco/scrapeflow/internal/journal"
)

// scraperName is the executor name recorded in the journal under
// "scraper"/"scraper_status"/"scraper_last_run".
const scraperName = "scraper"

// Scrape issues GET against params.url by default, or POST with
// params.post_payload as the JSON body when present. Non-2xx is a
// recoverable RuntimeError. On success it writes the raw body to
// "<key>.scrape" in rc.Dir and records size, content (MD5 hex), and
// response_headers in the journal patch.
func Scrape() engine.Executor {
	return engine.NewExecutor(scraperName, func(ctx context.Context, rc *engine.RunContext, key string, status journal.StatusData) (any, bool, error) {
		body, headers, err := fetch(ctx, rc, key, status)
		if err != nil {
			return nil, false, err
		}
		if err := writeScrapeFile(rc.Dir, key, body); err != nil {
			return nil, false, err
		}
		return scrapePatch(body, headers), true, nil
	})
}

// ScrapeWithValidation behaves like Scrape but additionally invokes validate
// against the raw body before accepting it. A rejecting validate (any
// non-nil error) removes the scratch file and fails the executor
// recoverably, exactly the "validation rejects body" scenario.
func ScrapeWithValidation(validate func(body []byte) error) engine.Executor {
	return engine.NewExecutor(scraperName, func(ctx context.Context, rc *engine.RunContext, key string, status journal.StatusData) (any, bool, error) {
		body, headers, err := fetch(ctx, rc, key, status)
		if err != nil {
			return nil, false, err
		}

		if err := validate(body); err != nil {
			removeScrapeFile(rc.Dir, key)
			return nil, false, engine.Recoverable("validation rejected body for %s: %v", key, err)
		}

		if err := writeScrapeFile(rc.Dir, key, body); err != nil {
			return nil, false, err
		}
		return scrapePatch(body, headers), true, nil
	})
}

func fetch(ctx context.Context, rc *engine.RunContext, key string, status journal.StatusData) ([]byte, map[string]any, error) {
	params := status.Params()
	rawURL, _ := params["url"].(string)
	if rawURL == "" {
		return nil, nil, fmt.Errorf("task %s: params.url is required", key)
	}

	client := rc.HTTPClient
	if client == nil {
		client = resty.New()
	}

	req := client.R().SetContext(ctx)
	if payload, ok := params["post_payload"]; ok {
		req = req.SetBody(payload)
	}
	if rc.ProxyProvider != nil {
		country, _ := params["country"].(string)
		if proxyURL, ok := rc.ProxyProvider.GetOneProxy(country); ok {
			req = req.SetProxy(proxyURL)
		}
	}

	var (
		resp *resty.Response
		err  error
	)
	if _, ok := params["post_payload"]; ok {
		resp, err = req.Post(rawURL)
	} else {
		resp, err = req.Get(rawURL)
	}
	if err != nil {
		// Preserve the underlying error (context.DeadlineExceeded,
		// context.Canceled, net.Error) so classify can tell a timeout or
		// cancellation apart from an ordinary RuntimeError.
		return nil, nil, fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	if resp.IsError() {
		return nil, nil, engine.Recoverable("HTTP response %d", resp.StatusCode())
	}

	body := resp.Bytes()
	return body, singleValuedHeaders(resp.Header()), nil
}

func singleValuedHeaders(h map[string][]string) map[string]any {
	out := make(map[string]any, len(h))
	for k, values := range h {
		if len(values) > 0 {
			out[k] = values[0]
		}
	}
	return out
}

func scrapePatch(body []byte, headers map[string]any) map[string]any {
	sum := md5.Sum(body)
	return map[string]any{
		"size":             len(body),
		"content":          hex.EncodeToString(sum[:]),
		"response_headers": headers,
	}
}
