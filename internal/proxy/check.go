package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"resty.dev/v3"
)

// benignCheckURL is the request every proxy is probed against. A real
// deployment would point this at an operator-chosen endpoint; it is a
// package-level variable so code in this package can override it.
var benignCheckURL = "https://httpbin.org/ip"

// checkAll probes every proxy in urls concurrently, retrying each up to
// retries times with exponential backoff (grounded on the retry shape in
// humblenginr-yt_scraper/dag/dag.go, which wraps the same
// cenkalti/backoff/v4 helpers around a per-task operation). Proxies that
// never succeed are reported to markBad.
func checkAll(ctx context.Context, urls []string, timeout time.Duration, retries int, markBad func(string)) error {
	done := make(chan struct{}, len(urls))
	for _, proxyURL := range urls {
		go func(proxyURL string) {
			defer func() { done <- struct{}{} }()
			if err := probeWithRetry(ctx, proxyURL, timeout, retries); err != nil {
				slog.Warn("proxy failed liveness check", "proxy", proxyURL, "error", err)
				markBad(proxyURL)
			}
		}(proxyURL)
	}

	for range urls {
		<-done
	}
	return nil
}

func probeWithRetry(ctx context.Context, proxyURL string, timeout time.Duration, retries int) error {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}

	client := resty.New().SetTimeout(timeout).SetProxy(parsed.String())
	defer client.Close()

	operation := func() error {
		resp, err := client.R().SetContext(ctx).Get(benignCheckURL)
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("benign check returned status %d", resp.StatusCode())
		}
		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(retries))
	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}
