// Package proxy defines the narrow proxy-provider collaborator consumed by
// scrape-style executors, plus the concrete variants named in the design:
// static lists, static country buckets, and API-backed providers.
package proxy

import (
	"context"
	"time"
)

// Provider supplies proxy URLs, optionally partitioned by country, and can
// probe its own pool for liveness. All methods must be safe for concurrent
// use: GetOneProxy is called from every in-flight task's goroutine.
type Provider interface {
	// GetOneProxy returns an arbitrary proxy URL for country, falling back
	// to the wildcard bucket ("" / "*") if country has none, excluding bad
	// proxies. ok is false when no candidate remains.
	GetOneProxy(country string) (proxyURL string, ok bool)

	// CheckProxies probes every proxy once (retried up to retries times)
	// with a benign request, moving failures into the bad-proxy set.
	// Idempotent; safe to call before a run.
	CheckProxies(ctx context.Context, timeout time.Duration, retries int) error
}

// wildcardKeys are the reserved buckets meaning "any country".
var wildcardKeys = [...]string{"", "*"}

func isWildcard(country string) bool {
	for _, k := range wildcardKeys {
		if country == k {
			return true
		}
	}
	return false
}
