package engine

import (
	"time"

	"resty.dev/v3"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thanhauco/scrapeflow/internal/proxy"
)

const (
	minParallelism = 1
	maxParallelism = 100

	defaultTimeout     = 30 * time.Second
	defaultParallelism = 10
)

// options collects the functional options below, following the same
// functional-option shape the teacher uses for EnqueueOption.
type options struct {
	timeout         time.Duration
	forceExecutors  []string
	maxParallelism  int
	proxyProvider   proxy.Provider
	httpClient      *resty.Client
	metricsRegistry prometheus.Registerer
}

func defaultOptions() *options {
	return &options{
		timeout:        defaultTimeout,
		maxParallelism: defaultParallelism,
	}
}

// Option configures a call to Execute.
type Option func(*options)

// WithTimeout sets the per-task wall-clock timeout applied to the entire
// pipeline invocation for that task (design §4.4, §9 design note).
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithForceExecutors sets the executors to rerun even if previously
// successful. Pass "all" to force every executor on every task.
func WithForceExecutors(names ...string) Option {
	return func(o *options) { o.forceExecutors = names }
}

// WithMaxParallelism sets the global concurrency gate capacity. Values
// outside [1, 100] are clamped (design §4.4 "Boundary behaviors").
func WithMaxParallelism(n int) Option {
	return func(o *options) { o.maxParallelism = n }
}

// WithProxyProvider wires a shared proxy provider into the RunContext.
func WithProxyProvider(p proxy.Provider) Option {
	return func(o *options) { o.proxyProvider = p }
}

// WithHTTPClient overrides the shared HTTP session used by scrape-style
// executors. If unset, Execute builds a default *resty.Client.
func WithHTTPClient(c *resty.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithMetricsRegistry registers the run's Prometheus metrics against reg.
// If unset, Execute registers them against a fresh private registry.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(o *options) { o.metricsRegistry = reg }
}

func clampParallelism(n int) int {
	if n < minParallelism {
		return minParallelism
	}
	if n > maxParallelism {
		return maxParallelism
	}
	return n
}
