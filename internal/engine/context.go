package engine

import (
	"time"

	"golang.org/x/sync/semaphore"
	"resty.dev/v3"

	"github.com/thanhauco/scrapeflow/internal/proxy"
)

// allExecutorsSentinel is the force_executors value meaning "rerun every
// executor on every task regardless of prior SUCCESS".
const allExecutorsSentinel = "all"

// RunContext is the immutable bundle of shared resources handed to every
// executor invocation for the lifetime of one Execute call (design §4.5).
type RunContext struct {
	Dir             string
	HTTPClient      *resty.Client
	ForcedExecutors map[string]struct{}
	Gate            *semaphore.Weighted
	Timeout         time.Duration
	ProxyProvider   proxy.Provider
	RunID           string
	Metrics         *Metrics
}

// forces reports whether executor name should rerun even if previously
// successful, per the force_executors semantics in design §4.4.
func (rc *RunContext) forces(name string) bool {
	if _, ok := rc.ForcedExecutors[allExecutorsSentinel]; ok {
		return true
	}
	_, ok := rc.ForcedExecutors[name]
	return ok
}

func forcedSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
