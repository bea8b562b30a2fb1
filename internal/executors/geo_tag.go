package executors

import (
	"context"

	"github.com/thanhauco/scrapeflow/internal/engine"
	"github.com/thanhauco/scrapeflow/internal/journal"
)

// GeoTag records which country bucket the proxy provider attached to rc
// was asked for on this task, and whether a proxy was actually available
// for it. It is a demonstration of the proxy provider collaborator: it
// never marks a proxy bad. With an API-backed provider, the GetOneProxy
// call may refresh the provider's listing over the network.
func GeoTag() engine.Executor {
	return engine.Taskify("geo_tag", func(ctx context.Context, rc *engine.RunContext, key string, status journal.StatusData) (any, error) {
		country, _ := status.Params()["country"].(string)
		if rc.ProxyProvider == nil {
			return map[string]any{"country": country, "proxy_available": false}, nil
		}

		_, ok := rc.ProxyProvider.GetOneProxy(country)
		return map[string]any{"country": country, "proxy_available": ok}, nil
	})
}
