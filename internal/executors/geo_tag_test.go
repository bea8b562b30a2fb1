package executors

import (
	"context"
	"testing"

	"github.com/thanhauco/scrapeflow/internal/engine"
	"github.com/thanhauco/scrapeflow/internal/journal"
	"github.com/thanhauco/scrapeflow/internal/proxy"
)

func TestGeoTagReportsProxyAvailability(t *testing.T) {
	rc, _ := newRunContext(t)
	rc.ProxyProvider = proxy.NewStaticByCountry(map[string][]string{"us": {"http://p1:8080"}})

	status := journal.New("g", map[string]any{"url": "http://x/", "country": "us"})
	patch, _, err := GeoTag().Run(context.Background(), rc, "g", status)
	if err != nil {
		t.Fatal(err)
	}
	p := patch.(map[string]any)
	if p["country"] != "us" {
		t.Errorf("country = %v, want us", p["country"])
	}
	if p["proxy_available"] != true {
		t.Errorf("proxy_available = %v, want true", p["proxy_available"])
	}
}

func TestGeoTagWithoutProviderReportsUnavailable(t *testing.T) {
	rc := &engine.RunContext{Dir: t.TempDir()}
	status := journal.New("g", map[string]any{"url": "http://x/"})

	patch, _, err := GeoTag().Run(context.Background(), rc, "g", status)
	if err != nil {
		t.Fatal(err)
	}
	p := patch.(map[string]any)
	if p["proxy_available"] != false {
		t.Errorf("proxy_available = %v, want false with no provider configured", p["proxy_available"])
	}
}
