package proxy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resty.dev/v3"
)

// APIProvider is a Provider backed by a remote proxy directory, refreshed
// on a TTL rather than fetched on every GetOneProxy call. It covers both
// the "fetched from public free-proxy API" and "fetched from authenticated
// paid services" variants named in the design: the only difference between
// them is whether apiKey/orderID are set and sent as headers.
type APIProvider struct {
	client   *resty.Client
	endpoint string
	apiKey   string
	orderID  string
	ttl      time.Duration

	mu       sync.Mutex
	cache    *Static
	fetched  time.Time
}

// NewFreeAPIProvider builds a Provider that refreshes its pool from a
// public free-proxy listing endpoint, no authentication required.
func NewFreeAPIProvider(endpoint string, ttl time.Duration) *APIProvider {
	return &APIProvider{
		client:   resty.New(),
		endpoint: endpoint,
		ttl:      ttl,
	}
}

// NewPaidAPIProvider builds a Provider for an authenticated paid proxy
// service, sending apiKey (and, if non-empty, orderID) as request headers.
func NewPaidAPIProvider(endpoint, apiKey, orderID string, ttl time.Duration) *APIProvider {
	return &APIProvider{
		client:   resty.New(),
		endpoint: endpoint,
		apiKey:   apiKey,
		orderID:  orderID,
		ttl:      ttl,
	}
}

// apiProxyListing is the expected shape of the remote directory response:
// a country code ("" for unconstrained) mapped to its proxy URLs.
type apiProxyListing map[string][]string

func (p *APIProvider) refresh(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cache != nil && time.Since(p.fetched) < p.ttl {
		return nil
	}

	req := p.client.R().SetContext(ctx)
	if p.apiKey != "" {
		req = req.SetHeader("Authorization", "Bearer "+p.apiKey)
	}
	if p.orderID != "" {
		req = req.SetHeader("X-Order-Id", p.orderID)
	}

	var listing apiProxyListing
	resp, err := req.SetResult(&listing).Get(p.endpoint)
	if err != nil {
		return fmt.Errorf("proxy: fetch listing: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("proxy: listing endpoint returned status %d", resp.StatusCode())
	}

	p.cache = NewStaticByCountry(listing)
	p.fetched = time.Now()
	return nil
}

// GetOneProxy implements Provider.
func (p *APIProvider) GetOneProxy(country string) (string, bool) {
	if err := p.refresh(context.Background()); err != nil {
		return "", false
	}
	p.mu.Lock()
	cache := p.cache
	p.mu.Unlock()
	if cache == nil {
		return "", false
	}
	return cache.GetOneProxy(country)
}

// CheckProxies implements Provider.
func (p *APIProvider) CheckProxies(ctx context.Context, timeout time.Duration, retries int) error {
	if err := p.refresh(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	cache := p.cache
	p.mu.Unlock()
	if cache == nil {
		return nil
	}
	return cache.CheckProxies(ctx, timeout, retries)
}

var _ Provider = (*APIProvider)(nil)
