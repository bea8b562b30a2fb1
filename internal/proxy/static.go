package proxy

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// bucket holds one country's ordered proxy list and a round-robin cursor.
// get_one_proxy's rotation policy is unspecified by the design (Design Note
// "Proxy rotation policy"); this implementation picks round-robin per
// bucket, which keeps tests deterministic and spreads load evenly across a
// pool, and documents the choice here rather than leaving it implicit.
type bucket struct {
	urls   []string
	cursor atomic.Uint64
}

// Static is a Provider backed by an in-memory map of country code to proxy
// list, covering both the "static from list" (everything in the wildcard
// bucket) and "static from country->list dict" variants named in the
// design.
type Static struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	bad     sync.Map // proxy URL -> struct{}
}

// NewStaticList builds a Static provider with every URL in the wildcard
// bucket.
func NewStaticList(urls []string) *Static {
	return NewStaticByCountry(map[string][]string{"*": urls})
}

// NewStaticByCountry builds a Static provider from a country -> proxy list
// mapping. "" and "*" are both treated as the wildcard bucket.
func NewStaticByCountry(byCountry map[string][]string) *Static {
	s := &Static{buckets: make(map[string]*bucket)}
	for country, urls := range byCountry {
		key := country
		if isWildcard(key) {
			key = "*"
		}
		b, ok := s.buckets[key]
		if !ok {
			b = &bucket{}
			s.buckets[key] = b
		}
		b.urls = append(b.urls, urls...)
	}
	return s
}

// GetOneProxy implements Provider.
func (s *Static) GetOneProxy(country string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := country
	if isWildcard(key) {
		key = "*"
	}

	if candidate, ok := s.pick(key); ok {
		return candidate, true
	}
	if key != "*" {
		return s.pick("*")
	}
	return "", false
}

func (s *Static) pick(key string) (string, bool) {
	b, ok := s.buckets[key]
	if !ok || len(b.urls) == 0 {
		return "", false
	}

	n := uint64(len(b.urls))
	for i := uint64(0); i < n; i++ {
		idx := (b.cursor.Add(1) - 1) % n
		candidate := b.urls[idx]
		if _, bad := s.bad.Load(candidate); !bad {
			return candidate, true
		}
	}
	return "", false
}

// CheckProxies implements Provider.
func (s *Static) CheckProxies(ctx context.Context, timeout time.Duration, retries int) error {
	return checkAll(ctx, s.allURLs(), timeout, retries, s.markBad)
}

func (s *Static) markBad(url string) {
	s.bad.Store(url, struct{}{})
}

func (s *Static) allURLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []string
	for _, b := range s.buckets {
		all = append(all, b.urls...)
	}
	return all
}

var _ Provider = (*Static)(nil)
