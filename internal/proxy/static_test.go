package proxy

import "testing"

func TestStaticListWildcardFallback(t *testing.T) {
	p := NewStaticByCountry(map[string][]string{
		"*": {"http://a:1", "http://b:2"},
	})

	proxyURL, ok := p.GetOneProxy("us")
	if !ok {
		t.Fatal("expected a proxy from the wildcard fallback")
	}
	if proxyURL != "http://a:1" && proxyURL != "http://b:2" {
		t.Errorf("unexpected proxy %q", proxyURL)
	}
}

func TestStaticCountryBucketPreferredOverWildcard(t *testing.T) {
	p := NewStaticByCountry(map[string][]string{
		"us": {"http://us-proxy:1"},
		"*":  {"http://wild-proxy:1"},
	})

	proxyURL, ok := p.GetOneProxy("us")
	if !ok || proxyURL != "http://us-proxy:1" {
		t.Errorf("GetOneProxy(us) = %q, %v; want http://us-proxy:1, true", proxyURL, ok)
	}
}

func TestStaticNoCandidatesReturnsFalse(t *testing.T) {
	p := NewStaticByCountry(map[string][]string{})

	_, ok := p.GetOneProxy("de")
	if ok {
		t.Error("expected ok=false when no candidates remain")
	}
}

func TestStaticExcludesBadProxies(t *testing.T) {
	p := NewStaticList([]string{"http://a:1"})
	p.markBad("http://a:1")

	_, ok := p.GetOneProxy("")
	if ok {
		t.Error("expected ok=false once the only proxy is marked bad")
	}
}

func TestStaticRotatesAcrossCalls(t *testing.T) {
	p := NewStaticList([]string{"http://a:1", "http://b:1"})

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		proxyURL, ok := p.GetOneProxy("")
		if !ok {
			t.Fatal("expected a proxy")
		}
		seen[proxyURL] = true
	}
	if len(seen) != 2 {
		t.Errorf("expected round-robin to visit both proxies, saw %v", seen)
	}
}
