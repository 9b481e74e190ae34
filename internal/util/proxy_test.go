package util

import (
	"net/http"
	"net/url"
	"testing"
)

func mustRequest(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse %q: %v", rawURL, err)
	}
	return &http.Request{URL: u}
}

func TestNewProxyFunc_Explicit(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "", "")

	u, err := proxy(mustRequest(t, "http://babelio-gw.example.org/verify"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u == nil || u.Host != "proxy.internal:3128" {
		t.Errorf("proxy URL = %v, want explicit proxy", u)
	}
}

func TestNewProxyFunc_NoProxyList(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "", "localhost,example.org")

	u, err := proxy(mustRequest(t, "http://search.example.org/episodes/ep1/search"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u != nil {
		t.Errorf("proxy URL = %v, want direct for no_proxy host", u)
	}
}

func TestNewProxyFunc_SchemeSplit(t *testing.T) {
	proxy := NewProxyFunc("http://plain.internal:3128", "http://secure.internal:3128", "")

	u, err := proxy(mustRequest(t, "https://babelio-gw.example.org/verify"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u == nil || u.Host != "secure.internal:3128" {
		t.Errorf("proxy URL = %v, want the https proxy", u)
	}
}
