// Package httpclient builds the outbound HTTP client used for webhook delivery.
package httpclient

import (
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/http/httpproxy"
)

// ProxyConfig mirrors the conventional proxy variables after they were resolved.
type ProxyConfig struct {
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// New returns an http.Client bounded by timeout and routed through proxy.
func New(timeout time.Duration, proxy ProxyConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxyFunc(proxy)

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func proxyFunc(proxy ProxyConfig) func(*http.Request) (*url.URL, error) {
	resolve := (&httpproxy.Config{
		HTTPProxy:  proxy.HTTPProxy,
		HTTPSProxy: proxy.HTTPSProxy,
		NoProxy:    proxy.NoProxy,
	}).ProxyFunc()

	return func(req *http.Request) (*url.URL, error) {
		return resolve(req.URL)
	}
}
