package util

import (
	"net/http"
	"net/url"
)

// ProxyFunc returns the proxy selector for outbound requests. An
// explicit proxy URL wins over the environment.
func ProxyFunc(proxyURL string) func(*http.Request) (*url.URL, error) {
	if proxyURL == "" {
		return http.ProxyFromEnvironment
	}
	return func(*http.Request) (*url.URL, error) {
		return url.Parse(proxyURL)
	}
}
