package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for requests that are never throttled
var unlimited = EndpointConfig{Path: "-", Limit: 0}

// MatchEndpoint returns the configuration for path and method, or nil when
// the default limit applies. Health checks and CORS preflights are
// unlimited. Exact paths win over prefixes ending in "/".
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodOptions || (path == "/health" && method == http.MethodGet) {
		ep := unlimited
		return &ep
	}

	var prefix *EndpointConfig
	for i := range configs {
		ep := &configs[i]
		if ep.Method != method {
			continue
		}
		if ep.Path == path {
			return ep
		}
		if prefix == nil && strings.HasSuffix(ep.Path, "/") && strings.HasPrefix(path, ep.Path) {
			prefix = ep
		}
	}
	return prefix
}
