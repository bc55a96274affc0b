package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per window; 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, Limit when 0
}

func (e *EndpointConfig) capacity() int {
	if e.Burst > 0 {
		return e.Burst
	}
	return e.Limit
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment
// variables.
func LoadConfig() *Config {
	if !env("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	renderLimit := env("RATE_LIMIT_RENDER_LIMIT", 30, strconv.Atoi)
	renderBurst := env("RATE_LIMIT_RENDER_BURST", 5, strconv.Atoi)

	return &Config{
		Enabled:         true,
		DefaultLimit:    env("RATE_LIMIT_DEFAULT_LIMIT", 120, strconv.Atoi),
		DefaultWindow:   env("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: env("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		IdleTTL:         env("RATE_LIMIT_IDLE_TTL", time.Hour, time.ParseDuration),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(renderLimit, renderBurst),
	}
}

// DefaultEndpointConfigs limits the PDF endpoint to renderLimit requests a
// minute. Layout and classify do no PDF work and get four times as much.
func DefaultEndpointConfigs(renderLimit, renderBurst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/render", Method: "POST", Limit: renderLimit, Window: time.Minute, Burst: renderBurst},
		{Path: "/layout", Method: "POST", Limit: renderLimit * 4, Window: time.Minute, Burst: renderBurst * 4},
		{Path: "/classify", Method: "POST", Limit: renderLimit * 4, Window: time.Minute, Burst: renderBurst * 4},
	}
}

// env reads key with parse, falling back to def when unset or malformed.
func env[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
