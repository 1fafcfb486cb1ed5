package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits requests whose method matches and whose path starts with
// Prefix and ends with Suffix.
type Rule struct {
	Method string
	Prefix string
	Suffix string
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         time.Hour,
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the endpoint rules of the template API.
func DefaultRules() []Rule {
	return []Rule{
		// PDF export launches a browser per request
		{Method: "POST", Prefix: "/templates/", Suffix: "/export", Limit: 10, Window: time.Minute, Burst: 2},
		{Method: "POST", Prefix: "/templates/", Suffix: "/render", Limit: 120, Window: time.Minute, Burst: 20},

		// Configuration writes
		{Method: "PATCH", Prefix: "/templates/", Limit: 600, Window: time.Minute, Burst: 60},
		{Method: "POST", Prefix: "/templates/", Limit: 600, Window: time.Minute, Burst: 60},
	}
}

// Match returns the first rule matching the request, or nil. The health
// check always matches an unlimited rule.
func Match(path, method string, rules []Rule) *Rule {
	if path == "/health" && method == "GET" {
		return &Rule{Limit: 0}
	}
	for i := range rules {
		r := &rules[i]
		if r.Method != method {
			continue
		}
		if strings.HasPrefix(path, r.Prefix) && strings.HasSuffix(path, r.Suffix) {
			return r
		}
	}
	return nil
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
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
