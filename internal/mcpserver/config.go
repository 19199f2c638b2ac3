package mcpserver

import (
	"go/token"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// MaxInlineSize caps inline definition content, in bytes.
	MaxInlineSize int64

	// Inspect tool defaults.
	ListLimit int
	MaxLimit  int

	// Generate and validate tool defaults.
	PackageName     string
	ExhaustiveEnums bool
	Strict          bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from CONJUREGO_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("CONJUREGO_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("CONJUREGO_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("CONJUREGO_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("CONJUREGO_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("CONJUREGO_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(envInt("CONJUREGO_MAX_INLINE_SIZE", 10<<20)),
		ListLimit:          envInt("CONJUREGO_LIST_LIMIT", 100),
		MaxLimit:           envInt("CONJUREGO_MAX_LIMIT", 1000),
		PackageName:        envPackageName("CONJUREGO_PACKAGE_NAME"),
		ExhaustiveEnums:    envBool("CONJUREGO_EXHAUSTIVE_ENUMS", false),
		Strict:             envBool("CONJUREGO_STRICT", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

// envPackageName returns the Go package name in key, or "" when it is unset
// or not a valid identifier.
func envPackageName(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if !token.IsIdentifier(v) || token.IsKeyword(v) {
		slog.Warn("invalid package name env var, ignoring", "key", key, "value", v) //nolint:gosec // G706: values are structured log fields, not format strings
		return ""
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
