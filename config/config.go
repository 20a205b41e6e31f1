package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// HTTP
	Port     string
	LogLevel string

	// Watchlist override file (YAML); empty uses the built-in list.
	WatchlistFile string

	// Snapshot aggregation
	SnapshotTTL   time.Duration
	MaxConcurrent int

	// Live tick pipeline
	PollInterval   time.Duration
	ReconnectDelay time.Duration
	RequestTimeout time.Duration

	// Upstream overrides, mainly for tests and proxies.
	YahooBaseURL   string
	BinanceBaseURL string
	StreamURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		WatchlistFile: getEnv("WATCHLIST_FILE", ""),

		SnapshotTTL:   getDuration("SNAPSHOT_TTL_SECONDS", 30*time.Second),
		MaxConcurrent: getInt("MAX_CONCURRENT_FETCHES", 16),

		PollInterval:   getDuration("POLL_INTERVAL_SECONDS", time.Second),
		ReconnectDelay: getDuration("RECONNECT_DELAY_SECONDS", 5*time.Second),
		RequestTimeout: getDuration("REQUEST_TIMEOUT_SECONDS", 15*time.Second),

		YahooBaseURL:   getEnv("YAHOO_BASE_URL", ""),
		BinanceBaseURL: getEnv("BINANCE_BASE_URL", ""),
		StreamURL:      getEnv("STREAM_URL", ""),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] ignoring invalid %s=%q", key, v)
		return fallback
	}
	return time.Duration(n) * time.Second
}
