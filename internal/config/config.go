package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultFeedURL is the public scraper endpoint serving the outage feed.
const DefaultFeedURL = "https://power-outages-scraper.onrender.com/outages/"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Outage feed.
	FeedURL             string
	FeedTimeout         time.Duration
	FeedRefreshInterval time.Duration // 0 loads the feed once at startup

	// Listing.
	PageSize       int
	QueryCacheSize int // 0 disables the resolved-query cache

	// Optional Redis snapshot of the last good feed.
	RedisURL    string
	SnapshotTTL time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := parseDuration("FEED_TIMEOUT", "30s")
	if err != nil || feedTimeout <= 0 {
		return nil, errors.New("invalid FEED_TIMEOUT")
	}

	refresh, err := parseDuration("FEED_REFRESH_INTERVAL", "0s")
	if err != nil || refresh < 0 {
		return nil, errors.New("invalid FEED_REFRESH_INTERVAL")
	}

	snapshotTTL, err := parseDuration("SNAPSHOT_TTL", "24h")
	if err != nil || snapshotTTL < 0 {
		return nil, errors.New("invalid SNAPSHOT_TTL")
	}

	pageSize, err := parseInt("PAGE_SIZE", 10)
	if err != nil || pageSize <= 0 {
		return nil, errors.New("invalid PAGE_SIZE")
	}

	cacheSize, err := parseInt("QUERY_CACHE_SIZE", 256)
	if err != nil || cacheSize < 0 {
		return nil, errors.New("invalid QUERY_CACHE_SIZE")
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FeedURL:             sharedcfg.EnvOrDefault("FEED_URL", DefaultFeedURL),
		FeedTimeout:         feedTimeout,
		FeedRefreshInterval: refresh,

		PageSize:       pageSize,
		QueryCacheSize: cacheSize,

		RedisURL:    os.Getenv("REDIS_URL"),
		SnapshotTTL: snapshotTTL,
	}

	if cfg.FeedURL == "" {
		return nil, errors.New("FEED_URL is required")
	}

	return cfg, nil
}

// SnapshotEnabled reports whether a Redis snapshot store should be wired.
func (c *Config) SnapshotEnabled() bool {
	return c.RedisURL != ""
}

func parseDuration(key, fallback string) (time.Duration, error) {
	return time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	return strconv.Atoi(s)
}
