package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/docnav/internal/navtree"
)

type Config struct {
	Port string

	// Auth; empty disables bearer checks.
	APIKey string

	// Documents to preload at startup.
	ManifestPath    string
	LoadConcurrency int

	// Parsing
	MaxDepth int

	// Upload limits
	MaxUploadBytes int64

	// Import latency window
	StatsWindow time.Duration

	LogLevel  string
	LogFormat string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCNAV_API_KEY"),

		ManifestPath:    os.Getenv("DOCNAV_MANIFEST"),
		LoadConcurrency: envInt("LOAD_CONCURRENCY", 4),

		MaxDepth: envInt("DOCNAV_MAX_DEPTH", navtree.DefaultMaxDepth),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10<<20), // 10MB

		StatsWindow: envDuration("STATS_WINDOW", time.Hour),

		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", LogFormatJSON),
	}

	if cfg.LoadConcurrency <= 0 {
		cfg.LoadConcurrency = 4
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = navtree.DefaultMaxDepth
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.LogFormat != LogFormatJSON && c.LogFormat != LogFormatText {
		return fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", LogFormatJSON, LogFormatText, c.LogFormat)
	}
	if c.ManifestPath != "" {
		if _, err := os.Stat(c.ManifestPath); err != nil {
			return fmt.Errorf("DOCNAV_MANIFEST: %w", err)
		}
	}
	return nil
}

// ParseConfig returns the parser limits for this configuration.
func (c Config) ParseConfig() navtree.ParseConfig {
	return navtree.ParseConfig{MaxDepth: c.MaxDepth}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
