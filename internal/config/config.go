// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in values for every setting
//  2. Config File: Optional YAML config file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//
//  1. Data:
//     - Dataset: Location and format of the precomputed catalog and similarity matrix
//     - Recommend: Result sizing and grid layout
//
//  2. Upstream:
//     - TMDB: Metadata API endpoints, credential, retry and TLS policy
//
//  3. Serving:
//     - Server: HTTP listener settings
//     - Security: Inbound rate limiting and CORS
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	ds, err := dataset.Load(ctx, dataset.Source{Path: cfg.Dataset.Path, Format: cfg.Dataset.Format})
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Recommend RecommendConfig `koanf:"recommend"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development" or "production"
}

// DatasetConfig locates the precomputed dataset loaded once at startup.
type DatasetConfig struct {
	// Path is a JSON file, a DuckDB database file, or a BadgerDB directory.
	Path string `koanf:"path"`

	// Format is one of "json", "duckdb", "badger". Empty means infer from Path.
	Format string `koanf:"format"`
}

// RecommendConfig controls result sizing.
type RecommendConfig struct {
	// TopN is the number of recommendations returned when the caller does not ask for a count.
	TopN int `koanf:"top_n"`

	// MaxTopN caps caller-supplied counts.
	MaxTopN int `koanf:"max_top_n"`

	// GridColumns is the number of posters per row in the grid view.
	GridColumns int `koanf:"grid_columns"`

	// PosterTimeout bounds the time one recommendation request spends
	// resolving posters. Posters still pending at the deadline are served
	// as placeholders.
	PosterTimeout time.Duration `koanf:"poster_timeout"`
}

// TMDBConfig holds the metadata API endpoints, credential, and fetch policy.
//
// The worst-case latency of a single poster fetch is
// MaxAttempts*Timeout + (MaxAttempts-1)*RetryMaxDelay.
type TMDBConfig struct {
	BaseURL      string `koanf:"base_url"`
	ImageBaseURL string `koanf:"image_base_url"`
	PosterSize   string `koanf:"poster_size"`

	// APIKey is the static credential. Empty disables poster fetching.
	APIKey string `koanf:"api_key"`

	// Timeout bounds each individual attempt.
	Timeout time.Duration `koanf:"timeout"`

	MaxAttempts           int           `koanf:"max_attempts"`
	RetryBaseDelay        time.Duration `koanf:"retry_base_delay"`
	RetryMaxDelay         time.Duration `koanf:"retry_max_delay"`
	RetryOnTransportError bool          `koanf:"retry_on_transport_error"`

	// CABundle is an optional PEM file appended to the system trust store.
	CABundle string `koanf:"ca_bundle"`

	Concurrency       int     `koanf:"concurrency"`
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// Enabled reports whether poster fetching is configured.
func (t TMDBConfig) Enabled() bool {
	return t.APIKey != ""
}

// SecurityConfig holds inbound request protection settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file, and
// environment variables, then validates it.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
