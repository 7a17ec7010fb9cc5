// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"
)

// Validate checks that configuration values are present and within bounds.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be one of: development, production")
	}
	return nil
}

// validDatasetFormats lists the supported dataset formats; "" means infer from path.
var validDatasetFormats = map[string]bool{
	"":       true,
	"json":   true,
	"duckdb": true,
	"badger": true,
}

func (c *Config) validateDataset() error {
	if strings.TrimSpace(c.Dataset.Path) == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	if !validDatasetFormats[c.Dataset.Format] {
		return fmt.Errorf("DATASET_FORMAT must be one of: json, duckdb, badger")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.TopN < 1 {
		return fmt.Errorf("RECOMMEND_TOP_N must be at least 1")
	}
	if c.Recommend.MaxTopN < c.Recommend.TopN {
		return fmt.Errorf("RECOMMEND_MAX_TOP_N (%d) must be >= RECOMMEND_TOP_N (%d)",
			c.Recommend.MaxTopN, c.Recommend.TopN)
	}
	if c.Recommend.GridColumns < 1 {
		return fmt.Errorf("RECOMMEND_GRID_COLUMNS must be at least 1")
	}
	if c.Recommend.PosterTimeout <= 0 || c.Recommend.PosterTimeout > maxPosterTimeout {
		return fmt.Errorf("RECOMMEND_POSTER_TIMEOUT must be positive and at most %v", maxPosterTimeout)
	}
	return nil
}

// Upper bounds keep a single poster fetch from holding a request open indefinitely.
const (
	maxPosterTimeout = 2 * time.Minute
	maxTMDBAttempts  = 10
	maxTMDBTimeout   = time.Minute
	maxRetryDelay    = 30 * time.Second
)

func (c *Config) validateTMDB() error {
	t := c.TMDB
	if err := validateHTTPURL(t.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(t.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if t.PosterSize == "" || strings.Contains(t.PosterSize, "/") {
		return fmt.Errorf("TMDB_POSTER_SIZE must be a single path segment such as w500")
	}
	if t.MaxAttempts < 1 || t.MaxAttempts > maxTMDBAttempts {
		return fmt.Errorf("TMDB_MAX_ATTEMPTS must be between 1 and %d", maxTMDBAttempts)
	}
	if t.Timeout <= 0 || t.Timeout > maxTMDBTimeout {
		return fmt.Errorf("TMDB_TIMEOUT must be positive and at most %v", maxTMDBTimeout)
	}
	if t.RetryBaseDelay < 0 {
		return fmt.Errorf("TMDB_RETRY_BASE_DELAY must not be negative")
	}
	if t.RetryMaxDelay < t.RetryBaseDelay || t.RetryMaxDelay > maxRetryDelay {
		return fmt.Errorf("TMDB_RETRY_MAX_DELAY must be between TMDB_RETRY_BASE_DELAY and %v", maxRetryDelay)
	}
	if t.Concurrency < 1 {
		return fmt.Errorf("TMDB_CONCURRENCY must be at least 1")
	}
	if t.RequestsPerSecond <= 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must be positive")
	}
	if t.Burst < 1 {
		return fmt.Errorf("TMDB_BURST must be at least 1")
	}
	if t.CABundle != "" {
		if _, err := os.Stat(t.CABundle); err != nil {
			return fmt.Errorf("TMDB_CA_BUNDLE %s is not readable: %w", t.CABundle, err)
		}
	}
	// The API key travels in the query string. Plain http is limited to a
	// loopback fake, and production always requires https.
	if u, err := url.Parse(t.BaseURL); err == nil && u.Scheme == "http" {
		if c.IsProduction() {
			return fmt.Errorf("TMDB_BASE_URL must use https in production")
		}
		if !isLoopbackHost(u.Hostname()) {
			return fmt.Errorf("TMDB_BASE_URL must use https unless it points at a loopback host, got %q", u.Host)
		}
	}
	return nil
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// Rate limit bounds.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}

// validateHTTPURL checks scheme and host. A path is allowed (TMDB uses /3 and /t/p)
// but query parameters are not, since the credential is appended per request.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
