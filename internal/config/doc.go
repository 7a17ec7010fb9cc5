// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config provides centralized configuration management for Cinematch.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. Validation runs once after loading and
reports the environment variable to fix.

# Configuration Sources

  - Defaults: defaultConfig()
  - File: config.yaml, config.yml, /etc/cinematch/config.yaml, or CONFIG_PATH
  - Environment: explicitly mapped variables only (see envMappings)

# Example config.yaml

	server:
	  port: 8080
	dataset:
	  path: /data/movies.duckdb
	recommend:
	  top_n: 10
	tmdb:
	  api_key: ${TMDB_API_KEY}
	  timeout: 5s
	  max_attempts: 3

# Environment Variables

	DATASET_PATH, DATASET_FORMAT
	RECOMMEND_TOP_N, RECOMMEND_MAX_TOP_N, RECOMMEND_GRID_COLUMNS,
	RECOMMEND_POSTER_TIMEOUT
	TMDB_BASE_URL, TMDB_IMAGE_BASE_URL, TMDB_POSTER_SIZE, TMDB_API_KEY
	TMDB_TIMEOUT, TMDB_MAX_ATTEMPTS, TMDB_RETRY_BASE_DELAY, TMDB_RETRY_MAX_DELAY
	TMDB_RETRY_ON_TRANSPORT_ERROR, TMDB_CA_BUNDLE, TMDB_CONCURRENCY
	TMDB_REQUESTS_PER_SECOND, TMDB_BURST, TMDB_CIRCUIT_BREAKER
	HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT, ENVIRONMENT
	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

An empty TMDB_API_KEY is valid: the server starts and every poster resolves
to the unavailable placeholder.
*/
package config
