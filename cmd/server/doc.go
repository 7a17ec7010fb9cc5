// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package main is the entry point for the Cinematch server.

Cinematch serves content-based movie recommendations from a precomputed
catalog and similarity matrix, decorated with poster art fetched from The
Movie Database (TMDB).

# Startup

 1. Configuration: Koanf v2 with defaults, optional config.yaml, environment
 2. Logging: zerolog, JSON or console
 3. Dataset: JSON file, DuckDB database, or BadgerDB directory, loaded once
 4. Recommender: immutable, safe for concurrent requests
 5. Poster fetcher: retry policy, rate limiter, circuit breaker, optional CA bundle
 6. Supervisor tree: suture v4 running the HTTP server
 7. HTTP server: chi router with the middleware stack

A dataset that is missing or malformed stops the process. A missing TMDB
API key does not: every poster is served as a placeholder.

# Configuration

	DATASET_PATH=/data/movies.json   # .json, .duckdb/.db, or a badger directory
	DATASET_FORMAT=                  # json, duckdb, badger (inferred when empty)
	HTTP_PORT=8080
	TMDB_API_KEY=<key>               # empty disables poster fetching
	TMDB_MAX_ATTEMPTS=3
	TMDB_TIMEOUT=5s                  # per attempt
	TMDB_CA_BUNDLE=/etc/ssl/corp.pem # extra trust anchors for TLS interception
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signals

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server, which drains in-flight requests for HTTP_SHUTDOWN_TIMEOUT.
*/
package main
