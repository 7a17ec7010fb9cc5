// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the HTTP REST API layer for Cinematch.

Key Components:

  - Router: Chi route configuration and middleware stack
  - Handler: Request handlers for catalog, recommendation, poster, and health endpoints
  - Response formatting: models.APIResponse envelope with ETag and metadata

Endpoints:

  - GET /api/v1/health, /api/v1/health/live, /api/v1/health/ready
  - GET /api/v1/movies: catalog titles in catalog order
  - GET /api/v1/recommendations?title=&k=: ranked results with poster URLs
  - GET /api/v1/movies/{id}/poster: one poster resolution
  - GET /metrics: Prometheus exposition
  - GET /swagger/*: OpenAPI UI

Middleware Stack (global, in order):

  - Request ID with logging context
  - Real IP extraction
  - Panic recovery
  - CORS (go-chi/cors)

The /api/v1 group adds httprate limiting, security headers, Prometheus
metrics, and gzip compression.

Poster resolution never fails a recommendation request: an unavailable poster
is served as a null poster_url with a placeholder string.
*/
package api
