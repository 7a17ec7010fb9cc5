// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package middleware provides HTTP middleware shared by the API router.
//
// All middleware use the func(http.Handler) http.Handler shape so they
// compose with chi's Use and With:
//
//	r.Use(middleware.RequestID)
//	r.With(middleware.PrometheusMetrics, middleware.Compression).Get("/movies", h.Movies)
//
// RequestID populates the logging context (request_id, correlation_id) and
// echoes X-Request-ID. PrometheusMetrics labels requests by chi route pattern.
// Compression gzips responses when the client accepts it.
package middleware
