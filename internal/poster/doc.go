// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package poster resolves movie poster image URLs from the TMDB metadata API.
//
// # Contract
//
// FetchPoster never returns an error. Every call ends in a Resolution that is
// either Available with a fully formed image URL or Unavailable with a cause
// label. Failures are classified, logged, and counted on the way out:
//
//   - TransportError: the request never produced a response
//   - CertificateError: TLS verification failed (never retried)
//   - HTTPStatusError: the API answered with a non-200 status
//   - DecodeError: a 200 response carried a body that is not valid JSON
//
// # Retries
//
// RetryPolicy is a plain value. ShouldRetry and Backoff are pure functions of
// their arguments, so the retry schedule can be tested without a network.
// The defaults allow 3 attempts of 5s each, retry on 429, 500, 502, 503, and
// 504, and cap every backoff (including a server supplied Retry-After) at
// RetryPolicy.MaxDelay.
//
// # Resilience
//
// Around the retry loop sit a token bucket limiter (golang.org/x/time/rate)
// pacing outbound attempts and an optional circuit breaker
// (sony/gobreaker/v2). While the breaker is open, fetches resolve to
// Unavailable with cause "circuit_open" and make no network calls.
//
// # TLS
//
// NewHTTPClient always verifies certificates against the system trust store,
// optionally extended with a PEM bundle. There is no switch to disable
// verification.
//
// # Thread Safety
//
// A Fetcher is safe for concurrent use. FetchAll resolves a batch with bounded
// concurrency and returns results in input order.
package poster
