// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Dataset Metrics
	DatasetMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	DatasetNaNScores = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_nan_scores",
			Help: "Number of NaN cells in the loaded similarity matrix",
		},
	)

	DatasetLoadDuration = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_load_duration_seconds",
			Help: "Time taken to load and validate the dataset at startup",
		},
		[]string{"format"},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation lookups by result",
		},
		[]string{"result"}, // "ok", "not_found"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent ranking one similarity row",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// Poster Fetch Metrics
	PosterAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_fetch_attempts_total",
			Help: "Total number of HTTP attempts made against the metadata API",
		},
		[]string{"outcome"}, // "ok", "retryable_status", "status", "transport", "certificate", "decode"
	)

	PosterResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_resolutions_total",
			Help: "Total number of poster resolutions by result and failure cause",
		},
		[]string{"result", "cause"},
	)

	PosterFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_fetch_duration_seconds",
			Help:    "End-to-end duration of a poster resolution including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 20},
		},
	)

	PosterRetryDelay = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_retry_delay_seconds",
			Help:    "Backoff applied between poster fetch attempts",
			Buckets: []float64{0, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDatasetLoad records the size and load time of the startup dataset.
func RecordDatasetLoad(format string, movies, nanScores int, duration time.Duration) {
	DatasetMovies.Set(float64(movies))
	DatasetNaNScores.Set(float64(nanScores))
	DatasetLoadDuration.WithLabelValues(format).Set(duration.Seconds())
}

// RecordRecommendation records one recommendation lookup.
func RecordRecommendation(found bool, duration time.Duration) {
	result := "ok"
	if !found {
		result = "not_found"
	}
	RecommendRequestsTotal.WithLabelValues(result).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordPosterAttempt records a single HTTP attempt against the metadata API.
func RecordPosterAttempt(outcome string) {
	PosterAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordPosterResolution records the final result of one poster fetch.
// cause is "none" for available posters.
func RecordPosterResolution(available bool, cause string, duration time.Duration) {
	result := "available"
	if !available {
		result = "unavailable"
	}
	PosterResolutionsTotal.WithLabelValues(result, cause).Inc()
	PosterFetchDuration.Observe(duration.Seconds())
}

// RecordPosterRetryDelay records the backoff chosen before a retry.
func RecordPosterRetryDelay(delay time.Duration) {
	PosterRetryDelay.Observe(delay.Seconds())
}
