// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

// Health handles health check requests
//
// @Summary Get service health status
// @Description Returns catalog size, poster fetching mode, circuit breaker state, and uptime. Poster problems degrade status but never fail the check.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	breaker := h.breakerState()
	status := "healthy"
	if breaker == "open" {
		status = "degraded"
	}

	respondSuccess(w, models.HealthStatus{
		Status:         status,
		Version:        Version,
		Movies:         len(h.recommender.Titles()),
		PosterFetching: h.posterFetching(),
		CircuitBreaker: breaker,
		Uptime:         time.Since(h.startTime).Seconds(),
	}, start)
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// The dataset is loaded before the server starts, so the service is ready
// whenever the catalog is non-empty. The metadata API is not a readiness
// dependency because posters degrade to placeholders.
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK when the catalog is loaded. Returns 503 otherwise.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	movies := 0
	if h.recommender != nil {
		movies = len(h.recommender.Titles())
	}
	ready := movies > 0

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"movies":          movies,
			"poster_fetching": h.posterFetching(),
			"ready_to_serve":  ready,
			"uptime":          time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
