// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus metrics for Cinematch.

Every metric is registered with the default registry through promauto and
exposed at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Dataset:
  - dataset_movies
  - dataset_nan_scores
  - dataset_load_duration_seconds{format}

Recommendations:
  - recommend_requests_total{result}
  - recommend_duration_seconds

Posters:
  - poster_fetch_attempts_total{outcome}
  - poster_resolutions_total{result,cause}
  - poster_fetch_duration_seconds
  - poster_retry_delay_seconds

Circuit Breaker:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_transitions_total{name,from,to}

Example PromQL:

	# Share of posters that fell back to the placeholder
	sum(rate(poster_resolutions_total{result="unavailable"}[5m]))
	  / sum(rate(poster_resolutions_total[5m]))

	# Attempts per resolution (retry pressure)
	sum(rate(poster_fetch_attempts_total[5m]))
	  / sum(rate(poster_resolutions_total[5m]))
*/
package metrics
