// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package poster

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RetryPolicy decides whether and when a failed attempt is repeated.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// RetryableStatus lists HTTP status codes that trigger another attempt.
	RetryableStatus []int

	// AttemptTimeout bounds a single attempt.
	AttemptTimeout time.Duration

	// BaseDelay is the first backoff; each later retry doubles it.
	// Zero retries immediately unless the server sends Retry-After.
	BaseDelay time.Duration

	// MaxDelay caps every backoff, including Retry-After.
	MaxDelay time.Duration

	// RetryOnTransportError retries attempts that produced no response.
	// Certificate failures are never retried regardless.
	RetryOnTransportError bool
}

// DefaultRetryPolicy returns the stock policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		RetryableStatus: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
		AttemptTimeout:        5 * time.Second,
		BaseDelay:             250 * time.Millisecond,
		MaxDelay:              2 * time.Second,
		RetryOnTransportError: true,
	}
}

// Outcome is the result of one attempt as seen by the policy.
// StatusCode is zero when Err is a transport or certificate failure.
type Outcome struct {
	StatusCode int
	Err        error
}

// IsRetryableStatus reports whether code is in RetryableStatus.
func (p RetryPolicy) IsRetryableStatus(code int) bool {
	for _, c := range p.RetryableStatus {
		if c == code {
			return true
		}
	}
	return false
}

// ShouldRetry reports whether another attempt follows attempt (1-based)
// ending in outcome.
func (p RetryPolicy) ShouldRetry(attempt int, outcome Outcome) bool {
	if attempt >= p.MaxAttempts {
		return false
	}

	if outcome.Err != nil {
		var certErr *CertificateError
		if errors.As(outcome.Err, &certErr) {
			return false
		}
		var transportErr *TransportError
		if errors.As(outcome.Err, &transportErr) {
			return p.RetryOnTransportError
		}
		var statusErr *HTTPStatusError
		if errors.As(outcome.Err, &statusErr) {
			return p.IsRetryableStatus(statusErr.StatusCode)
		}
		return false
	}

	return p.IsRetryableStatus(outcome.StatusCode)
}

// Backoff returns the wait before the attempt following attempt (1-based).
// A positive retryAfter replaces the exponential schedule. The result never
// exceeds MaxDelay.
func (p RetryPolicy) Backoff(attempt int, retryAfter time.Duration) time.Duration {
	delay := retryAfter
	if delay <= 0 {
		delay = p.exponential(attempt)
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	if delay < 0 {
		delay = 0
	}
	return delay
}

func (p RetryPolicy) exponential(attempt int) time.Duration {
	if p.BaseDelay <= 0 || attempt < 1 {
		return 0
	}
	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return delay
}

// WorstCaseLatency bounds the wall time of one fetch under this policy,
// excluding time spent waiting on the outbound rate limiter.
func (p RetryPolicy) WorstCaseLatency() time.Duration {
	if p.MaxAttempts < 1 {
		return 0
	}
	return time.Duration(p.MaxAttempts)*p.AttemptTimeout + time.Duration(p.MaxAttempts-1)*p.MaxDelay
}

// ParseRetryAfter interprets a Retry-After header value given in seconds or
// as an HTTP date. It returns zero for an absent or unparseable value.
func ParseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
