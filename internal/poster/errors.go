// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package poster

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Failure causes reported on Unavailable resolutions and in metrics.
const (
	CauseNone        = "none"
	CauseNoPoster    = "no_poster"
	CauseStatus      = "status"
	CauseTransport   = "transport"
	CauseCertificate = "certificate"
	CauseDecode      = "decode"
	CauseCircuitOpen = "circuit_open"
	CauseCanceled    = "canceled"
	CauseDisabled    = "disabled"
)

// TransportError means the attempt produced no HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CertificateError means TLS verification of the server failed.
type CertificateError struct {
	Err error
}

func (e *CertificateError) Error() string {
	return fmt.Sprintf("certificate verification failed: %v", e.Err)
}

func (e *CertificateError) Unwrap() error { return e.Err }

// HTTPStatusError means the API answered with a non-200 status.
type HTTPStatusError struct {
	StatusCode int

	// RetryAfter is the parsed Retry-After header, zero when absent.
	RetryAfter time.Duration
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// DecodeError means a 200 response body could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode movie details: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// classifyTransport wraps an error returned by Doer.Do. The url.Error layer
// is dropped because its message embeds the request URL and the API key.
func classifyTransport(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	if isCertificateError(err) {
		return &CertificateError{Err: err}
	}
	return &TransportError{Err: err}
}

func isCertificateError(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		invalid          x509.CertificateInvalidError
		hostname         x509.HostnameError
		verification     *tls.CertificateVerificationError
	)
	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &invalid) ||
		errors.As(err, &hostname) ||
		errors.As(err, &verification)
}

// Cause maps a fetch error to its cause label.
func Cause(err error) string {
	var (
		certErr      *CertificateError
		transportErr *TransportError
		statusErr    *HTTPStatusError
		decodeErr    *DecodeError
	)
	switch {
	case err == nil:
		return CauseNone
	case errors.Is(err, errCircuitOpen):
		return CauseCircuitOpen
	case errors.As(err, &certErr):
		return CauseCertificate
	case errors.As(err, &statusErr):
		return CauseStatus
	case errors.As(err, &decodeErr):
		return CauseDecode
	case errors.As(err, &transportErr):
		return CauseTransport
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CauseCanceled
	default:
		return CauseTransport
	}
}
