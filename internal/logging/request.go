// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type requestLoggerKey struct{}

// WithRequest returns a child of ctx whose Ctx logger carries request_id and
// a fresh eight-character correlation_id.
func WithRequest(ctx context.Context, requestID string) context.Context {
	l := current().With().
		Str("request_id", requestID).
		Str("correlation_id", uuid.NewString()[:8]).
		Logger()
	return context.WithValue(ctx, requestLoggerKey{}, &l)
}

// Ctx returns the logger attached by WithRequest, or the process logger.
//
//	logging.Ctx(r.Context()).Info().Str("title", title).Msg("Recommendations served")
func Ctx(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(requestLoggerKey{}).(*zerolog.Logger); ok {
		return l
	}
	l := current()
	return &l
}
