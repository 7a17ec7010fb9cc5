// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package logging owns the process-wide zerolog logger.
//
// main calls Init once with the LOG_LEVEL, LOG_FORMAT and LOG_CALLER
// settings; before that, events go to stderr as JSON at info level.
//
//	logging.Info().Int("movies", ds.Len()).Msg("Dataset loaded")
//	logger := logging.WithComponent("poster")
//
// HTTP handlers log through Ctx, which picks up the request_id and
// correlation_id fields attached by middleware.RequestID via WithRequest:
//
//	logging.Ctx(r.Context()).Warn().Str("cause", res.Cause).Msg("Poster unavailable")
//
// NewSlogLogger adapts the same logger for the supervisor tree, which only
// accepts *slog.Logger.
//
// An event is only written once Msg or Send is called on it.
package logging
