// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

// RecommendationsRequest holds the query parameters of GET /api/v1/recommendations.
// K of zero selects the configured default; values above the configured
// maximum are clamped rather than rejected.
type RecommendationsRequest struct {
	Title string `query:"title" validate:"required,max=500,movietitle"`
	K     int    `query:"k" validate:"gte=0"`
}

// PosterRequest holds the path parameter of GET /api/v1/movies/{id}/poster.
type PosterRequest struct {
	MovieID int64 `query:"id" validate:"gt=0"`
}
