// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// PosterPlaceholder is shown in place of a poster that could not be resolved.
const PosterPlaceholder = "Poster unavailable"

// MovieList is the payload of GET /api/v1/movies.
type MovieList struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// MovieRef identifies one catalog entry.
type MovieRef struct {
	Title   string `json:"title"`
	MovieID int64  `json:"movie_id"`
}

// RecommendationItem is one ranked result.
type RecommendationItem struct {
	Rank    int      `json:"rank"`
	Title   string   `json:"title"`
	MovieID int64    `json:"movie_id"`
	Score   *float64 `json:"score"`

	// PosterURL is null when the poster is unavailable, in which case
	// PosterPlaceholder carries the text to display instead.
	PosterURL         *string `json:"poster_url"`
	PosterPlaceholder string  `json:"poster_placeholder,omitempty"`
}

// Recommendations is the payload of GET /api/v1/recommendations.
type Recommendations struct {
	Anchor MovieRef             `json:"anchor"`
	K      int                  `json:"k"`
	Items  []RecommendationItem `json:"items"`

	// Grid lays Items out in rows of Columns, in rank order.
	Grid    [][]RecommendationItem `json:"grid"`
	Columns int                    `json:"columns"`
}

// PosterResult is the payload of GET /api/v1/movies/{id}/poster.
type PosterResult struct {
	MovieID           int64   `json:"movie_id"`
	Available         bool    `json:"available"`
	PosterURL         *string `json:"poster_url"`
	PosterPlaceholder string  `json:"poster_placeholder,omitempty"`
	Cause             string  `json:"cause"`
	Attempts          int     `json:"attempts"`
}
