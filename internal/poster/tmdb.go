// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package poster

import (
	"context"
	"strings"
)

// MovieDetails is the subset of the TMDB /movie/{id} response we read.
type MovieDetails struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// RawPosterPath is null or missing for movies without artwork.
	RawPosterPath *string `json:"poster_path"`
}

// PosterPath returns the poster path and whether one is present.
// A null, missing, or blank poster_path reports false.
func (d *MovieDetails) PosterPath() (string, bool) {
	if d == nil || d.RawPosterPath == nil {
		return "", false
	}
	path := strings.TrimSpace(*d.RawPosterPath)
	if path == "" {
		return "", false
	}
	return path, true
}

// Resolution is the outcome of resolving one movie's poster.
type Resolution struct {
	MovieID   int64  `json:"movie_id"`
	URL       string `json:"url,omitempty"`
	Available bool   `json:"available"`

	// Cause is CauseNone when Available, otherwise why the poster is missing.
	Cause string `json:"cause"`

	// Attempts is the number of HTTP attempts made.
	Attempts int `json:"attempts"`
}

// Unavailable returns a Resolution with no poster.
func Unavailable(movieID int64, cause string, attempts int) Resolution {
	return Resolution{MovieID: movieID, Cause: cause, Attempts: attempts}
}

// Resolver is implemented by Fetcher and Disabled.
type Resolver interface {
	FetchPoster(ctx context.Context, movieID int64) Resolution
	FetchAll(ctx context.Context, movieIDs []int64) []Resolution
}

// Disabled resolves every poster to Unavailable without network access.
// It stands in for a Fetcher when no API key is configured.
type Disabled struct{}

// FetchPoster implements Resolver.
func (Disabled) FetchPoster(_ context.Context, movieID int64) Resolution {
	return Unavailable(movieID, CauseDisabled, 0)
}

// FetchAll implements Resolver.
func (d Disabled) FetchAll(ctx context.Context, movieIDs []int64) []Resolution {
	out := make([]Resolution, len(movieIDs))
	for i, id := range movieIDs {
		out[i] = d.FetchPoster(ctx, id)
	}
	return out
}

// imageURL joins the image base, size, and poster path. TMDB poster paths
// begin with "/", which is added when absent.
func imageURL(base, size, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + "/" + strings.Trim(size, "/") + path
}
