// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/cinematch/internal/validation"
)

// symmetryTolerance is the absolute difference above which matrix[i][j] and
// matrix[j][i] are counted as an asymmetric pair.
const symmetryTolerance = 1e-6

// Movie is one catalog entry.
type Movie struct {
	ID    int64  `json:"movie_id"`
	Title string `json:"title"`
}

// Stats describes properties of a loaded dataset that are tolerated but
// worth reporting at startup.
type Stats struct {
	Movies          int
	NaNScores       int
	AsymmetricPairs int
	DuplicateTitles int
}

// ValidationError reports why a catalog or matrix was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid dataset: " + e.Reason
}

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Dataset is the immutable catalog and similarity matrix shared by every
// request for the lifetime of the process. It has no mutating methods and is
// safe for concurrent use without locking.
type Dataset struct {
	movies       []Movie
	matrix       [][]float64
	firstByTitle map[string]int
	stats        Stats
}

// New validates movies and matrix and builds a Dataset.
//
// New takes ownership of both slices; callers must not modify them afterwards.
// The matrix must be square with one row per movie in catalog order. Titles
// may repeat (lookups resolve to the first), movie IDs may not.
func New(movies []Movie, matrix [][]float64) (*Dataset, error) {
	n := len(movies)
	if n == 0 {
		return nil, invalidf("catalog is empty")
	}

	firstByTitle := make(map[string]int, n)
	positionByID := make(map[int64]int, n)
	duplicateTitles := 0

	for i, m := range movies {
		if strings.TrimSpace(m.Title) == "" {
			return nil, invalidf("movie at position %d (movie_id %d) has an empty title", i, m.ID)
		}
		if !validation.IsMovieTitle(m.Title) {
			return nil, invalidf("movie at position %d (movie_id %d) has a title that is longer than %d characters or contains control characters",
				i, m.ID, validation.MaxTitleLength)
		}
		if prev, dup := positionByID[m.ID]; dup {
			return nil, invalidf("movie_id %d appears at positions %d and %d", m.ID, prev, i)
		}
		positionByID[m.ID] = i

		if _, seen := firstByTitle[m.Title]; seen {
			duplicateTitles++
			continue
		}
		firstByTitle[m.Title] = i
	}

	if len(matrix) != n {
		return nil, invalidf("similarity matrix has %d rows, catalog has %d movies", len(matrix), n)
	}

	stats := Stats{Movies: n, DuplicateTitles: duplicateTitles}
	for i, row := range matrix {
		if len(row) != n {
			return nil, invalidf("similarity row %d has %d columns, want %d", i, len(row), n)
		}
		for j, score := range row {
			if math.IsNaN(score) {
				stats.NaNScores++
				continue
			}
			if j > i {
				mirror := matrix[j]
				if len(mirror) == n && !math.IsNaN(mirror[i]) && math.Abs(score-mirror[i]) > symmetryTolerance {
					stats.AsymmetricPairs++
				}
			}
		}
	}

	return &Dataset{
		movies:       movies,
		matrix:       matrix,
		firstByTitle: firstByTitle,
		stats:        stats,
	}, nil
}

// Len returns the number of movies in the catalog.
func (d *Dataset) Len() int {
	return len(d.movies)
}

// Movie returns the catalog entry at position i.
func (d *Dataset) Movie(i int) Movie {
	return d.movies[i]
}

// Movies returns a copy of the catalog in catalog order.
func (d *Dataset) Movies() []Movie {
	out := make([]Movie, len(d.movies))
	copy(out, d.movies)
	return out
}

// Titles returns every title in catalog order, duplicates included.
func (d *Dataset) Titles() []string {
	out := make([]string, len(d.movies))
	for i, m := range d.movies {
		out[i] = m.Title
	}
	return out
}

// Index returns the catalog position of the first movie whose title equals
// title exactly.
func (d *Dataset) Index(title string) (int, bool) {
	i, ok := d.firstByTitle[title]
	return i, ok
}

// Score returns the similarity of movie i to movie j.
func (d *Dataset) Score(i, j int) float64 {
	return d.matrix[i][j]
}

// Row returns a copy of the similarity row for movie i.
func (d *Dataset) Row(i int) []float64 {
	out := make([]float64, len(d.matrix[i]))
	copy(out, d.matrix[i])
	return out
}

// Stats returns load-time statistics.
func (d *Dataset) Stats() Stats {
	return d.stats
}
