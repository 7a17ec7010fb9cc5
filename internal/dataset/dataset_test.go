// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func sampleMovies() []Movie {
	return []Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"}, {ID: 4, Title: "D"}}
}

func sampleMatrix() [][]float64 {
	return [][]float64{
		{1.0, 0.9, 0.2, 0.5},
		{0.9, 1.0, 0.3, 0.4},
		{0.2, 0.3, 1.0, 0.1},
		{0.5, 0.4, 0.1, 1.0},
	}
}

func mustNew(t *testing.T, movies []Movie, matrix [][]float64) *Dataset {
	t.Helper()
	ds, err := New(movies, matrix)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ds
}

func TestNew_Valid(t *testing.T) {
	ds := mustNew(t, sampleMovies(), sampleMatrix())

	if ds.Len() != 4 {
		t.Errorf("Len() = %d, want 4", ds.Len())
	}
	if got := ds.Titles(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Errorf("Titles() = %v", got)
	}
	if ds.Score(0, 1) != 0.9 {
		t.Errorf("Score(0, 1) = %v, want 0.9", ds.Score(0, 1))
	}
	if m := ds.Movie(3); m.ID != 4 || m.Title != "D" {
		t.Errorf("Movie(3) = %+v", m)
	}

	stats := ds.Stats()
	if stats != (Stats{Movies: 4}) {
		t.Errorf("Stats() = %+v, want only Movies=4", stats)
	}
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		movies  []Movie
		matrix  [][]float64
		wantMsg string
	}{
		{
			name:    "empty catalog",
			movies:  nil,
			matrix:  nil,
			wantMsg: "catalog is empty",
		},
		{
			name:    "blank title",
			movies:  []Movie{{ID: 1, Title: "  "}},
			matrix:  [][]float64{{1}},
			wantMsg: "empty title",
		},
		{
			name:    "control character in title",
			movies:  []Movie{{ID: 1, Title: "Ava\ttar"}},
			matrix:  [][]float64{{1}},
			wantMsg: "contains control characters",
		},
		{
			name:    "title longer than requests accept",
			movies:  []Movie{{ID: 1, Title: strings.Repeat("x", 501)}},
			matrix:  [][]float64{{1}},
			wantMsg: "longer than 500 characters",
		},
		{
			name:    "duplicate movie id",
			movies:  []Movie{{ID: 7, Title: "A"}, {ID: 7, Title: "B"}},
			matrix:  [][]float64{{1, 0}, {0, 1}},
			wantMsg: "movie_id 7 appears",
		},
		{
			name:    "too few rows",
			movies:  []Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
			matrix:  [][]float64{{1, 0}},
			wantMsg: "has 1 rows",
		},
		{
			name:    "ragged row",
			movies:  []Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
			matrix:  [][]float64{{1, 0}, {0}},
			wantMsg: "row 1 has 1 columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.movies, tt.matrix)
			if err == nil {
				t.Fatal("New() expected error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestNew_Stats(t *testing.T) {
	movies := []Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "A"}, {ID: 3, Title: "C"}}
	matrix := [][]float64{
		{1.0, 0.5, math.NaN()},
		{0.4, 1.0, 0.2},
		{0.3, 0.2, 1.0},
	}
	ds := mustNew(t, movies, matrix)

	want := Stats{Movies: 3, NaNScores: 1, AsymmetricPairs: 1, DuplicateTitles: 1}
	if got := ds.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestIndex_FirstOccurrence(t *testing.T) {
	movies := []Movie{{ID: 10, Title: "Heat"}, {ID: 11, Title: "Alien"}, {ID: 12, Title: "Heat"}}
	matrix := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	ds := mustNew(t, movies, matrix)

	i, ok := ds.Index("Heat")
	if !ok || i != 0 {
		t.Errorf("Index(Heat) = %d, %v; want 0, true", i, ok)
	}
	if _, ok := ds.Index("heat"); ok {
		t.Error("Index is case-sensitive; lowercase lookup should miss")
	}
	if _, ok := ds.Index("Heat "); ok {
		t.Error("Index must not trim whitespace")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	ds := mustNew(t, sampleMovies(), sampleMatrix())

	row := ds.Row(0)
	row[1] = -1
	if ds.Score(0, 1) != 0.9 {
		t.Error("mutating Row() result changed the dataset")
	}

	movies := ds.Movies()
	movies[0].Title = "Z"
	if ds.Movie(0).Title != "A" {
		t.Error("mutating Movies() result changed the dataset")
	}
}
