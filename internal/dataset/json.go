// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/goccy/go-json"
)

// document is the JSON wire shape written by WriteJSON.
type document struct {
	Movies     []Movie     `json:"movies"`
	Similarity [][]float64 `json:"similarity"`
}

// inputDocument is the shape read by ReadJSON. Pointers distinguish an
// absent movie_id or a null cell from a zero value.
type inputDocument struct {
	Movies []struct {
		ID    *int64 `json:"movie_id"`
		Title string `json:"title"`
	} `json:"movies"`
	Similarity [][]*float64 `json:"similarity"`
}

// ReadJSON decodes and validates a JSON dataset from r. A movie without a
// movie_id and a null similarity cell are both rejected.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var doc inputDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode json: trailing data after dataset document")
	}

	movies := make([]Movie, len(doc.Movies))
	for i, m := range doc.Movies {
		if m.ID == nil {
			return nil, invalidf("movie at position %d (%q) has no movie_id", i, m.Title)
		}
		movies[i] = Movie{ID: *m.ID, Title: m.Title}
	}

	matrix := make([][]float64, len(doc.Similarity))
	for i, row := range doc.Similarity {
		matrix[i] = make([]float64, len(row))
		for j, cell := range row {
			if cell == nil {
				return nil, invalidf("similarity cell (%d, %d) is null", i, j)
			}
			matrix[i][j] = *cell
		}
	}
	return New(movies, matrix)
}

// ReadJSONFile reads a JSON dataset from path.
func ReadJSONFile(path string) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	return ReadJSON(bufio.NewReaderSize(f, 1<<20))
}

// WriteJSON encodes ds as a JSON dataset. NaN scores cannot be represented
// in JSON and are rejected.
func WriteJSON(w io.Writer, ds *Dataset) error {
	if ds.Stats().NaNScores > 0 {
		return fmt.Errorf("dataset has %d NaN scores, which JSON cannot encode", ds.Stats().NaNScores)
	}

	doc := document{
		Movies:     ds.movies,
		Similarity: ds.matrix,
	}
	for _, row := range doc.Similarity {
		for _, s := range row {
			if math.IsInf(s, 0) {
				return fmt.Errorf("dataset has infinite scores, which JSON cannot encode")
			}
		}
	}

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
