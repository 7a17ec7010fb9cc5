// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name    string
		path    string
		want    Format
		wantErr bool
	}{
		{"json", touch("movies.json"), FormatJSON, false},
		{"json upper", touch("MOVIES.JSON"), FormatJSON, false},
		{"duckdb", touch("movies.duckdb"), FormatDuckDB, false},
		{"ddb", touch("movies.ddb"), FormatDuckDB, false},
		{"directory", dir, FormatBadger, false},
		{"unknown extension", touch("movies.csv"), "", true},
		{"missing", filepath.Join(dir, "missing.json"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(f, mustNew(t, sampleMovies(), sampleMatrix())); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	ds, err := Load(context.Background(), Source{Path: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Len() != 4 {
		t.Errorf("Len() = %d, want 4", ds.Len())
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	if _, err := Load(context.Background(), Source{Path: "x", Format: "parquet"}); err == nil {
		t.Error("Load() expected error for unsupported format")
	}
}

func TestFormatForOutput(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out/movies.json", FormatJSON, false},
		{"out/movies.db", FormatDuckDB, false},
		{"out/movies.badger", FormatBadger, false},
		{"out/movies", FormatBadger, false},
		{"out/movies.parquet", "", true},
	}
	for _, tt := range tests {
		got, err := FormatForOutput(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatForOutput(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("FormatForOutput(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
