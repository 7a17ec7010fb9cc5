// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/cinematch/internal/dataset"
)

const sampleJSON = `{
  "movies": [
    {"movie_id": 1, "title": "A"},
    {"movie_id": 2, "title": "B"},
    {"movie_id": 3, "title": "C"}
  ],
  "similarity": [
    [1.0, 0.9, 0.2],
    [0.9, 1.0, 0.4],
    [0.2, 0.4, 1.0]
  ]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Convert(t *testing.T) {
	in := writeSample(t)
	outDir := t.TempDir()

	tests := []struct {
		name string
		out  string
		args []string
	}{
		{"duckdb by extension", filepath.Join(outDir, "movies.duckdb"), nil},
		{"badger by flag", filepath.Join(outDir, "store"), []string{"-format", "badger"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			args := append([]string{"-in", in, "-out", tt.out}, tt.args...)
			if err := run(context.Background(), args, &stdout); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			if !strings.Contains(stdout.String(), "movies=3") {
				t.Errorf("stdout = %q", stdout.String())
			}

			ds, err := dataset.Load(context.Background(), dataset.Source{Path: tt.out})
			if err != nil {
				t.Fatalf("Load(converted) error = %v", err)
			}
			if ds.Len() != 3 || ds.Score(1, 2) != 0.4 {
				t.Errorf("converted dataset len = %d, score(1,2) = %v", ds.Len(), ds.Score(1, 2))
			}
		})
	}
}

func TestRun_Check(t *testing.T) {
	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-in", writeSample(t), "-check"}, &stdout); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "asymmetric_pairs=0") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_Errors(t *testing.T) {
	in := writeSample(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"movies": [], "similarity": []}`), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing in", []string{"-out", "x.duckdb"}},
		{"missing out", []string{"-in", in}},
		{"invalid dataset", []string{"-in", bad, "-check"}},
		{"unknown output extension", []string{"-in", in, "-out", filepath.Join(t.TempDir(), "x.parquet")}},
		{"unknown flag", []string{"-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), tt.args, &bytes.Buffer{}); err == nil {
				t.Error("run() expected error")
			}
		})
	}
}
