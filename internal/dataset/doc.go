// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package dataset loads the precomputed movie catalog and similarity matrix.
//
// A Dataset is built once at startup and never mutated. Loading fails on any
// malformed input so the server never starts with a partial dataset.
//
// # Formats
//
// JSON (a single document):
//
//	{
//	  "movies": [{"movie_id": 19995, "title": "Avatar"}, ...],
//	  "similarity": [[1.0, 0.12, ...], ...]
//	}
//
// Every movie needs a movie_id and every cell a number. A missing id or a
// null cell is rejected.
//
// DuckDB (a database file, opened read-only):
//
//	CREATE TABLE movies (position INTEGER, movie_id BIGINT, title VARCHAR);
//	CREATE TABLE similarity (row_idx INTEGER, col_idx INTEGER, score DOUBLE);
//
// A NULL score is loaded as NaN.
//
// BadgerDB (a directory, opened read-only):
//
//	meta:count        8-byte big-endian movie count
//	movie:<position>  JSON-encoded Movie
//	row:<position>    count little-endian IEEE-754 float64 values
//
// Format is inferred from the path when not given: a directory is Badger,
// .json is JSON, .duckdb/.ddb/.db is DuckDB.
//
// The datasetctl command converts a JSON dataset to the other two formats.
package dataset
