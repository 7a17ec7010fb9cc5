// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	// DuckDB driver for the columnar dataset format
	_ "github.com/duckdb/duckdb-go/v2"
)

var duckDBSchema = []string{
	`CREATE TABLE movies (
		position INTEGER PRIMARY KEY,
		movie_id BIGINT NOT NULL UNIQUE,
		title    VARCHAR NOT NULL
	)`,
	`CREATE TABLE similarity (
		row_idx INTEGER NOT NULL,
		col_idx INTEGER NOT NULL,
		score   DOUBLE
	)`,
}

// ReadDuckDB loads a dataset from a DuckDB database file opened read-only.
func ReadDuckDB(ctx context.Context, path string) (*Dataset, error) {
	// DuckDB creates missing files, so check first to fail loudly on typos.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat duckdb file: %w", err)
	}

	db, err := sql.Open("duckdb", path+"?access_mode=read_only&autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only handle

	movies, err := readDuckDBMovies(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, invalidf("movies table is empty")
	}

	matrix, err := readDuckDBSimilarity(ctx, db, len(movies))
	if err != nil {
		return nil, err
	}
	return New(movies, matrix)
}

func readDuckDBMovies(ctx context.Context, db *sql.DB) ([]Movie, error) {
	rows, err := db.QueryContext(ctx, `SELECT position, movie_id, title FROM movies ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err checked below

	var movies []Movie
	for rows.Next() {
		var (
			position int64
			id       int64
			title    sql.NullString
		)
		if err := rows.Scan(&position, &id, &title); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		if position != int64(len(movies)) {
			return nil, invalidf("movies.position %d out of sequence; positions must run 0..n-1 (expected %d)", position, len(movies))
		}
		if !title.Valid {
			return nil, invalidf("movie at position %d has a NULL title", position)
		}
		movies = append(movies, Movie{ID: id, Title: title.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

func readDuckDBSimilarity(ctx context.Context, db *sql.DB, n int) ([][]float64, error) {
	matrix := newMatrix(n)
	filled := make([]bool, n*n)

	rows, err := db.QueryContext(ctx, `SELECT row_idx, col_idx, score FROM similarity`)
	if err != nil {
		return nil, fmt.Errorf("query similarity: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err checked below

	cells := 0
	for rows.Next() {
		var (
			i, j  int64
			score sql.NullFloat64
		)
		if err := rows.Scan(&i, &j, &score); err != nil {
			return nil, fmt.Errorf("scan similarity: %w", err)
		}
		if i < 0 || j < 0 || i >= int64(n) || j >= int64(n) {
			return nil, invalidf("similarity cell (%d, %d) is outside the %dx%d matrix", i, j, n, n)
		}
		k := int(i)*n + int(j)
		if filled[k] {
			return nil, invalidf("similarity cell (%d, %d) appears more than once", i, j)
		}
		filled[k] = true
		cells++

		if score.Valid {
			matrix[i][j] = score.Float64
		} else {
			matrix[i][j] = math.NaN()
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate similarity: %w", err)
	}

	if cells != n*n {
		for k, ok := range filled {
			if !ok {
				return nil, invalidf("similarity cell (%d, %d) is missing; table has %d of %d cells", k/n, k%n, cells, n*n)
			}
		}
	}
	return matrix, nil
}

// WriteDuckDB creates a new DuckDB database file at path holding ds.
// It refuses to overwrite an existing file.
func WriteDuckDB(ctx context.Context, path string, ds *Dataset) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, statErr)
	}

	db, err := sql.Open("duckdb", path+"?access_mode=read_write&autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close duckdb: %w", closeErr)
		}
	}()

	for _, ddl := range duckDBSchema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := insertDuckDBMovies(ctx, tx, ds); err != nil {
		return err
	}
	if err := insertDuckDBSimilarity(ctx, tx, ds); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertDuckDBMovies(ctx context.Context, tx *sql.Tx, ds *Dataset) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO movies (position, movie_id, title) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare movies insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // closed with tx

	for i, m := range ds.movies {
		if _, err := stmt.ExecContext(ctx, i, m.ID, m.Title); err != nil {
			return fmt.Errorf("insert movie %d: %w", m.ID, err)
		}
	}
	return nil
}

// insertDuckDBSimilarity writes one matrix row per statement.
func insertDuckDBSimilarity(ctx context.Context, tx *sql.Tx, ds *Dataset) error {
	n := ds.Len()
	query := "INSERT INTO similarity (row_idx, col_idx, score) VALUES " +
		strings.TrimSuffix(strings.Repeat("(?, ?, ?), ", n), ", ")

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare similarity insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // closed with tx

	args := make([]interface{}, 3*n)
	for i, row := range ds.matrix {
		for j, score := range row {
			args[3*j] = i
			args[3*j+1] = j
			args[3*j+2] = score
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert similarity row %d: %w", i, err)
		}
	}
	return nil
}

// newMatrix allocates an n x n matrix over one contiguous backing array.
func newMatrix(n int) [][]float64 {
	backing := make([]float64, n*n)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = backing[i*n : (i+1)*n : (i+1)*n]
	}
	return matrix
}
