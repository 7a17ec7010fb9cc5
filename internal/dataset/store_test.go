// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
)

func nanDataset(t *testing.T) *Dataset {
	t.Helper()
	matrix := sampleMatrix()
	matrix[2][3] = math.NaN()
	return mustNew(t, sampleMovies(), matrix)
}

func TestDuckDB_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "movies.duckdb")
	want := nanDataset(t)

	if err := WriteDuckDB(ctx, path, want); err != nil {
		t.Fatalf("WriteDuckDB() error = %v", err)
	}
	got, err := ReadDuckDB(ctx, path)
	if err != nil {
		t.Fatalf("ReadDuckDB() error = %v", err)
	}
	assertSameDataset(t, got, want)
	if got.Stats().NaNScores != 1 {
		t.Errorf("NaNScores = %d, want 1", got.Stats().NaNScores)
	}
}

func TestWriteDuckDB_RefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.duckdb")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteDuckDB(context.Background(), path, nanDataset(t)); err == nil {
		t.Error("WriteDuckDB() expected error for existing file")
	}
}

func TestReadDuckDB_MissingCell(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "movies.duckdb")
	if err := WriteDuckDB(ctx, path, nanDataset(t)); err != nil {
		t.Fatalf("WriteDuckDB() error = %v", err)
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM similarity WHERE row_idx = 1 AND col_idx = 2`); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	_, err = ReadDuckDB(ctx, path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ReadDuckDB() error = %v, want *ValidationError", err)
	}
}

func TestReadDuckDB_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.duckdb")
	if _, err := ReadDuckDB(context.Background(), path); err == nil {
		t.Error("ReadDuckDB() expected error for missing file")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("ReadDuckDB() must not create a missing file")
	}
}

func TestBadger_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "movies.badger")
	want := nanDataset(t)

	if err := WriteBadger(ctx, dir, want); err != nil {
		t.Fatalf("WriteBadger() error = %v", err)
	}
	got, err := ReadBadger(ctx, dir)
	if err != nil {
		t.Fatalf("ReadBadger() error = %v", err)
	}
	assertSameDataset(t, got, want)
}

func TestReadBadger_ShortRow(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "movies.badger")
	if err := WriteBadger(ctx, dir, nanDataset(t)); err != nil {
		t.Fatalf("WriteBadger() error = %v", err)
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatal(err)
	}
	err = db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerRowKey(2), make([]byte, 8))
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	_, err = ReadBadger(ctx, dir)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ReadBadger() error = %v, want *ValidationError", err)
	}
}

func TestReadBadger_CountMismatch(t *testing.T) {
	setCount := func(n uint64) func(txn *badger.Txn) error {
		return func(txn *badger.Txn) error {
			raw := make([]byte, 8)
			binary.BigEndian.PutUint64(raw, n)
			return txn.Set([]byte(badgerCountKey), raw)
		}
	}

	tests := []struct {
		name    string
		corrupt func(n int) func(txn *badger.Txn) error
		wantMsg string
	}{
		{
			name:    "count far beyond stored movies",
			corrupt: func(int) func(txn *badger.Txn) error { return setCount(1 << 30) },
			wantMsg: "movie at position 1073741823 is missing",
		},
		{
			name:    "count below stored movies",
			corrupt: func(n int) func(txn *badger.Txn) error { return setCount(uint64(n - 1)) },
			wantMsg: "holds more movies",
		},
		{
			name: "last row missing",
			corrupt: func(n int) func(txn *badger.Txn) error {
				return func(txn *badger.Txn) error { return txn.Delete(badgerRowKey(n - 1)) }
			},
			wantMsg: "similarity row 3 is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			dir := filepath.Join(t.TempDir(), "movies.badger")
			ds := nanDataset(t)
			if err := WriteBadger(ctx, dir, ds); err != nil {
				t.Fatalf("WriteBadger() error = %v", err)
			}

			opts := badger.DefaultOptions(dir)
			opts.Logger = nil
			db, err := badger.Open(opts)
			if err != nil {
				t.Fatal(err)
			}
			if err := db.Update(tt.corrupt(ds.Len())); err != nil {
				t.Fatal(err)
			}
			if err := db.Close(); err != nil {
				t.Fatal(err)
			}

			_, err = ReadBadger(ctx, dir)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ReadBadger() error = %v, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("ReadBadger() error = %q, want substring %q", err, tt.wantMsg)
			}
		})
	}
}

func TestWriteBadger_RefusesNonEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "keep"), nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteBadger(context.Background(), dir, nanDataset(t)); err == nil {
		t.Error("WriteBadger() expected error for non-empty directory")
	}
}
