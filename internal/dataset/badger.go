// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Badger key layout.
const (
	badgerCountKey    = "meta:count"
	badgerMoviePrefix = "movie:"
	badgerRowPrefix   = "row:"
)

func badgerMovieKey(i int) []byte {
	return []byte(fmt.Sprintf("%s%08d", badgerMoviePrefix, i))
}

func badgerRowKey(i int) []byte {
	return []byte(fmt.Sprintf("%s%08d", badgerRowPrefix, i))
}

// ReadBadger loads a dataset from a BadgerDB directory opened read-only.
func ReadBadger(ctx context.Context, path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat badger directory: %w", err)
	}

	opts := badger.DefaultOptions(path).WithReadOnly(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only handle

	var (
		movies []Movie
		matrix [][]float64
	)
	err = db.View(func(txn *badger.Txn) error {
		n, err := readBadgerCount(txn)
		if err != nil {
			return err
		}
		if err := checkBadgerExtent(txn, n); err != nil {
			return err
		}

		movies = make([]Movie, n)
		matrix = newMatrix(n)
		for i := 0; i < n; i++ {
			if i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			if err := readBadgerMovie(txn, i, &movies[i]); err != nil {
				return err
			}
			if err := readBadgerRow(txn, i, matrix[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New(movies, matrix)
}

func readBadgerCount(txn *badger.Txn) (int, error) {
	item, err := txn.Get([]byte(badgerCountKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, invalidf("missing %s key", badgerCountKey)
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", badgerCountKey, err)
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", badgerCountKey, err)
	}
	if len(raw) != 8 {
		return 0, invalidf("%s has %d bytes, want 8", badgerCountKey, len(raw))
	}
	n := binary.BigEndian.Uint64(raw)
	if n == 0 {
		return 0, invalidf("catalog is empty")
	}
	if n > math.MaxInt32 {
		return 0, invalidf("%s is implausibly large: %d", badgerCountKey, n)
	}
	return int(n), nil
}

// checkBadgerExtent confirms the store holds exactly n movies, and that the
// last row has n columns, before anything of size n*n is allocated.
func checkBadgerExtent(txn *badger.Txn, n int) error {
	last := n - 1
	if _, err := txn.Get(badgerMovieKey(last)); errors.Is(err, badger.ErrKeyNotFound) {
		return invalidf("%s is %d but movie at position %d is missing", badgerCountKey, n, last)
	} else if err != nil {
		return fmt.Errorf("get movie %d: %w", last, err)
	}

	item, err := txn.Get(badgerRowKey(last))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return invalidf("%s is %d but similarity row %d is missing", badgerCountKey, n, last)
	}
	if err != nil {
		return fmt.Errorf("get row %d: %w", last, err)
	}
	if size := item.ValueSize(); size != 8*int64(n) {
		return invalidf("similarity row %d has %d columns, want %d", last, size/8, n)
	}

	if _, err := txn.Get(badgerMovieKey(n)); err == nil {
		return invalidf("%s is %d but the store holds more movies", badgerCountKey, n)
	} else if !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("get movie %d: %w", n, err)
	}
	return nil
}

func readBadgerMovie(txn *badger.Txn, i int, m *Movie) error {
	item, err := txn.Get(badgerMovieKey(i))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return invalidf("movie at position %d is missing", i)
	}
	if err != nil {
		return fmt.Errorf("get movie %d: %w", i, err)
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, m); err != nil {
			return invalidf("movie at position %d is not valid JSON: %v", i, err)
		}
		return nil
	})
}

func readBadgerRow(txn *badger.Txn, i int, row []float64) error {
	item, err := txn.Get(badgerRowKey(i))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return invalidf("similarity row %d is missing", i)
	}
	if err != nil {
		return fmt.Errorf("get row %d: %w", i, err)
	}
	return item.Value(func(val []byte) error {
		if len(val) != 8*len(row) {
			return invalidf("similarity row %d has %d columns, want %d", i, len(val)/8, len(row))
		}
		for j := range row {
			row[j] = math.Float64frombits(binary.LittleEndian.Uint64(val[8*j:]))
		}
		return nil
	})
}

// WriteBadger creates a BadgerDB directory at path holding ds.
// The directory must not exist or must be empty.
func WriteBadger(ctx context.Context, path string, ds *Dataset) (err error) {
	if entries, readErr := os.ReadDir(path); readErr == nil && len(entries) > 0 {
		return fmt.Errorf("%s is not empty", path)
	}

	opts := badger.DefaultOptions(path).WithSyncWrites(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("open BadgerDB: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close BadgerDB: %w", closeErr)
		}
	}()

	wb := db.NewWriteBatch()
	defer wb.Cancel()

	count := make([]byte, 8)
	binary.BigEndian.PutUint64(count, uint64(ds.Len()))
	if err := wb.Set([]byte(badgerCountKey), count); err != nil {
		return fmt.Errorf("write %s: %w", badgerCountKey, err)
	}

	for i, m := range ds.movies {
		if err := ctx.Err(); err != nil {
			return err
		}

		encoded, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode movie %d: %w", m.ID, err)
		}
		if err := wb.Set(badgerMovieKey(i), encoded); err != nil {
			return fmt.Errorf("write movie %d: %w", m.ID, err)
		}

		row := make([]byte, 8*ds.Len())
		for j, score := range ds.matrix[i] {
			binary.LittleEndian.PutUint64(row[8*j:], math.Float64bits(score))
		}
		if err := wb.Set(badgerRowKey(i), row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
