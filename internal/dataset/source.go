// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Format identifies a dataset encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatDuckDB Format = "duckdb"
	FormatBadger Format = "badger"
)

// Source locates a dataset on disk.
type Source struct {
	Path string

	// Format may be empty, in which case it is inferred from Path.
	Format Format
}

// DetectFormat infers the dataset format from path.
func DetectFormat(path string) (Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat dataset: %w", err)
	}
	if info.IsDir() {
		return FormatBadger, nil
	}

	if format, ok := formatFromExt(path); ok && format != FormatBadger {
		return format, nil
	}
	return "", fmt.Errorf("cannot infer dataset format from %q; set DATASET_FORMAT", path)
}

// FormatForOutput infers the format of a dataset that does not exist yet.
// A path with no extension, or ending in .badger, is a BadgerDB directory.
func FormatForOutput(path string) (Format, error) {
	if format, ok := formatFromExt(path); ok {
		return format, nil
	}
	return "", fmt.Errorf("cannot infer dataset format from %q", path)
}

func formatFromExt(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".duckdb", ".ddb", ".db":
		return FormatDuckDB, true
	case ".badger", "":
		return FormatBadger, true
	default:
		return "", false
	}
}

// Load reads, validates, and reports on the dataset described by src.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	format := src.Format
	if format == "" {
		detected, err := DetectFormat(src.Path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	start := time.Now()

	var (
		ds  *Dataset
		err error
	)
	switch format {
	case FormatJSON:
		ds, err = ReadJSONFile(src.Path)
	case FormatDuckDB:
		ds, err = ReadDuckDB(ctx, src.Path)
	case FormatBadger:
		ds, err = ReadBadger(ctx, src.Path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s dataset %s: %w", format, src.Path, err)
	}

	elapsed := time.Since(start)
	stats := ds.Stats()
	metrics.RecordDatasetLoad(string(format), stats.Movies, stats.NaNScores, elapsed)

	logger := logging.WithComponent("dataset")
	logger.Info().
		Str("path", src.Path).
		Str("format", string(format)).
		Int("movies", stats.Movies).
		Dur("elapsed", elapsed).
		Msg("Dataset loaded")

	if stats.NaNScores > 0 {
		logger.Warn().Int("nan_scores", stats.NaNScores).Msg("Similarity matrix contains NaN scores; they rank last")
	}
	if stats.AsymmetricPairs > 0 {
		logger.Warn().Int("asymmetric_pairs", stats.AsymmetricPairs).Msg("Similarity matrix is not symmetric")
	}
	if stats.DuplicateTitles > 0 {
		logger.Info().Int("duplicate_titles", stats.DuplicateTitles).Msg("Catalog has repeated titles; lookups use the first")
	}

	return ds, nil
}
