// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Command datasetctl converts a JSON dataset into the DuckDB or BadgerDB
// layout read by the server. The input is validated with the same rules the
// server applies at startup, so a converted dataset always loads.
//
//	datasetctl -in movies.json -out movies.duckdb
//	datasetctl -in movies.json -out /data/movies.badger -format badger
//	datasetctl -in movies.duckdb -check
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCfg := logging.DefaultConfig()
	logCfg.Format = "console"
	logging.Init(logCfg)

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logging.Error().Err(err).Msg("datasetctl failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("datasetctl", flag.ContinueOnError)
	fs.SetOutput(stdout)
	in := fs.String("in", "", "input dataset (json, duckdb, or badger)")
	inFormat := fs.String("in-format", "", "input format; inferred from -in when empty")
	out := fs.String("out", "", "output path")
	format := fs.String("format", "", "output format: json, duckdb, badger; inferred from -out when empty")
	check := fs.Bool("check", false, "validate the input and print its statistics without writing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" {
		return errors.New("-in is required")
	}
	if !*check && *out == "" {
		return errors.New("-out is required unless -check is set")
	}

	ds, err := dataset.Load(ctx, dataset.Source{Path: *in, Format: dataset.Format(*inFormat)})
	if err != nil {
		return err
	}

	stats := ds.Stats()
	fmt.Fprintf(stdout, "movies=%d nan_scores=%d asymmetric_pairs=%d duplicate_titles=%d\n",
		stats.Movies, stats.NaNScores, stats.AsymmetricPairs, stats.DuplicateTitles)
	if *check {
		return nil
	}

	target := dataset.Format(*format)
	if target == "" {
		if target, err = dataset.FormatForOutput(*out); err != nil {
			return err
		}
	}

	if err := write(ctx, target, *out, ds); err != nil {
		return err
	}
	logging.Info().Str("out", *out).Str("format", string(target)).Int("movies", stats.Movies).Msg("Dataset written")
	return nil
}

func write(ctx context.Context, format dataset.Format, path string, ds *dataset.Dataset) error {
	switch format {
	case dataset.FormatDuckDB:
		return dataset.WriteDuckDB(ctx, path, ds)
	case dataset.FormatBadger:
		return dataset.WriteBadger(ctx, path, ds)
	case dataset.FormatJSON:
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // operator-supplied path
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := dataset.WriteJSON(f, ds); err != nil {
			f.Close() //nolint:errcheck // already failing
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unsupported dataset format %q", format)
	}
}
