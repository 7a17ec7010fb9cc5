// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend ranks catalog movies by precomputed content similarity.
//
// # Algorithm
//
// A request names an anchor title. The first catalog entry whose title equals
// it exactly selects a row of the similarity matrix. Every other movie is
// ranked by its score in that row, highest first, and the leading topN are
// returned as (title, movie_id) pairs.
//
// Ordering rules:
//
//   - The sort is stable, so equal scores keep catalog order.
//   - NaN scores rank after every real score, in catalog order.
//   - The anchor is excluded by index, so a movie that ties or beats the
//     anchor's self-similarity still appears and the anchor never does.
//
// # Usage
//
//	rec, err := recommend.New(ds, recommend.Options{DefaultTopN: 10, MaxTopN: 50}, logger)
//	if err != nil {
//	    return err
//	}
//	results, err := rec.Recommend("Heat", 5)
//	if errors.Is(err, recommend.ErrNotFound) {
//	    // unknown title
//	}
//
// # Thread Safety
//
// A Recommender holds no mutable state. It is safe for concurrent use by any
// number of request handlers.
package recommend
