// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// ErrNotFound is returned when no catalog title matches the request exactly.
var ErrNotFound = errors.New("title not found in catalog")

// Options bounds the size of a recommendation list.
type Options struct {
	// DefaultTopN is used when a caller passes topN <= 0.
	DefaultTopN int

	// MaxTopN caps any requested topN.
	MaxTopN int
}

// DefaultOptions returns the stock list sizes.
func DefaultOptions() Options {
	return Options{DefaultTopN: 10, MaxTopN: 50}
}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	if o.DefaultTopN < 1 {
		return fmt.Errorf("default top_n must be positive, got %d", o.DefaultTopN)
	}
	if o.MaxTopN < o.DefaultTopN {
		return fmt.Errorf("max_top_n (%d) must be >= top_n (%d)", o.MaxTopN, o.DefaultTopN)
	}
	return nil
}

// Recommendation is one ranked result.
type Recommendation struct {
	Title   string `json:"title"`
	MovieID int64  `json:"movie_id"`
}

// ScoredRecommendation carries the similarity score and 1-based rank of a
// Recommendation. Score may be NaN.
type ScoredRecommendation struct {
	Recommendation
	Score float64
	Rank  int
}

// Recommender answers similarity queries over an immutable dataset.
type Recommender struct {
	ds     *dataset.Dataset
	opts   Options
	logger zerolog.Logger
}

// New creates a Recommender over ds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(ds *dataset.Dataset, opts Options, logger zerolog.Logger) (*Recommender, error) {
	if ds == nil {
		return nil, errors.New("dataset is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Recommender{
		ds:     ds,
		opts:   opts,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Titles returns every catalog title in catalog order.
func (r *Recommender) Titles() []string {
	return r.ds.Titles()
}

// Lookup resolves title to its anchor movie and catalog position.
func (r *Recommender) Lookup(title string) (dataset.Movie, int, bool) {
	idx, ok := r.ds.Index(title)
	if !ok {
		return dataset.Movie{}, -1, false
	}
	return r.ds.Movie(idx), idx, true
}

// EffectiveTopN applies the default and the cap to a requested list size.
func (r *Recommender) EffectiveTopN(topN int) int {
	if topN <= 0 {
		return r.opts.DefaultTopN
	}
	if topN > r.opts.MaxTopN {
		return r.opts.MaxTopN
	}
	return topN
}

// Recommend returns up to topN movies most similar to title, best first.
func (r *Recommender) Recommend(title string, topN int) ([]Recommendation, error) {
	scored, err := r.RecommendWithScores(title, topN)
	if err != nil {
		return nil, err
	}
	out := make([]Recommendation, len(scored))
	for i := range scored {
		out[i] = scored[i].Recommendation
	}
	return out, nil
}

// RecommendWithScores is Recommend with each result's score and rank.
func (r *Recommender) RecommendWithScores(title string, topN int) ([]ScoredRecommendation, error) {
	start := time.Now()

	anchor, ok := r.ds.Index(title)
	if !ok {
		metrics.RecordRecommendation(false, time.Since(start))
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}

	ranked := r.rank(anchor)
	if n := r.EffectiveTopN(topN); len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]ScoredRecommendation, len(ranked))
	for i, idx := range ranked {
		m := r.ds.Movie(idx)
		out[i] = ScoredRecommendation{
			Recommendation: Recommendation{Title: m.Title, MovieID: m.ID},
			Score:          r.ds.Score(anchor, idx),
			Rank:           i + 1,
		}
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation(true, elapsed)
	r.logger.Debug().
		Str("title", title).
		Int("anchor", anchor).
		Int("returned", len(out)).
		Dur("elapsed", elapsed).
		Msg("recommendations ranked")

	return out, nil
}

// rank orders every catalog position except anchor by descending score in
// the anchor's row.
func (r *Recommender) rank(anchor int) []int {
	n := r.ds.Len()
	if n <= 1 {
		return nil
	}

	indices := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != anchor {
			indices = append(indices, i)
		}
	}

	sort.SliceStable(indices, func(a, b int) bool {
		return scoreLess(r.ds.Score(anchor, indices[a]), r.ds.Score(anchor, indices[b]))
	})
	return indices
}

// scoreLess orders a before b when a is the higher score. NaN sorts after
// every number and is equivalent to other NaNs.
func scoreLess(a, b float64) bool {
	switch {
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	default:
		return a > b
	}
}
