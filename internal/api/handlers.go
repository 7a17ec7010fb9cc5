// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"time"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/poster"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// Recommender is the subset of *recommend.Recommender used by handlers.
type Recommender interface {
	Titles() []string
	Lookup(title string) (dataset.Movie, int, bool)
	EffectiveTopN(topN int) int
	RecommendWithScores(title string, topN int) ([]recommend.ScoredRecommendation, error)
}

// BreakerReporter is implemented by resolvers that carry a circuit breaker.
type BreakerReporter interface {
	BreakerState() string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: Response and parameter helpers
//   - handlers_health.go: Health endpoints
//   - handlers_movies.go: Catalog, recommendation, and poster endpoints
type Handler struct {
	recommender Recommender
	posters     poster.Resolver
	gridColumns int

	// posterTimeout bounds the poster fan-out of one recommendations request.
	posterTimeout time.Duration
	startTime     time.Time
}

// DefaultPosterTimeout applies when RecommendConfig.PosterTimeout is unset.
const DefaultPosterTimeout = 10 * time.Second

// NewHandler creates a Handler. A nil resolver serves every poster as
// unavailable.
func NewHandler(rec Recommender, posters poster.Resolver, cfg *config.RecommendConfig) *Handler {
	if posters == nil {
		posters = poster.Disabled{}
	}
	columns := 5
	posterTimeout := DefaultPosterTimeout
	if cfg != nil {
		if cfg.GridColumns > 0 {
			columns = cfg.GridColumns
		}
		if cfg.PosterTimeout > 0 {
			posterTimeout = cfg.PosterTimeout
		}
	}
	return &Handler{
		recommender:   rec,
		posters:       posters,
		gridColumns:   columns,
		posterTimeout: posterTimeout,
		startTime:     time.Now(),
	}
}

func (h *Handler) posterFetching() string {
	if _, disabled := h.posters.(poster.Disabled); disabled {
		return "disabled"
	}
	return "enabled"
}

func (h *Handler) breakerState() string {
	if reporter, ok := h.posters.(BreakerReporter); ok {
		return reporter.BreakerState()
	}
	return "disabled"
}
