// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/poster"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Movies lists every catalog title.
//
// @Summary List catalog titles
// @Description Returns every movie title in catalog order, duplicates included, for populating a selection control.
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.MovieList} "Titles retrieved successfully"
// @Router /movies [get]
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	titles := h.recommender.Titles()
	respondSuccess(w, models.MovieList{Titles: titles, Count: len(titles)}, start)
}

// Recommendations returns the movies most similar to a title, with posters.
//
// @Summary Get similar movies
// @Description Ranks every other catalog movie by similarity to the first movie whose title matches exactly. Each result carries a poster URL, or null plus a placeholder when the poster cannot be resolved.
// @Tags Movies
// @Produce json
// @Param title query string true "Exact catalog title"
// @Param k query int false "Number of results (default from config, clamped to max)"
// @Success 200 {object} models.APIResponse{data=models.Recommendations} "Recommendations retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 404 {object} models.APIResponse "Title not in catalog"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	k, err := parseIntQuery(r, "k", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	req := RecommendationsRequest{
		Title: r.URL.Query().Get("title"),
		K:     k,
	}
	if !validateRequest(w, &req) {
		return
	}

	anchor, _, _ := h.recommender.Lookup(req.Title)
	ranked, err := h.recommender.RecommendWithScores(req.Title, req.K)
	if errors.Is(err, recommend.ErrNotFound) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Title not found in catalog", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Failed to rank recommendations", err)
		return
	}

	ids := make([]int64, len(ranked))
	for i, rec := range ranked {
		ids[i] = rec.MovieID
	}
	posterCtx, cancel := context.WithTimeout(r.Context(), h.posterTimeout)
	resolutions := h.posters.FetchAll(posterCtx, ids)
	cancel()

	items := make([]models.RecommendationItem, len(ranked))
	unavailable := 0
	for i, rec := range ranked {
		items[i] = models.RecommendationItem{
			Rank:    rec.Rank,
			Title:   rec.Title,
			MovieID: rec.MovieID,
			Score:   scorePtr(rec.Score),
		}
		if res := resolutions[i]; res.Available {
			items[i].PosterURL = stringPtr(res.URL)
		} else {
			items[i].PosterPlaceholder = models.PosterPlaceholder
			unavailable++
		}
	}

	logging.Ctx(r.Context()).Info().
		Str("title", sanitizeLogValue(req.Title)).
		Int("returned", len(items)).
		Int("posters_unavailable", unavailable).
		Dur("elapsed", time.Since(start)).
		Msg("Recommendations served")

	respondSuccess(w, models.Recommendations{
		Anchor:  models.MovieRef{Title: anchor.Title, MovieID: anchor.ID},
		K:       h.recommender.EffectiveTopN(req.K),
		Items:   items,
		Grid:    gridRows(items, h.gridColumns),
		Columns: h.gridColumns,
	}, start)
}

// Poster resolves a single movie poster.
//
// @Summary Resolve a movie poster
// @Description Fetches movie details from the metadata API with bounded retries and returns the poster URL, or null with a failure cause. Never returns an upstream error status.
// @Tags Movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} models.APIResponse{data=models.PosterResult} "Poster resolution"
// @Failure 400 {object} models.APIResponse "Invalid movie ID"
// @Router /movies/{id}/poster [get]
func (h *Handler) Poster(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "id must be an integer", nil)
		return
	}
	req := PosterRequest{MovieID: id}
	if !validateRequest(w, &req) {
		return
	}

	res := h.posters.FetchPoster(r.Context(), req.MovieID)
	respondSuccess(w, posterResult(res), start)
}

func posterResult(res poster.Resolution) models.PosterResult {
	out := models.PosterResult{
		MovieID:   res.MovieID,
		Available: res.Available,
		Cause:     res.Cause,
		Attempts:  res.Attempts,
	}
	if res.Available {
		out.PosterURL = stringPtr(res.URL)
	} else {
		out.PosterPlaceholder = models.PosterPlaceholder
	}
	return out
}

// gridRows splits items into rows of columns, preserving rank order.
func gridRows(items []models.RecommendationItem, columns int) [][]models.RecommendationItem {
	if columns < 1 {
		columns = 1
	}
	rows := make([][]models.RecommendationItem, 0, (len(items)+columns-1)/columns)
	for start := 0; start < len(items); start += columns {
		end := start + columns
		if end > len(items) {
			end = len(items)
		}
		rows = append(rows, items[start:end])
	}
	return rows
}
