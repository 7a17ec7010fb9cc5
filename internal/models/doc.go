// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package models defines the JSON shapes served by the HTTP API.

Key Components:

  - APIResponse: Standard response wrapper with status, data, metadata, error
  - HealthStatus: Health endpoint payload
  - MovieList: Catalog titles for the selection control
  - Recommendations: Ranked results with poster resolutions and a grid layout
  - PosterResult: A single poster resolution

Scores are pointers because NaN has no JSON encoding; a NaN similarity is
served as null.
*/
package models
