// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// @title Cinematch API
// @version 1.0
// @description Content-based movie recommendations with poster art.
// @description
// @description ## Recommendations
// @description
// @description Pick a title from `/movies` and request `/recommendations?title=...&k=...`.
// @description Results are ranked by precomputed similarity, highest first. The queried movie is never returned.
// @description
// @description ## Posters
// @description
// @description Posters come from The Movie Database. A poster that cannot be resolved is returned as
// @description `poster_url: null` with a placeholder string; it never fails the request.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "NOT_FOUND",
// @description     "message": "Title not found in catalog"
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-01-18T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/cinematch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health checks
//
// @tag.name Movies
// @tag.description Catalog, recommendations, and posters
package main
