// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation provides request validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide so struct metadata is
// cached once. The custom "movietitle" rule rejects blank titles and titles
// with control characters.
//
//	type recommendRequest struct {
//	    Title string `query:"title" validate:"required,movietitle,max=500"`
//	    Count int    `query:"k" validate:"gte=0,lte=50"`
//	}
package validation
