// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package poster

import (
	"context"
	"sync"

	"github.com/tomtom215/cinematch/internal/metrics"
)

// FetchAll resolves posters for movieIDs using at most the configured number
// of concurrent fetches. out[i] always belongs to movieIDs[i].
//
// Once ctx is done no further fetches start; in-flight fetches observe the
// same ctx and every remaining movie resolves as canceled.
func (f *Fetcher) FetchAll(ctx context.Context, movieIDs []int64) []Resolution {
	out := make([]Resolution, len(movieIDs))
	if len(movieIDs) == 0 {
		return out
	}

	workers := f.concurrency
	if workers > len(movieIDs) {
		workers = len(movieIDs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = f.FetchPoster(ctx, movieIDs[i])
			}
		}()
	}

	dispatched := len(movieIDs)
dispatch:
	for i := range movieIDs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			dispatched = i
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for i := dispatched; i < len(movieIDs); i++ {
		out[i] = Unavailable(movieIDs[i], CauseCanceled, 0)
		metrics.RecordPosterResolution(false, CauseCanceled, 0)
	}
	return out
}
