// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package poster

import (
	"context"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// fakeDoer answers every request with respond and counts attempts.
type fakeDoer struct {
	calls   atomic.Int32
	respond func(n int, req *http.Request) (*http.Response, error)
}

func (d *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	n := int(d.calls.Add(1))
	return d.respond(n, req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func statusDoer(status int) *fakeDoer {
	return &fakeDoer{respond: func(int, *http.Request) (*http.Response, error) {
		return jsonResponse(status, `{"status_message":"nope"}`), nil
	}}
}

func testTMDBConfig(baseURL string) *config.TMDBConfig {
	return &config.TMDBConfig{
		BaseURL:               baseURL,
		ImageBaseURL:          "https://image.tmdb.org/t/p",
		PosterSize:            "w500",
		APIKey:                "test-key",
		Timeout:               time.Second,
		MaxAttempts:           3,
		RetryMaxDelay:         10 * time.Millisecond,
		RetryOnTransportError: true,
		Concurrency:           4,
		Burst:                 1,
	}
}

func newTestFetcher(t *testing.T, doer Doer, opts ...Option) *Fetcher {
	t.Helper()
	all := append([]Option{WithDoer(doer), WithLogger(zerolog.Nop())}, opts...)
	f, err := NewFetcher(testTMDBConfig("https://api.themoviedb.org/3"), all...)
	if err != nil {
		t.Fatalf("NewFetcher() error = %v", err)
	}
	f.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return f
}

func TestFetchPoster_Success(t *testing.T) {
	var gotURL string
	doer := &fakeDoer{respond: func(_ int, req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return jsonResponse(http.StatusOK, `{"id":603,"title":"The Matrix","poster_path":"/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg"}`), nil
	}}
	f := newTestFetcher(t, doer)

	res := f.FetchPoster(context.Background(), 603)

	if !res.Available {
		t.Fatalf("FetchPoster() unavailable, cause %q", res.Cause)
	}
	if want := "https://image.tmdb.org/t/p/w500/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg"; res.URL != want {
		t.Errorf("URL = %q, want %q", res.URL, want)
	}
	if res.Attempts != 1 || doer.calls.Load() != 1 {
		t.Errorf("attempts = %d, calls = %d; want 1, 1", res.Attempts, doer.calls.Load())
	}
	if want := "https://api.themoviedb.org/3/movie/603?api_key=test-key"; gotURL != want {
		t.Errorf("request URL = %q, want %q", gotURL, want)
	}
}

func TestFetchPoster_MissingPosterPath(t *testing.T) {
	bodies := map[string]string{
		"absent": `{"id":1,"title":"X"}`,
		"null":   `{"id":1,"title":"X","poster_path":null}`,
		"empty":  `{"id":1,"title":"X","poster_path":""}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			doer := &fakeDoer{respond: func(int, *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, body), nil
			}}
			res := newTestFetcher(t, doer).FetchPoster(context.Background(), 1)

			if res.Available || res.URL != "" {
				t.Errorf("FetchPoster() = %+v, want unavailable", res)
			}
			if res.Cause != CauseNoPoster {
				t.Errorf("Cause = %q, want %q", res.Cause, CauseNoPoster)
			}
		})
	}
}

func TestFetchPoster_ServiceUnavailableExhaustsAttempts(t *testing.T) {
	before := testutil.ToFloat64(metrics.PosterAttemptsTotal.WithLabelValues("retryable_status"))

	doer := statusDoer(http.StatusServiceUnavailable)
	res := newTestFetcher(t, doer).FetchPoster(context.Background(), 42)

	if res.Available {
		t.Fatal("FetchPoster() available after persistent 503")
	}
	if got := doer.calls.Load(); got != 3 {
		t.Errorf("attempts made = %d, want exactly 3", got)
	}
	if res.Attempts != 3 || res.Cause != CauseStatus {
		t.Errorf("Resolution = %+v", res)
	}

	after := testutil.ToFloat64(metrics.PosterAttemptsTotal.WithLabelValues("retryable_status"))
	if after-before != 3 {
		t.Errorf("retryable_status attempts metric grew by %v, want 3", after-before)
	}
}

func TestFetchPoster_NotFoundSingleAttempt(t *testing.T) {
	doer := statusDoer(http.StatusNotFound)
	res := newTestFetcher(t, doer).FetchPoster(context.Background(), 42)

	if res.Available || res.Cause != CauseStatus {
		t.Errorf("Resolution = %+v", res)
	}
	if got := doer.calls.Load(); got != 1 {
		t.Errorf("attempts made = %d, want exactly 1", got)
	}
}

func TestFetchPoster_RecoversAfterRetry(t *testing.T) {
	doer := &fakeDoer{respond: func(n int, _ *http.Request) (*http.Response, error) {
		if n == 1 {
			return jsonResponse(http.StatusBadGateway, ``), nil
		}
		return jsonResponse(http.StatusOK, `{"poster_path":"/p.jpg"}`), nil
	}}
	res := newTestFetcher(t, doer).FetchPoster(context.Background(), 7)

	if !res.Available || res.Attempts != 2 {
		t.Errorf("Resolution = %+v, want available after 2 attempts", res)
	}
}

func TestFetchPoster_HonorsCappedRetryAfter(t *testing.T) {
	doer := &fakeDoer{respond: func(n int, _ *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, ``)
		resp.Header.Set("Retry-After", "120")
		return resp, nil
	}}
	f := newTestFetcher(t, doer)

	var mu sync.Mutex
	var delays []time.Duration
	f.sleep = func(_ context.Context, d time.Duration) error {
		mu.Lock()
		delays = append(delays, d)
		mu.Unlock()
		return nil
	}

	f.FetchPoster(context.Background(), 7)

	if len(delays) != 2 {
		t.Fatalf("slept %d times, want 2", len(delays))
	}
	for _, d := range delays {
		if d != 10*time.Millisecond {
			t.Errorf("delay = %v, want capped 10ms", d)
		}
	}
}

func TestFetchPoster_TransportErrors(t *testing.T) {
	failing := func() *fakeDoer {
		return &fakeDoer{respond: func(int, *http.Request) (*http.Response, error) {
			return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		}}
	}

	t.Run("retried by default", func(t *testing.T) {
		doer := failing()
		res := newTestFetcher(t, doer).FetchPoster(context.Background(), 1)
		if res.Cause != CauseTransport || doer.calls.Load() != 3 {
			t.Errorf("cause = %q, calls = %d; want transport, 3", res.Cause, doer.calls.Load())
		}
	})

	t.Run("single attempt when disabled", func(t *testing.T) {
		doer := failing()
		p := DefaultRetryPolicy()
		p.RetryOnTransportError = false
		res := newTestFetcher(t, doer, WithRetryPolicy(p)).FetchPoster(context.Background(), 1)
		if res.Cause != CauseTransport || doer.calls.Load() != 1 {
			t.Errorf("cause = %q, calls = %d; want transport, 1", res.Cause, doer.calls.Load())
		}
	})
}

func TestFetchPoster_DecodeError(t *testing.T) {
	doer := &fakeDoer{respond: func(int, *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `<html>`), nil
	}}
	res := newTestFetcher(t, doer).FetchPoster(context.Background(), 1)

	if res.Cause != CauseDecode || doer.calls.Load() != 1 {
		t.Errorf("cause = %q, calls = %d; want decode, 1", res.Cause, doer.calls.Load())
	}
}

func TestFetchPoster_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doer := statusDoer(http.StatusOK)
	res := newTestFetcher(t, doer).FetchPoster(ctx, 1)

	if res.Available || res.Cause != CauseCanceled {
		t.Errorf("Resolution = %+v, want canceled", res)
	}
	if doer.calls.Load() != 0 {
		t.Errorf("calls = %d, want 0", doer.calls.Load())
	}
}

func TestFetchPoster_RateLimiterHonorsDeadline(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	limiter.Allow() // drain the only token

	doer := statusDoer(http.StatusOK)
	f := newTestFetcher(t, doer, WithLimiter(limiter))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	res := f.FetchPoster(ctx, 1)

	if res.Available || res.Cause != CauseCanceled || res.Attempts != 0 {
		t.Errorf("Resolution = %+v, want canceled before any attempt", res)
	}
	if doer.calls.Load() != 0 {
		t.Errorf("calls = %d, want 0", doer.calls.Load())
	}
}

func TestFetchPoster_UntrustedCertificate(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"poster_path":"/p.jpg"}`)
	}))
	defer srv.Close()

	client, err := NewHTTPClient("")
	if err != nil {
		t.Fatalf("NewHTTPClient() error = %v", err)
	}
	f, err := NewFetcher(testTMDBConfig(srv.URL), WithDoer(client), WithLogger(zerolog.Nop()), WithoutBreaker())
	if err != nil {
		t.Fatal(err)
	}

	res := f.FetchPoster(context.Background(), 1)

	if res.Available || res.Cause != CauseCertificate {
		t.Errorf("Resolution = %+v, want certificate failure", res)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", res.Attempts)
	}
	if hits.Load() != 0 {
		t.Error("handler reached despite failed verification")
	}
}

func TestFetchPoster_CABundleTrustsServer(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/movie/11" || r.URL.Query().Get("api_key") != "test-key" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"poster_path":"/star.jpg"}`)
	}))
	defer srv.Close()

	bundle := filepath.Join(t.TempDir(), "ca.pem")
	block := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	if err := os.WriteFile(bundle, block, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := testTMDBConfig(srv.URL + "/3")
	cfg.CABundle = bundle
	f, err := NewFetcher(cfg, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("NewFetcher() error = %v", err)
	}

	res := f.FetchPoster(context.Background(), 11)
	if !res.Available || res.URL != "https://image.tmdb.org/t/p/w500/star.jpg" {
		t.Errorf("Resolution = %+v", res)
	}
}

func TestNewHTTPClient_BadBundle(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "empty.pem")
	if err := os.WriteFile(bundle, []byte("not a certificate"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewHTTPClient(bundle); err == nil {
		t.Error("NewHTTPClient() expected error for bundle without certificates")
	}
	if _, err := NewHTTPClient(filepath.Join(t.TempDir(), "missing.pem")); err == nil {
		t.Error("NewHTTPClient() expected error for missing bundle")
	}
}

func TestFetchPoster_CircuitOpens(t *testing.T) {
	doer := statusDoer(http.StatusInternalServerError)
	p := DefaultRetryPolicy()
	p.MaxAttempts = 1
	f := newTestFetcher(t, doer, WithRetryPolicy(p), WithBreaker(DefaultBreakerSettings()))

	for i := 0; i < 10; i++ {
		f.FetchPoster(context.Background(), int64(i))
	}
	if got := doer.calls.Load(); got != 10 {
		t.Fatalf("calls = %d, want 10", got)
	}

	res := f.FetchPoster(context.Background(), 99)
	if res.Cause != CauseCircuitOpen || res.Attempts != 0 {
		t.Errorf("Resolution = %+v, want circuit_open with no attempts", res)
	}
	if got := doer.calls.Load(); got != 10 {
		t.Errorf("calls = %d after open circuit, want 10", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(breakerName)); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2 (open)", got)
	}
}

func TestFetchPoster_NotFoundDoesNotTripCircuit(t *testing.T) {
	doer := statusDoer(http.StatusNotFound)
	f := newTestFetcher(t, doer, WithBreaker(DefaultBreakerSettings()))

	for i := 0; i < 15; i++ {
		f.FetchPoster(context.Background(), int64(i))
	}
	if got := doer.calls.Load(); got != 15 {
		t.Errorf("calls = %d, want 15", got)
	}
}

func TestFetchAll_PreservesOrder(t *testing.T) {
	doer := &fakeDoer{respond: func(_ int, req *http.Request) (*http.Response, error) {
		id := strings.TrimPrefix(req.URL.Path, "/3/movie/")
		if id == "1" {
			time.Sleep(20 * time.Millisecond)
		}
		if id == "3" {
			return jsonResponse(http.StatusNotFound, ``), nil
		}
		return jsonResponse(http.StatusOK, fmt.Sprintf(`{"poster_path":"/%s.jpg"}`, id)), nil
	}}
	f := newTestFetcher(t, doer)

	ids := []int64{1, 2, 3, 4, 5, 6}
	got := f.FetchAll(context.Background(), ids)

	if len(got) != len(ids) {
		t.Fatalf("len = %d, want %d", len(got), len(ids))
	}
	for i, res := range got {
		if res.MovieID != ids[i] {
			t.Errorf("result %d movie_id = %d, want %d", i, res.MovieID, ids[i])
		}
		if ids[i] == 3 {
			if res.Available {
				t.Error("movie 3 should be unavailable")
			}
			continue
		}
		if want := fmt.Sprintf("https://image.tmdb.org/t/p/w500/%d.jpg", ids[i]); res.URL != want {
			t.Errorf("result %d URL = %q, want %q", i, res.URL, want)
		}
	}
}

func TestFetchAll_StopsAtDeadline(t *testing.T) {
	// The upstream never answers; each request ends only when its context does.
	doer := &fakeDoer{respond: func(_ int, req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	}}
	f := newTestFetcher(t, doer)

	ids := make([]int64, 12)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	got := f.FetchAll(ctx, ids)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("FetchAll() took %v after a 50ms deadline", elapsed)
	}

	for i, res := range got {
		if res.MovieID != ids[i] {
			t.Errorf("result %d movie_id = %d, want %d", i, res.MovieID, ids[i])
		}
		if res.Available || res.Cause != CauseCanceled {
			t.Errorf("result %d = %+v, want canceled", i, res)
		}
	}
	if calls := int(doer.calls.Load()); calls > len(ids) {
		t.Errorf("doer calls = %d, want at most %d", calls, len(ids))
	}
}

func TestFetchAll_Empty(t *testing.T) {
	f := newTestFetcher(t, statusDoer(http.StatusOK))
	if got := f.FetchAll(context.Background(), nil); len(got) != 0 {
		t.Errorf("FetchAll(nil) = %v", got)
	}
}

func TestDisabled(t *testing.T) {
	var r Resolver = Disabled{}
	got := r.FetchAll(context.Background(), []int64{5, 6})
	for i, res := range got {
		if res.Available || res.Cause != CauseDisabled || res.MovieID != []int64{5, 6}[i] {
			t.Errorf("result %d = %+v", i, res)
		}
	}
}

func TestNewFetcher_RequiresKey(t *testing.T) {
	cfg := testTMDBConfig("https://api.themoviedb.org/3")
	cfg.APIKey = ""
	if _, err := NewFetcher(cfg); err == nil {
		t.Error("NewFetcher() expected error without api key")
	}
}

func TestMovieDetails_PosterPath(t *testing.T) {
	path := " /x.jpg "
	d := &MovieDetails{RawPosterPath: &path}
	if got, ok := d.PosterPath(); !ok || got != "/x.jpg" {
		t.Errorf("PosterPath() = %q, %v", got, ok)
	}

	var nilDetails *MovieDetails
	if _, ok := nilDetails.PosterPath(); ok {
		t.Error("nil details should have no poster path")
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		base, size, path, want string
	}{
		{"https://image.tmdb.org/t/p", "w500", "/a.jpg", "https://image.tmdb.org/t/p/w500/a.jpg"},
		{"https://image.tmdb.org/t/p/", "/w342/", "b.jpg", "https://image.tmdb.org/t/p/w342/b.jpg"},
	}
	for _, tt := range tests {
		if got := imageURL(tt.base, tt.size, tt.path); got != tt.want {
			t.Errorf("imageURL(%q, %q, %q) = %q, want %q", tt.base, tt.size, tt.path, got, tt.want)
		}
	}
}
