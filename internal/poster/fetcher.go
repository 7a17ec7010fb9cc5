// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// maxDetailsBody bounds how much of a details response is decoded.
const maxDetailsBody = 1 << 20

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher resolves posters against the TMDB API.
type Fetcher struct {
	baseURL      string
	imageBaseURL string
	posterSize   string
	apiKey       string
	concurrency  int

	policy  RetryPolicy
	doer    Doer
	limiter *rate.Limiter
	breaker *breaker
	logger  zerolog.Logger

	// now and sleep are replaced in tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithDoer replaces the HTTP client.
func WithDoer(d Doer) Option {
	return func(f *Fetcher) { f.doer = d }
}

// WithRetryPolicy replaces the policy derived from configuration.
//
//nolint:gocritic // RetryPolicy is a small value type
func WithRetryPolicy(p RetryPolicy) Option {
	return func(f *Fetcher) { f.policy = p }
}

// WithBreaker enables the circuit breaker with the given settings.
func WithBreaker(s BreakerSettings) Option {
	return func(f *Fetcher) { f.breaker = newBreaker(s) }
}

// WithoutBreaker disables the circuit breaker.
func WithoutBreaker() Option {
	return func(f *Fetcher) { f.breaker = nil }
}

// WithLimiter replaces the outbound rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(f *Fetcher) { f.limiter = l }
}

// WithLogger replaces the component logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// PolicyFromConfig builds a RetryPolicy from TMDB settings.
func PolicyFromConfig(cfg *config.TMDBConfig) RetryPolicy {
	p := DefaultRetryPolicy()
	p.MaxAttempts = cfg.MaxAttempts
	p.AttemptTimeout = cfg.Timeout
	p.BaseDelay = cfg.RetryBaseDelay
	p.MaxDelay = cfg.RetryMaxDelay
	p.RetryOnTransportError = cfg.RetryOnTransportError
	return p
}

// NewFetcher builds a Fetcher from TMDB settings. Unless WithDoer is given,
// it uses NewHTTPClient with cfg.CABundle.
func NewFetcher(cfg *config.TMDBConfig, opts ...Option) (*Fetcher, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("tmdb api key is required")
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	f := &Fetcher{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: cfg.ImageBaseURL,
		posterSize:   cfg.PosterSize,
		apiKey:       cfg.APIKey,
		concurrency:  concurrency,
		policy:       PolicyFromConfig(cfg),
		limiter:      rate.NewLimiter(limit, burst),
		logger:       logging.WithComponent("poster"),
		now:          time.Now,
		sleep:        sleepContext,
	}
	if cfg.CircuitBreaker {
		f.breaker = newBreaker(DefaultBreakerSettings())
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.doer == nil {
		client, err := NewHTTPClient(cfg.CABundle)
		if err != nil {
			return nil, err
		}
		f.doer = client
	}
	if f.policy.MaxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be at least 1, got %d", f.policy.MaxAttempts)
	}
	if f.policy.AttemptTimeout <= 0 {
		return nil, fmt.Errorf("attempt timeout must be positive, got %v", f.policy.AttemptTimeout)
	}

	return f, nil
}

// Policy returns the retry policy in effect.
func (f *Fetcher) Policy() RetryPolicy {
	return f.policy
}

// BreakerState reports the circuit breaker state, or "disabled".
func (f *Fetcher) BreakerState() string {
	if f.breaker == nil {
		return "disabled"
	}
	return f.breaker.state().String()
}

// FetchPoster resolves the poster URL for movieID. It never fails; problems
// surface as an Unavailable Resolution.
func (f *Fetcher) FetchPoster(ctx context.Context, movieID int64) Resolution {
	start := time.Now()

	var (
		details  *MovieDetails
		attempts int
		err      error
	)
	fetch := func() (*MovieDetails, error) {
		var d *MovieDetails
		d, attempts, err = f.fetchDetails(ctx, movieID)
		return d, err
	}
	if f.breaker != nil {
		details, err = f.breaker.execute(fetch)
	} else {
		details, err = fetch()
	}

	res := f.resolve(movieID, details, attempts, err)
	metrics.RecordPosterResolution(res.Available, res.Cause, time.Since(start))
	return res
}

func (f *Fetcher) resolve(movieID int64, details *MovieDetails, attempts int, err error) Resolution {
	if err != nil {
		cause := Cause(err)
		event := f.logger.Warn()
		if cause == CauseCanceled || cause == CauseCircuitOpen {
			event = f.logger.Debug()
		}
		event.
			Int64("movie_id", movieID).
			Str("cause", cause).
			Int("attempts", attempts).
			Err(err).
			Msg("Poster unavailable")
		return Unavailable(movieID, cause, attempts)
	}

	path, ok := details.PosterPath()
	if !ok {
		f.logger.Debug().Int64("movie_id", movieID).Msg("Movie has no poster_path")
		return Unavailable(movieID, CauseNoPoster, attempts)
	}

	return Resolution{
		MovieID:   movieID,
		URL:       imageURL(f.imageBaseURL, f.posterSize, path),
		Available: true,
		Cause:     CauseNone,
		Attempts:  attempts,
	}
}

// fetchDetails runs the retry loop and returns the decoded details, the
// number of attempts made, and the last error.
func (f *Fetcher) fetchDetails(ctx context.Context, movieID int64) (*MovieDetails, int, error) {
	reqURL := f.detailsURL(movieID)

	for attempt := 1; ; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, attempt - 1, ctxErr
			}
			return nil, attempt - 1, fmt.Errorf("wait for rate limiter: %w", context.DeadlineExceeded)
		}

		details, err := f.attempt(ctx, reqURL)
		if err == nil {
			return details, attempt, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, attempt, ctxErr
		}

		outcome := Outcome{Err: err}
		if !f.policy.ShouldRetry(attempt, outcome) {
			return nil, attempt, err
		}

		var retryAfter time.Duration
		var statusErr *HTTPStatusError
		if errors.As(err, &statusErr) {
			retryAfter = statusErr.RetryAfter
		}
		delay := f.policy.Backoff(attempt, retryAfter)
		metrics.RecordPosterRetryDelay(delay)

		f.logger.Debug().
			Int64("movie_id", movieID).
			Int("attempt", attempt).
			Int("max_attempts", f.policy.MaxAttempts).
			Dur("retry_delay", delay).
			Err(err).
			Msg("Retrying movie details request")

		if err := f.sleep(ctx, delay); err != nil {
			return nil, attempt, err
		}
	}
}

// attempt performs one bounded request.
func (f *Fetcher) attempt(ctx context.Context, reqURL string) (*MovieDetails, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.policy.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.doer.Do(req)
	if err != nil {
		classified := classifyTransport(err)
		if Cause(classified) == CauseCertificate {
			metrics.RecordPosterAttempt("certificate")
		} else {
			metrics.RecordPosterAttempt("transport")
		}
		return nil, classified
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		//nolint:errcheck // drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

		statusErr := &HTTPStatusError{
			StatusCode: resp.StatusCode,
			RetryAfter: ParseRetryAfter(resp.Header.Get("Retry-After"), f.now()),
		}
		if f.policy.IsRetryableStatus(resp.StatusCode) {
			metrics.RecordPosterAttempt("retryable_status")
		} else {
			metrics.RecordPosterAttempt("status")
		}
		return nil, statusErr
	}

	var details MovieDetails
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDetailsBody)).Decode(&details); err != nil {
		metrics.RecordPosterAttempt("decode")
		return nil, &DecodeError{Err: err}
	}
	metrics.RecordPosterAttempt("ok")
	return &details, nil
}

func (f *Fetcher) detailsURL(movieID int64) string {
	params := url.Values{}
	params.Set("api_key", f.apiKey)
	return fmt.Sprintf("%s/movie/%s?%s", f.baseURL, strconv.FormatInt(movieID, 10), params.Encode())
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
