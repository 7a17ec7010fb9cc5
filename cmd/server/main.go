// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	_ "github.com/tomtom215/cinematch/docs" // Register swagger docs
	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/poster"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("dataset", cfg.Dataset.Path).
		Msg("Starting Cinematch")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The dataset is loaded once and never reloaded. A load failure is fatal.
	ds, err := dataset.Load(ctx, dataset.Source{
		Path:   cfg.Dataset.Path,
		Format: dataset.Format(cfg.Dataset.Format),
	})
	if err != nil {
		return err
	}

	rec, err := recommend.New(ds, recommend.Options{
		DefaultTopN: cfg.Recommend.TopN,
		MaxTopN:     cfg.Recommend.MaxTopN,
	}, logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("create recommender: %w", err)
	}

	resolver, err := newPosterResolver(&cfg.TMDB)
	if err != nil {
		return err
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(rec, resolver, &cfg.Recommend)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// A recommendations response waits at most PosterTimeout for posters.
		WriteTimeout: cfg.Server.Timeout + cfg.Recommend.PosterTimeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(
		logging.NewSlogLogger(),
		supervisor.TreeConfigFromShutdown(cfg.Server.ShutdownTimeout),
	)
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	logging.Info().Msg("Shutdown signal received")

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}
	return nil
}

// newPosterResolver returns a TMDB fetcher, or a resolver that marks every
// poster unavailable when no API key is configured.
func newPosterResolver(cfg *config.TMDBConfig) (poster.Resolver, error) {
	if !cfg.Enabled() {
		logging.Warn().Msg("TMDB_API_KEY not set; posters will show placeholders")
		return poster.Disabled{}, nil
	}

	fetcher, err := poster.NewFetcher(cfg, poster.WithLogger(logging.WithComponent("poster")))
	if err != nil {
		return nil, fmt.Errorf("create poster fetcher: %w", err)
	}

	policy := fetcher.Policy()
	logging.Info().
		Str("base_url", cfg.BaseURL).
		Int("max_attempts", policy.MaxAttempts).
		Dur("attempt_timeout", policy.AttemptTimeout).
		Dur("worst_case", policy.WorstCaseLatency()).
		Bool("circuit_breaker", cfg.CircuitBreaker).
		Bool("custom_ca", cfg.CABundle != "").
		Msg("Poster fetching enabled")
	return fetcher, nil
}
