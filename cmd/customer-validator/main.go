// Command customer-validator walks the paginated customer API, validates every
// customer against the rules served with each page and prints one JSON report
// per page to stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/justinwhatley/shopify2018-backend-challenge/internal/app"
	"github.com/justinwhatley/shopify2018-backend-challenge/internal/config"
	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/client"
	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/logging"
	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/metrics"
	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/pagination"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet.
		fmt.Fprintf(os.Stderr, "customer-validator: %v\n", err)
		return err
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})
	logger := logging.NewLogger("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := app.NewRunner(os.Stdout, logging.NewLogger("runner"))

	if cfg.Local() {
		_, err := runner.RunFile(ctx, cfg.File)
		return err
	}

	httpClient, cleanup, err := newClient(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create client")
		return err
	}
	defer cleanup()

	if cfg.MetricsAddr != "" {
		shutdown := serveOps(cfg.MetricsAddr, httpClient, logger)
		defer shutdown()
	}

	paginator, err := pagination.NewPaginator(cfg.BaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid base URL")
		return err
	}

	walker := pagination.NewWalker(
		httpClient,
		paginator,
		pagination.Config{MaxPages: cfg.MaxPages},
		logging.NewLogger("walker"),
	)

	_, err = runner.Run(ctx, walker)
	return err
}

// newClient builds the page client, with a Redis cache when one is configured.
func newClient(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*client.Client, func(), error) {
	clientCfg := client.DefaultConfig(cfg.UserAgent)
	clientCfg.Timeout = cfg.Timeout

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
		clientCfg.Redis = redisClient
	}

	c, err := client.New(clientCfg)
	if err != nil {
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		c.Close()
		if redisClient != nil {
			redisClient.Close()
		}
	}
	return c, cleanup, nil
}

// newRouter serves the ops endpoints.
func newRouter(pinger interface{ Ping(context.Context) error }) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", healthHandler(pinger))
	r.Handle("/metrics", metrics.Handler())
	return r
}

func healthHandler(pinger interface{ Ping(context.Context) error }) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			http.Error(w, "cache unavailable: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

// serveOps starts the ops server in the background and returns its shutdown
// func.
func serveOps(addr string, pinger interface{ Ping(context.Context) error }, logger zerolog.Logger) func() {
	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(pinger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Ops server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn().Err(err).Msg("Ops server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("Ops server shutdown")
		}
	}
}
