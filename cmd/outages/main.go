package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/outage-listing-service/internal/adapter/http"
	"github.com/couchcryptid/outage-listing-service/internal/adapter/feed"
	redisadapter "github.com/couchcryptid/outage-listing-service/internal/adapter/redis"
	"github.com/couchcryptid/outage-listing-service/internal/config"
	"github.com/couchcryptid/outage-listing-service/internal/observability"
	"github.com/couchcryptid/outage-listing-service/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Snapshot fallback is feature-flagged via REDIS_URL.
	var store pipeline.SnapshotStore
	var redisStore *redisadapter.SnapshotStore
	if cfg.SnapshotEnabled() {
		redisStore, err = redisadapter.New(ctx, cfg.RedisURL, cfg.SnapshotTTL)
		if err != nil {
			logger.Warn("redis snapshot store unavailable, continuing without it", "error", err)
		} else {
			store = redisStore
			logger.Info("redis snapshot store enabled", "ttl", cfg.SnapshotTTL)
		}
	}

	client := feed.NewClient(cfg.FeedURL, cfg.FeedTimeout, logger)
	source := pipeline.NewSource(client, store, logger, metrics)
	catalog := pipeline.NewCatalog(source, logger, metrics,
		pipeline.WithPageSize(cfg.PageSize),
		pipeline.WithQueryCache(cfg.QueryCacheSize),
	)

	srv := httpadapter.NewServer(cfg.HTTPAddr, catalog, catalog, logger)

	// Start HTTP server. /readyz reports 503 until the first load finishes.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Load the feed, then keep it fresh when a refresh interval is configured.
	go func() {
		catalog.Load(ctx)
		catalog.Run(ctx, cfg.FeedRefreshInterval)
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
