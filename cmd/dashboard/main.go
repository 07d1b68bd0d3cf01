package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/homicide-dashboard/internal/adapter/dataset"
	"github.com/couchcryptid/homicide-dashboard/internal/adapter/httpadapter"
	"github.com/couchcryptid/homicide-dashboard/internal/adapter/mapbox"
	"github.com/couchcryptid/homicide-dashboard/internal/config"
	"github.com/couchcryptid/homicide-dashboard/internal/dashboard"
	"github.com/couchcryptid/homicide-dashboard/internal/domain"
	"github.com/couchcryptid/homicide-dashboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Geocoding only fills rows without coordinates (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	loader := dataset.NewLoader(dataset.NewFetcher(cfg.DatasetTimeout), cfg.DatasetSheet, geocoder, clockwork.NewRealClock(), logger, metrics)
	table, err := loader.Load(ctx, cfg.DatasetURL)
	if err != nil {
		logger.Error("failed to load dataset", "source", cfg.DatasetURL, "error", err)
		os.Exit(1) //nolint:gocritic // nothing to clean up before the server starts
	}

	svc := dashboard.New(table, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, cfg.CORSAllowedOrigins, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
