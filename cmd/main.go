package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/backend"
	"github.com/UnknownOlympus/foodbridge/internal/cache"
	"github.com/UnknownOlympus/foodbridge/internal/config"
	"github.com/UnknownOlympus/foodbridge/internal/feed"
	"github.com/UnknownOlympus/foodbridge/internal/geocoding"
	"github.com/UnknownOlympus/foodbridge/internal/httpapi"
	"github.com/UnknownOlympus/foodbridge/internal/metrics"
	"github.com/UnknownOlympus/foodbridge/internal/repository"
	"github.com/UnknownOlympus/foodbridge/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// providerRateLimit is the request budget per second shared by all geocoding workers.
const providerRateLimit = 50

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)
	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, logger)
	if err = repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare DB schema: %v", err)
	}

	// The cache only saves database reads, so the service runs without it when Redis is down.
	var (
		feedCache   feed.Cache
		invalidator service.Invalidator
	)
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.WarnContext(ctx, "Redis unavailable, serving feeds without cache", "error", err)
	} else {
		defer redisClient.Close()
		listingCache := cache.NewListingCache(redisClient, cfg.CacheTTL, logger)
		feedCache, invalidator = listingCache, listingCache
	}

	api := backend.NewClient(cfg.Backend.URL, logger,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithRateLimit(cfg.Backend.RateLimit),
		backend.WithObserver(func(operation string, elapsed time.Duration) {
			appMetrics.BackendSeconds.WithLabelValues(operation).Observe(elapsed.Seconds())
		}),
	)

	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.ProviderType),
		APIKey:    cfg.Geocoder.APIKey,
		Region:    cfg.Geocoder.Region,
		RateLimit: providerRateLimit / cfg.Geocoder.Workers,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Geocoder.ProviderType)

	feeds := feed.NewService(repo, api, feedCache, appMetrics, cfg.PageSize, logger)

	locator := service.NewLocatorService(
		logger,
		repo,
		geoProvider,
		cfg.Geocoder.ProviderType, // Provider name for metrics
		appMetrics,
		cfg.Geocoder.Workers,
		cfg.Geocoder.Interval,
		cfg.Geocoder.AddrPrefix,
	)
	locator.OnLocated(feeds.InvalidateAll)

	syncer := service.NewSyncService(logger, api, repo, invalidator, appMetrics, cfg.SyncSchedule)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if errSync := syncer.Run(ctx); errSync != nil {
			logger.ErrorContext(ctx, "Sync service failed", "error", errSync)
		}
	}()
	go func() {
		defer wg.Done()
		locator.Run(ctx)
	}()

	router := httpapi.NewRouter(feeds, dtb, reg, logger)
	if err = httpapi.Serve(ctx, logger, router, cfg.Port); err != nil {
		logger.ErrorContext(ctx, "HTTP server failed", "error", err)
		stop()
	}

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")
	wg.Wait()
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
