// Package main is the entry point for the listing-discovery-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"listing-discovery-service/internal/app/service"
	"listing-discovery-service/internal/config"
	"listing-discovery-service/internal/domain"
	"listing-discovery-service/internal/infra/geocode"
	"listing-discovery-service/internal/infra/memcache"
	"listing-discovery-service/internal/infra/postgres"
	"listing-discovery-service/internal/infra/postgres/migrations"
	rediscache "listing-discovery-service/internal/infra/redis"
	"listing-discovery-service/internal/job"
	"listing-discovery-service/internal/logger"
	"listing-discovery-service/internal/transport/httpserver"
	"listing-discovery-service/internal/validator"
	"listing-discovery-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting listing-discovery-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repositories
	repo := postgres.NewRepository(db)
	savedStore := postgres.NewSavedStore(db)
	reviewRepo := postgres.NewReviewRepository(db)

	// Cache and distributed locker. Redis is the shared production backend;
	// the in-process cache keeps single-instance deployments working without
	// one, at the cost of cross-instance lock coordination.
	var (
		cache      domain.Cache
		distLocker locker.DistributedLocker
	)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()

		log.Info("connected to Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)

		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		distLocker = locker.NewRedisLocker(redisClient, log.Logger)
	} else {
		log.Info("Redis disabled, using in-process cache")

		cache = memcache.New()
		distLocker = locker.NewLocalLocker()
	}

	// Create geocoding client
	geocoder := geocode.New(
		geocode.ClientConfig{
			BaseURL: cfg.Geocode.BaseURL,
			APIKey:  cfg.Geocode.APIKey,
			Timeout: cfg.Geocode.Timeout,
			Retry: geocode.RetryConfig{
				MaxAttempts: cfg.Geocode.Retry.MaxAttempts,
				WaitTime:    cfg.Geocode.Retry.WaitTime,
				MaxWaitTime: cfg.Geocode.Retry.MaxWaitTime,
			},
			CB: geocode.CBConfig{
				MaxRequests:  cfg.Geocode.CB.MaxRequests,
				Interval:     cfg.Geocode.CB.Interval,
				Timeout:      cfg.Geocode.CB.Timeout,
				FailureRatio: cfg.Geocode.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Create services
	searchSvc := service.NewSearchService(repo, savedStore, log.Logger)
	suggestSvc := service.NewSuggestService(repo, log.Logger)
	discoverySvc := service.NewDiscoveryService(repo, cache, cfg.Cache.DiscoveryTTL, log.Logger)
	geocodeSvc := service.NewGeocodeService(geocoder, cache, cfg.Cache.GeocodeTTL, log.Logger)
	listingSvc := service.NewListingService(repo, savedStore, reviewRepo, geocodeSvc, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:          cfg.App.Port,
			BodyLimit:     1024 * 1024, // 1MB
			Debug:         cfg.App.Debug,
			GeoRateLimit:  cfg.Geocode.RateLimit,
			GeoRateWindow: cfg.Geocode.RateLimitSpan,
		},
		httpserver.Services{
			Search:    searchSvc,
			Suggest:   suggestSvc,
			Discovery: discoverySvc,
			Geocode:   geocodeSvc,
			Listings:  listingSvc,
		},
		db,
		v,
		log.Logger,
	)

	// Start discovery refresh scheduler with distributed locking
	scheduler := job.NewRefreshScheduler(
		discoverySvc,
		job.RefreshConfig{
			Interval:  cfg.Discovery.RefreshInterval,
			Timeout:   cfg.Discovery.RefreshTimeout,
			OnStartup: cfg.Discovery.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	scheduler.Start(cfg.Discovery.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		scheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
