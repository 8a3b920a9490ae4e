package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hbnb-web/internal/adapters/cache"
	"github.com/zatekoja/hbnb-web/internal/adapters/cookies"
	"github.com/zatekoja/hbnb-web/internal/api/handlers"
	"github.com/zatekoja/hbnb-web/internal/api/middleware"
	"github.com/zatekoja/hbnb-web/internal/api/routes"
	appcache "github.com/zatekoja/hbnb-web/internal/application/cache"
	"github.com/zatekoja/hbnb-web/internal/domain/providers"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/clients/hbnbapi"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/clients/redis"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
	"github.com/zatekoja/hbnb-web/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(observability.LogOptions{
		Service:    cfg.OTEL.ServiceName,
		Version:    cfg.OTEL.ServiceVersion,
		Env:        cfg.Log.Env,
		Level:      cfg.Log.Level,
		APIBaseURL: cfg.API.BaseURL,
	})
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Page view snapshots live in Redis when configured, in memory otherwise
	var views providers.CacheProvider
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis client")
		}
		defer redisClient.Close()
		views = cache.NewRedisAdapter(redisClient, "hbnb-web:")
		logger.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Page views stored in Redis")
	} else {
		views = cache.NewMemoryAdapter(cfg.Cache.MaxViews, cfg.Cache.ViewTTL)
		logger.Info().Int("max_views", cfg.Cache.MaxViews).Msg("Page views stored in memory")
	}
	pages := appcache.NewPageStore(views, cfg.Cache.ViewTTL)

	client := hbnbapi.NewClient(cfg.API.BaseURL,
		hbnbapi.WithTimeout(cfg.API.Timeout),
		hbnbapi.WithMetrics(metrics),
	)

	cookieOpts := cookies.DefaultOptions()
	cookieOpts.Path = cfg.Cookie.Path
	cookieOpts.Secure = cfg.Cookie.Secure

	web := handlers.NewWebHandler(client, pages, handlers.DefaultFlows(), cookieOpts, metrics)
	loginLimiter := middleware.NewKeyedLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst, cfg.RateLimit.TrustedProxies...)
	handler := routes.NewRouter(web, loginLimiter, metrics).SetupRoutes()

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", server.Addr).
			Str("api", cfg.API.BaseURL).
			Msg("HBnB web frontend listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	logger.Info().Msg("Server stopped")
}
