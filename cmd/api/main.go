// ABOUTME: Main entry point for the enrichment API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enrichment-app-api/api"
	"enrichment-app-api/api/handlers"
	"enrichment-app-api/api/middleware"
	"enrichment-app-api/core/interfaces"
	"enrichment-app-api/enrichlib"
	stdlogger "enrichment-app-api/infrastructure/logger/standard"
	"enrichment-app-api/infrastructure/metrics/prometheus"
	"enrichment-app-api/infrastructure/ratelimit/memory"
	"enrichment-app-api/infrastructure/ratelimit/redis"
	"enrichment-app-api/pkg/config"
	"enrichment-app-api/pkg/featureflags"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := stdlogger.NewStandardLoggerWithOptions(stdlogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	defer logger.Close()

	flags := featureflags.NewEnvManagerWithDefaults("FEATURE_", featureflags.Defaults)
	ctx := featureflags.WithManager(context.Background(), flags)

	logger.Info("Starting Enrichment API", map[string]interface{}{
		"port":           cfg.Server.Port,
		"llm_provider":   cfg.LLM.Provider,
		"search_backend": cfg.Search.Backend,
		"max_entities":   cfg.Pipeline.MaxEntities,
		"flags":          flags.GetAllFlags(),
	})

	opts, err := enrichlib.ConfigOptions(cfg, nil)
	if err != nil {
		log.Fatalf("Failed to create backends: %v", err)
	}
	opts = append(opts, enrichlib.WithLogger(logger))

	apiConfig := api.APIConfig{
		Logger:         logger,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}

	if featureflags.IsEnabled(ctx, featureflags.MetricsEnabled) {
		metrics := prometheus.New()
		apiConfig.Metrics = metrics
		opts = append(opts,
			enrichlib.WithRecorder(metrics),
			enrichlib.WrapTextGenerator(func(g interfaces.TextGenerator) interfaces.TextGenerator {
				return metrics.InstrumentGenerator(cfg.LLM.Provider, g)
			}),
		)
	}

	if featureflags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		store, closeStore := newRateLimitStore(cfg.RateLimit, logger)
		defer closeStore()
		apiConfig.RateLimiter = store
	}

	client, err := enrichlib.NewClient(opts...)
	if err != nil {
		log.Fatalf("Failed to create enrichment client: %v", err)
	}

	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	enrichHandler := handlers.NewEnrichHandler(client.Pipeline(), logger, cfg.Server.MaxUploadBytes)
	enrichHandler.RegisterRoutes(humaAPI, featureflags.IsEnabled(ctx, featureflags.LegacyRouteEnabled))

	healthHandler := handlers.NewHealthHandler(handlers.HealthInfo{
		LLMProvider:   cfg.LLM.Provider,
		SearchBackend: cfg.Search.Backend,
		MaxEntities:   client.MaxEntities(),
	})
	healthHandler.RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// In-flight runs see their request context cancelled and stop between entities
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// newRateLimitStore returns the configured store, falling back to memory
// when redis is unreachable
func newRateLimitStore(cfg config.RateLimitConfig, logger interfaces.Logger) (middleware.RateLimitStore, func()) {
	if cfg.Store == config.StoreRedis {
		store, err := redis.NewStore(cfg.Redis, cfg.Requests, cfg.Window)
		if err == nil {
			logger.Info("Using Redis rate limit store", map[string]interface{}{
				"address": cfg.Redis.Address,
			})
			return store, func() { store.Close() }
		}
		logger.Error("Failed to connect to Redis, falling back to memory rate limits", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Using memory rate limit store", map[string]interface{}{
		"requests": cfg.Requests,
		"window":   cfg.Window.String(),
	})
	return memory.NewStore(cfg.Requests, cfg.Window), func() {}
}

func init() {
	fmt.Println(`
    ______            _      __
   / ____/___  _____(_)____/ /_
  / __/ / __ \/ ___/ / ___/ __ \
 / /___/ / / / /  / / /__/ / / /
/_____/_/ /_/_/  /_/\___/_/ /_/
	`)
}
