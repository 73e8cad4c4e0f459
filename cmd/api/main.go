// ABOUTME: Main entry point for the ContentSage API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contentsage-api/api"
	"contentsage-api/api/handlers"
	"contentsage-api/core/classify"
	"contentsage-api/core/describe"
	"contentsage-api/core/feeds"
	"contentsage-api/core/interfaces"
	"contentsage-api/core/posts"
	"contentsage-api/core/services"
	"contentsage-api/core/workers"
	"contentsage-api/infrastructure/cache/memory"
	"contentsage-api/infrastructure/cache/redis"
	stdhttp "contentsage-api/infrastructure/http/standard"
	logruslogger "contentsage-api/infrastructure/logger/logrus"
	"contentsage-api/infrastructure/storage/sqlite"
	"contentsage-api/pkg/config"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.NewLogger(os.Getenv("LOG_LEVEL"))
	logger.Info("starting ContentSage API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
	})

	// Cache backend
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		} else {
			cache = redisCache
			logger.Info("using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		logger.Info("using memory cache", nil)
	}

	// Outbound HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second)
	if cfg.Fetch.UserAgent != "" {
		httpClient.SetUserAgent(cfg.Fetch.UserAgent)
	}

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Post storage
	store, err := sqlite.NewPostStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open post store: %v", err)
	}
	defer store.Close()

	// Core services
	classifier := classify.NewService(deps)
	enrichment := services.NewContentEnrichmentService(deps)
	feedService := feeds.NewService(deps)

	var describer interfaces.Describer
	if cfg.Describer.APIKey != "" {
		chatClient := describe.NewOpenAIClient(cfg.Describer.APIKey, cfg.Describer.BaseURL)
		describer = describe.NewService(chatClient, cfg.Describer.Model, logger)
		logger.Info("description service enabled", map[string]interface{}{
			"model": cfg.Describer.Model,
		})
	} else {
		logger.Warn("OPENAI_API_KEY not set, posts will keep scraped titles", nil)
	}

	postService := posts.NewService(classifier, describer, enrichment, store, logger)

	// Background enrichment worker
	worker := workers.NewEnrichmentWorker(enrichment, workers.DefaultWorkerConfig())
	if err := worker.Start(); err != nil {
		log.Fatalf("Failed to start enrichment worker: %v", err)
	}
	defer worker.Stop()

	// API with middleware
	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:            logger,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	})

	handlers.NewClassifyHandler(classifier).RegisterRoutes(humaAPI)
	handlers.NewPostHandler(postService).RegisterRoutes(humaAPI)
	handlers.NewDiscoverHandler(feedService, worker).RegisterRoutes(humaAPI)
	handlers.NewValidateHandler(httpClient).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("server stopped", nil)
}
