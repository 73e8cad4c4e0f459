// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"net/http"

	"contentsage-api/api/middleware"
	"contentsage-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// RequestsPerSecond and Burst configure per-client rate limiting.
	// A zero rate disables limiting.
	RequestsPerSecond float64
	Burst             int
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsHandler())

	api := humachi.New(router, apiConfig())

	return api, router
}

// NewAPIWithMiddleware creates a new API with logging and rate limiting
// middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS must run before anything that can short-circuit the request
	router.Use(corsHandler())

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RequestsPerSecond > 0 {
		limiter := middleware.NewClientRateLimiter(cfg.RequestsPerSecond, cfg.Burst)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	api := humachi.New(router, apiConfig())

	return api, router
}

func apiConfig() huma.Config {
	config := huma.DefaultConfig("ContentSage API", "1.0.0")
	config.Info.Description = "API for classifying content URLs and managing calendar posts"
	return config
}

func corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
