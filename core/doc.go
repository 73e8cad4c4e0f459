// Package core contains the business logic for the ContentSage API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (ClassificationResult, Post, etc.)
// - classify: URL content classification (platform, format, date, signals)
// - posts: Post ingestion pipeline and calendar operations
// - describe: AI title and description generation
// - feeds: RSS/Atom discovery of ingestion candidates
// - services: Metadata and accent color enrichment
// - workers: Background enrichment worker pool
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, storage)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No web framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "contentsage-api/core/classify"
//	    "contentsage-api/core/interfaces"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	classifier := classify.NewService(deps)
//	result, err := classifier.ClassifyURL(ctx, "https://example.com/article")
package core
