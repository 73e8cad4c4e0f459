// Package api provides the HTTP API layer for the ContentSage application.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - JSON spec available at /openapi.json
// - Interactive Swagger UI at /docs
//
// 2. Request/Response Validation
//
// Huma provides automatic validation based on struct tags:
//
//	type IngestInput struct {
//	    Body struct {
//	        URL            string `json:"url"`
//	        OrganizationID string `json:"organization_id"`
//	        Status         string `json:"status,omitempty" enum:"draft,scheduled,published"`
//	    }
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Per-IP token-bucket rate limiting
// - CORS handling
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 7807:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "url is required",
//	    "instance": "/classify"
//	}
//
// Domain errors are automatically mapped to appropriate HTTP status codes;
// failures to fetch a submitted URL surface as 4xx/502 depending on the
// upstream response.
package api
