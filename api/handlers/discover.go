// ABOUTME: Discovery handler surfacing feed entries as ingestion candidates
// ABOUTME: Parses RSS/Atom feeds and pre-warms metadata for the results

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"contentsage-api/core/feeds"
)

// FeedDiscoveryService is the slice of the feed service the handler needs
type FeedDiscoveryService interface {
	Discover(ctx context.Context, feedURL string) (*feeds.Discovery, error)
}

// MetadataWarmer queues background metadata extraction for candidate URLs
type MetadataWarmer interface {
	WarmMetadata(ctx context.Context, urls []string)
}

// DiscoverHandler handles feed discovery requests
type DiscoverHandler struct {
	feedService FeedDiscoveryService
	warmer      MetadataWarmer
}

// NewDiscoverHandler creates a new discover handler. The warmer is
// optional.
func NewDiscoverHandler(feedService FeedDiscoveryService, warmer MetadataWarmer) *DiscoverHandler {
	return &DiscoverHandler{
		feedService: feedService,
		warmer:      warmer,
	}
}

// RegisterRoutes registers discovery routes
func (h *DiscoverHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "discoverCandidates",
		Method:      http.MethodPost,
		Path:        "/discover",
		Summary:     "Discover ingestion candidates from a feed",
		Description: "Parses an RSS/Atom feed and returns its recent entries as candidate posts",
		Tags:        []string{"Discovery"},
	}, h.Discover)
}

// DiscoverInput defines the input for feed discovery
type DiscoverInput struct {
	Body struct {
		FeedURL string `json:"feed_url" doc:"RSS or Atom feed URL"`
	}
}

// DiscoverOutput defines the output for feed discovery
type DiscoverOutput struct {
	Body feeds.Discovery
}

// Discover handles the POST /discover endpoint
func (h *DiscoverHandler) Discover(ctx context.Context, input *DiscoverInput) (*DiscoverOutput, error) {
	discovery, err := h.feedService.Discover(ctx, input.Body.FeedURL)
	if err != nil {
		return nil, toHumaError(err)
	}

	if h.warmer != nil && len(discovery.Candidates) > 0 {
		urls := make([]string, 0, len(discovery.Candidates))
		for _, c := range discovery.Candidates {
			urls = append(urls, c.URL)
		}
		h.warmer.WarmMetadata(context.WithoutCancel(ctx), urls)
	}

	return &DiscoverOutput{Body: *discovery}, nil
}
