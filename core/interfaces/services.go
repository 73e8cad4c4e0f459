// ABOUTME: Service interfaces for metadata extraction, enrichment and AI description
// ABOUTME: Defines contracts consumed by handlers and background workers

package interfaces

import (
	"context"

	"contentsage-api/core/domain"
)

// MetadataResult holds metadata extracted from a web page
type MetadataResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Favicon     string   `json:"favicon"`
	ThemeColor  string   `json:"theme_color"`
	Domain      string   `json:"domain"`
	Images      []string `json:"images"`
}

// MetadataService extracts Open Graph and related metadata from URLs
type MetadataService interface {
	ExtractMetadata(ctx context.Context, url string) (*MetadataResult, error)
	ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*MetadataResult
}

// ThumbnailColorService extracts prominent colors from thumbnail images
type ThumbnailColorService interface {
	ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
	ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor
	GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
}

// ContentEnrichmentService combines metadata and color extraction
type ContentEnrichmentService interface {
	ExtractMetadata(ctx context.Context, url string) (*MetadataResult, error)
	ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*MetadataResult
	ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
	ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor
}

// Describer turns extracted page content into a post title and description.
// Implementations call an external language model; callers must treat
// failures as non-fatal and keep the scraped title instead.
type Describer interface {
	Describe(ctx context.Context, result *domain.ClassificationResult) (*domain.PostDescription, error)
}
