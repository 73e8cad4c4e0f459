// ABOUTME: Content enrichment service combining metadata and accent color extraction
// ABOUTME: Unified surface consumed by the ingestion pipeline and background workers

package services

import (
	"context"

	"contentsage-api/core/domain"
	"contentsage-api/core/interfaces"
)

// ContentEnrichmentService combines metadata and color extraction
type ContentEnrichmentService struct {
	metadata       *MetadataService
	thumbnailColor *ThumbnailColorService
}

// NewContentEnrichmentService creates a new unified enrichment service
func NewContentEnrichmentService(deps interfaces.Dependencies) *ContentEnrichmentService {
	return &ContentEnrichmentService{
		metadata:       NewMetadataService(deps),
		thumbnailColor: NewThumbnailColorService(deps),
	}
}

// ExtractMetadata extracts metadata from a URL
func (s *ContentEnrichmentService) ExtractMetadata(ctx context.Context, url string) (*interfaces.MetadataResult, error) {
	return s.metadata.ExtractMetadata(ctx, url)
}

// ExtractMetadataBatch extracts metadata for multiple URLs
func (s *ContentEnrichmentService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	return s.metadata.ExtractMetadataBatch(ctx, urls)
}

// ExtractColor extracts the prominent color from an image URL
func (s *ContentEnrichmentService) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	return s.thumbnailColor.ExtractColor(ctx, imageURL)
}

// ExtractColorBatch extracts colors for multiple URLs
func (s *ContentEnrichmentService) ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor {
	return s.thumbnailColor.ExtractColorBatch(ctx, imageURLs)
}

// GetCachedColor retrieves a cached color without computing
func (s *ContentEnrichmentService) GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	return s.thumbnailColor.GetCachedColor(ctx, imageURL)
}
