// ABOUTME: Post ingestion service orchestrating classification, description and storage
// ABOUTME: Turns a submitted URL into a stored calendar post with AI-generated copy

package posts

import (
	"context"
	"time"

	"contentsage-api/core/domain"
	coreerrors "contentsage-api/core/errors"
	"contentsage-api/core/interfaces"
)

// Classifier is the slice of the classification service the ingestion
// pipeline needs
type Classifier interface {
	ClassifyURL(ctx context.Context, url string) (*domain.ClassificationResult, error)
}

// IngestRequest describes a URL to turn into a calendar post
type IngestRequest struct {
	OrganizationID string
	UserID         string
	URL            string
	Status         domain.PostStatus
}

// Service orchestrates the ingestion pipeline: classify the URL, generate
// a description, enrich with page metadata, persist the post
type Service struct {
	classifier Classifier
	describer  interfaces.Describer
	enricher   interfaces.ContentEnrichmentService
	store      interfaces.PostStore
	logger     interfaces.Logger
}

// NewService creates a post ingestion service. The describer and enricher
// are optional; the pipeline degrades gracefully without them.
func NewService(
	classifier Classifier,
	describer interfaces.Describer,
	enricher interfaces.ContentEnrichmentService,
	store interfaces.PostStore,
	logger interfaces.Logger,
) *Service {
	return &Service{
		classifier: classifier,
		describer:  describer,
		enricher:   enricher,
		store:      store,
		logger:     logger,
	}
}

// Ingest classifies a URL and stores it as a post. Classification
// failures are fatal; description and enrichment failures degrade to the
// scraped values so a bad external API never blocks ingestion.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (*domain.Post, error) {
	if req.URL == "" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "url is required"}
	}
	if req.OrganizationID == "" {
		return nil, &coreerrors.ValidationError{Field: "organization_id", Message: "organization_id is required"}
	}

	result, err := s.classifier.ClassifyURL(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		OrganizationID: req.OrganizationID,
		UserID:         req.UserID,
		URL:            req.URL,
		Title:          result.Title,
		PostedDate:     result.PostedDate,
		Format:         result.Format,
		Platform:       result.Platform,
		Content:        result.Content,
		Status:         req.Status,
		HasVideo:       result.HasVideo,
		HasPodcast:     result.HasPodcast,
		HasInfographic: result.HasInfographic,
		CreatedAt:      time.Now().UTC(),
	}
	if post.Status == "" {
		post.Status = domain.PostStatusDraft
	}

	s.applyDescription(ctx, post, result)
	s.applyEnrichment(ctx, post)

	id, err := s.store.SavePost(ctx, post)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to save post")
	}
	post.ID = id

	s.logInfo("ingested post", map[string]interface{}{
		"id":       id,
		"url":      req.URL,
		"platform": string(post.Platform),
		"format":   string(post.Format),
	})

	return post, nil
}

// applyDescription fills Title and Description from the describer,
// keeping scraped values on failure
func (s *Service) applyDescription(ctx context.Context, post *domain.Post, result *domain.ClassificationResult) {
	if s.describer == nil {
		return
	}

	desc, err := s.describer.Describe(ctx, result)
	if err != nil {
		s.logWarn("description generation failed, keeping scraped title", map[string]interface{}{
			"url":   post.URL,
			"error": err.Error(),
		})
		return
	}

	if desc.Title != "" {
		post.Title = desc.Title
	}
	post.Description = desc.Description
}

// applyEnrichment fills thumbnail and accent color from page metadata
func (s *Service) applyEnrichment(ctx context.Context, post *domain.Post) {
	if s.enricher == nil {
		return
	}

	meta, err := s.enricher.ExtractMetadata(ctx, post.URL)
	if err != nil || meta == nil {
		return
	}
	if meta.Thumbnail == "" {
		return
	}

	post.Thumbnail = meta.Thumbnail
	if color, err := s.enricher.ExtractColor(ctx, meta.Thumbnail); err == nil {
		post.AccentColor = color
	}
}

// Get returns a stored post by ID
func (s *Service) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.store.GetPost(ctx, id)
}

// List returns an organization's posts within a calendar date range
func (s *Service) List(ctx context.Context, organizationID string, from, to time.Time) ([]*domain.Post, error) {
	if organizationID == "" {
		return nil, &coreerrors.ValidationError{Field: "organization_id", Message: "organization_id is required"}
	}
	return s.store.ListPosts(ctx, organizationID, from, to)
}

// Delete removes a stored post
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeletePost(ctx, id)
}

// Regenerate reruns description generation for a stored post using its
// persisted content, and updates the stored copy
func (s *Service) Regenerate(ctx context.Context, id string) (*domain.Post, error) {
	if s.describer == nil {
		return nil, &coreerrors.ValidationError{Field: "describer", Message: "description service not configured"}
	}

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &domain.ClassificationResult{
		Title:        post.Title,
		PostedDate:   post.PostedDate,
		Format:       post.Format,
		Platform:     post.Platform,
		Content:      post.Content,
		NeedsAITitle: post.Platform.IsSocial(),
	}

	desc, err := s.describer.Describe(ctx, result)
	if err != nil {
		return nil, err
	}

	title := post.Title
	if desc.Title != "" {
		title = desc.Title
	}

	if err := s.store.UpdateDescription(ctx, id, title, desc.Description); err != nil {
		return nil, err
	}

	post.Title = title
	post.Description = desc.Description

	return post, nil
}

func (s *Service) logInfo(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, fields)
	}
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, fields)
	}
}
