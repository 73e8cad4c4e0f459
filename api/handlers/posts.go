// ABOUTME: Post handlers for ingesting URLs and managing calendar posts
// ABOUTME: Covers ingestion, listing by date range, retrieval, deletion and description regeneration

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"contentsage-api/core/domain"
	"contentsage-api/core/posts"
)

// PostService is the slice of the ingestion service the handler needs
type PostService interface {
	Ingest(ctx context.Context, req posts.IngestRequest) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, organizationID string, from, to time.Time) ([]*domain.Post, error)
	Delete(ctx context.Context, id string) error
	Regenerate(ctx context.Context, id string) (*domain.Post, error)
}

// PostHandler handles post management requests
type PostHandler struct {
	service PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(service PostService) *PostHandler {
	return &PostHandler{
		service: service,
	}
}

// RegisterRoutes registers post management routes
func (h *PostHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "ingestPost",
		Method:        http.MethodPost,
		Path:          "/posts/ingest",
		Summary:       "Ingest a URL as a calendar post",
		Description:   "Classifies the URL, generates a description and stores the resulting post",
		Tags:          []string{"Posts"},
		DefaultStatus: http.StatusCreated,
	}, h.Ingest)

	huma.Register(api, huma.Operation{
		OperationID: "listPosts",
		Method:      http.MethodGet,
		Path:        "/posts",
		Summary:     "List posts for a calendar window",
		Tags:        []string{"Posts"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "getPost",
		Method:      http.MethodGet,
		Path:        "/posts/{id}",
		Summary:     "Get a post by ID",
		Tags:        []string{"Posts"},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "deletePost",
		Method:      http.MethodDelete,
		Path:        "/posts/{id}",
		Summary:     "Delete a post",
		Tags:        []string{"Posts"},
	}, h.Delete)

	huma.Register(api, huma.Operation{
		OperationID: "regeneratePostDescription",
		Method:      http.MethodPost,
		Path:        "/posts/{id}/regenerate",
		Summary:     "Regenerate a post's description",
		Description: "Reruns AI description generation against the stored content",
		Tags:        []string{"Posts"},
	}, h.Regenerate)
}

// PostResponse is the API shape of a stored post
type PostResponse struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	UserID         string           `json:"user_id,omitempty"`
	URL            string           `json:"url"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	PostedDate     string           `json:"posted_date"`
	Format         string           `json:"format"`
	Platform       string           `json:"platform"`
	Status         string           `json:"status"`
	HasVideo       bool             `json:"has_video"`
	HasPodcast     bool             `json:"has_podcast"`
	HasInfographic bool             `json:"has_infographic"`
	Thumbnail      string           `json:"thumbnail,omitempty"`
	AccentColor    *domain.RGBColor `json:"accent_color,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

func toPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:             post.ID,
		OrganizationID: post.OrganizationID,
		UserID:         post.UserID,
		URL:            post.URL,
		Title:          post.Title,
		Description:    post.Description,
		PostedDate:     post.PostedDate,
		Format:         string(post.Format),
		Platform:       string(post.Platform),
		Status:         string(post.Status),
		HasVideo:       post.HasVideo,
		HasPodcast:     post.HasPodcast,
		HasInfographic: post.HasInfographic,
		Thumbnail:      post.Thumbnail,
		AccentColor:    post.AccentColor,
		CreatedAt:      post.CreatedAt,
	}
}

// IngestInput defines the input for post ingestion
type IngestInput struct {
	Body struct {
		URL            string `json:"url" doc:"Content URL to ingest"`
		OrganizationID string `json:"organization_id" doc:"Organization the post belongs to"`
		UserID         string `json:"user_id,omitempty" doc:"User performing the ingestion"`
		Status         string `json:"status,omitempty" enum:"draft,scheduled,published" doc:"Initial post status, defaults to draft"`
	}
}

// IngestOutput defines the output for post ingestion
type IngestOutput struct {
	Body PostResponse
}

// Ingest handles the POST /posts/ingest endpoint
func (h *PostHandler) Ingest(ctx context.Context, input *IngestInput) (*IngestOutput, error) {
	post, err := h.service.Ingest(ctx, posts.IngestRequest{
		OrganizationID: input.Body.OrganizationID,
		UserID:         input.Body.UserID,
		URL:            input.Body.URL,
		Status:         domain.PostStatus(input.Body.Status),
	})
	if err != nil {
		return nil, toHumaError(err)
	}

	return &IngestOutput{Body: toPostResponse(post)}, nil
}

// ListInput defines the query parameters for listing posts
type ListInput struct {
	OrganizationID string `query:"organization_id" required:"true" doc:"Organization to list posts for"`
	From           string `query:"from" doc:"Range start date (YYYY-MM-DD), defaults to 30 days ago"`
	To             string `query:"to" doc:"Range end date (YYYY-MM-DD), defaults to today"`
}

// ListOutput defines the output for listing posts
type ListOutput struct {
	Body struct {
		Posts []PostResponse `json:"posts"`
	}
}

// List handles the GET /posts endpoint
func (h *PostHandler) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if input.From != "" {
		parsed, err := time.Parse("2006-01-02", input.From)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid from date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if input.To != "" {
		parsed, err := time.Parse("2006-01-02", input.To)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid to date, expected YYYY-MM-DD")
		}
		to = parsed
	}

	list, err := h.service.List(ctx, input.OrganizationID, from, to)
	if err != nil {
		return nil, toHumaError(err)
	}

	output := &ListOutput{}
	output.Body.Posts = make([]PostResponse, 0, len(list))
	for _, post := range list {
		output.Body.Posts = append(output.Body.Posts, toPostResponse(post))
	}

	return output, nil
}

// GetInput defines the path parameters for fetching a post
type GetInput struct {
	ID string `path:"id" doc:"Post ID"`
}

// GetOutput defines the output for fetching a post
type GetOutput struct {
	Body PostResponse
}

// Get handles the GET /posts/{id} endpoint
func (h *PostHandler) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	post, err := h.service.Get(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &GetOutput{Body: toPostResponse(post)}, nil
}

// DeleteInput defines the path parameters for deleting a post
type DeleteInput struct {
	ID string `path:"id" doc:"Post ID"`
}

// DeleteOutput defines the output for deleting a post
type DeleteOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

// Delete handles the DELETE /posts/{id} endpoint
func (h *PostHandler) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, toHumaError(err)
	}

	output := &DeleteOutput{}
	output.Body.Status = "deleted"
	return output, nil
}

// RegenerateInput defines the path parameters for regeneration
type RegenerateInput struct {
	ID string `path:"id" doc:"Post ID"`
}

// RegenerateOutput defines the output for regeneration
type RegenerateOutput struct {
	Body PostResponse
}

// Regenerate handles the POST /posts/{id}/regenerate endpoint
func (h *PostHandler) Regenerate(ctx context.Context, input *RegenerateInput) (*RegenerateOutput, error) {
	post, err := h.service.Regenerate(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &RegenerateOutput{Body: toPostResponse(post)}, nil
}
