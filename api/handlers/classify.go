// ABOUTME: Classification handler exposing the URL classification pipeline
// ABOUTME: Accepts a URL or raw markup and returns the classification result

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"contentsage-api/core/domain"
)

// ClassificationService is the slice of the classifier the handler needs
type ClassificationService interface {
	Classify(ctx context.Context, input domain.ClassificationInput) (*domain.ClassificationResult, error)
	ClassifyURL(ctx context.Context, url string) (*domain.ClassificationResult, error)
}

// ClassifyHandler handles content classification requests
type ClassifyHandler struct {
	classifier ClassificationService
}

// NewClassifyHandler creates a new classification handler
func NewClassifyHandler(classifier ClassificationService) *ClassifyHandler {
	return &ClassifyHandler{
		classifier: classifier,
	}
}

// RegisterRoutes registers classification routes
func (h *ClassifyHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "classifyURL",
		Method:      http.MethodPost,
		Path:        "/classify",
		Summary:     "Classify a content URL",
		Description: "Fetches a URL and classifies its platform, format, publication date and content signals. When html is provided the fetch is skipped.",
		Tags:        []string{"Classification"},
	}, h.Classify)
}

// ClassifyInput defines the input for classification
type ClassifyInput struct {
	Body struct {
		URL  string `json:"url" doc:"Absolute URL of the content to classify"`
		HTML string `json:"html,omitempty" doc:"Optional pre-fetched markup; skips the fetch when set"`
	}
}

// ClassifyOutput defines the output for classification
type ClassifyOutput struct {
	Body domain.ClassificationResult
}

// Classify handles the POST /classify endpoint
func (h *ClassifyHandler) Classify(ctx context.Context, input *ClassifyInput) (*ClassifyOutput, error) {
	if input.Body.URL == "" {
		return nil, huma.Error400BadRequest("url is required")
	}

	var result *domain.ClassificationResult
	var err error

	if input.Body.HTML != "" {
		result, err = h.classifier.Classify(ctx, domain.ClassificationInput{
			HTML: input.Body.HTML,
			URL:  input.Body.URL,
		})
	} else {
		result, err = h.classifier.ClassifyURL(ctx, input.Body.URL)
	}
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ClassifyOutput{Body: *result}, nil
}
