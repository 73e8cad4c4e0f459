// ABOUTME: AI description service that summarizes classified content into post copy
// ABOUTME: Calls an OpenAI-compatible chat model and parses a JSON title/description reply

package describe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"contentsage-api/core/domain"
	coreerrors "contentsage-api/core/errors"
	"contentsage-api/core/interfaces"
)

const maxPromptContentLength = 4000

// ChatClient is the minimal surface of the OpenAI client we depend on,
// kept narrow so tests can substitute a fake
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service generates post titles and descriptions from classified content
type Service struct {
	client ChatClient
	model  string
	logger interfaces.Logger
}

// NewService creates a description service backed by the given chat client
func NewService(client ChatClient, model string, logger interfaces.Logger) *Service {
	return &Service{
		client: client,
		model:  model,
		logger: logger,
	}
}

// NewOpenAIClient builds the underlying chat client from endpoint settings.
// An empty baseURL keeps the default OpenAI endpoint.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

const systemPrompt = `You write social media calendar entries. Given extracted page content, reply with a JSON object containing exactly two string fields: "title" (a concise headline, at most 80 characters) and "description" (a one to two sentence summary). Reply with only the JSON object.`

// Describe summarizes a classification result into a title and description.
// External API failures return an ExternalAPIError so callers can degrade
// to the scraped title.
func (s *Service) Describe(ctx context.Context, result *domain.ClassificationResult) (*domain.PostDescription, error) {
	if result == nil || strings.TrimSpace(result.Content) == "" {
		return nil, &coreerrors.ValidationError{Field: "content", Message: "no content to describe"}
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(result)},
		},
		Temperature: 0.3,
		N:           1,
	})
	if err != nil {
		return nil, &coreerrors.ExternalAPIError{API: "openai", Message: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return nil, &coreerrors.ExternalAPIError{API: "openai", Message: "empty completion response"}
	}

	desc, err := parseDescription(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, &coreerrors.ExternalAPIError{API: "openai", Message: err.Error()}
	}

	// Social posts never have a reliable scraped title; everything else
	// keeps the scraped one when the model's is empty.
	if desc.Title == "" && !result.NeedsAITitle {
		desc.Title = result.Title
	}

	if s.logger != nil {
		s.logger.Debug("generated post description", map[string]interface{}{
			"platform": string(result.Platform),
			"format":   string(result.Format),
		})
	}

	return desc, nil
}

// buildUserPrompt assembles the model input from the classification outcome
func buildUserPrompt(result *domain.ClassificationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Platform: %s\n", result.Platform)
	fmt.Fprintf(&b, "Format: %s\n", result.Format)
	if result.Title != "" {
		fmt.Fprintf(&b, "Scraped title: %s\n", result.Title)
	}

	content := result.Content
	if len(content) > maxPromptContentLength {
		// Bound by rune count so multibyte content is never cut mid-character
		if runes := []rune(content); len(runes) > maxPromptContentLength {
			content = string(runes[:maxPromptContentLength])
		}
	}
	fmt.Fprintf(&b, "\nContent:\n%s\n", content)

	return b.String()
}

// parseDescription extracts the JSON reply, tolerating code fences
func parseDescription(raw string) (*domain.PostDescription, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var desc domain.PostDescription
	if err := json.Unmarshal([]byte(cleaned), &desc); err != nil {
		return nil, fmt.Errorf("unparseable completion: %w", err)
	}
	if desc.Description == "" {
		return nil, fmt.Errorf("completion missing description")
	}

	desc.Title = strings.TrimSpace(desc.Title)
	desc.Description = strings.TrimSpace(desc.Description)

	return &desc, nil
}
