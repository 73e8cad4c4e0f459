package describe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"contentsage-api/core/domain"
	coreerrors "contentsage-api/core/errors"
)

// fakeChatClient returns a canned response and records the last request
type fakeChatClient struct {
	lastReq openai.ChatCompletionRequest
	content string
	err     error
}

func (f *fakeChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: f.content,
			},
		}},
	}, nil
}

func testResult() *domain.ClassificationResult {
	return &domain.ClassificationResult{
		Title:      "Original Headline",
		PostedDate: "2025-03-10",
		Format:     domain.FormatArticle,
		Platform:   domain.PlatformWebsite,
		Content:    "A long article about distributed systems and consensus.",
	}
}

func TestDescribeParsesJSONReply(t *testing.T) {
	client := &fakeChatClient{
		content: `{"title": "Consensus Explained", "description": "A walkthrough of distributed consensus."}`,
	}
	svc := NewService(client, "gpt-4o-mini", nil)

	desc, err := svc.Describe(context.Background(), testResult())
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	if desc.Title != "Consensus Explained" {
		t.Errorf("Title = %q", desc.Title)
	}
	if desc.Description != "A walkthrough of distributed consensus." {
		t.Errorf("Description = %q", desc.Description)
	}
	if client.lastReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", client.lastReq.Model)
	}
}

func TestDescribeToleratesCodeFences(t *testing.T) {
	client := &fakeChatClient{
		content: "```json\n{\"title\": \"T\", \"description\": \"D\"}\n```",
	}
	svc := NewService(client, "gpt-4o-mini", nil)

	desc, err := svc.Describe(context.Background(), testResult())
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if desc.Title != "T" || desc.Description != "D" {
		t.Errorf("got %+v", desc)
	}
}

func TestDescribeAPIErrorWrapped(t *testing.T) {
	client := &fakeChatClient{err: errors.New("connection refused")}
	svc := NewService(client, "gpt-4o-mini", nil)

	_, err := svc.Describe(context.Background(), testResult())
	if !coreerrors.IsExternalAPI(err) {
		t.Errorf("expected external API error, got %v", err)
	}
}

func TestDescribeUnparseableReply(t *testing.T) {
	client := &fakeChatClient{content: "Sure! Here is your summary."}
	svc := NewService(client, "gpt-4o-mini", nil)

	_, err := svc.Describe(context.Background(), testResult())
	if !coreerrors.IsExternalAPI(err) {
		t.Errorf("expected external API error, got %v", err)
	}
}

func TestDescribeEmptyContentRejected(t *testing.T) {
	svc := NewService(&fakeChatClient{}, "gpt-4o-mini", nil)

	result := testResult()
	result.Content = "   "

	_, err := svc.Describe(context.Background(), result)
	if !coreerrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDescribeKeepsScrapedTitleWhenModelOmitsIt(t *testing.T) {
	client := &fakeChatClient{
		content: `{"title": "", "description": "Summary here."}`,
	}
	svc := NewService(client, "gpt-4o-mini", nil)

	desc, err := svc.Describe(context.Background(), testResult())
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if desc.Title != "Original Headline" {
		t.Errorf("Title = %q, want scraped title", desc.Title)
	}
}

func TestDescribePromptIncludesContent(t *testing.T) {
	client := &fakeChatClient{
		content: `{"title": "T", "description": "D"}`,
	}
	svc := NewService(client, "gpt-4o-mini", nil)

	if _, err := svc.Describe(context.Background(), testResult()); err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	user := client.lastReq.Messages[1].Content
	if !strings.Contains(user, "distributed systems") {
		t.Errorf("user prompt missing content: %q", user)
	}
	if !strings.Contains(user, "Platform: website") {
		t.Errorf("user prompt missing platform: %q", user)
	}
}

func TestDescribeTruncatesLongContent(t *testing.T) {
	client := &fakeChatClient{
		content: `{"title": "T", "description": "D"}`,
	}
	svc := NewService(client, "gpt-4o-mini", nil)

	result := testResult()
	result.Content = strings.Repeat("x", maxPromptContentLength+500)

	if _, err := svc.Describe(context.Background(), result); err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	user := client.lastReq.Messages[1].Content
	if strings.Count(user, "x") != maxPromptContentLength {
		t.Errorf("content not truncated to %d chars", maxPromptContentLength)
	}
}

func TestDescribeTruncatesMultibyteContentOnRuneBoundary(t *testing.T) {
	client := &fakeChatClient{
		content: `{"title": "T", "description": "D"}`,
	}
	svc := NewService(client, "gpt-4o-mini", nil)

	result := testResult()
	result.Content = strings.Repeat("語", maxPromptContentLength+500)

	if _, err := svc.Describe(context.Background(), result); err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	user := client.lastReq.Messages[1].Content
	if !utf8.ValidString(user) {
		t.Error("prompt contains invalid UTF-8")
	}
	if strings.Count(user, "語") != maxPromptContentLength {
		t.Errorf("content not truncated to %d runes", maxPromptContentLength)
	}
}
