// ABOUTME: Hand-rolled mocks shared by the handler tests
// ABOUTME: Function-field fakes for the service interfaces the handlers consume

package handlers

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"contentsage-api/core/domain"
	"contentsage-api/core/feeds"
	"contentsage-api/core/interfaces"
	"contentsage-api/core/posts"
)

type mockClassificationService struct {
	classifyFunc    func(ctx context.Context, input domain.ClassificationInput) (*domain.ClassificationResult, error)
	classifyURLFunc func(ctx context.Context, url string) (*domain.ClassificationResult, error)
}

func (m *mockClassificationService) Classify(ctx context.Context, input domain.ClassificationInput) (*domain.ClassificationResult, error) {
	if m.classifyFunc != nil {
		return m.classifyFunc(ctx, input)
	}
	return &domain.ClassificationResult{}, nil
}

func (m *mockClassificationService) ClassifyURL(ctx context.Context, url string) (*domain.ClassificationResult, error) {
	if m.classifyURLFunc != nil {
		return m.classifyURLFunc(ctx, url)
	}
	return &domain.ClassificationResult{}, nil
}

type mockPostService struct {
	ingestFunc     func(ctx context.Context, req posts.IngestRequest) (*domain.Post, error)
	getFunc        func(ctx context.Context, id string) (*domain.Post, error)
	listFunc       func(ctx context.Context, organizationID string, from, to time.Time) ([]*domain.Post, error)
	deleteFunc     func(ctx context.Context, id string) error
	regenerateFunc func(ctx context.Context, id string) (*domain.Post, error)
}

func (m *mockPostService) Ingest(ctx context.Context, req posts.IngestRequest) (*domain.Post, error) {
	if m.ingestFunc != nil {
		return m.ingestFunc(ctx, req)
	}
	return &domain.Post{}, nil
}

func (m *mockPostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &domain.Post{}, nil
}

func (m *mockPostService) List(ctx context.Context, organizationID string, from, to time.Time) ([]*domain.Post, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, organizationID, from, to)
	}
	return nil, nil
}

func (m *mockPostService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPostService) Regenerate(ctx context.Context, id string) (*domain.Post, error) {
	if m.regenerateFunc != nil {
		return m.regenerateFunc(ctx, id)
	}
	return &domain.Post{}, nil
}

type mockFeedDiscoveryService struct {
	discoverFunc func(ctx context.Context, feedURL string) (*feeds.Discovery, error)
}

func (m *mockFeedDiscoveryService) Discover(ctx context.Context, feedURL string) (*feeds.Discovery, error) {
	if m.discoverFunc != nil {
		return m.discoverFunc(ctx, feedURL)
	}
	return &feeds.Discovery{}, nil
}

type mockWarmer struct {
	mu   sync.Mutex
	urls [][]string
}

func (m *mockWarmer) WarmMetadata(ctx context.Context, urls []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, urls)
}

type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, nil
}

type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int { return m.statusCode }

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string { return "" }
