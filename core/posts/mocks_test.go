// ABOUTME: Hand-rolled mocks for the post ingestion service tests
// ABOUTME: Function-field fakes for classifier, describer, enricher and store

package posts

import (
	"context"
	"time"

	"contentsage-api/core/domain"
	coreerrors "contentsage-api/core/errors"
	"contentsage-api/core/interfaces"
)

type mockClassifier struct {
	classifyURLFunc func(ctx context.Context, url string) (*domain.ClassificationResult, error)
	calls           int
}

func (m *mockClassifier) ClassifyURL(ctx context.Context, url string) (*domain.ClassificationResult, error) {
	m.calls++
	return m.classifyURLFunc(ctx, url)
}

type mockDescriber struct {
	describeFunc func(ctx context.Context, result *domain.ClassificationResult) (*domain.PostDescription, error)
	calls        int
}

func (m *mockDescriber) Describe(ctx context.Context, result *domain.ClassificationResult) (*domain.PostDescription, error) {
	m.calls++
	return m.describeFunc(ctx, result)
}

type mockEnricher struct {
	metadataFunc func(ctx context.Context, url string) (*interfaces.MetadataResult, error)
	colorFunc    func(ctx context.Context, imageURL string) (*domain.RGBColor, error)
}

func (m *mockEnricher) ExtractMetadata(ctx context.Context, url string) (*interfaces.MetadataResult, error) {
	if m.metadataFunc != nil {
		return m.metadataFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockEnricher) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	return nil
}

func (m *mockEnricher) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if m.colorFunc != nil {
		return m.colorFunc(ctx, imageURL)
	}
	return nil, nil
}

func (m *mockEnricher) ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor {
	return nil
}

// mockStore keeps posts in a map for pipeline tests
type mockStore struct {
	posts     map[string]*domain.Post
	saveErr   error
	nextID    string
	saveCalls int
}

func newMockStore() *mockStore {
	return &mockStore{posts: map[string]*domain.Post{}, nextID: "post-1"}
}

func (m *mockStore) SavePost(ctx context.Context, post *domain.Post) (string, error) {
	m.saveCalls++
	if m.saveErr != nil {
		return "", m.saveErr
	}
	id := post.ID
	if id == "" {
		id = m.nextID
	}
	stored := *post
	stored.ID = id
	m.posts[id] = &stored
	return id, nil
}

func (m *mockStore) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "post", ID: id}
	}
	copied := *post
	return &copied, nil
}

func (m *mockStore) ListPosts(ctx context.Context, organizationID string, from, to time.Time) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, post := range m.posts {
		if post.OrganizationID == organizationID {
			copied := *post
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateDescription(ctx context.Context, id, title, description string) error {
	post, ok := m.posts[id]
	if !ok {
		return &coreerrors.NotFoundError{Resource: "post", ID: id}
	}
	post.Title = title
	post.Description = description
	return nil
}

func (m *mockStore) DeletePost(ctx context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return &coreerrors.NotFoundError{Resource: "post", ID: id}
	}
	delete(m.posts, id)
	return nil
}
