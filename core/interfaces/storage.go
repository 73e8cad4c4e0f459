// ABOUTME: Storage interface for persisting posts to a database backend
// ABOUTME: Allows swapping SQLite for another store without touching core logic

package interfaces

import (
	"context"
	"time"

	"contentsage-api/core/domain"
)

// PostStore defines the interface for post persistence
type PostStore interface {
	// SavePost inserts a post record and returns its assigned ID
	SavePost(ctx context.Context, post *domain.Post) (string, error)

	// GetPost retrieves a post by ID
	GetPost(ctx context.Context, id string) (*domain.Post, error)

	// ListPosts returns posts for an organization within a date range,
	// ordered by posted date ascending
	ListPosts(ctx context.Context, organizationID string, from, to time.Time) ([]*domain.Post, error)

	// UpdateDescription updates the title and description of a stored post
	UpdateDescription(ctx context.Context, id, title, description string) error

	// DeletePost removes a post by ID
	DeletePost(ctx context.Context, id string) error
}
