// ABOUTME: Post domain model represents a scheduled content item on the calendar
// ABOUTME: Provides validation to ensure a post has required fields

package domain

import "time"

// PostStatus tracks the lifecycle of a post on the calendar
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
)

// Post represents a content item scheduled on an organization's calendar
type Post struct {
	// ID is the unique identifier for the post
	ID string

	// OrganizationID scopes the post to a tenant
	OrganizationID string

	// UserID is the user who ingested the post
	UserID string

	// URL is the source URL the post was ingested from
	URL string

	// Title is the post headline (scraped or AI-generated)
	Title string

	// Description is the AI-generated summary of the content
	Description string

	// PostedDate is the publication date in YYYY-MM-DD form
	PostedDate string

	// Format and Platform carry the classification outcome
	Format   Format
	Platform Platform

	// Content is the extracted text used for summarization
	Content string

	// Status tracks the post lifecycle
	Status PostStatus

	// Content signal flags from classification
	HasVideo       bool
	HasPodcast     bool
	HasInfographic bool

	// Enrichment fields
	Thumbnail   string    // Thumbnail image URL
	AccentColor *RGBColor // Prominent color of the thumbnail

	// CreatedAt is when the post record was stored
	CreatedAt time.Time
}

// IsValid checks if the post has all required fields
func (p *Post) IsValid() bool {
	if p.URL == "" {
		return false
	}

	if p.OrganizationID == "" {
		return false
	}

	return true
}

// RGBColor represents an RGB color value
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}
