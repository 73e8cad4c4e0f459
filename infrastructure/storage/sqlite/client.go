// ABOUTME: SQLite-backed post store for persisting classified posts
// ABOUTME: File-based storage that survives application restarts

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"contentsage-api/core/domain"
	coreerrors "contentsage-api/core/errors"
)

// Client implements the PostStore interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
}

// NewPostStore creates a new SQLite post store
func NewPostStore(filePath string) (*Client, error) {
	if filePath == "" {
		filePath = "contentsage.db"
	}

	// Open database connection
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{
		db:       db,
		filePath: filePath,
	}

	// Initialize schema
	if err := client.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return client, nil
}

// initSchema creates the posts table if it doesn't exist
func (c *Client) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS posts (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			posted_date TEXT NOT NULL,
			format TEXT NOT NULL,
			platform TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft',
			has_video INTEGER NOT NULL DEFAULT 0,
			has_podcast INTEGER NOT NULL DEFAULT 0,
			has_infographic INTEGER NOT NULL DEFAULT 0,
			thumbnail TEXT NOT NULL DEFAULT '',
			accent_r INTEGER,
			accent_g INTEGER,
			accent_b INTEGER,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_posts_org_date ON posts(organization_id, posted_date);
	`

	_, err := c.db.Exec(query)
	return err
}

// SavePost inserts a post record and returns its assigned ID
func (c *Client) SavePost(ctx context.Context, post *domain.Post) (string, error) {
	if !post.IsValid() {
		return "", &coreerrors.ValidationError{Field: "post", Message: "url and organization_id are required"}
	}

	id := post.ID
	if id == "" {
		id = uuid.New().String()
	}

	createdAt := post.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	status := post.Status
	if status == "" {
		status = domain.PostStatusDraft
	}

	var accentR, accentG, accentB interface{}
	if post.AccentColor != nil {
		accentR = int(post.AccentColor.R)
		accentG = int(post.AccentColor.G)
		accentB = int(post.AccentColor.B)
	}

	query := `INSERT INTO posts (
		id, organization_id, user_id, url, title, description, posted_date,
		format, platform, content, status, has_video, has_podcast,
		has_infographic, thumbnail, accent_r, accent_g, accent_b, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := c.db.ExecContext(ctx, query,
		id, post.OrganizationID, post.UserID, post.URL, post.Title,
		post.Description, post.PostedDate, string(post.Format),
		string(post.Platform), post.Content, string(status),
		boolToInt(post.HasVideo), boolToInt(post.HasPodcast),
		boolToInt(post.HasInfographic), post.Thumbnail,
		accentR, accentG, accentB, createdAt.Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert post: %w", err)
	}

	return id, nil
}

// GetPost retrieves a post by ID
func (c *Client) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	query := selectColumns + ` FROM posts WHERE id = ?`

	row := c.db.QueryRowContext(ctx, query, id)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, &coreerrors.NotFoundError{Resource: "post", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// ListPosts returns posts for an organization within a date range,
// ordered by posted date ascending
func (c *Client) ListPosts(ctx context.Context, organizationID string, from, to time.Time) ([]*domain.Post, error) {
	query := selectColumns + ` FROM posts
		WHERE organization_id = ? AND posted_date >= ? AND posted_date <= ?
		ORDER BY posted_date ASC, created_at ASC`

	rows, err := c.db.QueryContext(ctx, query, organizationID,
		from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// UpdateDescription updates the title and description of a stored post
func (c *Client) UpdateDescription(ctx context.Context, id, title, description string) error {
	result, err := c.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, description = ? WHERE id = ?`,
		title, description, id)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &coreerrors.NotFoundError{Resource: "post", ID: id}
	}

	return nil
}

// DeletePost removes a post by ID
func (c *Client) DeletePost(ctx context.Context, id string) error {
	result, err := c.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &coreerrors.NotFoundError{Resource: "post", ID: id}
	}

	return nil
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

const selectColumns = `SELECT id, organization_id, user_id, url, title,
	description, posted_date, format, platform, content, status,
	has_video, has_podcast, has_infographic, thumbnail,
	accent_r, accent_g, accent_b, created_at`

// scanner abstracts *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanPost reads one post row
func scanPost(row scanner) (*domain.Post, error) {
	var post domain.Post
	var format, platform, status string
	var hasVideo, hasPodcast, hasInfographic int
	var accentR, accentG, accentB sql.NullInt64
	var createdAt int64

	err := row.Scan(&post.ID, &post.OrganizationID, &post.UserID, &post.URL,
		&post.Title, &post.Description, &post.PostedDate, &format, &platform,
		&post.Content, &status, &hasVideo, &hasPodcast, &hasInfographic,
		&post.Thumbnail, &accentR, &accentG, &accentB, &createdAt)
	if err != nil {
		return nil, err
	}

	post.Format = domain.Format(format)
	post.Platform = domain.Platform(platform)
	post.Status = domain.PostStatus(status)
	post.HasVideo = hasVideo != 0
	post.HasPodcast = hasPodcast != 0
	post.HasInfographic = hasInfographic != 0
	post.CreatedAt = time.Unix(createdAt, 0).UTC()

	if accentR.Valid && accentG.Valid && accentB.Valid {
		post.AccentColor = &domain.RGBColor{
			R: uint8(accentR.Int64),
			G: uint8(accentG.Int64),
			B: uint8(accentB.Int64),
		}
	}

	return &post, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
