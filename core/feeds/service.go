// ABOUTME: Feed discovery service parsing RSS/Atom feeds into ingestion candidates
// ABOUTME: Surfaces recent feed entries so users can pick URLs to classify

package feeds

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	coreerrors "contentsage-api/core/errors"
	"contentsage-api/core/interfaces"
)

const (
	feedCacheTTL   = 15 * time.Minute
	maxCandidates  = 50
	cacheKeyPrefix = "feed:"
)

// Candidate is one feed entry proposed for ingestion
type Candidate struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	PostedDate string `json:"posted_date,omitempty"`
	Summary    string `json:"summary,omitempty"`
}

// Discovery holds the feed's own metadata plus its candidate entries
type Discovery struct {
	FeedTitle  string      `json:"feed_title"`
	FeedURL    string      `json:"feed_url"`
	SiteURL    string      `json:"site_url,omitempty"`
	Candidates []Candidate `json:"candidates"`
}

// Service discovers ingestion candidates from RSS and Atom feeds
type Service struct {
	deps interfaces.Dependencies
}

// NewService creates a new feed discovery service
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{deps: deps}
}

// Discover fetches and parses a feed, returning its recent entries as
// ingestion candidates. Parsed feeds are cached briefly to spare the
// upstream server.
func (s *Service) Discover(ctx context.Context, feedURL string) (*Discovery, error) {
	if feedURL == "" {
		return nil, &coreerrors.ValidationError{Field: "feed_url", Message: "feed URL cannot be empty"}
	}

	parsed, err := url.Parse(feedURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &coreerrors.ValidationError{Field: "feed_url", Message: "invalid URL format"}
	}

	if cached := s.getCached(ctx, feedURL); cached != nil {
		return cached, nil
	}

	body, err := s.fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	discovery, err := s.parse(body, feedURL)
	if err != nil {
		return nil, err
	}

	s.cache(ctx, feedURL, discovery)

	return discovery, nil
}

// fetch retrieves raw feed bytes through the injected HTTP client
func (s *Service) fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if s.deps.HTTPClient == nil {
		return nil, &coreerrors.FetchError{URL: feedURL, Err: errNoHTTPClient}
	}

	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, &coreerrors.FetchError{URL: feedURL, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &coreerrors.FetchError{URL: feedURL, StatusCode: resp.StatusCode()}
	}

	return io.ReadAll(resp.Body())
}

// parse converts feed content into a Discovery
func (s *Service) parse(content []byte, feedURL string) (*Discovery, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to parse feed")
	}

	discovery := &Discovery{
		FeedTitle:  feed.Title,
		FeedURL:    feedURL,
		SiteURL:    feed.Link,
		Candidates: make([]Candidate, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		if len(discovery.Candidates) >= maxCandidates {
			break
		}

		candidate := Candidate{
			URL:     item.Link,
			Title:   item.Title,
			Summary: item.Description,
		}
		if item.PublishedParsed != nil {
			candidate.PostedDate = item.PublishedParsed.UTC().Format("2006-01-02")
		}

		discovery.Candidates = append(discovery.Candidates, candidate)
	}

	return discovery, nil
}

func (s *Service) getCached(ctx context.Context, feedURL string) *Discovery {
	if s.deps.Cache == nil {
		return nil
	}
	data, err := s.deps.Cache.Get(ctx, cacheKeyPrefix+feedURL)
	if err != nil || data == nil {
		return nil
	}
	var discovery Discovery
	if err := json.Unmarshal(data, &discovery); err != nil {
		return nil
	}
	return &discovery
}

func (s *Service) cache(ctx context.Context, feedURL string, discovery *Discovery) {
	if s.deps.Cache == nil {
		return
	}
	if data, err := json.Marshal(discovery); err == nil {
		_ = s.deps.Cache.Set(ctx, cacheKeyPrefix+feedURL, data, feedCacheTTL)
	}
}

var errNoHTTPClient = errors.New("HTTP client not configured")
