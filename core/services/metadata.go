// ABOUTME: Metadata extraction service for post thumbnails and page metadata
// ABOUTME: Uses colly to scrape Open Graph tags, favicons and JSON-LD images

package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"

	"contentsage-api/core/interfaces"
)

const (
	// Some hosts only serve Open Graph tags to known preview bots
	metadataUserAgent = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"

	metadataCacheTTL    = 24 * time.Hour
	metadataBatchLimit  = 10
	metadataMaxBodySize = 5 * 1024 * 1024
)

// MetadataService extracts page metadata used to enrich ingested posts
type MetadataService struct {
	deps interfaces.Dependencies
}

// NewMetadataService creates a new metadata service
func NewMetadataService(deps interfaces.Dependencies) *MetadataService {
	return &MetadataService{
		deps: deps,
	}
}

// ExtractMetadata extracts metadata from a single URL, with caching
func (s *MetadataService) ExtractMetadata(ctx context.Context, targetURL string) (*interfaces.MetadataResult, error) {
	cacheKey := "metadata:" + targetURL

	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var result interfaces.MetadataResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result, nil
			}
		}
	}

	result := s.extractFromURL(targetURL)

	if s.deps.Cache != nil && result != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, metadataCacheTTL)
		}
	}

	return result, nil
}

// ExtractMetadataBatch extracts metadata for multiple URLs concurrently
func (s *MetadataService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	results := make(map[string]*interfaces.MetadataResult)
	var mu sync.Mutex
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, metadataBatchLimit)

	for _, u := range urls {
		wg.Add(1)
		go func(targetURL string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if result, err := s.ExtractMetadata(ctx, targetURL); err == nil && result != nil {
				mu.Lock()
				results[targetURL] = result
				mu.Unlock()
			}
		}(u)
	}

	wg.Wait()
	return results
}

// extractFromURL performs the actual scrape
func (s *MetadataService) extractFromURL(targetURL string) *interfaces.MetadataResult {
	if targetURL == "" || targetURL == "about:blank" {
		return nil
	}
	if parsed, err := url.Parse(targetURL); err != nil || parsed.Host == "" {
		return nil
	}

	c := colly.NewCollector(
		colly.UserAgent(metadataUserAgent),
		colly.MaxBodySize(metadataMaxBodySize),
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(10 * time.Second)

	result := &interfaces.MetadataResult{
		Images: []string{},
	}

	c.OnHTML("meta", func(e *colly.HTMLElement) {
		content := e.Attr("content")
		if content == "" {
			return
		}

		switch e.Attr("name") {
		case "theme-color":
			result.ThemeColor = content
		case "twitter:image":
			if result.Thumbnail == "" {
				result.Thumbnail = content
			}
		}

		switch e.Attr("property") {
		case "og:title":
			if result.Title == "" {
				result.Title = content
			}
		case "og:description":
			if result.Description == "" {
				result.Description = content
			}
		case "og:image":
			result.Images = append(result.Images, content)
			if result.Thumbnail == "" {
				result.Thumbnail = content
			}
		}
	})

	c.OnHTML("head", func(e *colly.HTMLElement) {
		if result.Title == "" {
			if title := e.DOM.Find("title").First().Text(); title != "" {
				result.Title = strings.TrimSpace(title)
			}
		}

		if result.Description == "" {
			e.DOM.Find("meta[name='description']").Each(func(_ int, sel *goquery.Selection) {
				if content, exists := sel.Attr("content"); exists && content != "" {
					result.Description = content
				}
			})
		}

		e.DOM.Find("link[rel]").Each(func(_ int, sel *goquery.Selection) {
			href := sel.AttrOr("href", "")
			if href == "" || result.Favicon != "" {
				return
			}
			for _, rel := range strings.Fields(sel.AttrOr("rel", "")) {
				if rel == "icon" || rel == "shortcut" || rel == "apple-touch-icon" {
					result.Favicon = e.Request.AbsoluteURL(href)
					return
				}
			}
		})
	})

	// JSON-LD carries the article image on many news sites
	c.OnHTML("script[type='application/ld+json']", func(e *colly.HTMLElement) {
		if result.Thumbnail != "" {
			return
		}
		var ldData map[string]interface{}
		if err := json.Unmarshal([]byte(e.Text), &ldData); err != nil {
			return
		}
		switch img := ldData["image"].(type) {
		case string:
			result.Thumbnail = img
		case map[string]interface{}:
			if u, ok := img["url"].(string); ok {
				result.Thumbnail = u
			}
		}
	})

	// First significant inline image as a last-resort thumbnail
	c.OnHTML("img", func(e *colly.HTMLElement) {
		if result.Thumbnail != "" {
			return
		}
		src := e.Attr("src")
		if src != "" && isSignificantImage(e) {
			result.Thumbnail = e.Request.AbsoluteURL(src)
		}
	})

	c.OnRequest(func(r *colly.Request) {
		if parsedURL, err := url.Parse(r.URL.String()); err == nil {
			result.Domain = parsedURL.Host
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		s.logDebug("error visiting URL for metadata", map[string]interface{}{
			"url":    targetURL,
			"error":  err.Error(),
			"status": r.StatusCode,
		})
	})

	if err := c.Visit(targetURL); err != nil {
		s.logDebug("failed to visit URL for metadata extraction", map[string]interface{}{
			"url":   targetURL,
			"error": err.Error(),
		})
		return result
	}

	return result
}

// isSignificantImage filters out logos, icons and avatars
func isSignificantImage(e *colly.HTMLElement) bool {
	width := e.Attr("width")
	height := e.Attr("height")

	if width != "" && height != "" {
		w, _ := strconv.Atoi(width)
		h, _ := strconv.Atoi(height)
		if w < 200 || h < 200 {
			return false
		}
	}

	class := strings.ToLower(e.Attr("class"))
	id := strings.ToLower(e.Attr("id"))
	alt := strings.ToLower(e.Attr("alt"))

	skipPatterns := []string{"logo", "icon", "avatar", "profile", "user", "author"}
	for _, pattern := range skipPatterns {
		if strings.Contains(class, pattern) || strings.Contains(id, pattern) || strings.Contains(alt, pattern) {
			return false
		}
	}

	return true
}

func (s *MetadataService) logDebug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}
