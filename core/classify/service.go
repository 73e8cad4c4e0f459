// ABOUTME: Classification service orchestrating platform, date, format and content extraction
// ABOUTME: Pure function of (html, url, clock) with URL fetching and caching on top

package classify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"contentsage-api/core/domain"
	coreerrors "contentsage-api/core/errors"
	"contentsage-api/core/interfaces"
)

// resultCacheTTL is how long classification results are cached per URL
const resultCacheTTL = 24 * time.Hour

// Service classifies ingested URLs into platform, format, publication
// date and content signals
type Service struct {
	deps  interfaces.Dependencies
	clock func() time.Time
}

// NewService creates a new classification service
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{
		deps:  deps,
		clock: time.Now,
	}
}

// SetClock overrides the time source used for the "today" date fallback.
// Tests inject a fixed clock to make the default-date path deterministic.
func (s *Service) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Classify inspects the parsed document plus the URL to determine
// platform, format, publication date, content signals, and cleaned text.
// The only fatal errors are an unparseable URL and unparseable markup;
// every heuristic miss degrades to a safe default.
func (s *Service) Classify(ctx context.Context, input domain.ClassificationInput) (*domain.ClassificationResult, error) {
	platform, err := DetectPlatform(input.URL)
	if err != nil {
		return nil, err
	}

	node, err := html.Parse(strings.NewReader(input.HTML))
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to parse document")
	}
	doc := goquery.NewDocumentFromNode(node)

	title := extractTitle(doc)

	result := &domain.ClassificationResult{
		Title:    title,
		Platform: platform,
	}

	result.PostedDate = s.extractPostedDate(doc, input.URL, platform)

	pc := &pageContext{
		doc:      doc,
		url:      input.URL,
		platform: platform,
		title:    title,
	}
	rule := decideFormat(pc, result)

	if result.Format == domain.FormatSocial {
		s.classifySocialContent(pc, result)
	} else {
		result.Content = s.extractArticleContent(input.HTML, input.URL, doc)
	}

	s.logDebug("classified URL", map[string]interface{}{
		"url":      input.URL,
		"platform": string(platform),
		"format":   string(result.Format),
		"rule":     rule,
		"date":     result.PostedDate,
	})

	return result, nil
}

// classifySocialContent extracts the social caption and applies the
// post-extraction signal passes that depend on it: the infographic
// co-occurrence rule (where Pinterest hosting counts as a visualization
// signal) and the podcast-phrase upgrade
func (s *Service) classifySocialContent(pc *pageContext, result *domain.ClassificationResult) {
	content := s.extractSocialContent(pc.doc, pc.platform)
	if content != "" {
		result.Content = content
	} else {
		result.Content = s.extractArticleContent("", pc.url, pc.doc)
	}

	result.HasInfographic = hasInfographicMarkup(pc.doc, pc.url, pc.title) ||
		(mentionsInfographic(result.Content) && hasVisualizationSignal(pc.doc, pc.platform, true))

	if !result.HasPodcast && mentionsPodcast(result.Content) {
		result.HasPodcast = true
	}
}

// ClassifyURL fetches a URL and classifies the response markup. Results
// are cached by URL. A failed fetch is fatal and surfaces as a
// FetchError; the caller owns any retry policy.
func (s *Service) ClassifyURL(ctx context.Context, rawURL string) (*domain.ClassificationResult, error) {
	if s.deps.Cache != nil {
		cacheKey := "classify:" + rawURL
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached domain.ClassificationResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	pageHTML, err := s.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	result, err := s.Classify(ctx, domain.ClassificationInput{HTML: pageHTML, URL: rawURL})
	if err != nil {
		return nil, err
	}

	if s.deps.Cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.deps.Cache.Set(ctx, "classify:"+rawURL, data, resultCacheTTL)
		}
	}

	return result, nil
}

// fetch retrieves the raw markup for a URL through the injected HTTP client
func (s *Service) fetch(ctx context.Context, rawURL string) (string, error) {
	if s.deps.HTTPClient == nil {
		return "", &coreerrors.FetchError{URL: rawURL, Err: errNoHTTPClient}
	}

	resp, err := s.deps.HTTPClient.Get(ctx, rawURL)
	if err != nil {
		return "", &coreerrors.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &coreerrors.FetchError{URL: rawURL, StatusCode: resp.StatusCode()}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return "", &coreerrors.FetchError{URL: rawURL, Err: err}
	}

	return string(body), nil
}

// logDebug logs when a logger is configured; classification must work
// without one
func (s *Service) logDebug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}

var errNoHTTPClient = errors.New("HTTP client not configured")
