// ABOUTME: Title and generic content extraction for classified pages
// ABOUTME: Uses go-readability for clean article text with a goquery fallback chain

package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	// maxContentLength bounds extracted text for generic pages
	maxContentLength = 5000

	// maxSocialContentLength bounds extracted social captions
	maxSocialContentLength = 1000
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// extractTitle returns the document title, the first h1 if the title is
// absent, or an empty string
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}

	return ""
}

// extractArticleContent returns cleaned text for non-social pages: the
// first article element, else a readability extraction, else the full
// body, truncated to maxContentLength
func (s *Service) extractArticleContent(rawHTML, rawURL string, doc *goquery.Document) string {
	if article := doc.Find("article").First(); article.Length() > 0 {
		if text := normalizeWhitespace(article.Text()); text != "" {
			return truncate(text, maxContentLength)
		}
	}

	if text := s.readabilityContent(rawHTML, rawURL); text != "" {
		return truncate(text, maxContentLength)
	}

	body := normalizeWhitespace(doc.Find("body").Text())
	return truncate(body, maxContentLength)
}

// readabilityContent runs go-readability over the raw markup. Failures
// degrade to the next tier, logged only.
func (s *Service) readabilityContent(rawHTML, rawURL string) string {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		s.logDebug("readability extraction failed", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return ""
	}

	return normalizeWhitespace(article.TextContent)
}

// normalizeWhitespace collapses whitespace runs and trims the result
func normalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// truncate bounds a string to max characters, never splitting a rune
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}

	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
