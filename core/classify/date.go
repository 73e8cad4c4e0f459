// ABOUTME: Publication date extraction with per-platform fallback chains
// ABOUTME: Normalizes every candidate to UTC before truncating to day granularity

package classify

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"contentsage-api/core/domain"
)

// dateLayout is the calendar-date form used throughout the application
const dateLayout = "2006-01-02"

// metaDateSource names a meta tag (or time element) and the attribute
// carrying its date value. The scan order matters: earlier sources are
// more reliable publication-date signals.
type metaDateSource struct {
	selector string
	attr     string
}

var metaDateSources = []metaDateSource{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[name="publication_date"]`, "content"},
	{`meta[name="date"]`, "content"},
	{`meta[name="DC.date.issued"]`, "content"},
	{`time[datetime]`, "datetime"},
	{`meta[property="og:published_time"]`, "content"},
	{`meta[itemprop="datePublished"]`, "content"},
}

var (
	// "5:43 PM · Sep 1, 2022" as rendered on X post pages
	timeDotDatePattern = regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*[AP]M\s*·\s*([A-Za-z]{3,9}\.?\s+\d{1,2},\s+\d{4})`)

	// "September 1, 2022"
	monthDayYearPattern = regexp.MustCompile(`[A-Z][a-z]{2,8}\.?\s+\d{1,2},\s+\d{4}`)

	// "1 September 2022"
	dayMonthYearPattern = regexp.MustCompile(`\d{1,2}\s+[A-Z][a-z]{2,8}\.?\s+\d{4}`)
)

// dateStrategy is one attempt at recovering a publication date.
// Strategies are tried in order until one yields a parseable date. now
// carries the service clock for strategies that need a reference time.
type dateStrategy func(doc *goquery.Document, rawURL string, now time.Time) (time.Time, bool)

var xDateStrategies = []dateStrategy{
	xDateFromTimeElements,
	xDateFromFreeText,
	xDateFromStructuredData,
	xDateFromSnowflake,
}

// extractPostedDate produces the best-guess publication date in
// YYYY-MM-DD form. X pages get their platform-specific chain first, then
// every platform falls through to the generic meta scan, then to "today"
// from the injected clock. Unparseable candidates are skipped, not fatal.
func (s *Service) extractPostedDate(doc *goquery.Document, rawURL string, platform domain.Platform) string {
	if platform == domain.PlatformX {
		now := s.clock().UTC()
		for _, strategy := range xDateStrategies {
			if t, ok := strategy(doc, rawURL, now); ok {
				return t.UTC().Format(dateLayout)
			}
		}
	}

	if t, ok := dateFromMetaTags(doc); ok {
		return t.UTC().Format(dateLayout)
	}

	return s.clock().UTC().Format(dateLayout)
}

// dateFromMetaTags scans the generic meta-tag sources in priority order
func dateFromMetaTags(doc *goquery.Document) (time.Time, bool) {
	for _, source := range metaDateSources {
		var found time.Time
		var ok bool

		doc.Find(source.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			value, exists := sel.Attr(source.attr)
			if !exists {
				return true
			}
			if t, parsed := parseDateCandidate(value); parsed {
				found = t
				ok = true
				return false
			}
			return true
		})

		if ok {
			return found, true
		}
	}

	return time.Time{}, false
}

// xDateFromTimeElements reads the datetime attribute of any time element
// or element carrying a datetime attribute
func xDateFromTimeElements(doc *goquery.Document, _ string, _ time.Time) (time.Time, bool) {
	var found time.Time
	var ok bool

	doc.Find("time[datetime], [datetime]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		value, exists := sel.Attr("datetime")
		if !exists {
			return true
		}
		if t, parsed := parseDateCandidate(value); parsed {
			found = t
			ok = true
			return false
		}
		return true
	})

	return found, ok
}

// xDateFromFreeText matches date-like patterns in the rendered page text.
// The time-and-separator prefix X renders before the date is stripped
// before parsing.
func xDateFromFreeText(doc *goquery.Document, _ string, _ time.Time) (time.Time, bool) {
	text := doc.Text()

	if match := timeDotDatePattern.FindStringSubmatch(text); match != nil {
		if t, ok := parseDateCandidate(match[1]); ok {
			return t, true
		}
	}

	for _, pattern := range []*regexp.Regexp{monthDayYearPattern, dayMonthYearPattern} {
		if match := pattern.FindString(text); match != "" {
			if t, ok := parseDateCandidate(match); ok {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// xDateFromStructuredData checks datePublished/dateCreated in any ld+json
// block, including the nested mainEntity object
func xDateFromStructuredData(doc *goquery.Document, _ string, _ time.Time) (time.Time, bool) {
	for _, candidate := range scanJSONLD(doc, "datePublished", "dateCreated") {
		if t, ok := parseDateCandidate(candidate); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// xDateFromSnowflake decodes the numeric status ID embedded in the URL
func xDateFromSnowflake(_ *goquery.Document, rawURL string, now time.Time) (time.Time, bool) {
	return decodeXStatusURL(rawURL, now)
}

// fallbackDateLayouts covers formats dateparse occasionally rejects
var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// parseDateCandidate parses a candidate date string, anchoring zoneless
// values to UTC so local-timezone parsing cannot shift the calendar day
func parseDateCandidate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if t, err := dateparse.ParseIn(value, time.UTC); err == nil {
		return t.UTC(), true
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}
