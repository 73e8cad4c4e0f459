// ABOUTME: Format decision tree and content-signal detection (video/podcast/infographic/gallery/pdf)
// ABOUTME: Implemented as an ordered rule table so precedence stays auditable

package classify

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"contentsage-api/core/domain"
)

// pageContext bundles everything the format rules inspect
type pageContext struct {
	doc      *goquery.Document
	url      string
	platform domain.Platform
	title    string
}

// formatRule pairs a predicate with its classification outcome. Rules are
// evaluated in order; the first match wins and later rules are skipped.
type formatRule struct {
	name    string
	matches func(pc *pageContext) bool
	outcome func(pc *pageContext, result *domain.ClassificationResult)
}

// formatRules is the strict precedence chain for format classification.
// The social rule fires on platform alone; its infographic flag and the
// podcast-phrase upgrade are applied by the service after social text
// extraction, since both need the extracted content.
var formatRules = []formatRule{
	{
		name:    "social",
		matches: func(pc *pageContext) bool { return pc.platform.IsSocial() },
		outcome: func(pc *pageContext, result *domain.ClassificationResult) {
			result.Format = domain.FormatSocial
			result.NeedsAITitle = true
			result.HasVideo = hasVideoMarkup(pc.doc, pc.url)
			result.HasPodcast = hasPodcastMarkup(pc.doc, pc.url, pc.title)
		},
	},
	{
		name: "video",
		matches: func(pc *pageContext) bool {
			return pc.platform.IsVideoPlatform() || hasVideoMarkup(pc.doc, pc.url)
		},
		outcome: func(pc *pageContext, result *domain.ClassificationResult) {
			result.Format = domain.FormatVideo
			result.HasVideo = true
		},
	},
	{
		name: "podcast",
		matches: func(pc *pageContext) bool {
			return hasPodcastMarkup(pc.doc, pc.url, pc.title)
		},
		outcome: func(pc *pageContext, result *domain.ClassificationResult) {
			result.Format = domain.FormatPodcast
			result.HasPodcast = true
		},
	},
	{
		name: "infographic",
		matches: func(pc *pageContext) bool {
			// Pinterest counts as a visualization signal only on the
			// social branch, so it is excluded here deliberately
			return hasInfographicMarkup(pc.doc, pc.url, pc.title) ||
				(mentionsInfographic(pc.doc.Text()) && hasVisualizationSignal(pc.doc, pc.platform, false))
		},
		outcome: func(pc *pageContext, result *domain.ClassificationResult) {
			result.Format = domain.FormatInfographic
			result.HasInfographic = true
		},
	},
	{
		name: "gallery",
		matches: func(pc *pageContext) bool {
			return hasGalleryMarkup(pc.doc)
		},
		outcome: func(pc *pageContext, result *domain.ClassificationResult) {
			result.Format = domain.FormatGallery
		},
	},
	{
		name: "pdf",
		matches: func(pc *pageContext) bool {
			return isPDFURL(pc.url)
		},
		outcome: func(pc *pageContext, result *domain.ClassificationResult) {
			result.Format = domain.FormatPDF
		},
	},
	{
		name:    "article",
		matches: func(pc *pageContext) bool { return true },
		outcome: func(pc *pageContext, result *domain.ClassificationResult) {
			result.Format = domain.FormatArticle
		},
	},
}

// decideFormat applies the first matching format rule and returns its name
func decideFormat(pc *pageContext, result *domain.ClassificationResult) string {
	for _, rule := range formatRules {
		if rule.matches(pc) {
			rule.outcome(pc, result)
			return rule.name
		}
	}
	// The article rule always matches; this is unreachable
	result.Format = domain.FormatArticle
	return "article"
}

// videoEmbedHosts are iframe source fragments that indicate an embedded player
var videoEmbedHosts = []string{
	"youtube.com/embed",
	"youtube-nocookie.com/embed",
	"player.vimeo.com",
	"tiktok.com/embed",
	"dailymotion.com/embed",
	"fast.wistia",
	"loom.com/embed",
}

// hasVideoMarkup detects video tags, known player iframes, video meta
// tags, platform UI markers, or a /video/ URL segment
func hasVideoMarkup(doc *goquery.Document, rawURL string) bool {
	if doc.Find("video").Length() > 0 {
		return true
	}

	found := false
	doc.Find("iframe[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, _ := sel.Attr("src")
		src = strings.ToLower(src)
		for _, host := range videoEmbedHosts {
			if strings.Contains(src, host) {
				found = true
				return false
			}
		}
		return true
	})
	if found {
		return true
	}

	if doc.Find(`meta[property="og:video"], meta[property="og:video:url"], meta[property="og:video:secure_url"], meta[name="twitter:player"]`).Length() > 0 {
		return true
	}

	if doc.Find(`[data-testid="videoPlayer"], [data-testid="videoComponent"], .video-player`).Length() > 0 {
		return true
	}

	lower := strings.ToLower(rawURL)
	return strings.Contains(lower, "/video/") || strings.Contains(lower, "/videos/")
}

// podcastEmbedHosts are iframe source fragments for podcast players
var podcastEmbedHosts = []string{
	"open.spotify.com/embed",
	"podcasts.apple.com",
	"anchor.fm",
	"w.soundcloud.com/player",
	"player.megaphone.fm",
	"player.simplecast.com",
	"html5-player.libsyn.com",
	"buzzsprout.com",
	"share.transistor.fm",
}

// podcastURLIndicators are URL or hostname fragments of podcast platforms
var podcastURLIndicators = []string{
	"podcast",
	"podcasts.apple.com",
	"open.spotify.com/episode",
	"open.spotify.com/show",
	"anchor.fm",
	"soundcloud.com",
}

// hasPodcastMarkup detects audio tags, podcast player iframes, or
// podcast-platform indicators in the URL or title
func hasPodcastMarkup(doc *goquery.Document, rawURL, title string) bool {
	if doc.Find("audio").Length() > 0 {
		return true
	}

	found := false
	doc.Find("iframe[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, _ := sel.Attr("src")
		src = strings.ToLower(src)
		for _, host := range podcastEmbedHosts {
			if strings.Contains(src, host) {
				found = true
				return false
			}
		}
		return true
	})
	if found {
		return true
	}

	lowerURL := strings.ToLower(rawURL)
	for _, indicator := range podcastURLIndicators {
		if strings.Contains(lowerURL, indicator) {
			return true
		}
	}

	return strings.Contains(strings.ToLower(title), "podcast")
}

// socialPodcastPhrases upgrade HasPodcast when they appear in extracted
// social text that carried no podcast markup
var socialPodcastPhrases = []string{
	"listen to",
	"new episode",
	"latest episode",
	"podcast",
	"open.spotify.com",
	"podcasts.apple.com",
	"anchor.fm",
}

// mentionsPodcast reports whether extracted social text contains a
// podcast-indicating phrase
func mentionsPodcast(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range socialPodcastPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// hasInfographicMarkup detects explicit infographic markup or an
// infographic mention in the URL or title
func hasInfographicMarkup(doc *goquery.Document, rawURL, title string) bool {
	if doc.Find(`img[src*="infographic"], img[alt*="infographic"], [class*="infographic"], [id*="infographic"]`).Length() > 0 {
		return true
	}

	if strings.Contains(strings.ToLower(rawURL), "infographic") {
		return true
	}

	return strings.Contains(strings.ToLower(title), "infographic")
}

// mentionsInfographic reports whether page or post text explicitly
// mentions an infographic
func mentionsInfographic(text string) bool {
	return strings.Contains(strings.ToLower(text), "infographic")
}

// hasVisualizationSignal detects chart/graph elements or sized SVGs.
// includePinterest widens the signal bundle to treat Pinterest hosting as
// sufficient evidence; only the social branch does that.
func hasVisualizationSignal(doc *goquery.Document, platform domain.Platform, includePinterest bool) bool {
	if includePinterest && platform == domain.PlatformPinterest {
		return true
	}

	if doc.Find(`canvas, [class*="chart"], [class*="graph"], [data-chart]`).Length() > 0 {
		return true
	}

	found := false
	doc.Find("svg").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if svgIsSized(sel, 400) {
			found = true
			return false
		}
		return true
	})

	return found
}

// svgIsSized reports whether an SVG declares width and height at or above
// the given minimum, filtering out icons
func svgIsSized(sel *goquery.Selection, min int) bool {
	width, _ := sel.Attr("width")
	height, _ := sel.Attr("height")
	w, errW := strconv.Atoi(strings.TrimSuffix(width, "px"))
	h, errH := strconv.Atoi(strings.TrimSuffix(height, "px"))
	return errW == nil && errH == nil && w >= min && h >= min
}

// hasGalleryMarkup detects gallery, carousel, or slider containers
func hasGalleryMarkup(doc *goquery.Document) bool {
	return doc.Find(`[class*="gallery"], [class*="carousel"], [class*="slider"], [data-testid="carousel"], .swiper, .slick-slider`).Length() > 0
}

// isPDFURL reports whether the URL path points at a PDF document
func isPDFURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	if idx := strings.IndexAny(lower, "?#"); idx >= 0 {
		lower = lower[:idx]
	}
	return strings.HasSuffix(lower, ".pdf") || strings.Contains(lower, "/pdf/")
}
