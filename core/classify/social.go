// ABOUTME: Social post text extraction using per-platform selector tables
// ABOUTME: Falls back through meta description, JSON-LD, article heuristics, main, and body

package classify

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"contentsage-api/core/domain"
)

// socialSelectorSet is the ordered selector list tuned for one platform,
// with the minimum text length a match must yield
type socialSelectorSet struct {
	selectors []string
	minLen    int
}

// instagramFacebookSelectors is shared: both render post text in the same
// container family, and Threads pages reuse Instagram's markup
var instagramFacebookSelectors = socialSelectorSet{
	selectors: []string{
		`[data-testid="post_message"]`,
		`.userContent`,
		`div[role="article"] div[dir="auto"]`,
		`._a9zs`,
	},
	minLen: 5,
}

var socialSelectors = map[domain.Platform]socialSelectorSet{
	domain.PlatformX: {
		selectors: []string{
			`[data-testid="tweetText"]`,
			`article div[lang]`,
			`.tweet-text`,
			`.js-tweet-text`,
		},
		minLen: 10,
	},
	domain.PlatformInstagram: instagramFacebookSelectors,
	domain.PlatformFacebook:  instagramFacebookSelectors,
	domain.PlatformThreads:   instagramFacebookSelectors,
	domain.PlatformLinkedIn: {
		selectors: []string{
			`.feed-shared-text`,
			`.feed-shared-update-v2__description`,
			`.update-components-text`,
			`.break-words`,
		},
		minLen: 5,
	},
}

// knownPostContainers are generic wrappers social platforms put around a
// single post, tried late in the fallback chain
const knownPostContainers = `[role="article"], .post-content, [data-testid="post-container"]`

// minMeaningfulArticleLen filters out trivially short article wrappers in
// the shortest-article heuristic
const minMeaningfulArticleLen = 20

// extractSocialContent pulls the post caption from a social platform
// page. Selector tiers are tried in order; any tier failing degrades to
// the next rather than aborting.
func (s *Service) extractSocialContent(doc *goquery.Document, platform domain.Platform) string {
	if set, ok := socialSelectors[platform]; ok {
		for _, selector := range set.selectors {
			text := normalizeWhitespace(doc.Find(selector).First().Text())
			if len(text) > set.minLen {
				return s.finishSocialText(text, platform)
			}
		}
	}

	if desc := metaDescription(doc); desc != "" {
		return s.finishSocialText(desc, platform)
	}

	for _, body := range scanJSONLD(doc, "articleBody", "text") {
		if text := normalizeWhitespace(body); text != "" {
			return s.finishSocialText(text, platform)
		}
	}

	if text := shortestMeaningfulArticle(doc); text != "" {
		return s.finishSocialText(text, platform)
	}

	if text := normalizeWhitespace(doc.Find("main").First().Text()); text != "" {
		return s.finishSocialText(text, platform)
	}

	if text := normalizeWhitespace(doc.Find(knownPostContainers).First().Text()); text != "" {
		return s.finishSocialText(text, platform)
	}

	return s.finishSocialText(normalizeWhitespace(doc.Find("body").Text()), platform)
}

// finishSocialText applies platform post-processing and the caption bound
func (s *Service) finishSocialText(text string, platform domain.Platform) string {
	if platform == domain.PlatformX {
		text = cleanXText(text)
	}
	return truncate(text, maxSocialContentLength)
}

// metaDescription returns the page description meta content, preferring
// the plain description tag over the Open Graph one
func metaDescription(doc *goquery.Document) string {
	for _, selector := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if content, exists := doc.Find(selector).First().Attr("content"); exists {
			if text := normalizeWhitespace(content); text != "" {
				return text
			}
		}
	}
	return ""
}

// shortestMeaningfulArticle returns the shortest non-trivial article
// element text. On social pages the main post is typically the smallest
// article block; UI chrome produces longer surrounding wrappers.
func shortestMeaningfulArticle(doc *goquery.Document) string {
	shortest := ""

	doc.Find("article").Each(func(_ int, sel *goquery.Selection) {
		text := normalizeWhitespace(sel.Text())
		if len(text) < minMeaningfulArticleLen {
			return
		}
		if shortest == "" || len(text) < len(shortest) {
			shortest = text
		}
	})

	return shortest
}

var (
	tcoLinkPattern   = regexp.MustCompile(`https?://t\.co/\S+`)
	metricPattern    = regexp.MustCompile(`(?i)\b[\d,.]+[KM]?\s*(views|likes|reposts|retweets|replies|bookmarks|quotes)\b`)
	gluedTagPattern  = regexp.MustCompile(`(\pL)([@#])`)
	xActionPhrases   = []string{"Like", "Retweet", "Repost", "Reply", "Share", "Bookmark", "Follow"}
	actionWordFilter = func() map[string]bool {
		m := make(map[string]bool, len(xActionPhrases))
		for _, phrase := range xActionPhrases {
			m[phrase] = true
		}
		return m
	}()
)

// cleanXText post-processes extracted X post text: strips shortened
// links, UI action and metric phrases, normalizes mention/hashtag
// spacing, and collapses whitespace
func cleanXText(text string) string {
	text = tcoLinkPattern.ReplaceAllString(text, "")
	text = metricPattern.ReplaceAllString(text, "")
	text = gluedTagPattern.ReplaceAllString(text, "$1 $2")

	words := strings.Fields(text)
	kept := words[:0]
	for _, word := range words {
		if actionWordFilter[word] {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}
