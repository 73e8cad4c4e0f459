// ABOUTME: Classification domain model for content ingested from external URLs
// ABOUTME: Defines platform/format enumerations and the classifier's result value object

package domain

// Platform identifies the service hosting a piece of content,
// derived purely from the URL hostname.
type Platform string

const (
	PlatformWebsite   Platform = "website"
	PlatformX         Platform = "X"
	PlatformInstagram Platform = "Instagram"
	PlatformFacebook  Platform = "Facebook"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformYouTube   Platform = "YouTube"
	PlatformTikTok    Platform = "TikTok"
	PlatformThreads   Platform = "Threads"
	PlatformVimeo     Platform = "Vimeo"
	PlatformPinterest Platform = "Pinterest"
	PlatformMedium    Platform = "Medium"
)

// Format is the primary content-type classification for an ingested URL.
// Exactly one format is assigned per classification.
type Format string

const (
	FormatArticle     Format = "article"
	FormatSocial      Format = "social"
	FormatVideo       Format = "video"
	FormatPodcast     Format = "podcast"
	FormatInfographic Format = "infographic"
	FormatGallery     Format = "gallery"
	FormatPDF         Format = "pdf"
)

// IsSocial reports whether the platform hosts short-form social posts.
// Social platforms keep format "social" regardless of embedded media.
func (p Platform) IsSocial() bool {
	switch p {
	case PlatformX, PlatformInstagram, PlatformFacebook, PlatformLinkedIn, PlatformThreads:
		return true
	}
	return false
}

// IsVideoPlatform reports whether the platform is a dedicated video host
func (p Platform) IsVideoPlatform() bool {
	switch p {
	case PlatformYouTube, PlatformTikTok, PlatformVimeo:
		return true
	}
	return false
}

// ClassificationInput is the raw material for one classification:
// the fetched markup and the absolute URL it came from.
type ClassificationInput struct {
	HTML string
	URL  string
}

// ClassificationResult is the classifier's output value object.
// PostedDate is always populated (falls back to today in UTC).
// The three Has* flags are independent signals and may overlap
// with each other and with Format.
type ClassificationResult struct {
	// Title is the best-effort scraped title, possibly empty pending AI generation
	Title string `json:"title"`

	// PostedDate is the publication date in YYYY-MM-DD form
	PostedDate string `json:"posted_date"`

	// Format is the primary content classification
	Format Format `json:"format"`

	// Platform is derived from the URL hostname
	Platform Platform `json:"platform"`

	// Content is cleaned text for downstream summarization, bounded in length
	Content string `json:"content"`

	// NeedsAITitle signals that the scraped title is unreliable and a
	// generated title must replace it. Always true for social posts.
	NeedsAITitle bool `json:"needs_ai_title"`

	HasVideo       bool `json:"has_video"`
	HasInfographic bool `json:"has_infographic"`
	HasPodcast     bool `json:"has_podcast"`
}

// PostDescription is the describer's output for a classified page
type PostDescription struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
