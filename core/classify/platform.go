// ABOUTME: Platform detection from URL hostnames
// ABOUTME: Maps known social/video/content domains to platform tags with a website fallback

package classify

import (
	"net/url"
	"strings"

	"contentsage-api/core/domain"
	coreerrors "contentsage-api/core/errors"
)

// platformDomain pairs a hostname fragment with its platform tag.
// Matching is ordered; the first fragment contained in the hostname wins.
type platformDomain struct {
	fragment string
	platform domain.Platform
}

var platformDomains = []platformDomain{
	{"twitter.com", domain.PlatformX},
	{"x.com", domain.PlatformX},
	{"instagram.com", domain.PlatformInstagram},
	{"facebook.com", domain.PlatformFacebook},
	{"linkedin.com", domain.PlatformLinkedIn},
	{"youtube.com", domain.PlatformYouTube},
	{"youtu.be", domain.PlatformYouTube},
	{"tiktok.com", domain.PlatformTikTok},
	{"threads.net", domain.PlatformThreads},
	{"vimeo.com", domain.PlatformVimeo},
	{"pinterest.com", domain.PlatformPinterest},
	{"medium.com", domain.PlatformMedium},
}

// DetectPlatform parses the URL hostname and returns exactly one platform
// tag. An unparseable URL is fatal to the whole classification.
func DetectPlatform(rawURL string) (domain.Platform, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &coreerrors.ValidationError{Field: "url", Message: "invalid URL format"}
	}

	hostname := strings.ToLower(parsed.Hostname())
	for _, pd := range platformDomains {
		if strings.Contains(hostname, pd.fragment) {
			return pd.platform, nil
		}
	}

	return domain.PlatformWebsite, nil
}
