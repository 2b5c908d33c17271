// Package fetch - platform.go provides platform detection and
// platform-specific selectors for content sites.
package fetch

import (
	"net/url"
	"strings"

	"github.com/jonathan/style-transfer/internal/types"
)

// Platform represents a known content platform.
type Platform string

const (
	// PlatformTwitter is twitter.com / x.com
	PlatformTwitter Platform = "twitter"
	// PlatformLinkedIn is linkedin.com
	PlatformLinkedIn Platform = "linkedin"
	// PlatformReddit is reddit.com
	PlatformReddit Platform = "reddit"
	// PlatformMedium is medium.com and custom Medium domains
	PlatformMedium Platform = "medium"
	// PlatformSubstack is *.substack.com
	PlatformSubstack Platform = "substack"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the content platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "twitter.com"), host == "x.com", strings.HasSuffix(host, ".x.com"):
		return PlatformTwitter
	case strings.Contains(host, "linkedin.com"):
		return PlatformLinkedIn
	case strings.Contains(host, "reddit.com"):
		return PlatformReddit
	case strings.Contains(host, "medium.com"):
		return PlatformMedium
	case strings.Contains(host, "substack.com"):
		return PlatformSubstack
	}

	return PlatformUnknown
}

// InferContentType maps a detected platform to a document content type.
// Unknown platforms default to Blog, the most common long-form source.
func InferContentType(platform Platform) types.ContentType {
	switch platform {
	case PlatformTwitter:
		return types.ContentTwitter
	case PlatformLinkedIn:
		return types.ContentLinkedIn
	case PlatformReddit:
		return types.ContentReddit
	default:
		return types.ContentBlog
	}
}

// PlatformContentSelectors returns content selectors optimized for a
// specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformTwitter:
		return []string{
			"[data-testid='tweetText']",
			"article",
			"main",
		}
	case PlatformLinkedIn:
		return []string{
			".feed-shared-update-v2__description",
			".share-update-card__update-text",
			".article-content",
			"article",
			"main",
		}
	case PlatformReddit:
		return []string{
			"[data-testid='post-container']",
			".Post",
			"shreddit-post",
			"article",
			"main",
		}
	case PlatformMedium, PlatformSubstack:
		return ArticleSelectors()
	default:
		return DefaultTextSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific
// platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// Engagement chrome
		".social-share",
		".share-buttons",
		".social-links",
		".like-button",
		".comments-section",

		// Subscription and signup prompts
		".paywall",
		".subscribe-prompt",
		".newsletter-signup",
		".signup-wall",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformTwitter:
		return append(common,
			"[data-testid='reply']",
			"[data-testid='retweet']",
			"[data-testid='like']",
			"[aria-label='Timeline: Trending now']",
		)
	case PlatformLinkedIn:
		return append(common,
			".social-actions",
			".comments-comments-list",
			".feed-shared-social-action-bar",
		)
	case PlatformReddit:
		return append(common,
			".Comment",
			"shreddit-comment",
			"[data-testid='comment']",
		)
	case PlatformSubstack:
		return append(common,
			".subscription-widget",
			".subscribe-footer",
		)
	default:
		return common
	}
}
