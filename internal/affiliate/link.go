// Package affiliate rewrites outbound product links with the referral tag
// and builds social share URLs.
package affiliate

import (
	"fmt"
	"net/url"
)

// DefaultTag is the affiliate tag applied when none is configured.
const DefaultTag = "ohcanadadeals06-20"

// Link returns hyperlink with the affiliate tag query parameter set,
// overwriting any tag already present. The hyperlink must be an absolute
// URL; ingestion validates this, so an error here is a broken precondition.
func Link(hyperlink, tag string) (string, error) {
	u, err := url.Parse(hyperlink)
	if err != nil {
		return "", fmt.Errorf("parse hyperlink %q: %w", hyperlink, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("hyperlink %q is not an absolute URL", hyperlink)
	}

	q := u.Query()
	q.Set("tag", tag)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ShareURL builds a share link for the given platform. Unknown platforms
// return an empty string.
func ShareURL(platform, pageURL, text string) string {
	encodedURL := url.QueryEscape(pageURL)
	encodedText := url.QueryEscape(text)

	switch platform {
	case "facebook":
		return "https://www.facebook.com/sharer/sharer.php?u=" + encodedURL
	case "twitter":
		return "https://twitter.com/intent/tweet?url=" + encodedURL + "&text=" + encodedText
	case "whatsapp":
		return "https://api.whatsapp.com/send?text=" + encodedText + "%20" + encodedURL
	default:
		return ""
	}
}
