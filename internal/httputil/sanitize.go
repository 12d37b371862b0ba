package httputil

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// ValidateURL checks that a URL is well-formed and uses HTTPS.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("only HTTPS URLs are allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// EscapeID trims and HTML-escapes a media identifier so it can be spliced
// into attribute values. An identifier that is empty after escaping is
// reported as invalid rather than silently producing broken markup.
func EscapeID(id string) (string, error) {
	escaped := html.EscapeString(strings.TrimSpace(id))
	if escaped == "" {
		return "", fmt.Errorf("identifier is empty after escaping")
	}
	return escaped, nil
}

// EscapeText HTML-escapes free text (captions, error detail) for element content.
func EscapeText(s string) string {
	return html.EscapeString(s)
}
