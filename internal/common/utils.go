package common

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	unsafeNameChars     = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
)

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues.
// Removes whitespace, trailing punctuation and markdown artifacts.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// [text](url) -> url
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	for _, char := range []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"} {
		cleaned = strings.TrimSuffix(cleaned, char)
	}
	for _, char := range []string{"(", "[", "<", "\"", "'"} {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// OutputName derives a filesystem-safe base name for a listing URL or
// product code, e.g. "ebay_com-itm-123456".
func OutputName(ref string) string {
	name := ref
	if u, err := url.Parse(ref); err == nil && u.Host != "" {
		host := strings.TrimPrefix(u.Hostname(), "www.")
		name = host + "-" + strings.Trim(path.Clean(u.Path), "/")
	}
	name = strings.ReplaceAll(name, ".", "_")
	name = strings.Trim(unsafeNameChars.ReplaceAllString(name, "-"), "-")
	if name == "" {
		name = "listing-" + ContentHash([]byte(ref))[:12]
	}
	return name
}
