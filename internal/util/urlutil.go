package util

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	trackingRe = regexp.MustCompile(`[?&](utm_|fbclid|gclid|ref=)`)
	dupSepRe   = regexp.MustCompile(`\?&`)
	trailSepRe = regexp.MustCompile(`[?&]$`)
)

// CleanURL normalizes a URL for deduplication by stripping the common
// tracking markers.
func CleanURL(raw string) string {
	if raw == "" {
		return ""
	}
	u := trackingRe.ReplaceAllString(raw, "?")
	u = dupSepRe.ReplaceAllString(u, "?")
	return trailSepRe.ReplaceAllString(u, "")
}

// Domain extracts the lowercased host of a URL without its www prefix.
// Returns "" for unparseable input.
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// ValidURL reports whether raw carries both a scheme and a host.
func ValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Truncate cuts s at n bytes and marks the cut with an ellipsis.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var (
	unsafeFileRe = regexp.MustCompile(`[^\w\s\-.]`)
	dashRunRe    = regexp.MustCompile(`[-\s]+`)
)

// SafeFilename turns an arbitrary string into something usable as a
// file name.
func SafeFilename(s string) string {
	s = unsafeFileRe.ReplaceAllString(s, "")
	s = dashRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, ".-")
}
