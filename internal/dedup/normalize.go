package dedup

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// noisePrefixes are headline dressings that do not affect uniqueness. They
// are removed wherever they occur, not only at the start.
var noisePrefixes = []string{
	"breaking:",
	"breaking news:",
	"exclusive:",
	"exclusive news:",
}

// NormalizeURL strips the query string, fragment and trailing slash and
// lowercases the rest. Idempotent; empty in, empty out.
func NormalizeURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		rawURL = rawURL[:i]
	}
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL = rawURL[:i]
	}
	rawURL = strings.TrimRight(rawURL, "/")
	return strings.ToLower(rawURL)
}

// NormalizeTitle lowercases, trims surrounding whitespace and removes the
// noise prefixes. Idempotent.
func NormalizeTitle(title string) string {
	if title == "" {
		return ""
	}
	title = strings.TrimSpace(strings.ToLower(title))
	for _, p := range noisePrefixes {
		title = strings.ReplaceAll(title, p, "")
	}
	// Removal can expose leading/trailing whitespace; trim again so a second
	// pass is a no-op.
	return strings.TrimSpace(title)
}

// Fingerprint returns a fixed-length identity digest of the normalized
// content: lowercase, whitespace runs collapsed, md5 hex. Identity only,
// not a security boundary. Empty content yields an empty fingerprint.
func Fingerprint(content string) string {
	if content == "" {
		return ""
	}
	normalized := strings.Join(strings.Fields(strings.ToLower(content)), " ")
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
