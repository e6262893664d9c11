package clip

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`(?i)https?://[^\s]+`)

// Characters chat clients commonly glue onto the end of a pasted link.
const trailingJunk = ".,!?)\"]'"

// ExtractClipURL returns the first URL in text whose domain is in the
// accepted set, or "" when no candidate matches. Candidates that cannot be
// parsed are skipped, not fatal.
func ExtractClipURL(text string, accepted map[string]struct{}) string {
	if text == "" {
		return ""
	}
	for _, candidate := range urlPattern.FindAllString(text, -1) {
		url := strings.TrimRight(candidate, trailingJunk)
		host, ok := hostOf(url)
		if !ok {
			continue
		}
		if _, ok := accepted[baseDomain(host)]; ok {
			return url
		}
		if _, ok := accepted[host]; ok {
			return url
		}
	}
	return ""
}

// URLKey is the stable dedup key for a clip URL: sha256 of the exact URL
// string, hex-encoded. Used only for equality, never to recover the URL.
func URLKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// hostOf pulls the host out of a URL: everything between "//" and the next
// "/", lower-cased, with a leading "www." stripped.
func hostOf(url string) (string, bool) {
	_, rest, ok := strings.Cut(url, "//")
	if !ok {
		return "", false
	}
	host := rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		host = rest[:i]
	}
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if host == "" {
		return "", false
	}
	return host, true
}

// baseDomain reduces a host to its last two labels so subdomains like
// m.youtube.com match youtube.com. youtu.be is its own base, it has no
// meaningful parent domain.
func baseDomain(host string) string {
	if host == "youtu.be" {
		return host
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}
