package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether a browser origin matches one of the
// configured patterns. A pattern is an exact "host[:port]" or a
// "*.example.com" wildcard, which also admits the apex domain.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, pattern := range patterns {
		if hostMatches(pattern, host) {
			return true
		}
	}
	return false
}

func hostMatches(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if apex, ok := strings.CutPrefix(pattern, "*."); ok {
		return host == apex || strings.HasSuffix(host, "."+apex)
	}
	return false
}
