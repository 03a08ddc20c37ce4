package extractor

import (
	"strings"
)

// DefaultScheme is prepended to URLs that carry none
const DefaultScheme = "http"

// CanonicalizeURLs rewrites every URL into scheme://host... form.
// URLs that already have a scheme are kept as they are.
func CanonicalizeURLs(urls Set, defaultScheme string) Set {
	if defaultScheme == "" {
		defaultScheme = DefaultScheme
	}

	canonical := NewSet()

	for u := range urls {
		if u == "" {
			continue
		}

		canonical.Add(canonicalize(u, defaultScheme))
	}

	return canonical
}

func canonicalize(u, scheme string) string {
	switch {
	case strings.HasPrefix(u, "//"):
		return scheme + ":" + u
	case strings.HasPrefix(u, "://"):
		return scheme + u
	case hasScheme(u):
		return u
	default:
		return scheme + "://" + u
	}
}
