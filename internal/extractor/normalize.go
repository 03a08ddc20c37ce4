package extractor

import (
	"net/url"
	"strings"

	"github.com/btraven00/pdfrecon/pkg/validators"
)

// ProcessURLs keeps the candidates whose host is an IP literal or a valid
// domain name. Accepted candidates are returned whole, path and query
// included, after trimming whitespace and surrounding dots.
func ProcessURLs(candidates Set) Set {
	accepted := NewSet()

	for candidate := range candidates {
		if candidate == "" {
			continue
		}

		cleaned := CleanCandidate(candidate)
		if cleaned == "" {
			continue
		}

		host, ok := HostOf(cleaned)
		if !ok {
			continue
		}

		if validators.ClassifyHost(host) == validators.HostInvalid {
			continue
		}

		accepted.Add(cleaned)
	}

	return accepted
}

// HostOf returns the host part of a URL candidate. Candidates with a scheme,
// or starting with // or ://, go through net/url; anything else is cut at
// the first '/'.
func HostOf(candidate string) (string, bool) {
	host := candidate

	if hasScheme(candidate) || strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, "://") {
		parseable := candidate
		if strings.HasPrefix(parseable, "://") {
			parseable = parseable[1:]
		}

		parsed, err := url.Parse(parseable)
		if err != nil {
			return "", false
		}

		host = parsed.Hostname()
	}

	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}

	if host == "" {
		return "", false
	}

	return host, true
}

// CleanCandidate trims whitespace and surrounding dots
func CleanCandidate(candidate string) string {
	return strings.Trim(strings.TrimSpace(candidate), ".")
}
