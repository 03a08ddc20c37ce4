package extractor

import (
	"regexp"
)

// EntityPattern describes a regular expression used to generate candidates
type EntityPattern struct {
	Regex       *regexp.Regexp
	Name        string
	Description string
	Examples    []string
}

var (
	// Local part of letters, digits and dots with at most one inner
	// underscore, an optional single +tag, and a dotted domain.
	// A '-' in the local part is not matched (user-name@example.com yields
	// name@example.com).
	emailPattern = EntityPattern{
		Name:        "Email",
		Regex:       regexp.MustCompile(`[a-zA-Z0-9.]+(?:_[a-zA-Z0-9.]+)?(?:\+[a-zA-Z0-9.]+(?:_[a-zA-Z0-9.]+)?)?@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+`),
		Description: "Email addresses with optional +tag",
		Examples:    []string{"a.b@example.com", "x+y@sub.example.org", "first_last@example.net"},
	}

	// Optional scheme, then letters, digits, _ and / - ? = % . with at least
	// one dot. Letters are any Unicode letters so that a host such as
	// münchen.de is one candidate. Decimals and version strings match too and
	// are rejected by host classification.
	urlPattern = EntityPattern{
		Name:        "URL",
		Regex:       regexp.MustCompile(`(?:[a-zA-Z]+://)?[\p{L}\p{N}_/\-?=%.]+\.[\p{L}\p{N}_/\-?=%.]+`),
		Description: "URL and bare domain candidates",
		Examples:    []string{"https://example.com/a?b=c", "example.com/path", "192.168.1.1/login"},
	}

	schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	schemeName   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*$`)
)

// Patterns returns the candidate patterns, for help output and tests
func Patterns() []EntityPattern {
	return []EntityPattern{emailPattern, urlPattern}
}

// hasScheme reports whether s starts with an explicit scheme://
func hasScheme(s string) bool {
	return schemePrefix.MatchString(s)
}

// IsScheme reports whether s is a bare URL scheme name such as "https"
func IsScheme(s string) bool {
	return schemeName.MatchString(s)
}
