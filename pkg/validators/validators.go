package validators

import (
	"net"
	"regexp"
	"strings"
)

// HostClass is the syntactic class of a host-like token
type HostClass int

const (
	HostInvalid HostClass = iota
	HostIPv4
	HostIPv6
	HostDomain
)

const (
	maxDomainLength = 253
	maxLabelLength  = 63
)

var domainShape = regexp.MustCompile(`^[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)+$`)

// String returns the lower-case name of the class
func (c HostClass) String() string {
	switch c {
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostDomain:
		return "domain"
	default:
		return "invalid"
	}
}

// MarshalText lets HostClass appear by name in JSON output
func (c HostClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IsIP reports whether token is a complete IPv4 or IPv6 literal.
// Zones, ports, brackets and surrounding garbage are rejected.
func IsIP(token string) bool {
	return net.ParseIP(token) != nil
}

// IsDomain reports whether token has the coarse shape of a domain name:
// dot separated labels of letters, digits and hyphens, none empty.
func IsDomain(token string) bool {
	return domainShape.MatchString(token)
}

// IsValidDomain layers the length and hyphen rules of RFC 1035 labels on top
// of IsDomain and rejects all-digit top-level labels so that version strings
// such as 1.2.3 are not taken for hosts.
func IsValidDomain(token string) bool {
	if !IsDomain(token) || len(token) > maxDomainLength {
		return false
	}

	labels := strings.Split(token, ".")
	for _, label := range labels {
		if len(label) == 0 || len(label) > maxLabelLength {
			return false
		}

		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}

	return !isNumeric(labels[len(labels)-1])
}

// ClassifyHost tags a host token. IP literals are checked before domain
// names, a dotted quad never falls through to the domain rules.
func ClassifyHost(token string) HostClass {
	if IsIP(token) {
		if strings.Contains(token, ":") {
			return HostIPv6
		}

		return HostIPv4
	}

	if IsDomain(token) && IsValidDomain(token) {
		return HostDomain
	}

	return HostInvalid
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
