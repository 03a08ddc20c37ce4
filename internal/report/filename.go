package report

import (
	"strings"
)

// SanitizeFilename keeps ASCII letters, digits, '-', '_' and the runes in
// extraAllowed. Every run of other characters becomes a single '_', and
// leading or trailing underscores are removed.
func SanitizeFilename(name, extraAllowed string) string {
	var b strings.Builder

	b.Grow(len(name))

	for _, r := range name {
		if isFilenameRune(r) || strings.ContainsRune(extraAllowed, r) {
			b.WriteRune(r)
			continue
		}

		if s := b.String(); !strings.HasSuffix(s, "_") {
			b.WriteByte('_')
		}
	}

	return strings.Trim(b.String(), "_")
}

func isFilenameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_':
		return true
	default:
		return false
	}
}
