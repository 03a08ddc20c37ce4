package phone

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Leniency controls how strictly a candidate has to conform to the region
// grammar before it is reported. Values follow libphonenumber's order.
type Leniency int

const (
	// Possible accepts numbers whose length is possible for the region.
	Possible Leniency = iota
	// Valid accepts numbers that match a known number pattern of the region.
	Valid
	// StrictGrouping and ExactGrouping are accepted for compatibility and
	// behave like Valid.
	StrictGrouping
	ExactGrouping
)

const (
	minDigits = 6
	maxDigits = 17

	// longest run of whitespace separated groups tried inside a rejected span
	maxGroups = 8
)

var (
	// Slashes and spaced dashes separate numbers listed next to each other.
	listSeparator = regexp.MustCompile(`\s*/\s*|\s+-+\s+`)
	digitGroup    = regexp.MustCompile(`\S+`)
)

// String returns the libphonenumber name of the leniency
func (l Leniency) String() string {
	switch l {
	case Possible:
		return "POSSIBLE"
	case Valid:
		return "VALID"
	case StrictGrouping:
		return "STRICT_GROUPING"
	case ExactGrouping:
		return "EXACT_GROUPING"
	default:
		return fmt.Sprintf("Leniency(%d)", int(l))
	}
}

// ParseLeniency converts a configured integer into a Leniency.
func ParseLeniency(level int) (Leniency, error) {
	if level < int(Possible) || level > int(ExactGrouping) {
		return Possible, fmt.Errorf("leniency must be between %d and %d, got %d", Possible, ExactGrouping, level)
	}

	return Leniency(level), nil
}

// RawMatch is a phone number as it appeared in the text.
type RawMatch struct {
	Raw   string
	Start int
}

// Matcher finds phone numbers in free text.
type Matcher interface {
	Match(text, region string, leniency Leniency) []RawMatch
}

// LibMatcher finds candidates with a permissive pattern and confirms them
// with libphonenumber.
type LibMatcher struct {
	candidate *regexp.Regexp
	excluded  []*regexp.Regexp
}

// NewLibMatcher creates a matcher backed by github.com/nyaruka/phonenumbers.
func NewLibMatcher() *LibMatcher {
	return &LibMatcher{
		candidate: regexp.MustCompile(`\+?\(?\d(?:[\d().\-/ \t]*\d){5,}`),
		excluded: []*regexp.Regexp{
			// Page ranges in citations: 211-227 (2003
			regexp.MustCompile(`^\d{1,5}-+\d{1,5}\s{0,4}\(\d{1,4}`),
			// Slash separated dates
			regexp.MustCompile(`^(?:[0-3]?\d/[01]?\d|[01]?\d/[0-3]?\d)/(?:[12]\d)?\d{2}$`),
			// ISO dates
			regexp.MustCompile(`^[12]\d{3}[-./][01]\d[-./][0-3]\d$`),
			// Dotted version or section numbers
			regexp.MustCompile(`^\d+(?:\.\d+){2,}$`),
		},
	}
}

// Match returns the raw substrings of text that libphonenumber accepts as
// phone numbers for region under the given leniency. A candidate span that is
// rejected as a whole is searched for numbers between list separators, then
// for the longest runs of digit groups that are accepted.
func (m *LibMatcher) Match(text, region string, leniency Leniency) []RawMatch {
	if region == "" {
		region = UnknownRegion
	}

	run := &matchRun{matcher: m, text: text, region: region, leniency: leniency}

	var matches []RawMatch

	for _, loc := range m.candidate.FindAllStringIndex(text, -1) {
		matches = append(matches, run.span(loc[0], loc[1])...)
	}

	return matches
}

type matchRun struct {
	matcher  *LibMatcher
	text     string
	region   string
	leniency Leniency
}

func (r *matchRun) span(start, end int) []RawMatch {
	if match, ok := r.verify(start, end); ok {
		return []RawMatch{match}
	}

	seps := listSeparator.FindAllStringIndex(r.text[start:end], -1)
	if len(seps) == 0 {
		return r.groups(start, end)
	}

	var matches []RawMatch

	from := start
	for _, sep := range seps {
		matches = append(matches, r.span(from, start+sep[0])...)
		from = start + sep[1]
	}

	return append(matches, r.span(from, end)...)
}

// groups scans the whitespace separated groups of text[start:end] left to
// right and keeps the longest accepted run at each position.
func (r *matchRun) groups(start, end int) []RawMatch {
	words := digitGroup.FindAllStringIndex(r.text[start:end], -1)

	var matches []RawMatch

	for i := 0; i < len(words); {
		next := i + 1

		for j := min(len(words), i+maxGroups); j > i; j-- {
			if i == 0 && j == len(words) {
				// the whole span was already rejected
				continue
			}

			if match, ok := r.verify(start+words[i][0], start+words[j-1][1]); ok {
				matches = append(matches, match)
				next = j

				break
			}
		}

		i = next
	}

	return matches
}

func (r *matchRun) verify(start, end int) (RawMatch, bool) {
	candidate := r.text[start:end]

	raw := strings.TrimSpace(candidate)
	if !r.matcher.plausible(raw) {
		return RawMatch{}, false
	}

	number, err := phonenumbers.Parse(raw, r.region)
	if err != nil || !accepts(number, r.leniency) {
		return RawMatch{}, false
	}

	return RawMatch{Raw: raw, Start: start + strings.Index(candidate, raw)}, true
}

func (m *LibMatcher) plausible(raw string) bool {
	digits := 0

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits++
		}
	}

	if digits < minDigits || digits > maxDigits {
		return false
	}

	if strings.Count(raw, "(") != strings.Count(raw, ")") {
		return false
	}

	for _, re := range m.excluded {
		if re.MatchString(raw) {
			return false
		}
	}

	return true
}

func accepts(number *phonenumbers.PhoneNumber, leniency Leniency) bool {
	if leniency == Possible {
		return phonenumbers.IsPossibleNumber(number)
	}

	return phonenumbers.IsValidNumber(number)
}
