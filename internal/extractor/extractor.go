package extractor

import (
	"fmt"
	"strings"

	"github.com/btraven00/pdfrecon/internal/phone"
)

// Extractor mines text for emails, phone numbers and URLs.
// It is immutable after construction and safe to reuse across files.
type Extractor struct {
	matcher  phone.Matcher
	regions  phone.Regions
	region   string
	leniency phone.Leniency
	scheme   string
}

// New creates an Extractor. The region is checked against regions once here
// so that per-file extraction never fails on configuration.
func New(matcher phone.Matcher, regions phone.Regions, options Options) (*Extractor, error) {
	region, err := regions.Resolve(options.Region)
	if err != nil {
		return nil, err
	}

	leniency, err := phone.ParseLeniency(options.Leniency)
	if err != nil {
		return nil, err
	}

	scheme := strings.TrimSpace(options.DefaultScheme)
	if scheme == "" {
		scheme = DefaultScheme
	}

	if !IsScheme(scheme) {
		return nil, fmt.Errorf("invalid default scheme: %q", options.DefaultScheme)
	}

	return &Extractor{
		matcher:  matcher,
		regions:  regions,
		region:   region,
		leniency: leniency,
		scheme:   scheme,
	}, nil
}

// Region returns the resolved default phone region
func (e *Extractor) Region() string {
	return e.region
}

// Scheme returns the scheme used to canonicalize scheme-less URLs
func (e *Extractor) Scheme() string {
	return e.scheme
}

// Extract runs the full text pipeline: phones, emails, then URL candidates
// through ProcessURLs and CanonicalizeURLs.
func (e *Extractor) Extract(text string) Entities {
	return Entities{
		PhoneNumbers: e.ExtractPhoneNumbers(text, ""),
		Emails:       ExtractEmails(text),
		URLs:         CanonicalizeURLs(ProcessURLs(ExtractURLs(text)), e.scheme),
	}
}

// ExtractPhoneNumbers returns the raw substrings the phone matcher accepts.
// An empty region uses the Extractor's configured region; an unsupported one
// falls back to it as well.
func (e *Extractor) ExtractPhoneNumbers(text, region string) Set {
	numbers := NewSet()

	if region == "" {
		region = e.region
	} else if resolved, err := e.regions.Resolve(region); err == nil {
		region = resolved
	} else {
		region = e.region
	}

	for _, match := range e.matcher.Match(text, region, e.leniency) {
		if match.Raw != "" {
			numbers.Add(match.Raw)
		}
	}

	return numbers
}

// ExtractEmails returns the email-shaped substrings of text.
func ExtractEmails(text string) Set {
	emails := NewSet()

	for _, match := range emailPattern.Regex.FindAllString(text, -1) {
		// Sentence punctuation glued to the domain.
		match = strings.TrimRight(match, ".-")
		if strings.Contains(match[strings.IndexByte(match, '@'):], ".") {
			emails.Add(match)
		}
	}

	return emails
}

// ExtractURLs returns URL candidates. The result over-matches; run it
// through ProcessURLs before use.
func ExtractURLs(text string) Set {
	return NewSet(urlPattern.Regex.FindAllString(text, -1)...)
}
