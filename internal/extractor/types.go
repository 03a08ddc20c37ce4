package extractor

import (
	"bytes"
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// Set is an unordered collection of unique strings. It serializes as a
// sorted list so reports are stable across runs.
type Set map[string]struct{}

// NewSet creates a set holding items
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s.Add(item)
	}

	return s
}

// Add inserts item
func (s Set) Add(item string) {
	s[item] = struct{}{}
}

// Has reports whether item is present
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Merge adds every item of other
func (s Set) Merge(other Set) {
	for item := range other {
		s.Add(item)
	}
}

// Sorted returns the items in lexical order
func (s Set) Sorted() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}

	sort.Strings(items)

	return items
}

// MarshalJSON encodes the set as a sorted array, never null. Characters
// such as & are written as is, URLs stay readable.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(s.Sorted()); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes an array of strings into the set
func (s *Set) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	*s = NewSet(items...)

	return nil
}

// MarshalYAML encodes the set as a sorted sequence
func (s Set) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

// UnmarshalYAML decodes a sequence of strings into the set
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}

	*s = NewSet(items...)

	return nil
}

// Entities holds everything mined from one piece of text
type Entities struct {
	PhoneNumbers Set `json:"phone_numbers" yaml:"phone_numbers"`
	Emails       Set `json:"emails" yaml:"emails"`
	URLs         Set `json:"urls" yaml:"urls"`
}

// Options configures an Extractor
type Options struct {
	Region        string
	Leniency      int
	DefaultScheme string
}

// DefaultOptions returns default extraction options
func DefaultOptions() Options {
	return Options{
		Region:        "",
		Leniency:      0,
		DefaultScheme: DefaultScheme,
	}
}
