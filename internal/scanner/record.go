package scanner

import (
	"sort"

	"github.com/btraven00/pdfrecon/internal/extractor"
)

// FileRecord is everything gathered from one PDF. It is not modified once
// ScanFile returns it.
type FileRecord struct {
	Info         map[string]string `json:"info" yaml:"info"`
	Pages        int               `json:"pages,omitempty" yaml:"pages,omitempty"`
	PhoneNumbers extractor.Set     `json:"phone_numbers" yaml:"phone_numbers"`
	Emails       extractor.Set     `json:"emails" yaml:"emails"`
	URLs         extractor.Set     `json:"urls" yaml:"urls"`
}

// Report maps absolute file paths to their records
type Report map[string]*FileRecord

// Paths returns the report keys sorted
func (r Report) Paths() []string {
	paths := make([]string, 0, len(r))
	for path := range r {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	return paths
}
