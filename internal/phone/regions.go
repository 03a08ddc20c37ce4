package phone

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// UnknownRegion is used when no default region is configured. Only numbers
// written in international format (+CC ...) can be matched in that case.
const UnknownRegion = "ZZ"

// Regions is the read-only table of region codes accepted for phone matching.
// It is loaded once per run and shared by value.
type Regions struct {
	codes map[string]struct{}
}

// SupportedRegions returns every region libphonenumber has metadata for.
func SupportedRegions() Regions {
	supported := phonenumbers.GetSupportedRegions()
	codes := make(map[string]struct{}, len(supported))

	for code := range supported {
		codes[strings.ToUpper(code)] = struct{}{}
	}

	return Regions{codes: codes}
}

// LoadRegions reads a JSON file of country codes and keeps the ones
// libphonenumber supports. The file may be a list of codes
// (["US","DE"]) or an object keyed by code ({"US": "United States"}).
func LoadRegions(path string) (Regions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Regions{}, fmt.Errorf("failed to read regions file '%s': %w", path, err)
	}

	var listed []string

	if err := json.Unmarshal(data, &listed); err != nil {
		var keyed map[string]any
		if err := json.Unmarshal(data, &keyed); err != nil {
			return Regions{}, fmt.Errorf("regions file '%s' is neither a list nor an object of codes: %w", path, err)
		}

		for code := range keyed {
			listed = append(listed, code)
		}
	}

	supported := SupportedRegions()
	codes := make(map[string]struct{}, len(listed))

	for _, code := range listed {
		code = strings.ToUpper(strings.TrimSpace(code))
		if supported.Contains(code) {
			codes[code] = struct{}{}
		}
	}

	if len(codes) == 0 {
		return Regions{}, fmt.Errorf("regions file '%s' contains no supported region codes", path)
	}

	return Regions{codes: codes}, nil
}

// Contains reports whether code (case-insensitive) is in the table.
func (r Regions) Contains(code string) bool {
	_, ok := r.codes[strings.ToUpper(code)]
	return ok
}

// Len returns the number of regions.
func (r Regions) Len() int {
	return len(r.codes)
}

// Codes returns the region codes sorted.
func (r Regions) Codes() []string {
	codes := make([]string, 0, len(r.codes))
	for code := range r.codes {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}

// Resolve maps a configured region onto the value passed to the matcher.
// An empty region resolves to UnknownRegion.
func (r Regions) Resolve(region string) (string, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" || region == UnknownRegion {
		return UnknownRegion, nil
	}

	if !r.Contains(region) {
		return "", fmt.Errorf("unsupported phone region: %s", region)
	}

	return region, nil
}
