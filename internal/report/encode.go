// Package report writes scan results as JSON or YAML documents, either as a
// single aggregate report or as one file per scanned PDF.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization used for reports.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (use json or yaml)", s)
	}
}

// Ext returns the file extension for the format, with the leading dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}

	return ".json"
}

// Encode writes v to w, indented by two spaces.
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return encoder.Close()
	default:
		encoder := json.NewEncoder(w)
		encoder.SetEscapeHTML(false) // URLs keep their & and <>
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	}
}
