package scanner

import (
	"fmt"
)

// Stage is a step of the per-file pipeline
type Stage int

const (
	StageStart Stage = iota
	StageReadMetadata
	StageReadText
	StageReadLinks
	StageExtractPhones
	StageExtractEmails
	StageExtractURLs
	StageNormalizeURLs
	StageCanonicalizeURLs
	StageAssemble
)

var stageNames = map[Stage]string{
	StageStart:            "start",
	StageReadMetadata:     "read_metadata",
	StageReadText:         "read_text",
	StageReadLinks:        "read_links",
	StageExtractPhones:    "extract_phones",
	StageExtractEmails:    "extract_emails",
	StageExtractURLs:      "extract_urls",
	StageNormalizeURLs:    "normalize_urls",
	StageCanonicalizeURLs: "canonicalize_urls",
	StageAssemble:         "assemble",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}

	return fmt.Sprintf("stage(%d)", int(s))
}

// StageError is returned by ScanFile when a stage fails. The file is then
// left out of the report.
type StageError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: stage %s failed: %v", e.Path, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
