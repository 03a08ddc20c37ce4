package scanner

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/btraven00/pdfrecon/internal/extractor"
	"github.com/btraven00/pdfrecon/internal/pdfdoc"
)

// Config wires the collaborators of a Scanner. Links may be nil to skip
// link annotations.
type Config struct {
	Metadata  pdfdoc.MetadataReader
	Text      pdfdoc.TextExtractor
	Links     pdfdoc.LinkReader
	Extractor *extractor.Extractor
	Logger    zerolog.Logger
}

// Scanner runs the per-file pipeline over a batch of PDFs, one file at a time.
type Scanner struct {
	metadata  pdfdoc.MetadataReader
	text      pdfdoc.TextExtractor
	links     pdfdoc.LinkReader
	extractor *extractor.Extractor
	logger    zerolog.Logger
}

// New creates a Scanner.
func New(cfg Config) (*Scanner, error) {
	if cfg.Metadata == nil || cfg.Text == nil || cfg.Extractor == nil {
		return nil, errors.New("scanner requires a metadata reader, a text extractor and an extractor")
	}

	return &Scanner{
		metadata:  cfg.Metadata,
		text:      cfg.Text,
		links:     cfg.Links,
		extractor: cfg.Extractor,
		logger:    cfg.Logger,
	}, nil
}

// Run scans paths in order and returns the records of the files that
// succeeded. A failing file is logged and skipped. When ctx is cancelled the
// file in flight is dropped and the records gathered so far are returned
// together with the context error.
func (s *Scanner) Run(ctx context.Context, paths []string) (Report, error) {
	report := make(Report, len(paths))
	failed := 0
	start := time.Now()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			s.logSummary(report, failed, start)
			return report, err
		}

		s.logger.Info().Str("file", path).Msg("Extracting metadata from file")

		record, err := s.ScanFile(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				s.logger.Warn().Str("file", path).Msg("Interrupted, discarding partial results for file")
				s.logSummary(report, failed, start)

				return report, ctxErr
			}

			failed++

			s.logger.Error().Err(err).Str("file", path).Msg("An error occurred while processing file")

			continue
		}

		report[path] = record

		s.logger.Debug().
			Str("file", path).
			Interface("info", record.Info).
			Int("phone_numbers", len(record.PhoneNumbers)).
			Int("emails", len(record.Emails)).
			Int("urls", len(record.URLs)).
			Msg("File processed")
	}

	s.logSummary(report, failed, start)

	return report, nil
}

// ScanFile runs every stage for one file. Errors are *StageError.
func (s *Scanner) ScanFile(ctx context.Context, path string) (*FileRecord, error) {
	stage := StageStart
	log := s.logger.With().Str("file", path).Logger()

	enter := func(next Stage) error {
		if err := ctx.Err(); err != nil {
			return &StageError{Path: path, Stage: next, Err: err}
		}

		stage = next
		log.Trace().Stringer("stage", stage).Msg("Entering stage")

		return nil
	}

	fail := func(err error) error {
		return &StageError{Path: path, Stage: stage, Err: err}
	}

	if err := enter(StageReadMetadata); err != nil {
		return nil, err
	}

	meta, err := s.metadata.ReadMetadata(path)
	if err != nil {
		return nil, fail(err)
	}

	info, err := pdfdoc.DecodeInfo(meta.Info)
	if err != nil {
		return nil, fail(err)
	}

	if err := enter(StageReadText); err != nil {
		return nil, err
	}

	text, err := s.text.ExtractText(path)
	if err != nil {
		return nil, fail(err)
	}

	if text == "" {
		log.Debug().Msg("No text layer, keeping metadata only")
	}

	var annotated annotatedLinks

	if s.links != nil {
		if err := enter(StageReadLinks); err != nil {
			return nil, err
		}

		links, err := s.links.ReadLinks(path)
		if err != nil {
			// Annotations are supplementary, the text already read is kept.
			log.Warn().Err(err).Msg("Could not read link annotations")
		} else {
			annotated = splitLinks(links)
		}
	}

	if err := enter(StageExtractPhones); err != nil {
		return nil, err
	}

	phones := s.extractor.ExtractPhoneNumbers(text, "")
	for _, tel := range annotated.phones {
		phones.Merge(s.extractor.ExtractPhoneNumbers(tel, ""))
	}

	if err := enter(StageExtractEmails); err != nil {
		return nil, err
	}

	emails := extractor.ExtractEmails(text)
	for _, mail := range annotated.emails {
		emails.Merge(extractor.ExtractEmails(mail))
	}

	if err := enter(StageExtractURLs); err != nil {
		return nil, err
	}

	candidates := extractor.ExtractURLs(text)
	for _, link := range annotated.urls {
		candidates.Add(link)
	}

	if err := enter(StageNormalizeURLs); err != nil {
		return nil, err
	}

	validated := extractor.ProcessURLs(candidates)

	if err := enter(StageCanonicalizeURLs); err != nil {
		return nil, err
	}

	urls := extractor.CanonicalizeURLs(validated, s.extractor.Scheme())

	if err := enter(StageAssemble); err != nil {
		return nil, err
	}

	record := &FileRecord{
		Info:         info,
		Pages:        meta.Pages,
		PhoneNumbers: phones,
		Emails:       emails,
		URLs:         urls,
	}

	log.Trace().
		Int("candidates", len(candidates)).
		Int("validated", len(validated)).
		Msg("File assembled")

	return record, nil
}

func (s *Scanner) logSummary(report Report, failed int, start time.Time) {
	s.logger.Info().
		Int("processed", len(report)).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("Scan finished")
}

// annotatedLinks sorts link annotation URIs by what they point at
type annotatedLinks struct {
	urls   []string
	emails []string
	phones []string
}

func splitLinks(links []string) annotatedLinks {
	var out annotatedLinks

	for _, link := range links {
		lower := strings.ToLower(link)

		switch {
		case strings.HasPrefix(lower, "mailto:"):
			out.emails = append(out.emails, unescape(stripQuery(link[len("mailto:"):])))
		case strings.HasPrefix(lower, "tel:"):
			out.phones = append(out.phones, unescape(link[len("tel:"):]))
		case strings.HasPrefix(lower, "file:"), strings.HasPrefix(lower, "javascript:"):
			continue
		default:
			out.urls = append(out.urls, link)
		}
	}

	return out
}

func stripQuery(s string) string {
	if i := strings.IndexByte(s, '?'); i >= 0 {
		return s[:i]
	}

	return s
}

func unescape(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}

	return s
}
