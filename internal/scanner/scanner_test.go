package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btraven00/pdfrecon/internal/extractor"
	"github.com/btraven00/pdfrecon/internal/pdfdoc"
	"github.com/btraven00/pdfrecon/internal/phone"
)

type fakeMetadata struct {
	meta map[string]*pdfdoc.Metadata
	errs map[string]error
}

func (f *fakeMetadata) ReadMetadata(path string) (*pdfdoc.Metadata, error) {
	if err, ok := f.errs[path]; ok {
		return nil, err
	}

	if meta, ok := f.meta[path]; ok {
		return meta, nil
	}

	return &pdfdoc.Metadata{Info: map[string]any{}}, nil
}

type fakeText struct {
	texts  map[string]string
	errs   map[string]error
	onRead func(path string)
}

func (f *fakeText) ExtractText(path string) (string, error) {
	if f.onRead != nil {
		f.onRead(path)
	}

	if err, ok := f.errs[path]; ok {
		return "", err
	}

	return f.texts[path], nil
}

type fakeLinks struct {
	links []string
	err   error
}

func (f *fakeLinks) ReadLinks(string) ([]string, error) {
	return f.links, f.err
}

func newTestScanner(t *testing.T, meta pdfdoc.MetadataReader, text pdfdoc.TextExtractor, links pdfdoc.LinkReader) *Scanner {
	t.Helper()

	ex, err := extractor.New(phone.NewLibMatcher(), phone.SupportedRegions(), extractor.DefaultOptions())
	require.NoError(t, err)

	s, err := New(Config{
		Metadata:  meta,
		Text:      text,
		Links:     links,
		Extractor: ex,
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)

	return s
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestScanFile(t *testing.T) {
	meta := &fakeMetadata{meta: map[string]*pdfdoc.Metadata{
		"/docs/a.pdf": {
			Info: map[string]any{
				"/Author":       []byte("Jane Doe"),
				"/Producer":     "pdfTeX",
				"/Custom":       int64(7),
				"/Title":        []byte{'R', 0xff, 'e', 'p', 'o', 'r', 't'},
				"/CreationDate": []byte("D:20240101000000Z"),
			},
			Pages: 3,
		},
	}}
	text := &fakeText{texts: map[string]string{
		"/docs/a.pdf": "Contact a.b@example.com or +1 650-253-0000. " +
			"Portal: https://portal.example.com/login, mirror //cdn.example.net/x, " +
			"intranet 10.0.0.1/admin and version 1.2.3.",
	}}

	s := newTestScanner(t, meta, text, nil)

	record, err := s.ScanFile(context.Background(), "/docs/a.pdf")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"/Author":       "Jane Doe",
		"/Producer":     "pdfTeX",
		"/Custom":       "7",
		"/Title":        "Report",
		"/CreationDate": "D:20240101000000Z",
	}, record.Info)
	assert.Equal(t, 3, record.Pages)
	assert.Equal(t, []string{"+1 650-253-0000"}, record.PhoneNumbers.Sorted())
	assert.Equal(t, []string{"a.b@example.com"}, record.Emails.Sorted())

	for _, want := range []string{
		"https://portal.example.com/login",
		"http://cdn.example.net/x",
		"http://10.0.0.1/admin",
	} {
		assert.True(t, record.URLs.Has(want), "missing %q in %v", want, record.URLs.Sorted())
	}

	assert.False(t, record.URLs.Has("http://1.2.3"))
}

func TestScanFileStageErrors(t *testing.T) {
	readErr := &pdfdoc.ReadError{Path: "/docs/bad.pdf", Err: errors.New("corrupt xref")}

	t.Run("metadata", func(t *testing.T) {
		s := newTestScanner(t, &fakeMetadata{errs: map[string]error{"/docs/bad.pdf": readErr}}, &fakeText{}, nil)

		_, err := s.ScanFile(context.Background(), "/docs/bad.pdf")

		var stageErr *StageError
		require.True(t, errors.As(err, &stageErr))
		assert.Equal(t, StageReadMetadata, stageErr.Stage)

		var re *pdfdoc.ReadError
		assert.True(t, errors.As(err, &re))
	})

	t.Run("decode", func(t *testing.T) {
		meta := &fakeMetadata{meta: map[string]*pdfdoc.Metadata{
			"/docs/bad.pdf": {Info: map[string]any{"/Title": []byte{0xFE, 0xFF, 0x00}}},
		}}
		s := newTestScanner(t, meta, &fakeText{}, nil)

		_, err := s.ScanFile(context.Background(), "/docs/bad.pdf")

		var de *pdfdoc.DecodeError
		require.True(t, errors.As(err, &de))

		var stageErr *StageError
		require.True(t, errors.As(err, &stageErr))
		assert.Equal(t, StageReadMetadata, stageErr.Stage)
	})

	t.Run("text", func(t *testing.T) {
		s := newTestScanner(t, &fakeMetadata{}, &fakeText{errs: map[string]error{"/docs/bad.pdf": readErr}}, nil)

		_, err := s.ScanFile(context.Background(), "/docs/bad.pdf")

		var stageErr *StageError
		require.True(t, errors.As(err, &stageErr))
		assert.Equal(t, StageReadText, stageErr.Stage)
		assert.Contains(t, err.Error(), "read_text")
	})
}

func TestRunSkipsFailedFiles(t *testing.T) {
	meta := &fakeMetadata{errs: map[string]error{
		"/docs/2.pdf": &pdfdoc.ReadError{Path: "/docs/2.pdf", Err: pdfdoc.ErrEncrypted},
	}}
	text := &fakeText{texts: map[string]string{
		"/docs/1.pdf": "one@example.com",
		"/docs/3.pdf": "three@example.com",
	}}

	s := newTestScanner(t, meta, text, nil)

	report, err := s.Run(context.Background(), []string{"/docs/1.pdf", "/docs/2.pdf", "/docs/3.pdf"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/docs/1.pdf", "/docs/3.pdf"}, report.Paths())
	assert.NotContains(t, report, "/docs/2.pdf")
	assert.True(t, report["/docs/3.pdf"].Emails.Has("three@example.com"))
}

func TestRunKeepsRecordsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	text := &fakeText{
		texts: map[string]string{"/docs/1.pdf": "first.example.com", "/docs/2.pdf": "second.example.com"},
		onRead: func(path string) {
			if path == "/docs/2.pdf" {
				cancel()
			}
		},
	}

	s := newTestScanner(t, &fakeMetadata{}, text, nil)

	report, err := s.Run(ctx, []string{"/docs/1.pdf", "/docs/2.pdf", "/docs/3.pdf"})
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, []string{"/docs/1.pdf"}, report.Paths())
	assert.True(t, report["/docs/1.pdf"].URLs.Has("http://first.example.com"))
}

func TestRunAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(t, &fakeMetadata{}, &fakeText{}, nil)

	report, err := s.Run(ctx, []string{"/docs/1.pdf"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report)
}

func TestScanFileWithLinkAnnotations(t *testing.T) {
	links := &fakeLinks{links: []string{
		"https://annotated.example.org/page",
		"mailto:sales@example.com?subject=Hi",
		"MAILTO:First%2ELast@example.com",
		"tel:+44%2020%207946%200958",
		"file:///etc/passwd",
		"javascript:alert(1)",
	}}
	text := &fakeText{texts: map[string]string{"/docs/a.pdf": "no entities here"}}

	s := newTestScanner(t, &fakeMetadata{}, text, links)

	record, err := s.ScanFile(context.Background(), "/docs/a.pdf")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://annotated.example.org/page"}, record.URLs.Sorted())
	assert.Equal(t, []string{"First.Last@example.com", "sales@example.com"}, record.Emails.Sorted())
	assert.Equal(t, []string{"+44 20 7946 0958"}, record.PhoneNumbers.Sorted())
}

func TestScanFileLinkReaderErrorIsNotFatal(t *testing.T) {
	links := &fakeLinks{err: errors.New("broken annotations")}
	text := &fakeText{texts: map[string]string{"/docs/a.pdf": "see example.com"}}

	s := newTestScanner(t, &fakeMetadata{}, text, links)

	record, err := s.ScanFile(context.Background(), "/docs/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://example.com"}, record.URLs.Sorted())
}

func TestSplitLinks(t *testing.T) {
	out := splitLinks([]string{"http://a.example.com", "mailto:x@example.com", "tel:123", "file:/x"})

	assert.Equal(t, []string{"http://a.example.com"}, out.urls)
	assert.Equal(t, []string{"x@example.com"}, out.emails)
	assert.Equal(t, []string{"123"}, out.phones)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "read_metadata", StageReadMetadata.String())
	assert.Equal(t, "canonicalize_urls", StageCanonicalizeURLs.String())
	assert.Equal(t, "stage(99)", Stage(99).String())
}
