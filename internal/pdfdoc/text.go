package pdfdoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// Text extraction backends
const (
	BackendAuto    = "auto"
	BackendDocconv = "docconv"
	BackendNative  = "native"
)

// TextExtractor returns the plain text of all pages of a PDF, in page order.
// A readable PDF without a text layer yields "" and no error.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// NewTextExtractor returns the extractor for backend.
func NewTextExtractor(backend string) (TextExtractor, error) {
	switch strings.ToLower(backend) {
	case BackendDocconv:
		return &DocconvExtractor{}, nil
	case BackendNative:
		return &NativeExtractor{}, nil
	case BackendAuto, "":
		return &FallbackExtractor{
			Primary:   &DocconvExtractor{},
			Secondary: &NativeExtractor{},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported text backend: %s", backend)
	}
}

// DocconvExtractor converts with code.sajari.com/docconv, which shells out
// to poppler's pdftotext.
type DocconvExtractor struct{}

// ExtractText converts path to text.
func (d *DocconvExtractor) ExtractText(path string) (string, error) {
	response, err := docconv.ConvertPath(path)
	if err != nil {
		return "", readError(path, fmt.Errorf("failed to convert PDF file: %w", err))
	}

	if strings.TrimSpace(response.Body) == "" {
		return "", nil
	}

	return normalizeText(response.Body), nil
}

// NativeExtractor reads the content streams with github.com/ledongthuc/pdf,
// no external tools needed.
type NativeExtractor struct{}

// ExtractText reads the plain text of every page of path.
func (n *NativeExtractor) ExtractText(path string) (text string, err error) {
	defer recoverRead(path, &err)

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", readError(path, err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", readError(path, err)
	}

	body, err := io.ReadAll(plain)
	if err != nil {
		return "", readError(path, err)
	}

	if strings.TrimSpace(string(body)) == "" {
		return "", nil
	}

	return normalizeText(string(body)), nil
}

// FallbackExtractor tries Primary and falls back to Secondary when Primary
// fails or finds no text.
type FallbackExtractor struct {
	Primary   TextExtractor
	Secondary TextExtractor
}

// ExtractText returns the first non-empty result. Empty text from one side
// and an error from the other is still empty text, not a failure.
func (f *FallbackExtractor) ExtractText(path string) (string, error) {
	text, err := f.Primary.ExtractText(path)
	if err == nil && text != "" {
		return text, nil
	}

	second, secondErr := f.Secondary.ExtractText(path)
	switch {
	case secondErr == nil:
		return second, nil
	case err == nil:
		return text, nil
	default:
		return "", readError(path, errors.Join(err, secondErr))
	}
}

// normalizeText folds ligatures and full-width forms (NFKC) so that
// "ﬁle.example.com" matches like "file.example.com".
func normalizeText(text string) string {
	text = strings.ToValidUTF8(text, "")
	return norm.NFKC.String(text)
}
