package pdfdoc

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// Metadata is the document information dictionary of a PDF. Info values are
// decoded text for PDF strings and names, and int64/float64/bool/nil for the
// other scalar kinds; nested objects are kept as their PDF syntax.
type Metadata struct {
	Info  map[string]any
	Pages int
}

// MetadataReader reads the document information of a PDF file
type MetadataReader interface {
	ReadMetadata(path string) (*Metadata, error)
}

// InfoReader reads the trailer /Info dictionary with github.com/ledongthuc/pdf.
// Keys keep their PDF name form, e.g. "/Author".
type InfoReader struct{}

// NewInfoReader creates an InfoReader
func NewInfoReader() *InfoReader {
	return &InfoReader{}
}

// ReadMetadata opens path and returns its info dictionary and page count.
func (r *InfoReader) ReadMetadata(path string) (meta *Metadata, err error) {
	defer recoverRead(path, &err)

	f, err := os.Open(path)
	if err != nil {
		return nil, readError(path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, readError(path, err)
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, readError(path, fmt.Errorf("%w: %v", ErrEncrypted, err))
		}

		return nil, readError(path, err)
	}

	info := reader.Trailer().Key("Info")
	meta = &Metadata{
		Info:  make(map[string]any, len(info.Keys())),
		Pages: reader.NumPage(),
	}

	for _, key := range info.Keys() {
		meta.Info["/"+key] = rawValue(info.Key(key))
	}

	return meta, nil
}

func rawValue(v pdf.Value) any {
	switch v.Kind() {
	case pdf.Null:
		return nil
	case pdf.Bool:
		return v.Bool()
	case pdf.Integer:
		return v.Int64()
	case pdf.Real:
		return v.Float64()
	case pdf.String:
		// PDFDocEncoding or UTF-16BE with a byte order mark
		return v.Text()
	case pdf.Name:
		return v.Name()
	default:
		return v.String()
	}
}
