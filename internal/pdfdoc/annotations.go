package pdfdoc

import (
	"os"
	"sort"
	"strings"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu writes a config dir under the user's home unless disabled.
	pdfapi.DisableConfigDir()
}

// LinkReader returns the URIs of link annotations in a PDF
type LinkReader interface {
	ReadLinks(path string) ([]string, error)
}

// AnnotationReader reads link annotations with github.com/pdfcpu/pdfcpu.
type AnnotationReader struct{}

// NewAnnotationReader creates an AnnotationReader
func NewAnnotationReader() *AnnotationReader {
	return &AnnotationReader{}
}

// ReadLinks returns the distinct non-empty URIs of every link annotation,
// sorted. mailto: and tel: URIs are included.
func (a *AnnotationReader) ReadLinks(path string) (links []string, err error) {
	defer recoverRead(path, &err)

	f, err := os.Open(path)
	if err != nil {
		return nil, readError(path, err)
	}
	defer f.Close()

	annots, err := pdfapi.Annotations(f, nil, nil)
	if err != nil {
		return nil, readError(path, err)
	}

	seen := make(map[string]struct{})

	for _, pageAnnots := range annots {
		linkAnnots, ok := pageAnnots[pdfmodel.AnnLink]
		if !ok {
			continue
		}

		for _, renderer := range linkAnnots.Map {
			link, ok := renderer.(pdfmodel.LinkAnnotation)
			if !ok {
				continue
			}

			uri := strings.TrimSpace(link.URI)
			if uri == "" {
				continue
			}

			if _, dup := seen[uri]; !dup {
				seen[uri] = struct{}{}
				links = append(links, uri)
			}
		}
	}

	sort.Strings(links)

	return links, nil
}
