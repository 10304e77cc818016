// Package ingest turns uploaded documents into pages of plain text.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Supported document types.
const (
	TypeText = "text/plain"
	TypePDF  = "application/pdf"
)

var (
	// ErrUnsupportedType is returned for anything other than PDF or plain text.
	ErrUnsupportedType = errors.New("unsupported file type (only PDF and TXT allowed)")
	// ErrNoText is returned when a document yields no readable text on any page.
	ErrNoText = errors.New("no text could be extracted")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectType resolves the document type from the declared content type. A missing
// or generic content type falls back to the filename extension.
func DetectType(filename, contentType string) (string, error) {
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			switch mediaType {
			case TypeText, TypePDF:
				return mediaType, nil
			case "application/octet-stream":
			default:
				return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
			}
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return TypeText, nil
	case ".pdf":
		return TypePDF, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filename)
	}
}

// Pages splits content of the given type into pages. A PDF yields one entry per
// page, blank pages included so numbering matches the document. Plain text is a
// single page.
func Pages(docType string, content []byte) ([]string, error) {
	var (
		pages []string
		err   error
	)
	switch docType {
	case TypeText:
		pages = []string{string(bytes.TrimPrefix(content, utf8BOM))}
	case TypePDF:
		pages, err = pdfPages(content)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, docType)
	}

	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return pages, nil
		}
	}
	return nil, ErrNoText
}

// FromFile detects the type from filename and splits content into pages.
func FromFile(filename string, content []byte) ([]string, error) {
	docType, err := DetectType(filename, "")
	if err != nil {
		return nil, err
	}
	return Pages(docType, content)
}

// AppendTyped adds typed notes as a trailing page when they are not blank.
func AppendTyped(pages []string, typed string) []string {
	if strings.TrimSpace(typed) == "" {
		return pages
	}
	return append(pages, typed)
}

func pdfPages(content []byte) (pages []string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("read pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
