// Package pdftext resolves uploaded documents to plain text for the
// statement extractor. PDF decoding is delegated to ledongthuc/pdf; anything
// else is treated as text already.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/extract"
	"github.com/ledongthuc/pdf"
)

// PDFSource extracts text from PDF bytes.
type PDFSource struct{}

// NewPDFSource creates a PDF-backed text source.
func NewPDFSource() *PDFSource {
	return &PDFSource{}
}

// Text decodes a PDF document into plain text, one statement line per text
// row. Fails when the document has no pages or no decodable text, which the
// extractor treats as a fatal statement-level error.
func (s *PDFSource) Text(ctx context.Context, data []byte) (text string, err error) {
	// The pdf library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf decoding failed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("%w: pdf has no pages", common.ErrEmptyDocument)
	}

	var lines []string
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("%w: no decodable text in pdf", common.ErrEmptyDocument)
	}
	return strings.Join(lines, "\n"), nil
}

// PlainSource passes already-plain text through unchanged.
type PlainSource struct{}

// NewPlainSource creates a passthrough text source.
func NewPlainSource() *PlainSource {
	return &PlainSource{}
}

// Text returns the bytes as a string.
func (s *PlainSource) Text(_ context.Context, data []byte) (string, error) {
	return string(data), nil
}

// ForFilename picks a source by file extension: .pdf gets the PDF decoder,
// everything else passes through as text.
func ForFilename(name string) extract.TextSource {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return NewPDFSource()
	}
	return NewPlainSource()
}
