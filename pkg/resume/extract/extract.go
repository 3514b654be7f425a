// Package extract pulls plain text out of uploaded resumes: PDFs through a
// PDF parser, DOCX files through their document XML, images through OCR.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/ai/ocr"
	"github.com/Abraxas-365/resumeforge/pkg/fsx"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Extractor implements resume.Extractor.
type Extractor struct {
	ocr *ocr.Client
}

var _ resume.Extractor = (*Extractor)(nil)

// New returns an extractor. A nil OCR client rejects image uploads.
func New(ocrClient *ocr.Client) *Extractor {
	return &Extractor{ocr: ocrClient}
}

// Extract dispatches on the file extension and returns trimmed text.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	ext := resume.Extension(filename)
	log := logx.WithContext(ctx).WithFields(logx.Fields{"filename": filename, "format": ext, "bytes": len(data)})

	var (
		text string
		err  error
	)
	switch ext {
	case "pdf":
		text, err = PDFText(data)
	case "docx":
		text, err = DocxText(data)
	case "png", "jpg", "jpeg":
		text, err = e.imageText(ctx, filename, data)
	default:
		return "", ErrUnsupported(ext)
	}
	if err != nil {
		log.WithError(err).Warn("Text extraction failed")
		return "", err
	}

	log.WithField("chars", len(text)).Debug("Text extracted")
	return text, nil
}

func (e *Extractor) imageText(ctx context.Context, filename string, data []byte) (string, error) {
	if e.ocr == nil {
		return "", ErrOCRUnavailable()
	}
	in := ocr.FromBytes(data, fsx.ContentTypeOf(filename))
	in.Filename = filename
	text, err := e.ocr.Text(ctx, in)
	if err != nil {
		return "", ErrFailed("image", err)
	}
	return text, nil
}

// PDFText concatenates the plain text of every page, each followed by a
// newline. Pages without content are skipped.
func PDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrFailed("pdf", fmt.Errorf("malformed pdf: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", ErrFailed("pdf", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", ErrFailed("pdf", err).WithDetail("page", i)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

var (
	docxBreaks = regexp.MustCompile(`</w:p>|<w:br/>|<w:cr/>`)
	docxTabs   = regexp.MustCompile(`<w:tab/>`)
	xmlTags    = regexp.MustCompile(`<[^>]+>`)
)

// DocxText returns the paragraphs of the main document part, one per line.
func DocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", ErrFailed("docx", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxBreaks.ReplaceAllString(content, "\n")
	content = docxTabs.ReplaceAllString(content, "\t")
	content = xmlTags.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content)), nil
}
