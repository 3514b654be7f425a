package extract_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Abraxas-365/resumeforge/pkg/ai/ocr"
	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/resume/extract"
	"github.com/Abraxas-365/resumeforge/pkg/resume/render"
)

type fakeRecognizer struct {
	text string
	err  error
	got  ocr.Input
}

func (f *fakeRecognizer) RecognizeText(ctx context.Context, in ocr.Input, opts ...ocr.Option) (*ocr.Result, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &ocr.Result{Text: f.text, Provider: "fake"}, nil
}

func TestExtract_ImageUsesOCR(t *testing.T) {
	rec := &fakeRecognizer{text: "  Jane Doe\nEngineer  \n"}
	e := extract.New(ocr.NewClient(rec))

	text, err := e.Extract(context.Background(), "scan.JPG", []byte{0xff, 0xd8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Jane Doe\nEngineer" {
		t.Fatalf("unexpected text %q", text)
	}
	if rec.got.MimeType != "image/jpeg" || rec.got.Filename != "scan.JPG" {
		t.Fatalf("unexpected input %+v", rec.got)
	}
}

func TestExtract_ImageWithoutOCR(t *testing.T) {
	_, err := extract.New(nil).Extract(context.Background(), "a.png", []byte{1})
	if !errx.Is(err, extract.ErrOCRUnavailable()) {
		t.Fatalf("expected OCR unavailable, got %v", err)
	}
}

func TestExtract_RecognitionFailure(t *testing.T) {
	rec := &fakeRecognizer{err: ocr.NewError(ocr.ErrRecognition, errors.New("engine crashed"))}

	_, err := extract.New(ocr.NewClient(rec)).Extract(context.Background(), "scan.png", []byte{1})
	if !errx.Is(err, extract.ErrFailed("image", nil)) {
		t.Fatalf("expected extraction failure, got %v", err)
	}
	if errx.StatusOf(err) != 422 || errx.IsType(err, errx.TypeExternal) {
		t.Fatalf("expected a 422 content failure, got %d", errx.StatusOf(err))
	}
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := extract.New(nil).Extract(context.Background(), "a.txt", []byte("hi"))
	if !errx.Is(err, extract.ErrUnsupported("txt")) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestExtract_GarbagePDF(t *testing.T) {
	_, err := extract.New(nil).Extract(context.Background(), "a.pdf", []byte("not a pdf"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if errx.StatusOf(err) != 422 {
		t.Fatalf("expected 422, got %d", errx.StatusOf(err))
	}
}

func TestExtract_RenderedPDFRoundTrip(t *testing.T) {
	data, err := render.New().Render("EDUCATION\nBachelor of Science")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text, err := extract.New(nil).Extract(context.Background(), "cv.pdf", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "EDUCATION") {
		t.Fatalf("expected rendered header in %q", text)
	}
}

func TestDocxText(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t>Skills: Go &amp; SQL</w:t></w:r></w:p>` +
			`</w:body></w:document>`,
	}
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	text, err := extract.DocxText(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Jane Doe\nSkills: Go & SQL" {
		t.Fatalf("unexpected text %q", text)
	}
}
