package ocr_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Abraxas-365/resumeforge/pkg/ai/ocr"
)

type recordingRecognizer struct {
	opts *ocr.Options
	data []byte
}

func (r *recordingRecognizer) RecognizeText(ctx context.Context, in ocr.Input, opts ...ocr.Option) (*ocr.Result, error) {
	r.opts = ocr.ApplyOptions(opts...)
	data, err := in.Bytes()
	if err != nil {
		return nil, err
	}
	r.data = data
	return &ocr.Result{Text: "  Jane Doe\n", Provider: "fake"}, nil
}

func TestClientAppliesDefaultsAndTrims(t *testing.T) {
	rec := &recordingRecognizer{}
	client := ocr.NewClient(rec, ocr.WithLanguages("eng"))

	text, err := client.Text(context.Background(), ocr.FromReader(strings.NewReader("img"), "image/png"), ocr.WithModel("m"))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "Jane Doe" {
		t.Fatalf("text = %q", text)
	}
	if rec.opts.Model != "m" || len(rec.opts.LanguageHints) != 1 || string(rec.data) != "img" {
		t.Fatalf("opts = %+v data = %q", rec.opts, rec.data)
	}
}
