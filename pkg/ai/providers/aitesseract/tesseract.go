// Package aitesseract recognizes text with the tesseract command line tool.
package aitesseract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/ai/ocr"
)

// Runner executes the binary with stdin and returns stdout.
type Runner func(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error)

// Tesseract implements ocr.TextRecognizer by piping the image through
// "tesseract stdin stdout".
type Tesseract struct {
	binary   string
	language string
	run      Runner
	lookPath func(string) (string, error)
}

type Option func(*Tesseract)

func WithBinary(path string) Option {
	return func(t *Tesseract) { t.binary = path }
}

func WithLanguage(lang string) Option {
	return func(t *Tesseract) { t.language = lang }
}

// WithRunner replaces process execution, mainly for tests.
func WithRunner(r Runner) Option {
	return func(t *Tesseract) {
		t.run = r
		t.lookPath = func(s string) (string, error) { return s, nil }
	}
}

func New(opts ...Option) *Tesseract {
	t := &Tesseract{
		binary:   "tesseract",
		language: "eng",
		run:      execRunner,
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Available reports whether the binary can be found.
func (t *Tesseract) Available() bool {
	_, err := t.lookPath(t.binary)
	return err == nil
}

func (t *Tesseract) RecognizeText(ctx context.Context, input ocr.Input, opts ...ocr.Option) (*ocr.Result, error) {
	o := ocr.ApplyOptions(opts...)

	if !t.Available() {
		return nil, ocr.NewError(ocr.ErrNotAvailable, fmt.Errorf("%s not found on PATH", t.binary))
	}

	data, err := input.Bytes()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ocr.NewError(ocr.ErrEmptyInput, nil)
	}

	lang := t.language
	if len(o.LanguageHints) > 0 {
		lang = strings.Join(o.LanguageHints, "+")
	}

	out, err := t.run(ctx, data, t.binary, "stdin", "stdout", "-l", lang)
	if err != nil {
		return nil, ocr.NewError(ocr.ErrRecognition, err)
	}

	return &ocr.Result{
		Text:     strings.TrimSpace(string(out)),
		Provider: "tesseract",
		Model:    lang,
	}, nil
}

func execRunner(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}
