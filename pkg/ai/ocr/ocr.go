// Package ocr defines the text recognition port used for image resumes.
package ocr

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
)

// TextRecognizer turns an image into plain text.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, input Input, opts ...Option) (*Result, error)
}

// Input is one image to recognize.
type Input struct {
	Reader   io.Reader
	Data     []byte
	MimeType string
	Filename string
}

// FromBytes builds an input from raw image bytes.
func FromBytes(data []byte, mimeType string) Input {
	return Input{Data: data, MimeType: mimeType}
}

// FromReader builds an input that is read lazily.
func FromReader(r io.Reader, mimeType string) Input {
	return Input{Reader: r, MimeType: mimeType}
}

// Bytes returns the image bytes, draining Reader when Data is empty.
func (in Input) Bytes() ([]byte, error) {
	if len(in.Data) > 0 || in.Reader == nil {
		return in.Data, nil
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, in.Reader); err != nil {
		return nil, errRegistry.NewWithCause(ErrReadInput, err)
	}
	return buf.Bytes(), nil
}

// Result is the recognized text and who produced it.
type Result struct {
	Text       string
	Confidence float32
	Provider   string
	Model      string
}

var (
	errRegistry = errx.NewRegistry("OCR")

	ErrEmptyInput   = errRegistry.Register("EMPTY_INPUT", errx.TypeValidation, http.StatusBadRequest, "OCR input is empty")
	ErrReadInput    = errRegistry.Register("READ_INPUT", errx.TypeInternal, http.StatusInternalServerError, "Failed to read OCR input")
	ErrRecognition  = errRegistry.Register("RECOGNITION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Text recognition failed")
	ErrNotAvailable = errRegistry.Register("ENGINE_UNAVAILABLE", errx.TypeInternal, http.StatusServiceUnavailable, "OCR engine is not available")
)

// NewError instantiates one of the package error codes.
func NewError(code *errx.ErrorCode, cause error) *errx.Error {
	return errRegistry.NewWithCause(code, cause)
}
