package extract

import (
	"net/http"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("EXTRACT")

var (
	CodeFailed         = ErrRegistry.Register("FAILED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Could not read text from the file")
	CodeUnsupported    = ErrRegistry.Register("UNSUPPORTED", errx.TypeValidation, http.StatusBadRequest, "Unsupported file type")
	CodeOCRUnavailable = ErrRegistry.Register("OCR_UNAVAILABLE", errx.TypeBusiness, http.StatusUnprocessableEntity, "Image text recognition is not configured")
)

func ErrFailed(format string, cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeFailed, cause).WithDetail("format", format)
}

func ErrUnsupported(ext string) *errx.Error {
	return ErrRegistry.New(CodeUnsupported).WithDetail("extension", ext)
}

func ErrOCRUnavailable() *errx.Error { return ErrRegistry.New(CodeOCRUnavailable) }
