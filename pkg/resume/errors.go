package resume

import (
	"net/http"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

var (
	CodeNoFile               = ErrRegistry.Register("NO_FILE", errx.TypeValidation, http.StatusBadRequest, "No file selected")
	CodeInvalidFileType      = ErrRegistry.Register("INVALID_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid file type. Please upload PDF, PNG, JPG, or JPEG files.")
	CodeInsufficientText     = ErrRegistry.Register("INSUFFICIENT_TEXT", errx.TypeBusiness, http.StatusUnprocessableEntity, "Could not extract sufficient text from the file. Please ensure the file contains readable text.")
	CodeRenderFailed         = ErrRegistry.Register("RENDER_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Error creating enhanced PDF. Please try again.")
	CodeFileNotFound         = ErrRegistry.Register("FILE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found or has expired")
	CodeDownloadFailed       = ErrRegistry.Register("DOWNLOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Error downloading file")
	CodeProcessingFailed     = ErrRegistry.Register("PROCESSING_FAILED", errx.TypeInternal, http.StatusInternalServerError, "An error occurred while processing your file. Please try again.")
	CodeEnhancementNotFound  = ErrRegistry.Register("ENHANCEMENT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Enhancement not found")
	CodeEmptyText            = ErrRegistry.Register("EMPTY_TEXT", errx.TypeValidation, http.StatusBadRequest, "Text is required")
	CodeAsyncJobsUnavailable = ErrRegistry.Register("ASYNC_UNAVAILABLE", errx.TypeBusiness, http.StatusServiceUnavailable, "Background processing is not enabled")
)

func ErrNoFile() *errx.Error               { return ErrRegistry.New(CodeNoFile) }
func ErrInvalidFileType() *errx.Error      { return ErrRegistry.New(CodeInvalidFileType) }
func ErrInsufficientText() *errx.Error     { return ErrRegistry.New(CodeInsufficientText) }
func ErrFileNotFound() *errx.Error         { return ErrRegistry.New(CodeFileNotFound) }
func ErrEnhancementNotFound() *errx.Error  { return ErrRegistry.New(CodeEnhancementNotFound) }
func ErrEmptyText() *errx.Error            { return ErrRegistry.New(CodeEmptyText) }
func ErrAsyncJobsUnavailable() *errx.Error { return ErrRegistry.New(CodeAsyncJobsUnavailable) }

func ErrRenderFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeRenderFailed, cause)
}

func ErrDownloadFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeDownloadFailed, cause)
}

func ErrProcessingFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeProcessingFailed, cause)
}
