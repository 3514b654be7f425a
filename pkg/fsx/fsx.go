// Package fsx abstracts the storage used for uploaded resumes and
// rendered PDFs, so the service runs the same against local disk or S3.
package fsx

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
)

var (
	errRegistry = errx.NewRegistry("FSX")

	CodeNotFound    = errRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeInvalidPath = errRegistry.Register("INVALID_PATH", errx.TypeValidation, http.StatusBadRequest, "Invalid file path")
	CodeIO          = errRegistry.Register("IO", errx.TypeInternal, http.StatusInternalServerError, "Storage operation failed")
)

// ErrNotFound matches any not-found error returned by an implementation.
var ErrNotFound = errRegistry.New(CodeNotFound)

// NotFound builds a not-found error for path.
func NotFound(path string) *errx.Error {
	return errRegistry.New(CodeNotFound).WithDetail("path", path)
}

// InvalidPath builds an error for a path escaping the storage root.
func InvalidPath(path string) *errx.Error {
	return errRegistry.New(CodeInvalidPath).WithDetail("path", path)
}

// IOError wraps a backend failure.
func IOError(op, path string, err error) *errx.Error {
	return errRegistry.NewWithCause(CodeIO, err).WithDetail("op", op).WithDetail("path", path)
}

// FileInfo describes a stored object.
type FileInfo struct {
	Name        string
	Size        int64
	ModTime     time.Time
	IsDir       bool
	ContentType string
}

// FileReader provides read access.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	Stat(ctx context.Context, path string) (FileInfo, error)
	List(ctx context.Context, path string) ([]FileInfo, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// FileWriter provides write access.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
}

// FileDeleter removes files. Deleting a missing file is not an error.
type FileDeleter interface {
	DeleteFile(ctx context.Context, path string) error
}

// PathOperations joins path elements the way the backend expects.
type PathOperations interface {
	Join(elem ...string) string
}

// FileSystem combines all file operations.
type FileSystem interface {
	FileReader
	FileWriter
	FileDeleter
	PathOperations
}

// HealthChecker is implemented by backends that can verify their root is usable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ContentTypeOf guesses the MIME type from the file extension.
func ContentTypeOf(name string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")) {
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
