package fsxlocal

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/fsx"
)

// LocalFileSystem implements fsx.FileSystem rooted at a directory on disk.
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem creates basePath if needed and roots the filesystem there.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fsx.IOError("mkdir", basePath, err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fsx.IOError("abs", basePath, err)
	}
	return &LocalFileSystem{basePath: abs}, nil
}

// GetBasePath returns the absolute root directory.
func (l *LocalFileSystem) GetBasePath() string {
	return l.basePath
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	full, err := l.fullPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, l.mapErr("read", path, err)
	}
	return data, nil
}

func (l *LocalFileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := l.fullPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, l.mapErr("open", path, err)
	}
	return f, nil
}

func (l *LocalFileSystem) Stat(ctx context.Context, path string) (fsx.FileInfo, error) {
	full, err := l.fullPath(path)
	if err != nil {
		return fsx.FileInfo{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return fsx.FileInfo{}, l.mapErr("stat", path, err)
	}
	return toFileInfo(info), nil
}

func (l *LocalFileSystem) List(ctx context.Context, path string) ([]fsx.FileInfo, error) {
	full, err := l.fullPath(path)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, l.mapErr("list", path, err)
	}

	out := make([]fsx.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, toFileInfo(info))
	}
	return out, nil
}

func (l *LocalFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	full, err := l.fullPath(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fsx.IOError("stat", path, err)
	}
	return true, nil
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	full, err := l.prepareWrite(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fsx.IOError("write", path, err)
	}
	return nil
}

func (l *LocalFileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	full, err := l.prepareWrite(path)
	if err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return fsx.IOError("create", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fsx.IOError("write", path, err)
	}
	return nil
}

func (l *LocalFileSystem) DeleteFile(ctx context.Context, path string) error {
	full, err := l.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fsx.IOError("delete", path, err)
	}
	return nil
}

func (l *LocalFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Ping verifies the root directory still exists.
func (l *LocalFileSystem) Ping(ctx context.Context) error {
	info, err := os.Stat(l.basePath)
	if err != nil {
		return fsx.IOError("stat", l.basePath, err)
	}
	if !info.IsDir() {
		return fsx.IOError("stat", l.basePath, errors.New("not a directory"))
	}
	return nil
}

func (l *LocalFileSystem) prepareWrite(path string) (string, error) {
	full, err := l.fullPath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fsx.IOError("mkdir", path, err)
	}
	return full, nil
}

// fullPath resolves path under the root and rejects escapes.
func (l *LocalFileSystem) fullPath(path string) (string, error) {
	full := filepath.Join(l.basePath, filepath.FromSlash(path))
	if full != l.basePath && !strings.HasPrefix(full, l.basePath+string(os.PathSeparator)) {
		return "", fsx.InvalidPath(path)
	}
	return full, nil
}

func (l *LocalFileSystem) mapErr(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fsx.NotFound(path)
	}
	return fsx.IOError(op, path, err)
}

func toFileInfo(info os.FileInfo) fsx.FileInfo {
	return fsx.FileInfo{
		Name:        info.Name(),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		IsDir:       info.IsDir(),
		ContentType: fsx.ContentTypeOf(info.Name()),
	}
}
