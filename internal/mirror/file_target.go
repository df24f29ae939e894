package mirror

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileTarget mirrors to a local file, typically inside a folder a
// cloud-drive client keeps in sync.
type FileTarget struct {
	path string
}

// NewFileTarget returns a target for path. Nothing is touched until
// RequestPermission.
func NewFileTarget(path string) *FileTarget {
	return &FileTarget{path: path}
}

// RequestPermission opens the file read-write, creating it if absent.
func (f *FileTarget) RequestPermission(_ context.Context) error {
	file, err := os.OpenFile(f.path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return f.classify("open", err)
	}
	return file.Close()
}

// Read returns the file content. A missing file reads as empty.
func (f *FileTarget) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, f.classify("read", err)
	}
	return data, nil
}

// Write truncates the file in place and writes data. The file is not
// replaced by rename, so revoked access surfaces here.
func (f *FileTarget) Write(_ context.Context, data []byte) error {
	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return f.classify("open", err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return f.classify("write", err)
	}
	if err := file.Close(); err != nil {
		return f.classify("close", err)
	}
	return nil
}

func (f *FileTarget) String() string {
	return f.path
}

func (f *FileTarget) classify(op string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s %s: %w", ErrPermissionDenied, op, f.path, err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, op, f.path, err)
	default:
		return fmt.Errorf("failed to %s %s: %w", op, f.path, err)
	}
}
