package asset

import (
	"os"
	"path/filepath"
)

type WritableFileSystem interface {
	WriteFile(path Path, data []byte) error
}

type dirFS struct {
	base string
}

// NewWritableFS saves assets under the directory base, creating
// subdirectories as needed.
func NewWritableFS(base string) WritableFileSystem {
	return &dirFS{base: base}
}

func (f *dirFS) WriteFile(path Path, data []byte) error {
	full := filepath.Join(f.base, filepath.FromSlash(string(path)))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
