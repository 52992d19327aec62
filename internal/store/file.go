package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps the snapshot in a single JSON file, creating the
// parent directory on first save.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend writing to the given file path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the data file location.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", b.path, err)
	}
	return data, true, nil
}

func (b *FileBackend) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", b.path, err)
	}
	return nil
}
