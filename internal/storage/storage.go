package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore persists uploaded files (receipts, avatars) and returns the URL
// path they are served from.
type FileStore interface {
	Save(kind string, ext string, r io.Reader) (string, error)
}

// Local writes uploads under a base directory, one subdirectory per kind,
// and serves them from /uploads.
type Local struct {
	baseDir string
}

func NewLocal(baseDir string) *Local {
	return &Local{baseDir: baseDir}
}

// BaseDir is where saved files live on disk; the HTTP layer serves it.
func (l *Local) BaseDir() string {
	return l.baseDir
}

func (l *Local) Save(kind string, ext string, r io.Reader) (string, error) {
	dir := filepath.Join(l.baseDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return "/uploads/" + kind + "/" + name, nil
}
