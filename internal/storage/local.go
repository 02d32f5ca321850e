package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalUploader writes uploads to the local filesystem under BaseDir and
// returns URLs rooted at BaseURL. Used in development and tests; the files
// are expected to be served as static content by the HTTP layer.
type LocalUploader struct {
	BaseDir string
	BaseURL string
}

func NewLocalUploader(baseDir, baseURL string) *LocalUploader {
	return &LocalUploader{
		BaseDir: baseDir,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (u *LocalUploader) Upload(_ context.Context, data []byte, filename, dir string) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	targetDir := filepath.Join(u.BaseDir, dir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(targetDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return u.BaseURL + "/" + dir + "/" + name, nil
}
