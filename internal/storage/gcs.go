package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCSUploader stores uploads in a Google Cloud Storage bucket. It assumes
// Application Default Credentials are configured on the host.
type GCSUploader struct {
	Bucket string
}

func NewGCSUploader(bucket string) *GCSUploader {
	return &GCSUploader{Bucket: bucket}
}

func (u *GCSUploader) Upload(ctx context.Context, data []byte, filename, dir string) (string, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	objectName := dir + "/" + uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(u.Bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy to storage writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.Bucket, objectName), nil
}
