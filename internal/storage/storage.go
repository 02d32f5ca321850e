package storage

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// Uploader stores raw file bytes under a logical directory and returns a
// publicly reachable URL for the stored object.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, dir string) (string, error)
}

// Filename derives the stored filename from an upload URL,
// e.g. "https://host/moneyLog/abc.png" -> "abc.png".
func Filename(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		return rawURL[i+1:]
	}
	return rawURL
}
