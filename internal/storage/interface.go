package storage

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader stores a picked local file and returns the URL the widget should
// mount.
type Uploader interface {
	// Upload copies the file at path into storage
	Upload(ctx context.Context, path string) (string, error)
}

// objectKey returns a collision-free key that keeps the source extension,
// so the widget still recognises videos by suffix.
func objectKey(prefix, path string) string {
	key := uuid.NewString() + strings.ToLower(filepath.Ext(path))
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
