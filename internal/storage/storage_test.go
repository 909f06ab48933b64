package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/interpretive-systems/imagetool/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLocalStorage_Upload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media")
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	src := writeFile(t, "Cat.MP4", "video-bytes")
	got, err := s.Upload(context.Background(), src)
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "file", u.Scheme)
	assert.True(t, strings.HasSuffix(u.Path, ".mp4"), "extension must be kept lowercase: %s", got)

	b, err := os.ReadFile(filepath.FromSlash(u.Path))
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(b))
}

func TestLocalStorage_MissingSource(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	_, err = s.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Upload(ctx, writeFile(t, "a.png", "png"))
	assert.ErrorIs(t, err, context.Canceled)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "partial object must be removed")
}

func TestS3Storage_Upload(t *testing.T) {
	var mu sync.Mutex
	var gotPath, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotPath, gotType, gotBody = r.URL.Path, r.Header.Get("Content-Type"), string(b)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewS3Storage(&S3Config{
		Endpoint:  srv.URL,
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "media",
		Prefix:    "blocks",
		PublicURL: "https://cdn.example/",
	})
	require.NoError(t, err)

	got, err := s.Upload(context.Background(), writeFile(t, "a.png", "png-bytes"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, strings.HasPrefix(gotPath, "/media/blocks/"), gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ".png"), gotPath)
	assert.Equal(t, "image/png", gotType)
	assert.Contains(t, gotBody, "png-bytes")
	assert.Equal(t, "https://cdn.example"+strings.TrimPrefix(gotPath, "/media"), got)
}

func TestNewUploader(t *testing.T) {
	u, err := NewUploader(config.StorageConfig{Kind: "local", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, u)

	_, err = NewUploader(config.StorageConfig{Kind: "s3"})
	assert.Error(t, err, "bucket is required")

	_, err = NewUploader(config.StorageConfig{Kind: "ftp"})
	assert.Error(t, err)
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "minio:9000", normalizeEndpoint("http://minio:9000/"))
	assert.Equal(t, "s3.example", normalizeEndpoint("https://s3.example/path"))
	assert.Equal(t, "", normalizeEndpoint(""))
}
