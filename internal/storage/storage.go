package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/folio-site/folio/backend/internal/config"
)

// PublicPrefix is the URL prefix under which stored objects are served.
const PublicPrefix = "/uploads/"

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

// ObjectStorage stores uploaded images under slash-separated keys such as
// "portfolio/1700000000000-1a2b3c4d.png". Delete of a missing key is not an error.
type ObjectStorage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New builds the backend selected by cfg.Backend.
func New(cfg config.StorageConfig) (ObjectStorage, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStorage(cfg.UploadDir)
	case "minio":
		return NewMinIOStorage(&cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// PublicPath returns the URL path a stored key is served from.
func PublicPath(key string) string {
	return PublicPrefix + key
}

// KeyFromPublicPath is the inverse of PublicPath. ok is false for paths that
// were not produced by PublicPath (e.g. external image URLs).
func KeyFromPublicPath(p string) (string, bool) {
	if !strings.HasPrefix(p, PublicPrefix) {
		return "", false
	}
	key, err := CleanKey(strings.TrimPrefix(p, PublicPrefix))
	if err != nil {
		return "", false
	}
	return key, true
}

// CleanKey normalises key and rejects anything escaping the storage root.
func CleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned != key || cleaned == "." || strings.HasPrefix(cleaned, "../") || cleaned == ".." {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
