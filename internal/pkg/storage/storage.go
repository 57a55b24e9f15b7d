// internal/pkg/storage/storage.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/your-org/seed-marketplace/internal/config"
)

var (
	// ErrInvalidPath is returned for empty or escaping object paths
	ErrInvalidPath = errors.New("invalid object path")
	// ErrInvalidSignature is returned when a signed URL token does not check out
	ErrInvalidSignature = errors.New("invalid or expired signature")
)

// SignedURL is a time-limited link to a stored object
type SignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ObjectStore is the object storage collaborator: it keeps uploaded seed
// images and hands out signed links to them.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error
	SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (SignedURL, error)
}

// New builds the object store selected by STORAGE_PROVIDER
func New(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.Storage.Provider {
	case "local":
		return NewLocalStore(cfg), nil
	case "gcs":
		return NewGCSStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Storage.Provider)
	}
}

// CleanPath normalizes an object path and rejects anything that would leave
// the bucket.
func CleanPath(objectPath string) (string, error) {
	p := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if p == "" {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
