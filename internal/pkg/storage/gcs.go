// internal/pkg/storage/gcs.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/your-org/seed-marketplace/internal/config"
)

// GCSStore keeps objects in a Google Cloud Storage bucket and issues V4
// signed GET URLs for them.
type GCSStore struct {
	client    *gcs.Client
	bucket    string
	newWriter func(ctx context.Context, objectPath, contentType string) io.WriteCloser
}

// NewGCSStore creates a GCS-backed object store. Credentials come from
// GCS_CREDENTIALS_FILE when set, otherwise from the environment.
func NewGCSStore(ctx context.Context, cfg *config.Config) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.Storage.GCSCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Storage.GCSCredentials))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	s := &GCSStore{client: client, bucket: cfg.Storage.Bucket}
	s.newWriter = s.objectWriter
	return s, nil
}

func (s *GCSStore) objectWriter(ctx context.Context, objectPath, contentType string) io.WriteCloser {
	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

// Upload streams r into the bucket. A failed read aborts the upload so no
// partial object is left behind.
func (s *GCSStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error {
	p, err := CleanPath(objectPath)
	if err != nil {
		return err
	}

	// Cancelling the writer's context aborts the upload; Close would
	// finalize whatever was already sent.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.newWriter(ctx, p, contentType)
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		return fmt.Errorf("failed to upload object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object: %w", err)
	}
	return nil
}

// SignedURL issues a V4 signed GET URL valid for ttl
func (s *GCSStore) SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (SignedURL, error) {
	p, err := CleanPath(objectPath)
	if err != nil {
		return SignedURL{}, err
	}

	expiresAt := time.Now().UTC().Add(ttl)
	u, err := s.client.Bucket(s.bucket).SignedURL(p, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: expiresAt,
	})
	if err != nil {
		return SignedURL{}, fmt.Errorf("failed to sign url: %w", err)
	}

	return SignedURL{URL: u, ExpiresAt: expiresAt}, nil
}

// Close releases the storage client
func (s *GCSStore) Close() error {
	if s.client == nil {
		return errors.New("storage client is nil")
	}
	return s.client.Close()
}
