// internal/pkg/storage/local.go
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/your-org/seed-marketplace/internal/config"
)

// objectClaims authorize reading one object until expiry
type objectClaims struct {
	Bucket string `json:"bkt"`
	Path   string `json:"path"`
	jwt.RegisteredClaims
}

// LocalStore keeps objects on the local filesystem and signs read links
// with the application's JWT secret. The links are served by the app itself
// under /files.
type LocalStore struct {
	root    string
	bucket  string
	baseURL string
	secret  []byte
	now     func() time.Time
}

// NewLocalStore creates a filesystem-backed object store
func NewLocalStore(cfg *config.Config) *LocalStore {
	return &LocalStore{
		root:    cfg.Storage.LocalPath,
		bucket:  cfg.Storage.Bucket,
		baseURL: strings.TrimRight(cfg.App.PublicURL, "/"),
		secret:  []byte(cfg.JWT.Secret),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Upload writes the object under <root>/<bucket>/<objectPath>
func (s *LocalStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error {
	fullPath, err := s.FullPath(objectPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to save file: %w", err)
	}

	// A caller that gave up will never reference the object
	if err := ctx.Err(); err != nil {
		os.Remove(fullPath)
		return err
	}
	return nil
}

// SignedURL issues a link to /files/<objectPath> carrying a token that
// expires after ttl.
func (s *LocalStore) SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (SignedURL, error) {
	p, err := CleanPath(objectPath)
	if err != nil {
		return SignedURL{}, err
	}

	expiresAt := s.now().Add(ttl)
	claims := &objectClaims{
		Bucket: s.bucket,
		Path:   p,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return SignedURL{}, fmt.Errorf("failed to sign object url: %w", err)
	}

	u := fmt.Sprintf("%s/files/%s?token=%s", s.baseURL, escapePath(p), url.QueryEscape(token))
	return SignedURL{URL: u, ExpiresAt: expiresAt}, nil
}

// Verify checks that token grants access to objectPath
func (s *LocalStore) Verify(objectPath, token string) error {
	p, err := CleanPath(objectPath)
	if err != nil {
		return err
	}

	claims := &objectClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return ErrInvalidSignature
	}

	if claims.Path != p || claims.Bucket != s.bucket {
		return ErrInvalidSignature
	}
	return nil
}

// FullPath resolves an object path to its location on disk
func (s *LocalStore) FullPath(objectPath string) (string, error) {
	p, err := CleanPath(objectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, s.bucket, filepath.FromSlash(p)), nil
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return strings.Join(parts, "/")
}
