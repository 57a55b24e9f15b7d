package storage

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/seed-marketplace/internal/config"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	return NewLocalStore(&config.Config{
		App:     config.AppConfig{PublicURL: "http://localhost:8080/"},
		JWT:     config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		Storage: config.StorageConfig{Provider: "local", Bucket: "seeds", LocalPath: t.TempDir()},
	})
}

func tokenFrom(t *testing.T, signed string) (string, string) {
	t.Helper()
	u, err := url.Parse(signed)
	require.NoError(t, err)
	return strings.TrimPrefix(u.Path, "/files/"), u.Query().Get("token")
}

func TestLocalStore_UploadAndSign(t *testing.T) {
	s := newTestLocalStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "public/tomato.png", "image/png", strings.NewReader("png-bytes")))

	full, err := s.FullPath("public/tomato.png")
	require.NoError(t, err)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	signed, err := s.SignedURL(ctx, "public/tomato.png", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed.URL, "http://localhost:8080/files/public/tomato.png?token="))
	assert.WithinDuration(t, time.Now().Add(time.Hour), signed.ExpiresAt, 5*time.Second)

	p, token := tokenFrom(t, signed.URL)
	assert.NoError(t, s.Verify(p, token))
}

func TestLocalStore_VerifyRejects(t *testing.T) {
	s := newTestLocalStore(t)
	ctx := context.Background()

	signed, err := s.SignedURL(ctx, "public/a.png", time.Hour)
	require.NoError(t, err)
	_, token := tokenFrom(t, signed.URL)

	assert.ErrorIs(t, s.Verify("public/b.png", token), ErrInvalidSignature)
	assert.ErrorIs(t, s.Verify("public/a.png", "garbage"), ErrInvalidSignature)

	expired, err := s.SignedURL(ctx, "public/a.png", -time.Minute)
	require.NoError(t, err)
	_, expiredToken := tokenFrom(t, expired.URL)
	assert.ErrorIs(t, s.Verify("public/a.png", expiredToken), ErrInvalidSignature)
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "public/x.png", want: "public/x.png"},
		{in: "/public//x.png", want: "public/x.png"},
		{in: "public/../x.png", want: "x.png"},
		{in: "../etc/passwd", wantErr: true},
		{in: "..", wantErr: true},
		{in: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CleanPath(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type cancelingReader struct {
	r      io.Reader
	cancel context.CancelFunc
}

func (c *cancelingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if err == io.EOF {
		c.cancel()
	}
	return n, err
}

func TestLocalStore_UploadHonorsCancellation(t *testing.T) {
	s := newTestLocalStore(t)
	full, err := s.FullPath("public/late.png")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Upload(ctx, "public/late.png", "image/png", strings.NewReader("png-bytes"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, full)

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	err = s.Upload(ctx, "public/late.png", "image/png", &cancelingReader{r: strings.NewReader("png-bytes"), cancel: cancel})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, full)
}

func TestLocalStore_UploadReadFailureRemovesFile(t *testing.T) {
	s := newTestLocalStore(t)
	full, err := s.FullPath("public/broken.png")
	require.NoError(t, err)

	err = s.Upload(context.Background(), "public/broken.png", "image/png", io.MultiReader(strings.NewReader("png"), failingReader{}))
	assert.Error(t, err)
	assert.NoFileExists(t, full)
}
