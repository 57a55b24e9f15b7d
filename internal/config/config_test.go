package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, 3600*time.Second, cfg.Storage.SignedURLTTL)
	assert.Equal(t, "session_id", cfg.Session.CookieName)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.VerificationEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_PROVIDER", "gcs")
	t.Setenv("STORAGE_BUCKET", "farm-seeds")
	t.Setenv("VERIFICATION_ENDPOINT", "http://inference.local/verify")
	t.Setenv("VERIFICATION_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "farm-seeds", cfg.Storage.Bucket)
	assert.True(t, cfg.VerificationEnabled())
	assert.Equal(t, 3*time.Second, cfg.Verification.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Host: "db", Name: "seeds", User: "u"},
			Redis:    RedisConfig{Host: "redis"},
			JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
			Session:  SessionConfig{MaxSessions: 10},
			Storage:  StorageConfig{Provider: "local", LocalPath: "/tmp", SignedURLTTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.JWT.Secret = "short" }, wantErr: "JWT_SECRET"},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "DB_HOST"},
		{name: "unknown provider", mutate: func(c *Config) { c.Storage.Provider = "s3" }, wantErr: "STORAGE_PROVIDER"},
		{name: "gcs without bucket", mutate: func(c *Config) {
			c.Storage.Provider = "gcs"
			c.Storage.Bucket = ""
		}, wantErr: "STORAGE_BUCKET"},
		{name: "zero ttl", mutate: func(c *Config) { c.Storage.SignedURLTTL = 0 }, wantErr: "STORAGE_SIGNED_URL_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
