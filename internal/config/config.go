// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	App          AppConfig
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Security     SecurityConfig
	Session      SessionConfig
	Storage      StorageConfig
	Upload       UploadConfig
	Verification VerificationConfig
	Voice        VoiceConfig
	Logging      LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	Currency    string
	PublicURL   string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// JWTConfig contains JWT token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// SessionConfig controls browsing sessions. A session whose cart has not
// been touched for IdleTimeout ends and its cart is dropped.
type SessionConfig struct {
	CookieName   string
	CookieSecure bool
	MaxSessions  int
	IdleTimeout  time.Duration
}

// StorageConfig contains object storage configuration
type StorageConfig struct {
	Provider       string // local or gcs
	Bucket         string
	LocalPath      string
	SignedURLTTL   time.Duration
	GCSCredentials string
}

// UploadConfig contains file upload configuration
type UploadConfig struct {
	MaxSize           int64
	AllowedExtensions []string
}

// VerificationConfig points at the external seed quality inference service.
// An empty Endpoint disables verification.
type VerificationConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// VoiceConfig toggles the voice command endpoint
type VoiceConfig struct {
	Enabled  bool
	Language string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Seed Marketplace"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			Currency:    getEnv("APP_CURRENCY", "INR"),
			PublicURL:   getEnv("APP_PUBLIC_URL", "http://localhost:8080"),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "8080"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "seed_marketplace"),
			User:         getEnv("DB_USER", "marketplace_user"),
			Password:     getEnv("DB_PASSWORD", "marketplace_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
			AccessTokenExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRE", 24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Session: SessionConfig{
			CookieName:   getEnv("SESSION_COOKIE_NAME", "session_id"),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
			MaxSessions:  getEnvAsInt("SESSION_MAX_SESSIONS", 10000),
			IdleTimeout:  getEnvAsDuration("SESSION_IDLE_TIMEOUT", 24*time.Hour),
		},
		Storage: StorageConfig{
			Provider:       getEnv("STORAGE_PROVIDER", "local"),
			Bucket:         getEnv("STORAGE_BUCKET", "seeds"),
			LocalPath:      getEnv("STORAGE_LOCAL_PATH", "./uploads"),
			SignedURLTTL:   getEnvAsDuration("STORAGE_SIGNED_URL_TTL", 3600*time.Second),
			GCSCredentials: getEnv("GCS_CREDENTIALS_FILE", ""),
		},
		Upload: UploadConfig{
			MaxSize:           getEnvAsInt64("UPLOAD_MAX_SIZE", 10485760), // 10MB
			AllowedExtensions: getEnvAsSlice("UPLOAD_ALLOWED_EXTENSIONS", []string{"jpg", "jpeg", "png", "gif", "webp"}),
		},
		Verification: VerificationConfig{
			Endpoint: getEnv("VERIFICATION_ENDPOINT", ""),
			APIKey:   getEnv("VERIFICATION_API_KEY", ""),
			Timeout:  getEnvAsDuration("VERIFICATION_TIMEOUT", 10*time.Second),
		},
		Voice: VoiceConfig{
			Enabled:  getEnvAsBool("VOICE_ENABLED", true),
			Language: getEnv("VOICE_LANGUAGE", "en-US"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	switch c.Storage.Provider {
	case "local":
		if c.Storage.LocalPath == "" {
			return fmt.Errorf("STORAGE_LOCAL_PATH is required for the local storage provider")
		}
	case "gcs":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for the gcs storage provider")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_PROVIDER %q", c.Storage.Provider)
	}

	if c.Storage.SignedURLTTL <= 0 {
		return fmt.Errorf("STORAGE_SIGNED_URL_TTL must be positive")
	}

	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("SESSION_MAX_SESSIONS must be positive")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// VerificationEnabled reports whether an inference endpoint is configured
func (c *Config) VerificationEnabled() bool {
	return c.Verification.Endpoint != ""
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
