// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the service.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	AI        AIConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Jobx      JobxConfig
	Notifx    NotifxConfig
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	AppName          string
	Version          string
	Environment      string
	Port             int
	SecretKey        string
	MaxContentLength int
	CORSOrigins      string
	BaseURL          string
}

// IsDevelopment reports whether internal error details may be exposed.
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development"
}

// StorageConfig selects where uploads and rendered PDFs live.
type StorageConfig struct {
	Mode            string
	UploadFolder    string
	EnhancedFolder  string
	EnhancedTTL     time.Duration
	CleanupInterval time.Duration
	AWSRegion       string
	AWSBucket       string
}

// RateLimitConfig bounds uploads per client within a sliding window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// RedisConfig is optional. An empty address disables Redis-backed features.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// DatabaseConfig is optional. An empty URL keeps history in memory.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Enabled reports whether a database DSN was configured.
func (d DatabaseConfig) Enabled() bool { return d.URL != "" }

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := getEnvInt("PORT", 5000)
	cfg := &Config{
		Server: ServerConfig{
			AppName:          getEnv("APP_NAME", "Resume Forge"),
			Version:          getEnv("APP_VERSION", "1.0.0"),
			Environment:      getEnv("APP_ENV", "development"),
			Port:             port,
			SecretKey:        getEnv("SECRET_KEY", "fallback-secret-key-change-in-production"),
			MaxContentLength: getEnvInt("MAX_CONTENT_LENGTH", 16*1024*1024),
			CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
			BaseURL:          strings.TrimRight(getEnv("BASE_URL", fmt.Sprintf("http://localhost:%d", port)), "/"),
		},
		Storage: StorageConfig{
			Mode:            strings.ToLower(getEnv("STORAGE_MODE", "local")),
			UploadFolder:    getEnv("UPLOAD_FOLDER", "uploads"),
			EnhancedFolder:  getEnv("ENHANCED_FOLDER", "enhanced"),
			EnhancedTTL:     getEnvDuration("ENHANCED_TTL", time.Hour),
			CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", 10*time.Minute),
			AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
			AWSBucket:       getEnv("AWS_BUCKET", "resumeforge-files"),
		},
		AI: loadAIConfig(),
		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 5),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", 300*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Jobx:   loadJobxConfig(),
		Notifx: loadNotifxConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.Storage.Mode {
	case "local", "s3":
	default:
		return fmt.Errorf("unknown STORAGE_MODE %q (use 'local' or 's3')", c.Storage.Mode)
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	return c.AI.Validate()
}
