package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates runtime configuration for the menu-cms API.
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	MinIO    MinIOConfig
	Media    MediaConfig
	Auth     AuthConfig
	Metrics  MetricsConfig
}

// ServerConfig parameterizes the HTTP server.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PostgresConfig contains PostgreSQL connection details and pool bounds.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

// DSN returns the PostgreSQL DSN string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// MinIOConfig carries MinIO connection and bucket information.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
	// PublicBaseURL prefixes storage keys to build browser-facing image URLs.
	PublicBaseURL string
}

// MediaConfig groups signed-upload settings.
type MediaConfig struct {
	// KeyPrefix namespaces every issued storage key.
	KeyPrefix string
	// UploadURLTTL bounds how long an issued upload URL stays valid.
	UploadURLTTL time.Duration
}

// AuthConfig groups authentication settings for the single admin account.
type AuthConfig struct {
	AdminEmail    string
	AdminPassword string
	TokenSecret   string
	TokenTTL      time.Duration
	BcryptCost    int
}

// MetricsConfig groups observability settings.
type MetricsConfig struct {
	PrometheusPath string
}

// Load reads configuration values from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:         getString("MENUCMS_API_HOST", "0.0.0.0"),
			Port:         getInt("MENUCMS_API_PORT", 8080),
			ReadTimeout:  getDuration("MENUCMS_API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("MENUCMS_API_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("MENUCMS_API_IDLE_TIMEOUT", 60*time.Second),
		},
		Postgres: PostgresConfig{
			Host:     getString("POSTGRES_HOST", "localhost"),
			Port:     getInt("POSTGRES_PORT", 5432),
			User:     getString("POSTGRES_USER", "menucms_app"),
			Password: getString("POSTGRES_PASSWORD", "change-me"),
			Database: getString("POSTGRES_DB", "menucms"),
			SSLMode:  strings.ToLower(getString("POSTGRES_SSL_MODE", "disable")),
			MaxConns: getInt("POSTGRES_MAX_CONNS", 8),
			MinConns: getInt("POSTGRES_MIN_CONNS", 2),
		},
		MinIO: MinIOConfig{
			Endpoint:        getString("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getString("MINIO_ROOT_USER", "menucms"),
			SecretAccessKey: getString("MINIO_ROOT_PASSWORD", "change-me-strong-password"),
			Bucket:          getString("MINIO_BUCKET", "menucms"),
			UseSSL:          getBool("MINIO_USE_SSL", false),
			Region:          getString("MINIO_REGION", ""),
			PublicBaseURL:   getString("MINIO_PUBLIC_BASE_URL", "http://localhost:9000/menucms"),
		},
		Media: MediaConfig{
			KeyPrefix:    getString("MENUCMS_MEDIA_KEY_PREFIX", "restaurants/images"),
			UploadURLTTL: getDuration("MENUCMS_MEDIA_UPLOAD_URL_TTL", 5*time.Minute),
		},
		Auth: loadAuthConfig(),
		Metrics: MetricsConfig{
			PrometheusPath: getString("MENUCMS_METRICS_PATH", "/metrics"),
		},
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "1", "true", "t", "yes", "y":
			return true
		case "0", "false", "f", "no", "n":
			return false
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func loadAuthConfig() AuthConfig {
	cost := getInt("MENUCMS_AUTH_BCRYPT_COST", 12)
	if cost < 4 || cost > 31 {
		cost = 12
	}

	return AuthConfig{
		AdminEmail:    getString("MENUCMS_ADMIN_EMAIL", "admin@menucms.local"),
		AdminPassword: getString("MENUCMS_ADMIN_PASSWORD", "change-me-admin-password"),
		TokenSecret:   getString("MENUCMS_JWT_SECRET", "change-me-to-a-32-byte-secret"),
		TokenTTL:      getDuration("MENUCMS_AUTH_TOKEN_TTL", 12*time.Hour),
		BcryptCost:    cost,
	}
}
