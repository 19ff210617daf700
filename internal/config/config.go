package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Storage    StorageConfig    `yaml:"storage"`
	Upload     UploadConfig     `yaml:"upload"`
	Recordings RecordingsConfig `yaml:"recordings"`
	Profile    ProfileConfig    `yaml:"profile"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustProxyHeaders takes the client address from X-Forwarded-For /
	// X-Real-IP. Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers" env:"SERVER_TRUST_PROXY_HEADERS" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings for the table store.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds identity provider settings.
//
// VerifyMode "remote" asks the provider to resolve every bearer token;
// "local" verifies the provider-issued HS256 JWT with JWTSecret.
// DevMode enables the fallback identity for requests without a valid token.
type AuthConfig struct {
	ProviderURL    string `yaml:"provider_url"     env:"AUTH_PROVIDER_URL"`
	AnonKey        string `yaml:"anon_key"         env:"AUTH_ANON_KEY"`
	VerifyMode     string `yaml:"verify_mode"      env:"AUTH_VERIFY_MODE"      env-default:"remote"`
	JWTSecret      string `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"`
	JWTIssuer      string `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"`
	JWTAudience    string `yaml:"jwt_audience"     env:"AUTH_JWT_AUDIENCE"     env-default:"authenticated"`
	DevMode        bool   `yaml:"dev_mode"         env:"AUTH_DEV_MODE"         env-default:"false"`
	FallbackUserID string `yaml:"fallback_user_id" env:"AUTH_FALLBACK_USER_ID" env-default:"00000000-0000-0000-0000-000000000001"`
	FallbackEmail  string `yaml:"fallback_email"   env:"AUTH_FALLBACK_EMAIL"   env-default:"test@example.com"`
}

// StorageConfig holds object storage settings.
type StorageConfig struct {
	Type            string `yaml:"type"              env:"STORAGE_TYPE"              env-default:"s3"`
	Bucket          string `yaml:"bucket"            env:"STORAGE_BUCKET"            env-default:"recordings"`
	Endpoint        string `yaml:"endpoint"          env:"STORAGE_ENDPOINT"`
	Region          string `yaml:"region"            env:"STORAGE_REGION"            env-default:"us-east-1"`
	AccessKeyID     string `yaml:"access_key_id"     env:"STORAGE_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"STORAGE_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `yaml:"use_path_style"    env:"STORAGE_USE_PATH_STYLE"    env-default:"true"`
	PublicBaseURL   string `yaml:"public_base_url"   env:"STORAGE_PUBLIC_BASE_URL"`
}

// UploadConfig holds recording upload limits.
type UploadConfig struct {
	MaxBytes         int64  `yaml:"max_bytes"         env:"UPLOAD_MAX_BYTES"         env-default:"52428800"`
	DefaultExtension string `yaml:"default_extension" env:"UPLOAD_DEFAULT_EXTENSION" env-default:"webm"`
}

// RecordingsConfig holds recording access policy.
type RecordingsConfig struct {
	EnforceListOwnership bool `yaml:"enforce_list_ownership" env:"RECORDINGS_ENFORCE_LIST_OWNERSHIP" env-default:"true"`
}

// ProfileConfig holds user profile policy.
type ProfileConfig struct {
	// OpenCreate keeps POST /user/profile/create reachable without authentication.
	OpenCreate      bool   `yaml:"open_create"       env:"PROFILE_OPEN_CREATE"       env-default:"true"`
	DefaultFullName string `yaml:"default_full_name" env:"PROFILE_DEFAULT_FULL_NAME" env-default:"User"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"             env-default:"true"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE" env-default:"120"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"               env-default:"60"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

const (
	VerifyModeRemote = "remote"
	VerifyModeLocal  = "local"

	StorageTypeS3     = "s3"
	StorageTypeMemory = "memory"
)

// IsLocalVerification reports whether bearer tokens are verified in-process.
func (c AuthConfig) IsLocalVerification() bool {
	return strings.EqualFold(c.VerifyMode, VerifyModeLocal)
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
