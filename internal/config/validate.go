package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be > 0 (got %d)", c.Upload.MaxBytes)
	}
	if strings.TrimSpace(c.Profile.DefaultFullName) == "" {
		return fmt.Errorf("profile.default_full_name must not be empty")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	return nil
}

func (a *AuthConfig) validate() error {
	if a.ProviderURL == "" {
		return fmt.Errorf("provider_url is required")
	}
	if a.AnonKey == "" {
		return fmt.Errorf("anon_key is required")
	}

	switch strings.ToLower(a.VerifyMode) {
	case VerifyModeRemote:
	case VerifyModeLocal:
		if len(a.JWTSecret) < 32 {
			return fmt.Errorf("jwt_secret must be at least 32 characters in local mode (got %d)", len(a.JWTSecret))
		}
	default:
		return fmt.Errorf("verify_mode must be %q or %q (got %q)", VerifyModeRemote, VerifyModeLocal, a.VerifyMode)
	}

	if a.DevMode && strings.TrimSpace(a.FallbackUserID) == "" {
		return fmt.Errorf("fallback_user_id is required when dev_mode is enabled")
	}
	return nil
}

func (s *StorageConfig) validate() error {
	if s.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}

	switch strings.ToLower(s.Type) {
	case StorageTypeMemory:
	case StorageTypeS3:
		if s.PublicBaseURL == "" {
			return fmt.Errorf("public_base_url is required for s3 storage")
		}
		if (s.AccessKeyID == "") != (s.SecretAccessKey == "") {
			return fmt.Errorf("access_key_id and secret_access_key must be set together")
		}
	default:
		return fmt.Errorf("type must be %q or %q (got %q)", StorageTypeS3, StorageTypeMemory, s.Type)
	}
	return nil
}
