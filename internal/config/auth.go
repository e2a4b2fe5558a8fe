package config

import (
	"fmt"
	"time"
)

// AuthConfig holds token issuing and verification configuration.
type AuthConfig struct {
	// Secret is the HMAC signing key for access tokens.
	Secret string
	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		Secret:   GetEnv("AUTH_SECRET", ""),
		TokenTTL: GetEnvDuration("AUTH_TOKEN_TTL", time.Hour),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("AUTH_SECRET is required")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("AUTH_SECRET must be at least 16 characters")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TokenTTL must be greater than 0")
	}
	return nil
}
