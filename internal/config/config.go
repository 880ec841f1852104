package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

// devJWTSecret is the development-only signing key. Boot fails if it is
// still in place in production.
const devJWTSecret = "dev-secret-change-me"

// devAdminSecretKey gates officer self-registration in development.
const devAdminSecretKey = "LIBERTY_ADMIN_2024_SECURE_KEY"

type Config struct {
	Port            int    `env:"PORT" envDefault:"8080"`
	DatabaseURL     string `env:"DATABASE_URL,required"`
	RedisURL        string `env:"REDIS_URL,required"`
	JWTSecret       string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	AdminSecretKey  string `env:"ADMIN_SECRET_KEY" envDefault:"LIBERTY_ADMIN_2024_SECURE_KEY"`
	TokenTTLSeconds int    `env:"TOKEN_TTL_SECONDS" envDefault:"604800"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
}

// TokenTTL is both the session token lifetime and the auth cookie max age.
// The two must stay equal so a cookie never outlives its token.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate(isProduction bool) error {
	if isProduction {
		if err := validateSecret("JWT_SECRET", c.JWTSecret); err != nil {
			return err
		}
		if c.JWTSecret == devJWTSecret {
			return fmt.Errorf("JWT_SECRET is the development default; set a strong secret in production")
		}
		if err := validateSecret("ADMIN_SECRET_KEY", c.AdminSecretKey); err != nil {
			return err
		}
		if c.AdminSecretKey == devAdminSecretKey {
			return fmt.Errorf("ADMIN_SECRET_KEY is the development default; set a strong secret in production")
		}
	}
	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
