package config

import (
	"errors"
	"fmt"
)

// ValidateConfig rejects configurations that cannot run. Development fills
// in defaults freely; production requires every secret to be set
// explicitly.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		if IsProduction() {
			return errors.New("JWT_SECRET is required")
		}
		cfg.JWTSecret = "dev-secret-do-not-use-in-production"
	}

	if IsProduction() {
		required := map[string]string{
			"DB_HOST":     cfg.DBHost,
			"DB_USER":     cfg.DBUser,
			"DB_PASSWORD": cfg.DBPassword,
			"DB_NAME":     cfg.DBName,
		}
		for name, value := range required {
			if value == "" {
				return fmt.Errorf("%s is required in production", name)
			}
		}
	}

	return nil
}
