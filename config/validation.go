package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every setting the selected drivers depend on is present.
func ValidateConfig(cfg *Config) error {
	var errs []error
	require := func(field, value string) {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("JWT_SECRET", cfg.JWTSecret)
	require("SERVER_PORT", cfg.ServerPort)

	switch cfg.DBDriver {
	case "postgres":
		require("DB_HOST", cfg.DBHost)
		require("DB_PORT", cfg.DBPort)
		require("DB_USER", cfg.DBUser)
		require("DB_PASSWORD", cfg.DBPassword)
		require("DB_NAME", cfg.DBName)
	case "sqlite":
		require("SQLITE_PATH", cfg.SQLitePath)
	default:
		errs = append(errs, ValidationError{
			Field:   "DB_DRIVER",
			Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver),
		})
	}

	if cfg.RedisHost != "" && cfg.RedisURL == "" {
		require("REDIS_PORT", cfg.RedisPort)
	}
	if cfg.S3BucketName != "" {
		require("AWS_REGION", cfg.AWSRegion)
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, ValidationError{
			Field:   "LOG_FORMAT",
			Message: fmt.Sprintf("must be json or console, got %q", cfg.LogFormat),
		})
	}

	return errors.Join(errs...)
}
