package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultSecretsDir = "/run/secrets"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// MigrationsDir holds the SQL files applied to postgres at startup.
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWTSecret verifies tokens issued by the identity provider.
	JWTSecret string

	// Checklist export
	S3BucketName    string
	AWSRegion       string
	ExportRateLimit int

	// CategoriesFile optionally replaces the built-in grocery category table.
	CategoriesFile string

	LogLevel  string
	LogFormat string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadFrom(cfg, os.Getenv)
	case Development, Test:
		if err := loadDotEnv(); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
		loadFrom(cfg, secretOrEnv)
	case Production:
		loadFrom(cfg, secretOrEnv)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	applyDefaults(cfg, env)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads ENV_FILE (default .env) into the process environment.
// A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

func loadFrom(cfg *Config, get func(string) string) {
	cfg.ServerPort = get("SERVER_PORT")
	cfg.ServerHost = get("SERVER_HOST")
	cfg.AllowedOrigins = splitList(get("ALLOWED_ORIGINS"))

	cfg.DBDriver = strings.ToLower(get("DB_DRIVER"))
	cfg.DBHost = get("DB_HOST")
	cfg.DBPort = get("DB_PORT")
	cfg.DBUser = get("DB_USER")
	cfg.DBPassword = get("DB_PASSWORD")
	cfg.DBName = get("DB_NAME")
	cfg.DBSSLMode = get("DB_SSL_MODE")
	cfg.SQLitePath = get("SQLITE_PATH")
	cfg.MigrationsDir = get("MIGRATIONS_DIR")

	cfg.RedisHost = get("REDIS_HOST")
	cfg.RedisPort = get("REDIS_PORT")
	cfg.RedisPassword = get("REDIS_PASSWORD")
	cfg.RedisURL = get("REDIS_URL")
	cfg.RedisDB, _ = strconv.Atoi(get("REDIS_DB"))

	cfg.JWTSecret = get("JWT_SECRET")

	cfg.S3BucketName = get("S3_BUCKET_NAME")
	cfg.AWSRegion = get("AWS_REGION")
	cfg.ExportRateLimit, _ = strconv.Atoi(get("EXPORT_RATE_LIMIT"))

	cfg.CategoriesFile = get("GROCERY_CATEGORIES_FILE")

	cfg.LogLevel = get("LOG_LEVEL")
	cfg.LogFormat = get("LOG_FORMAT")
}

func applyDefaults(cfg *Config, env Environment) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.ExportRateLimit <= 0 {
		cfg.ExportRateLimit = 20
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		if env == Production {
			cfg.LogFormat = "json"
		} else {
			cfg.LogFormat = "console"
		}
	}
}

// secretOrEnv prefers the Docker secret named after the lower-cased key and
// falls back to the environment variable.
func secretOrEnv(key string) string {
	if value := readSecret(strings.ToLower(key)); value != "" {
		return value
	}
	return os.Getenv(key)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether any Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// ExportEnabled reports whether checklist export to S3 is configured.
func (c *Config) ExportEnabled() bool {
	return c.S3BucketName != ""
}
