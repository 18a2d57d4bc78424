package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret  string
	SessionTTL time.Duration

	// Upstream recipe provider (Spoonacular)
	SpoonacularAPIKey string
	SpoonacularAPIURL string

	// Magic-link sign-in
	MagicLinkTTL time.Duration
	FrontendURL  string

	// SMTP configuration for sign-in emails
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	EmailFrom     string
	EmailFromName string
}

// LoadConfig creates a new Config instance with values from environment
// variables or Docker secrets. Environment variables win; a NAME_FILE
// variable or a file under SECRETS_DIR supplies the value otherwise.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getValue("SERVER_PORT", "server_port", "8080"),
		ServerHost: getValue("SERVER_HOST", "server_host", "0.0.0.0"),

		DBHost:     getValue("DB_HOST", "db_host", "localhost"),
		DBPort:     getValue("DB_PORT", "db_port", "5432"),
		DBUser:     getValue("DB_USER", "db_user", "postgres"),
		DBPassword: getValue("DB_PASSWORD", "db_password", "postgres"),
		DBName:     getValue("DB_NAME", "db_name", "recipemagic"),
		DBSSLMode:  getValue("DB_SSL_MODE", "db_ssl_mode", "disable"),

		RedisHost:     getValue("REDIS_HOST", "redis_host", "localhost"),
		RedisPort:     getValue("REDIS_PORT", "redis_port", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:      getValue("REDIS_URL", "redis_url", ""),

		JWTSecret:  getValue("JWT_SECRET", "jwt_secret", ""),
		SessionTTL: 24 * time.Hour,

		SpoonacularAPIKey: getValue("SPOONACULAR_API_KEY", "spoonacular_api_key", ""),
		SpoonacularAPIURL: getValue("SPOONACULAR_API_URL", "spoonacular_api_url", "https://api.spoonacular.com"),

		MagicLinkTTL: 15 * time.Minute,
		FrontendURL:  getValue("FRONTEND_URL", "frontend_url", "http://localhost:5173"),

		SMTPHost:      getValue("SMTP_HOST", "smtp_host", ""),
		SMTPPort:      getValue("SMTP_PORT", "smtp_port", ""),
		SMTPUsername:  getValue("SMTP_USERNAME", "smtp_username", ""),
		SMTPPassword:  getValue("SMTP_PASSWORD", "smtp_password", ""),
		EmailFrom:     getValue("EMAIL_FROM", "email_from", "no-reply@recipemagic.app"),
		EmailFromName: getValue("EMAIL_FROM_NAME", "email_from_name", "Recipe Magic"),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", db, err)
		}
		cfg.RedisDB = n
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getValue resolves a configuration value from, in order: the environment
// variable, a file named by the NAME_FILE variable, a Docker secret under
// SECRETS_DIR, and finally the default.
func getValue(envName, secretName, fallback string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	if path := os.Getenv(envName + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
