package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the configuration carries everything the
// current environment needs to run. Test keeps the bar low so unit tests
// can construct configs without provisioning credentials.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server port is required")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		errors = append(errors, "database host, port and name are required")
	}

	if env != Test {
		if cfg.JWTSecret == "" {
			errors = append(errors, "jwt secret is required")
		}
		if cfg.SpoonacularAPIKey == "" {
			errors = append(errors, "spoonacular api key is required")
		}
	}

	if env == Production {
		if cfg.SMTPHost == "" || cfg.SMTPPort == "" {
			errors = append(errors, "SMTP host and port are required in production")
		}
		if cfg.FrontendURL == "" {
			errors = append(errors, "frontend URL is required in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
