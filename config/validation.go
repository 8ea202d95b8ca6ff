package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// insecureDefaults are development fallbacks that must never reach
// production.
var insecureDefaults = map[string]string{
	"JWT_SECRET":  "your-secret-key",
	"DB_PASSWORD": "postgres",
}

// ValidateConfig checks that the configuration is complete for the current
// environment. Development, test and CI accept the built-in defaults;
// production additionally rejects them for sensitive values.
func ValidateConfig(cfg *Config) error {
	var errs []string

	required := []struct {
		field string
		value string
	}{
		{"SERVER_PORT", cfg.ServerPort},
		{"DB_HOST", cfg.DBHost},
		{"DB_PORT", cfg.DBPort},
		{"DB_USER", cfg.DBUser},
		{"DB_NAME", cfg.DBName},
		{"DB_SSL_MODE", cfg.DBSSLMode},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, ValidationError{Field: r.field, Message: "must not be empty"}.Error())
		}
	}

	if IsProduction() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == insecureDefaults["JWT_SECRET"] {
			errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must be set to a non-default value in production"}.Error())
		}
		if cfg.DBPassword == "" || cfg.DBPassword == insecureDefaults["DB_PASSWORD"] {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "must be set to a non-default value in production"}.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
