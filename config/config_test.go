package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "gluco")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_NAME", "glucotrack_test")
	t.Setenv("DB_SSL_MODE", "require")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://cache.internal:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "gluco", cfg.DBUser)
	assert.Equal(t, "s3cret", cfg.DBPassword)
	assert.Equal(t, "glucotrack_test", cfg.DBName)
	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://cache.internal:6379", cfg.RedisURL)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_SSL_MODE", "JWT_SECRET", "REDIS_URL", "OPENAI_API_KEY",
		"S3_BUCKET_NAME",
	} {
		os.Unsetenv(key)
	}
	// Point the secret reader at an empty directory so host secrets cannot
	// leak into the assertions.
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "glucotrack", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "your-secret-key", cfg.JWTSecret)
	assert.Empty(t, cfg.RedisURL, "host/port pieces drive the connection unless a URL is given")
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLMModel)
	assert.Empty(t, cfg.LLMAPIKey)
	assert.Empty(t, cfg.S3Bucket)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "glucotrack",
		DBSSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=glucotrack sslmode=disable",
		cfg.DatabaseDSN())
}

func TestValidateConfigProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	if os.Getenv("CI") == "true" {
		t.Skip("CI detection overrides ENV")
	}

	cfg := &Config{
		ServerPort: "8080",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "glucotrack",
		DBSSLMode:  "disable",
		JWTSecret:  "your-secret-key",
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	cfg.JWTSecret = "rotated-secret"
	cfg.DBPassword = "rotated-password"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestGetEnvironment(t *testing.T) {
	if os.Getenv("CI") == "true" {
		t.Skip("CI detection overrides ENV")
	}

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())
	assert.True(t, IsTest())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
	assert.True(t, IsDevelopment())
}
