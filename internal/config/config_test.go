package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_PORT", "PORT", "SUPABASE_URL", "SUPABASE_KEY", "DATABASE_URL",
		"JWT_SECRET", "SECRET_KEY", "PASSWORD_SCHEME", "TOKEN_TTL",
		"CORS_ALLOWED_ORIGINS", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_SupabaseBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_KEY", "eyJhbGciOiJIUzI1NiJ9.test")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreSupabase, cfg.StoreBackend)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "sha256", cfg.PasswordScheme)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_MissingStore(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL or DATABASE_URL")
}

func TestLoad_RejectsPlainHTTPURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "http://project.supabase.co")
	t.Setenv("SUPABASE_KEY", "eyJhbGciOiJIUzI1NiJ9.test")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https://")
}

func TestLoad_RejectsMalformedKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_KEY", "not-a-service-key")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_KEY")
}

func TestLoad_PostgresBackendSkipsSupabaseValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/auth")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.StoreBackend)
}

func TestLoad_JWTSecretNotRequiredAtStartup(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/auth")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoad_InvalidPasswordScheme(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/auth")
	t.Setenv("PASSWORD_SCHEME", "md5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PASSWORD_SCHEME")
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/auth")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("HTTP_READ_TIMEOUT", "30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 30, cfg.ReadTimeoutSec)
}
