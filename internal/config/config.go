package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable at startup.
const (
	StoreSupabase = "supabase"
	StorePostgres = "postgres"
)

// Config centralises runtime configuration.
type Config struct {
	HTTPPort        string
	StoreBackend    string
	SupabaseURL     string
	SupabaseKey     string
	DatabaseURL     string
	JWTSecret       string
	SecretKey       string
	PasswordScheme  string
	TokenTTL        time.Duration
	AllowedOrigins  []string
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

// Load reads configuration from the environment, with a .env file applied
// first when present. A malformed store URL or key is a hard failure; a
// missing JWT_SECRET is not, and surfaces as an error at token generation
// instead.
func Load() (Config, error) {
	_ = godotenv.Load()

	httpPort := getEnv("HTTP_PORT", "")
	if httpPort == "" {
		httpPort = getEnv("PORT", "8080")
	}

	cfg := Config{
		HTTPPort:        httpPort,
		SupabaseURL:     strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		SupabaseKey:     strings.TrimSpace(os.Getenv("SUPABASE_KEY")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		SecretKey:       os.Getenv("SECRET_KEY"),
		PasswordScheme:  getEnv("PASSWORD_SCHEME", "sha256"),
		TokenTTL:        getDurationEnv("TOKEN_TTL", 7*24*time.Hour),
		AllowedOrigins:  splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeoutSec:  getIntEnv("HTTP_READ_TIMEOUT", 15),
		WriteTimeoutSec: getIntEnv("HTTP_WRITE_TIMEOUT", 15),
		IdleTimeoutSec:  getIntEnv("HTTP_IDLE_TIMEOUT", 60),
	}

	if cfg.DatabaseURL != "" {
		cfg.StoreBackend = StorePostgres
	} else {
		cfg.StoreBackend = StoreSupabase
		if cfg.SupabaseURL == "" {
			return Config{}, fmt.Errorf("store configuration missing: provide SUPABASE_URL or DATABASE_URL")
		}
		if !strings.HasPrefix(cfg.SupabaseURL, "https://") {
			return Config{}, fmt.Errorf("SUPABASE_URL must begin with https://")
		}
		if !strings.HasPrefix(cfg.SupabaseKey, "eyJ") {
			return Config{}, fmt.Errorf("SUPABASE_KEY is missing or not a service key")
		}
	}

	switch cfg.PasswordScheme {
	case "sha256", "bcrypt":
	default:
		return Config{}, fmt.Errorf("PASSWORD_SCHEME must be sha256 or bcrypt, got %q", cfg.PasswordScheme)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return []string{"*"}
	}
	return parts
}
