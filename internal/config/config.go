package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting the server reads from the
// environment. A .env file is honored via the godotenv autoloader in main.
type Config struct {
	Port        int
	PostgresURL string // when empty the server falls back to SQLitePath
	SQLitePath  string
	JWTSecret   string
	TokenTTL    time.Duration
	UploadDir   string
	LogMode     string
}

func Load() Config {
	return Config{
		Port:        getEnvAsInt("PORT", 5005),
		PostgresURL: getEnv("POSTGRES_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "data/farmlink.db"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-this"),
		TokenTTL:    time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", 24*7)) * time.Hour,
		UploadDir:   getEnv("UPLOAD_DIR", "data/uploads"),
		LogMode:     getEnv("LOG_MODE", "dev"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}
