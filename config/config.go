package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application. It is built once at
// startup and passed by reference to every component that needs it; nothing
// reads the environment after Load returns.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

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

	// Session credential signing
	JWTSecret     string
	SessionSecret string

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleAuthURL      string
	GoogleTokenURL     string

	// Frontend origin for CORS and post-login redirect
	FrontendURL string

	// Cookies are marked Secure outside development
	CookieSecure bool

	// Avatar storage
	S3Bucket  string
	AWSRegion string
}

// Load builds a Config from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "8000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		SessionSecret: os.Getenv("SESSION_SECRET_KEY"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
		GoogleAuthURL:      getEnv("GOOGLE_AUTH_URL", "https://accounts.google.com/o/oauth2/v2/auth"),
		GoogleTokenURL:     getEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),

		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:5173"),
		CookieSecure: getEnv("ENV", "development") == "production",

		S3Bucket:  getEnv("S3_BUCKET_NAME", "rice-avatars"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	required := map[string]string{
		"DB_USER":              c.DBUser,
		"DB_PASSWORD":          c.DBPassword,
		"DB_NAME":              c.DBName,
		"JWT_SECRET_KEY":       c.JWTSecret,
		"SESSION_SECRET_KEY":   c.SessionSecret,
		"GOOGLE_CLIENT_ID":     c.GoogleClientID,
		"GOOGLE_CLIENT_SECRET": c.GoogleClientSecret,
		"GOOGLE_REDIRECT_URI":  c.GoogleRedirectURI,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s environment variable is required", name)
		}
	}
	return nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
