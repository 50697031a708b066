package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Every external
// credential or limit the services need is threaded in from here; nothing
// reads the environment past startup.
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration (required)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional; enrichment cache is disabled without it)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration (secret required)
	JWTSecret string
	JWTExpiry string

	// Edamam nutrition API (required)
	EdamamURL    string
	EdamamAppID  string
	EdamamAppKey string

	// S3 image storage (bucket optional, falls back to default)
	S3Bucket  string
	AWSRegion string

	// Upload limits
	MaxUploadImageSize int64
}

// LoadConfig creates a new Config instance from the environment. A .env file
// in the working directory is merged in first if present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "5000"),
		ServerHost:  getEnv("SERVER_HOST", "0.0.0.0"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: getEnv("JWT_EXPIRE", "24h"),

		EdamamURL:    getEnv("EDAMAM_APP_URL", "https://api.edamam.com/api/nutrition-details"),
		EdamamAppID:  os.Getenv("EDAMAM_APP_ID"),
		EdamamAppKey: os.Getenv("EDAMAM_APP_KEY"),

		S3Bucket:  getEnv("S3_BUCKET_NAME", "greenspoon-uploads"),
		AWSRegion: os.Getenv("AWS_REGION"),

		MaxUploadImageSize: 1000000,
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", v, err)
		}
		cfg.RedisDB = db
	}

	if v := os.Getenv("MAX_UPLOAD_IMG_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_IMG_SIZE value %q: %w", v, err)
		}
		cfg.MaxUploadImageSize = size
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks that every required value is present.
func ValidateConfig(cfg *Config) error {
	var missing []string

	required := []struct {
		name  string
		value string
	}{
		{"DB_USER", cfg.DBUser},
		{"DB_PASSWORD", cfg.DBPassword},
		{"DB_NAME", cfg.DBName},
		{"JWT_SECRET", cfg.JWTSecret},
		{"EDAMAM_APP_ID", cfg.EdamamAppID},
		{"EDAMAM_APP_KEY", cfg.EdamamAppKey},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("required configuration is not set: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
